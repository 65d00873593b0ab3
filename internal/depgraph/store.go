package depgraph

import (
	"sync"

	"github.com/vk/aftersort/internal/fileid"
)

type fileState int

const (
	statePending fileState = iota
	statePresent
	stateMissing
)

type entry struct {
	state fileState
	deps  []fileid.Identity
}

// store is the shared construction-time view of the graph. All access goes
// through its mutex, so a claim and the existence check before it are atomic
// with respect to every other branch.
type store struct {
	mu      sync.Mutex
	entries map[fileid.Identity]*entry
}

func newStore() *store {
	return &store{entries: make(map[fileid.Identity]*entry)}
}

// claim registers id as pending and reports whether the caller is the first
// to reach it. Only the claiming branch may read the file.
func (s *store) claim(id fileid.Identity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.entries[id]; seen {
		return false
	}
	s.entries[id] = &entry{state: statePending}
	return true
}

func (s *store) record(id fileid.Identity, deps []fileid.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &entry{state: statePresent, deps: deps}
}

// markMissing drops any partial dependency list for id. The key stays known
// to the store so no other branch reads the file again.
func (s *store) markMissing(id fileid.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &entry{state: stateMissing}
}

// graph freezes the store into a read-only Graph holding existing files only.
func (s *store) graph() *Graph {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := &Graph{deps: make(map[fileid.Identity][]fileid.Identity, len(s.entries))}
	for id, e := range s.entries {
		if e.state != statePresent {
			continue
		}
		g.deps[id] = append([]fileid.Identity(nil), e.deps...)
	}
	return g
}
