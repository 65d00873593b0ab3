package source

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vk/aftersort/internal/fileid"
)

// Memory is an in-memory Source. It is safe for concurrent use and counts how
// often each file was opened, which lets tests assert memoization.
type Memory struct {
	mu    sync.RWMutex
	files map[fileid.Identity]string
	opens map[fileid.Identity]int
}

// NewMemory creates a Memory source pre-populated with the given files.
func NewMemory(files map[string]string) *Memory {
	m := &Memory{
		files: make(map[fileid.Identity]string, len(files)),
		opens: make(map[fileid.Identity]int),
	}
	for name, content := range files {
		m.files[fileid.Identity(name)] = content
	}
	return m
}

// Put adds or replaces a file.
func (m *Memory) Put(id fileid.Identity, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[id] = content
}

// Open returns the stored content or ErrNotFound.
func (m *Memory) Open(id fileid.Identity) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.opens[id]++
	content, ok := m.files[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

// Opens reports how many times the identity was opened, including failed
// attempts for missing files.
func (m *Memory) Opens(id fileid.Identity) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opens[id]
}
