// Package report turns project outcomes into output for people and tools.
//
// The Renderer prints one block per project with every resolution error,
// including the full trail of each cycle, optionally colored with lipgloss.
// FromOutcomes builds a structured Document that can be written as YAML or
// published to listeners.
package report
