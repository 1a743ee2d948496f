package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
)

type DiagnosticEntry struct {
	Level   application.Level
	Scope   application.Scope
	Message string
	Args    []any
}

// RecordingDiagnostics keeps every entry in memory for assertions.
type RecordingDiagnostics struct {
	mu      sync.Mutex
	Entries []DiagnosticEntry
}

func NewRecordingDiagnostics() *RecordingDiagnostics {
	return &RecordingDiagnostics{}
}

func (r *RecordingDiagnostics) Enabled() bool {
	return true
}

func (r *RecordingDiagnostics) Log(_ context.Context, level application.Level, scope application.Scope, msg string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, DiagnosticEntry{Level: level, Scope: scope, Message: msg, Args: args})
}

// Contains reports whether an entry at level mentions substr.
func (r *RecordingDiagnostics) Contains(level application.Level, substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.Entries {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
