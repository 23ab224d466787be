package service

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")
	ErrNotInList      = errors.New("record is not in the loaded list")
	ErrBusy           = errors.New("operation already in progress")
	ErrNotConfirmed   = errors.New("deletion not confirmed")
)

// ValidationError aggregates per-field failures found before any request is
// sent. Fields maps field keys to human-readable messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// latch guards named actions so a submission already in flight swallows the
// duplicate instead of firing a second request.
type latch struct {
	mu   sync.Mutex
	busy map[string]bool
}

func newLatch() *latch {
	return &latch{busy: make(map[string]bool)}
}

// acquire marks the action busy, reporting false if it already was.
func (l *latch) acquire(action string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy[action] {
		return false
	}
	l.busy[action] = true
	return true
}

func (l *latch) release(action string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.busy, action)
}
