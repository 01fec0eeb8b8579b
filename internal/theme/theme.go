// Package theme holds the process-wide light/dark preference.
package theme

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts "light" or "dark", ignoring case and surrounding space.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Store persists the preference under a single key.
type Store interface {
	// Load returns the stored value, or "" when nothing is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, mode Mode) error
}

// Setting is the current mode plus the store it is saved to. Safe for concurrent use.
type Setting struct {
	mu    sync.RWMutex
	mode  Mode
	store Store
}

// Load resolves the initial mode: a valid stored value, then the system preference,
// then Light. Store errors are logged and treated as "nothing stored".
func Load(ctx context.Context, store Store, system string) *Setting {
	s := &Setting{mode: Light, store: store}

	stored, err := store.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load theme preference", "error", err)
	}
	if mode, ok := ParseMode(stored); ok {
		s.mode = mode
		return s
	}
	if mode, ok := ParseMode(system); ok {
		s.mode = mode
	}
	return s
}

func (s *Setting) Current() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Toggle flips the mode and saves it. The in-memory mode flips even if saving fails.
func (s *Setting) Toggle(ctx context.Context) (Mode, error) {
	s.mu.Lock()
	s.mode = s.mode.Toggle()
	mode := s.mode
	s.mu.Unlock()

	if err := s.store.Save(ctx, mode); err != nil {
		slog.WarnContext(ctx, "Failed to save theme preference", "mode", mode, "error", err)
		return mode, err
	}
	return mode, nil
}
