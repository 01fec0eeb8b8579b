// Package session keeps one controller per browser session.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/socialchef/cookmate/internal/controller"
)

// Factory builds the controller for a new session.
type Factory func() *controller.Controller

// Store holds controllers in a TTL cache. A session idle for longer than the TTL is
// evicted and its controller closed, cancelling whatever it was still fetching.
type Store struct {
	mu      sync.Mutex
	cache   *cache.Cache
	factory Factory

	// live tracks every controller not yet closed, including expired entries the
	// janitor has not collected.
	liveMu sync.Mutex
	live   map[string]*controller.Controller
}

func NewStore(ttl, cleanupInterval time.Duration, factory Factory) *Store {
	s := &Store{
		cache:   cache.New(ttl, cleanupInterval),
		factory: factory,
		live:    make(map[string]*controller.Controller),
	}
	s.cache.OnEvicted(func(id string, v interface{}) {
		if ctrl, ok := v.(*controller.Controller); ok {
			s.retire(id, ctrl)
			slog.Debug("Session evicted", "session_id", id)
		}
	})
	return s
}

// Get returns the session's controller, creating it on first use. Every call
// restarts the session's TTL.
func (s *Store) Get(id string) *controller.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.cache.Get(id); ok {
		ctrl := v.(*controller.Controller)
		s.cache.SetDefault(id, ctrl)
		return ctrl
	}

	// An expired entry still in the cache is replaced without OnEvicted firing.
	s.liveMu.Lock()
	stale := s.live[id]
	s.liveMu.Unlock()
	if stale != nil {
		s.retire(id, stale)
		slog.Debug("Session expired", "session_id", id)
	}

	ctrl := s.factory()
	s.cache.SetDefault(id, ctrl)
	s.liveMu.Lock()
	s.live[id] = ctrl
	s.liveMu.Unlock()
	return ctrl
}

// retire closes ctrl and forgets it unless a newer controller took its slot.
func (s *Store) retire(id string, ctrl *controller.Controller) {
	s.liveMu.Lock()
	if s.live[id] == ctrl {
		delete(s.live, id)
	}
	s.liveMu.Unlock()
	ctrl.Close()
}

func (s *Store) Len() int {
	return s.cache.ItemCount()
}

// Close evicts every session.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.cache.Items() {
		s.cache.Delete(id)
	}

	s.liveMu.Lock()
	remaining := s.live
	s.live = make(map[string]*controller.Controller)
	s.liveMu.Unlock()
	for _, ctrl := range remaining {
		ctrl.Close()
	}
	s.cache.Flush()
}
