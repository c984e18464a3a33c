package authclient

import (
	"context"
	"sync"
)

// MemoryPlatform is an in-process Platform for tests and non-browser hosts.
// Navigations are recorded rather than performed.
type MemoryPlatform struct {
	mu       sync.Mutex
	hostname string
	referrer string
	history  []string
}

var _ Platform = (*MemoryPlatform)(nil)

// NewMemoryPlatform returns a Platform pinned to the given hostname
func NewMemoryPlatform(hostname string) *MemoryPlatform {
	return &MemoryPlatform{hostname: hostname}
}

// WithReferrer sets the referrer reported by the platform
func (p *MemoryPlatform) WithReferrer(referrer string) *MemoryPlatform {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.referrer = referrer
	return p
}

// Hostname returns the configured hostname
func (p *MemoryPlatform) Hostname() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hostname
}

// Referrer returns the configured referrer URL
func (p *MemoryPlatform) Referrer() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.referrer
}

// Navigate records a full top-level navigation
func (p *MemoryPlatform) Navigate(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = append(p.history, url)
}

// NavigatePath records an in-app path change on the current host
func (p *MemoryPlatform) NavigatePath(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = append(p.history, path)
}

// History returns every navigation performed, oldest first
func (p *MemoryPlatform) History() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.history))
	copy(out, p.history)
	return out
}

// LastNavigation returns the most recent navigation target, if any
func (p *MemoryPlatform) LastNavigation() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.history) == 0 {
		return "", false
	}
	return p.history[len(p.history)-1], true
}

// MemoryStorage is a Storage backed by a map. It is the default backend when
// no persistent storage is wired in.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemoryStorage returns an empty in-memory Storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get returns the stored value for key
func (s *MemoryStorage) Get(_ context.Context, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key
func (s *MemoryStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes key
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
