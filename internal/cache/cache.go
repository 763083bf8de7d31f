// Package cache keeps rendered public pages in memory and drops them by tag
// whenever the content behind them changes.
package cache

import (
	"sync"
	"time"
)

// Tags attached to rendered output. A mutation invalidates every entry that
// carries one of its tags.
const (
	TagSite     = "site"
	TagPages    = "pages"
	TagHomepage = "homepage"
	TagAbout    = "about"
	TagProducts = "products"
	TagBlogs    = "blogs"
)

// PageTag is the tag of a single custom page.
func PageTag(slug string) string {
	return "page:" + slug
}

// BlogTag is the tag of a single blog post.
func BlogTag(slug string) string {
	return "blog:" + slug
}

// Invalidator is signalled after every mutating action.
type Invalidator interface {
	Invalidate(tags ...string)
}

// Nop ignores invalidations.
type Nop struct{}

// Invalidate implements Invalidator.
func (Nop) Invalidate(...string) {}

type entry struct {
	body      []byte
	tags      []string
	expiresAt time.Time
}

// Store is a tag-indexed cache of rendered responses.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	byTag   map[string]map[string]struct{}
	gen     uint64 // bumped by every Invalidate and Purge
	ttl     time.Duration
	now     func() time.Time
}

// New creates a Store. A ttl of zero keeps entries until invalidated.
func New(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		byTag:   make(map[string]map[string]struct{}),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached body for key.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		s.mu.Lock()
		if current, exists := s.entries[key]; exists && current.expiresAt.Equal(e.expiresAt) {
			s.removeLocked(key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.body, true
}

// Generation returns a token for SetIfUnchanged. Read it before loading the
// content that will be cached.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Set stores body under key, indexed by tags.
func (s *Store) Set(key string, body []byte, tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(key, body, tags)
}

// SetIfUnchanged stores body only when nothing was invalidated since gen was
// read, so output built from content that changed meanwhile is never kept.
func (s *Store) SetIfUnchanged(key string, gen uint64, body []byte, tags ...string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.setLocked(key, body, tags)
	return true
}

func (s *Store) setLocked(key string, body []byte, tags []string) {
	s.removeLocked(key)

	e := entry{body: append([]byte(nil), body...), tags: append([]string(nil), tags...)}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[key] = e
	for _, tag := range e.tags {
		keys, ok := s.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			s.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// Invalidate drops every entry carrying any of tags.
func (s *Store) Invalidate(tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	for _, tag := range tags {
		for key := range s.byTag[tag] {
			s.removeLocked(key)
		}
		delete(s.byTag, tag)
	}
}

// Purge drops everything.
func (s *Store) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.entries = make(map[string]entry)
	s.byTag = make(map[string]map[string]struct{})
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) removeLocked(key string) {
	e, ok := s.entries[key]
	if !ok {
		return
	}
	delete(s.entries, key)
	for _, tag := range e.tags {
		if keys, exists := s.byTag[tag]; exists {
			delete(keys, key)
			if len(keys) == 0 {
				delete(s.byTag, tag)
			}
		}
	}
}
