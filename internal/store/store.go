// Package store holds the in-memory state of every collection and is the only
// mutation path for it.
package store

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/nzaccagnino/studydesk/internal/domain"
)

type ChangeKind int

const (
	// ChangeMutation is a user edit made through one of the Store operations.
	ChangeMutation ChangeKind = iota
	// ChangeReplace is a wholesale load of a document, not a user edit.
	ChangeReplace
)

type Change struct {
	Kind     ChangeKind
	Revision uint64
}

// DeckIcons is the symbol set new decks pick their icon from.
var DeckIcons = []string{"code", "leaf", "language", "atom", "music", "book", "film", "robot", "graduation-cap"}

const justNow = "Just now"

type Store struct {
	mu        sync.RWMutex
	doc       domain.Document
	revision  uint64
	listeners []func(Change)
	newID     func(prefix string) string
	pickIcon  func() string
}

type Option func(*Store)

// WithIDGenerator replaces the id generator, mainly for tests.
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithIconPicker replaces the random deck icon choice.
func WithIconPicker(pick func() string) Option {
	return func(s *Store) { s.pickIcon = pick }
}

// New creates a store holding a copy of initial.
func New(initial domain.Document, opts ...Option) *Store {
	s := &Store{
		doc:   initial.Clone(),
		newID: domain.NewID,
		pickIcon: func() string {
			return DeckIcons[rand.IntN(len(DeckIcons))]
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to be called after every state transition. Listeners
// run synchronously on the mutating goroutine, outside the store lock.
func (s *Store) Subscribe(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Replace swaps in a whole document, e.g. the one loaded from the remote store.
func (s *Store) Replace(doc domain.Document) {
	s.commit(ChangeReplace, func(d *domain.Document) bool {
		*d = doc.Clone()
		return true
	})
}

// commit runs fn under the write lock. fn reports whether it changed
// anything; only then is the revision bumped and listeners notified.
func (s *Store) commit(kind ChangeKind, fn func(d *domain.Document) bool) {
	s.mu.Lock()
	if !fn(&s.doc) {
		s.mu.Unlock()
		return
	}
	s.revision++
	change := Change{Kind: kind, Revision: s.revision}
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(change)
	}
}

func (s *Store) mutate(fn func(d *domain.Document) bool) {
	s.commit(ChangeMutation, fn)
}

// updateByID applies fn to the first element whose id matches.
func updateByID[T any](items []T, id string, idOf func(T) string, fn func(*T)) bool {
	for i := range items {
		if idOf(items[i]) == id {
			fn(&items[i])
			return true
		}
	}
	return false
}

// deleteByID removes every element whose id matches.
func deleteByID[T any](items *[]T, id string, idOf func(T) string) bool {
	before := len(*items)
	*items = slices.DeleteFunc(*items, func(item T) bool { return idOf(item) == id })
	return len(*items) != before
}

func prepend[T any](items []T, item ...T) []T {
	return append(slices.Clone(item), items...)
}
