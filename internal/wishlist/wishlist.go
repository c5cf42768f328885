// package wishlist owns the user's bookmarked movie collection
package wishlist

import (
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/store"
)

// StorageKey is the store key the collection persists under.
const StorageKey = "wishlist"

// Manager owns the ordered, id-deduplicated collection of bookmarked movies.
//
// The collection has set semantics keyed by movie id while preserving
// insertion order, which is the order the UI renders. Every mutation persists
// the whole collection; readers observe new state before the write lands.
// All access happens on the UI event loop, so there is no locking.
type Manager struct {
	store  store.Store
	movies []models.Movie
}

// NewManager creates a manager seeded from the persisted collection.
//
// A missing or corrupt stored collection starts empty, never errors.
func NewManager(s store.Store) *Manager {
	return &Manager{
		store:  s,
		movies: store.LoadCollection[models.Movie](s, StorageKey),
	}
}

// Add appends movie to the collection unless its id is already present.
// Idempotent: adding a bookmarked movie is a no-op.
func (m *Manager) Add(movie models.Movie) {
	if m.Contains(movie.ID) {
		return
	}
	m.movies = append(m.movies, movie)
	m.persist()
}

// Remove deletes the entry with the given id. No-op when absent.
func (m *Manager) Remove(id int64) {
	for i, movie := range m.movies {
		if movie.ID == id {
			m.movies = append(m.movies[:i], m.movies[i+1:]...)
			m.persist()
			return
		}
	}
}

// Contains reports whether a movie with the given id is bookmarked.
func (m *Manager) Contains(id int64) bool {
	for _, movie := range m.movies {
		if movie.ID == id {
			return true
		}
	}
	return false
}

// All returns the collection in insertion order.
//
// The slice is a copy; callers can't mutate manager state through it.
func (m *Manager) All() []models.Movie {
	out := make([]models.Movie, len(m.movies))
	copy(out, m.movies)
	return out
}

// Len returns the number of bookmarked movies.
func (m *Manager) Len() int {
	return len(m.movies)
}

// Clear empties the collection. Only ever called by an explicit user action.
func (m *Manager) Clear() {
	m.movies = []models.Movie{}
	m.persist()
}

func (m *Manager) persist() {
	store.SaveCollection(m.store, StorageKey, m.movies)
}
