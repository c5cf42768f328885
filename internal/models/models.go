// package models defines the data model for the movie discovery client
package models

import (
	"fmt"
	"time"
)

// Model defines the base interface for locally persisted records.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Movie represents a catalog movie record.
//
// Movies are fetched from the external catalog API and treated as immutable
// values: the client stores and renders whole copies, never edits fields.
// JSON tags follow the TMDB wire format.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	OriginalLanguage string  `json:"original_language"`

	// Detail-only fields, zero-valued on list endpoints.
	Runtime         int        `json:"runtime,omitempty"`
	Genres          []Genre    `json:"genres,omitempty"`
	Budget          int64      `json:"budget,omitempty"`
	Revenue         int64      `json:"revenue,omitempty"`
	Status          string     `json:"status,omitempty"`
	Tagline         string     `json:"tagline,omitempty"`
	Videos          *VideoPage `json:"videos,omitempty"`
	Recommendations *MoviePage `json:"recommendations,omitempty"`
}

// Year returns the four digit release year, or an empty string when the
// release date is missing or malformed.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// Trailer returns the first video of type Trailer or Teaser, or nil.
func (m Movie) Trailer() *Video {
	if m.Videos == nil {
		return nil
	}
	for i, v := range m.Videos.Results {
		if v.Type == "Trailer" || v.Type == "Teaser" {
			return &m.Videos.Results[i]
		}
	}
	return nil
}

// Genre represents a catalog genre tag.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Video represents a related video (trailer, teaser, clip).
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// VideoPage is the envelope the catalog wraps video lists in.
type VideoPage struct {
	Results []Video `json:"results"`
}

// MoviePage is the paginated envelope returned by catalog list endpoints.
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Identity represents an authenticated user as reported by the identity provider.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

// HistoryEntry records a movie detail view in the local database.
type HistoryEntry struct {
	id         string
	sequence   int
	movieID    int64
	title      string
	posterPath string
	viewedAt   time.Time
}

// NewHistoryEntry creates a history entry for the given movie, stamped now.
func NewHistoryEntry(sequence int, movieID int64, title, posterPath string) *HistoryEntry {
	return &HistoryEntry{
		sequence:   sequence,
		movieID:    movieID,
		title:      title,
		posterPath: posterPath,
		viewedAt:   time.Now(),
	}
}

func (h *HistoryEntry) ID() string            { return h.id }
func (h *HistoryEntry) SetID(id string)       { h.id = id }
func (h *HistoryEntry) Sequence() int         { return h.sequence }
func (h *HistoryEntry) MovieID() int64        { return h.movieID }
func (h *HistoryEntry) Title() string         { return h.title }
func (h *HistoryEntry) PosterPath() string    { return h.posterPath }
func (h *HistoryEntry) ViewedAt() time.Time   { return h.viewedAt }
func (h *HistoryEntry) SetViewedAt(t time.Time) { h.viewedAt = t }
func (h *HistoryEntry) CreatedAt() time.Time  { return h.viewedAt }
func (h *HistoryEntry) UpdatedAt() time.Time  { return h.viewedAt }

// Validate checks the entry references a real movie.
func (h *HistoryEntry) Validate() error {
	if h.movieID <= 0 {
		return fmt.Errorf("history entry requires a movie id")
	}
	if h.title == "" {
		return fmt.Errorf("history entry requires a title")
	}
	return nil
}
