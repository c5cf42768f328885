package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// HistoryRepository implements [models.Repository] for [models.HistoryEntry] persistence.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new [HistoryRepository] with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a new history entry into the database with generated ID and sequence
func (r *HistoryRepository) Create(entry *models.HistoryEntry) error {
	sequence, err := NextSequence(r.db, "history")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	entry.SetID(id)

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO history (id, sequence, movie_id, title, poster_path, viewed_at) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, entry.MovieID(), entry.Title(), entry.PosterPath(), entry.ViewedAt())
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// Get retrieves a history entry by ID
func (r *HistoryRepository) Get(id string) (*models.HistoryEntry, error) {
	query := `
		SELECT id, sequence, movie_id, title, poster_path, viewed_at
		FROM history
		WHERE id = ?
	`

	entry, err := scanHistoryEntry(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("history entry not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query history entry: %w", err)
	}

	return entry, nil
}

// Delete removes a history entry by ID
func (r *HistoryRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("history entry not found: %s", id)
	}

	return nil
}

// List retrieves history entries matching the given criteria, most recent first
func (r *HistoryRepository) List(criteria map[string]any) ([]*models.HistoryEntry, error) {
	query := `
		SELECT id, sequence, movie_id, title, poster_path, viewed_at
		FROM history
		WHERE 1 = 1
	`

	args := []any{}

	if movieID, ok := criteria["movie_id"].(int64); ok && movieID > 0 {
		query += " AND movie_id = ?"
		args = append(args, movieID)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// Clear removes every history entry and returns how many were deleted.
func (r *HistoryRepository) Clear() (int64, error) {
	result, err := r.db.Exec("DELETE FROM history")
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistoryEntry(row rowScanner) (*models.HistoryEntry, error) {
	var (
		entryID    string
		sequence   int
		movieID    int64
		title      string
		posterPath sql.NullString
		viewedAt   time.Time
	)

	if err := row.Scan(&entryID, &sequence, &movieID, &title, &posterPath, &viewedAt); err != nil {
		return nil, err
	}

	entry := models.NewHistoryEntry(sequence, movieID, title, posterPath.String)
	entry.SetID(entryID)
	entry.SetViewedAt(viewedAt)
	return entry, nil
}
