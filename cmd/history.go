package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"
)

// historyView is the JSON projection of a history entry.
type historyView struct {
	ID       string    `json:"id"`
	MovieID  int64     `json:"movie_id"`
	Title    string    `json:"title"`
	ViewedAt time.Time `json:"viewed_at"`
}

// HistoryList shows recently viewed movies, most recent first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.historyRepo()
	if err != nil {
		return err
	}

	entries, err := repo.List(map[string]any{"limit": int(cmd.Int("limit"))})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		views := make([]historyView, len(entries))
		for i, entry := range entries {
			views[i] = historyView{
				ID:       entry.ID(),
				MovieID:  entry.MovieID(),
				Title:    entry.Title(),
				ViewedAt: entry.ViewedAt(),
			}
		}
		return r.writeJSON(views, true)
	}

	if len(entries) == 0 {
		return r.writePlain("No viewing history yet\n")
	}

	r.writePlainHeader("Recently Viewed")
	for _, entry := range entries {
		if err := r.writePlain("%s  %s\n", entry.ViewedAt().Format("2006-01-02 15:04"), entry.Title()); err != nil {
			return err
		}
	}
	return nil
}

// HistoryClear deletes all recorded views.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.historyRepo()
	if err != nil {
		return err
	}

	n, err := repo.Clear()
	if err != nil {
		return err
	}
	return r.writePlain("✓ Cleared %d entries\n", n)
}
