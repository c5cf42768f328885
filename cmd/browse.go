package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// BrowseHome fetches the full landing view: three concurrent section fetches
// joined by the home engine, all-or-nothing.
func (r *Runner) BrowseHome(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	prog := make(chan tasks.ProgressUpdate, 8)
	done := make(chan struct{})
	go func() {
		for update := range prog {
			r.logger.Info(update.Message, "step", update.Step, "total", update.Total)
		}
		close(done)
	}()

	data, err := r.engine.Load(ctx, prog)
	close(prog)
	<-done
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(data, cmd.Bool("pretty"))
	}

	sections := []struct {
		title  string
		movies []models.Movie
	}{
		{"Trending This Week", data.Trending},
		{"Popular", data.Popular},
		{"Top Rated", data.TopRated},
	}
	for _, section := range sections {
		r.writePlainHeader(section.title)
		if err := r.writeMovieList(section.movies); err != nil {
			return err
		}
		r.writePlain("\n")
	}
	return nil
}

// BrowseTrending lists this week's trending movies.
func (r *Runner) BrowseTrending(ctx context.Context, cmd *cli.Command) error {
	return r.browseSection(ctx, cmd, "Trending This Week", r.catalog.Trending)
}

// BrowsePopular lists the current popular movies.
func (r *Runner) BrowsePopular(ctx context.Context, cmd *cli.Command) error {
	return r.browseSection(ctx, cmd, "Popular", r.catalog.Popular)
}

// BrowseTopRated lists the all-time top rated movies.
func (r *Runner) BrowseTopRated(ctx context.Context, cmd *cli.Command) error {
	return r.browseSection(ctx, cmd, "Top Rated", r.catalog.TopRated)
}

func (r *Runner) browseSection(ctx context.Context, cmd *cli.Command, title string, fetch func(context.Context) (*models.MoviePage, error)) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	page, err := fetch(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlainHeader(title)
	return r.writeMovieList(page.Results)
}

// BrowseDetail fetches one full movie record and records the view locally.
func (r *Runner) BrowseDetail(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	movie, err := r.catalog.Detail(ctx, id)
	if err != nil {
		return err
	}

	// View history is best effort; a local write failure never hides the movie.
	if repo, repoErr := r.historyRepo(); repoErr == nil {
		if createErr := repo.Create(models.NewHistoryEntry(0, movie.ID, movie.Title, movie.PosterPath)); createErr != nil {
			r.logger.Warnf("failed to record view history: %v", createErr)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(movie, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s (%s)", movie.Title, movie.Year()))
	if movie.Tagline != "" {
		r.writePlain("%s\n\n", movie.Tagline)
	}
	r.writePlain("Rating: ★ %.1f\n", movie.VoteAverage)
	if movie.Runtime > 0 {
		r.writePlain("Runtime: %dm\n", movie.Runtime)
	}
	if len(movie.Genres) > 0 {
		r.writePlain("Genres:")
		for _, g := range movie.Genres {
			r.writePlain(" %s", g.Name)
		}
		r.writePlain("\n")
	}
	r.writePlainln("%s", movie.Overview)

	if trailer := movie.Trailer(); trailer != nil && trailer.Site == "YouTube" {
		r.writePlain("Trailer: https://www.youtube.com/watch?v=%s\n", trailer.Key)
	}
	if movie.Recommendations != nil && len(movie.Recommendations.Results) > 0 {
		r.writePlainln("You might also like:")
		max := len(movie.Recommendations.Results)
		if max > 5 {
			max = 5
		}
		for _, rec := range movie.Recommendations.Results[:max] {
			r.writePlain("  • %s (%s)\n", rec.Title, rec.Year())
		}
	}
	return nil
}

func parseMovieID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: movie id must be a positive integer, got %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}
