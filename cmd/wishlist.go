package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/mvx/internal/formatter"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/urfave/cli/v3"
)

// WishlistList shows the saved movies. Requires a signed-in session.
func (r *Runner) WishlistList(ctx context.Context, cmd *cli.Command) error {
	wl, err := r.wishlistManager(ctx)
	if err != nil {
		return err
	}

	movies := wl.All()
	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	if len(movies) == 0 {
		return r.writePlain("Your wishlist is empty\n")
	}

	r.writePlainHeader(fmt.Sprintf("Wishlist (%d)", len(movies)))
	return r.writeMovieList(movies)
}

// WishlistAdd saves a movie by catalog ID, fetching its record first so the
// stored copy renders without another network call.
func (r *Runner) WishlistAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	wl, err := r.wishlistManager(ctx)
	if err != nil {
		return err
	}

	if wl.Contains(id) {
		return r.writePlain("Already on your wishlist\n")
	}

	movie, err := r.catalog.Detail(ctx, id)
	if err != nil {
		return err
	}

	wl.Add(*movie)
	r.logger.Info("movie saved", "id", movie.ID, "title", movie.Title)
	return r.writePlain("✓ Added '%s' to your wishlist (%d saved)\n", movie.Title, wl.Len())
}

// WishlistRemove removes a movie by catalog ID. Removing an absent movie is
// not an error.
func (r *Runner) WishlistRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	wl, err := r.wishlistManager(ctx)
	if err != nil {
		return err
	}

	if !wl.Contains(id) {
		return r.writePlain("Not on your wishlist\n")
	}

	wl.Remove(id)
	return r.writePlain("✓ Removed (%d saved)\n", wl.Len())
}

// WishlistClear removes every saved movie.
func (r *Runner) WishlistClear(ctx context.Context, cmd *cli.Command) error {
	wl, err := r.wishlistManager(ctx)
	if err != nil {
		return err
	}

	count := wl.Len()
	wl.Clear()
	return r.writePlain("✓ Cleared %d movies\n", count)
}

// WishlistExport writes the wishlist to CSV, Markdown, or plain text.
func (r *Runner) WishlistExport(ctx context.Context, cmd *cli.Command) error {
	wl, err := r.wishlistManager(ctx)
	if err != nil {
		return err
	}

	movies := wl.All()
	output := cmd.String("output")

	switch strings.ToLower(cmd.String("format")) {
	case "csv":
		result, err := formatter.WriteCSVExport(movies, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d movies\n", len(movies))
		r.writePlain("Data: %s\n", result.MoviesFile)
		return r.writePlain("Metadata: %s\n", result.MetadataFile)

	case "markdown", "md":
		var posterURL string
		if len(movies) > 0 && movies[0].PosterPath != "" && r.config.Catalog.ImageBase != "" {
			posterURL = r.config.Catalog.ImageBase + "/w500" + movies[0].PosterPath
		}
		result, err := formatter.WriteMarkdownExport(movies, output, posterURL)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d movies to %s\n", len(movies), result.Directory)
		return nil

	case "text", "txt":
		path, err := formatter.WriteTextExport(movies, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported %d movies to %s\n", len(movies), path)

	default:
		return fmt.Errorf("%w: unknown format %q (want csv, markdown, or text)", shared.ErrInvalidArgument, cmd.String("format"))
	}
}
