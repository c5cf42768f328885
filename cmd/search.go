package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"
)

// Search queries the catalog by title.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	query := strings.TrimSpace(cmd.StringArg("query"))

	r.logger.Infof("searching catalog for %q", query)

	page, err := r.catalog.Search(ctx, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	if len(page.Results) == 0 {
		return r.writePlain("No results for %q\n", query)
	}

	r.writePlainHeader("Results for '" + query + "'")
	return r.writeMovieList(page.Results)
}
