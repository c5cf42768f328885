package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/mvx/internal/models"
)

var (
	_ list.Item = movieItem{}
)

// movieItem wraps [models.Movie] to implement [list.Item]. The section label
// is set on the home view, where three catalog sections share one list.
type movieItem struct {
	movie   models.Movie
	section string
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string {
	desc := fmt.Sprintf("★ %.1f", i.movie.VoteAverage)
	if year := i.movie.Year(); year != "" {
		desc = fmt.Sprintf("%s • %s", year, desc)
	}
	if i.section != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.section)
	}
	return desc
}
