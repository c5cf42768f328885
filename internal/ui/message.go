package ui

import (
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/session"
	"github.com/desertthunder/mvx/internal/tasks"
)

// sessionResolvedMsg lands once startup session resolution completes.
type sessionResolvedMsg struct {
	state session.State
}

// homeLoadedMsg carries the joined landing sections, or the whole-load error.
type homeLoadedMsg struct {
	data *tasks.HomeData
	err  error
}

// homeProgressMsg relays one [tasks.ProgressUpdate] during the landing fetch.
type homeProgressMsg tasks.ProgressUpdate

// searchResultsMsg carries one page of catalog search results.
type searchResultsMsg struct {
	query string
	page  *models.MoviePage
	err   error
}

// detailFetchedMsg carries a full movie record. req ties the result to the
// fetch that requested it so a late result for an abandoned view is dropped.
type detailFetchedMsg struct {
	movie *models.Movie
	err   error
	req   int
}

// authCompleteMsg lands after a login or signup attempt settles.
type authCompleteMsg struct {
	err error
}
