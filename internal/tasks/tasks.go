package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/mvx/internal/carousel"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/services"
	"github.com/desertthunder/mvx/internal/shared"
)

// HomeData is everything the landing view renders: the three catalog
// sections plus the hero rotation seeded from the first trending results.
type HomeData struct {
	Trending []models.Movie // This week's trending movies
	Popular  []models.Movie // Current popular movies
	TopRated []models.Movie // All-time top rated movies
	Hero     []models.Movie // First trending movies, at most carousel.MaxItems
}

// HomeEngine assembles the landing view from the catalog service.
type HomeEngine struct {
	catalog services.Catalog
}

// NewHomeEngine creates a new HomeEngine over the given catalog.
func NewHomeEngine(catalog services.Catalog) *HomeEngine {
	return &HomeEngine{catalog: catalog}
}

// sectionResult carries one section fetch back to the joining goroutine.
type sectionResult struct {
	section Section
	page    *models.MoviePage
	err     error
}

// Load fetches the trending, popular, and top rated sections concurrently
// and joins them after all three settle.
//
// The sections fail together: if any fetch fails, the whole load fails and
// nothing partial is returned. The landing view renders one retryable error
// state instead of a mix of sections and holes.
func (e *HomeEngine) Load(ctx context.Context, prog chan<- ProgressUpdate) (*HomeData, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	fetches := []struct {
		section Section
		fn      func(context.Context) (*models.MoviePage, error)
	}{
		{TrendingSection, e.catalog.Trending},
		{PopularSection, e.catalog.Popular},
		{TopRatedSection, e.catalog.TopRated},
	}

	results := make(chan sectionResult, len(fetches))

	var wg sync.WaitGroup
	for i, f := range fetches {
		wg.Add(1)
		sendProgress(prog, fetchSectionUpdate(i+1, len(fetches), f.section))

		go func(section Section, fn func(context.Context) (*models.MoviePage, error)) {
			defer wg.Done()
			page, err := fn(ctx)
			results <- sectionResult{section: section, page: page, err: err}
		}(f.section, f.fn)
	}

	wg.Wait()
	close(results)

	data := &HomeData{}
	for res := range results {
		if res.err != nil {
			return nil, fmt.Errorf("failed to fetch %s section: %w", res.section, res.err)
		}

		switch res.section {
		case TrendingSection:
			data.Trending = res.page.Results
		case PopularSection:
			data.Popular = res.page.Results
		case TopRatedSection:
			data.TopRated = res.page.Results
		}
	}

	data.Hero = data.Trending
	if len(data.Hero) > carousel.MaxItems {
		data.Hero = data.Hero[:carousel.MaxItems]
	}

	sendProgress(prog, doneUpdate(len(fetches)))
	return data, nil
}
