// TMDB implementation of [Catalog]
//
// Endpoint shapes based on https://developer.themoviedb.org/reference
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
	"golang.org/x/time/rate"
)

const defaultTMDBBaseURL = "https://api.themoviedb.org/3"

// TMDBService implements [Catalog] against the TMDB REST API.
//
// Requests are rate limited client-side so interactive browsing stays inside
// the provider's request budget.
type TMDBService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewTMDBService creates a TMDB catalog client.
//
// The API key is required; base URL and rate limit fall back to defaults.
func NewTMDBService(baseURL, apiKey string, requestsPerSecond float64, client *http.Client) (*TMDBService, error) {
	if apiKey == "" {
		return nil, shared.ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = defaultTMDBBaseURL
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 4.0
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &TMDBService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}, nil
}

func (t *TMDBService) Name() string {
	return "TMDB"
}

// Trending retrieves this week's trending movies.
func (t *TMDBService) Trending(ctx context.Context) (*models.MoviePage, error) {
	var page models.MoviePage
	if err := t.get(ctx, "/trending/movie/week", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Popular retrieves the current popular movies.
func (t *TMDBService) Popular(ctx context.Context) (*models.MoviePage, error) {
	var page models.MoviePage
	if err := t.get(ctx, "/movie/popular", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// TopRated retrieves the all-time top rated movies.
func (t *TMDBService) TopRated(ctx context.Context) (*models.MoviePage, error) {
	var page models.MoviePage
	if err := t.get(ctx, "/movie/top_rated", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search searches movies by title.
func (t *TMDBService) Search(ctx context.Context, query string) (*models.MoviePage, error) {
	if query == "" {
		return nil, shared.ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("query", query)

	var page models.MoviePage
	if err := t.get(ctx, "/search/movie", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Detail retrieves a single movie with videos and recommendations appended.
func (t *TMDBService) Detail(ctx context.Context, id int64) (*models.Movie, error) {
	params := url.Values{}
	params.Set("append_to_response", "videos,recommendations")

	var movie models.Movie
	if err := t.get(ctx, "/movie/"+strconv.FormatInt(id, 10), params, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// get performs a rate-limited GET against the catalog and decodes the JSON body into result.
func (t *TMDBService) get(ctx context.Context, endpoint string, params url.Values, result any) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", t.apiKey)

	apiURL := t.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrMovieNotFound, endpoint)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", shared.ErrCatalogRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: malformed response: %v", shared.ErrCatalogRequest, err)
	}

	return nil
}
