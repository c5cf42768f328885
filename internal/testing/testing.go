// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/services"
	"golang.org/x/oauth2"
)

// MockCatalog is a configurable test double for [services.Catalog].
//
// Each endpoint returns the corresponding page/movie unless its error is set.
type MockCatalog struct {
	TrendingPage *models.MoviePage
	PopularPage  *models.MoviePage
	TopRatedPage *models.MoviePage
	SearchPage   *models.MoviePage
	DetailMovie  *models.Movie

	TrendingErr error
	PopularErr  error
	TopRatedErr error
	SearchErr   error
	DetailErr   error

	SearchQueries []string
	DetailIDs     []int64
}

func emptyPage() *models.MoviePage {
	return &models.MoviePage{Results: []models.Movie{}}
}

func (m *MockCatalog) Trending(ctx context.Context) (*models.MoviePage, error) {
	if m.TrendingErr != nil {
		return nil, m.TrendingErr
	}
	if m.TrendingPage == nil {
		return emptyPage(), nil
	}
	return m.TrendingPage, nil
}

func (m *MockCatalog) Popular(ctx context.Context) (*models.MoviePage, error) {
	if m.PopularErr != nil {
		return nil, m.PopularErr
	}
	if m.PopularPage == nil {
		return emptyPage(), nil
	}
	return m.PopularPage, nil
}

func (m *MockCatalog) TopRated(ctx context.Context) (*models.MoviePage, error) {
	if m.TopRatedErr != nil {
		return nil, m.TopRatedErr
	}
	if m.TopRatedPage == nil {
		return emptyPage(), nil
	}
	return m.TopRatedPage, nil
}

func (m *MockCatalog) Search(ctx context.Context, query string) (*models.MoviePage, error) {
	m.SearchQueries = append(m.SearchQueries, query)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if m.SearchPage == nil {
		return emptyPage(), nil
	}
	return m.SearchPage, nil
}

func (m *MockCatalog) Detail(ctx context.Context, id int64) (*models.Movie, error) {
	m.DetailIDs = append(m.DetailIDs, id)
	if m.DetailErr != nil {
		return nil, m.DetailErr
	}
	if m.DetailMovie == nil {
		return &models.Movie{ID: id}, nil
	}
	return m.DetailMovie, nil
}

func (m *MockCatalog) Name() string { return "mock-catalog" }

// MockIdentity is a configurable test double for [services.Identity].
type MockIdentity struct {
	LoginResult   *services.AuthResult
	SignupResult  *services.AuthResult
	ResolveResult *services.AuthResult

	LoginErr   error
	SignupErr  error
	LogoutErr  error
	ResolveErr error

	LoginCalls   int
	SignupCalls  int
	LogoutCalls  int
	ResolveCalls int

	// Block, when non-nil, is received from before Login/Signup return,
	// letting tests hold an authentication in flight. Entered, when non-nil,
	// is signalled once the call is inside the provider.
	Block   chan struct{}
	Entered chan struct{}
}

// NewAuthResult builds a minimal AuthResult for tests.
func NewAuthResult(uid, email, refreshToken string) *services.AuthResult {
	return &services.AuthResult{
		Identity: models.Identity{UID: uid, Email: email},
		Token:    &oauth2.Token{AccessToken: "test-access", RefreshToken: refreshToken, TokenType: "Bearer"},
	}
}

func (m *MockIdentity) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	m.LoginCalls++
	if m.Block != nil {
		if m.Entered != nil {
			m.Entered <- struct{}{}
		}
		<-m.Block
	}
	if m.LoginErr != nil {
		return nil, m.LoginErr
	}
	if m.LoginResult == nil {
		return NewAuthResult("uid-login", email, "refresh-login"), nil
	}
	return m.LoginResult, nil
}

func (m *MockIdentity) Signup(ctx context.Context, email, password string) (*services.AuthResult, error) {
	m.SignupCalls++
	if m.Block != nil {
		if m.Entered != nil {
			m.Entered <- struct{}{}
		}
		<-m.Block
	}
	if m.SignupErr != nil {
		return nil, m.SignupErr
	}
	if m.SignupResult == nil {
		return NewAuthResult("uid-signup", email, "refresh-signup"), nil
	}
	return m.SignupResult, nil
}

func (m *MockIdentity) Logout(ctx context.Context, refreshToken string) error {
	m.LogoutCalls++
	return m.LogoutErr
}

func (m *MockIdentity) Resolve(ctx context.Context, refreshToken string) (*services.AuthResult, error) {
	m.ResolveCalls++
	if m.ResolveErr != nil {
		return nil, m.ResolveErr
	}
	if m.ResolveResult == nil {
		return NewAuthResult("uid-resolved", "", "refresh-rotated"), nil
	}
	return m.ResolveResult, nil
}

func (m *MockIdentity) Name() string { return "mock-identity" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
