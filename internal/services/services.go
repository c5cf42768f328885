// package services defines interfaces for the external HTTP services
//
// TMDB-style movie catalog, identity provider
package services

import (
	"context"

	"github.com/desertthunder/mvx/internal/models"
	"golang.org/x/oauth2"
)

// Catalog defines the read-only interface to the movie metadata service.
type Catalog interface {
	// Trending retrieves this week's trending movies.
	Trending(ctx context.Context) (*models.MoviePage, error)

	// Popular retrieves the current popular movies.
	Popular(ctx context.Context) (*models.MoviePage, error)

	// TopRated retrieves the all-time top rated movies.
	TopRated(ctx context.Context) (*models.MoviePage, error)

	// Search searches movies by title.
	Search(ctx context.Context, query string) (*models.MoviePage, error)

	// Detail retrieves a single movie with videos and recommendations appended.
	// Returns shared.ErrMovieNotFound for ids absent from the catalog.
	Detail(ctx context.Context, id int64) (*models.Movie, error)

	// Name returns the name of the catalog provider (e.g., "TMDB")
	Name() string
}

// Identity defines the interface to the external identity provider.
//
// The provider is opaque: it issues tokens and identities, and the client
// never inspects more than the classified error and the AuthResult.
type Identity interface {
	// Login exchanges email/password credentials for an authenticated session.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Signup creates a new account and returns its authenticated session.
	Signup(ctx context.Context, email, password string) (*AuthResult, error)

	// Logout revokes the given refresh token. Best effort.
	Logout(ctx context.Context, refreshToken string) error

	// Resolve exchanges a previously stored refresh token for a fresh session.
	// Used once at startup to restore the signed-in user.
	Resolve(ctx context.Context, refreshToken string) (*AuthResult, error)

	// Name returns the name of the identity provider
	Name() string
}

// AuthResult couples a resolved identity with its session token.
//
// Token.RefreshToken is what gets persisted locally between runs.
type AuthResult struct {
	Identity models.Identity
	Token    *oauth2.Token
}
