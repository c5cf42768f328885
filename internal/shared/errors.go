package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingAPIKey = fmt.Errorf("missing catalog API key")

	// Authentication errors, classified from identity provider error codes.
	// Raw provider payloads never surface past the services layer.
	ErrAuthFailed         = fmt.Errorf("authentication failed")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrInvalidCredentials = fmt.Errorf("incorrect email or password")
	ErrUserNotFound       = fmt.Errorf("no account found for this email")
	ErrEmailInUse         = fmt.Errorf("an account with this email already exists")
	ErrWeakPassword       = fmt.Errorf("password is too weak")
	ErrAuthInFlight       = fmt.Errorf("another sign-in is already in progress")
	ErrSessionExpired     = fmt.Errorf("session expired, sign in again")

	// Catalog API errors
	ErrCatalogRequest     = fmt.Errorf("catalog request failed")
	ErrMovieNotFound      = fmt.Errorf("movie not found")
	ErrEmptyQuery         = fmt.Errorf("empty search query")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
