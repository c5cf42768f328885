// package routes implements navigation destinations and the auth route guard
package routes

import (
	"strconv"
	"strings"

	"github.com/desertthunder/mvx/internal/session"
)

// Well-known destinations. Movie detail destinations are parameterized, see
// [DetailPath].
const (
	HomePath     = "/"
	TrendingPath = "/trending"
	PopularPath  = "/popular"
	SearchPath   = "/search"
	LoginPath    = "/login"
	SignupPath   = "/signup"
	WishlistPath = "/wishlist"
	MoviePrefix  = "/movie/"
)

// DetailPath returns the destination for a movie's detail view.
func DetailPath(id int64) string {
	return MoviePrefix + strconv.FormatInt(id, 10)
}

// IsProtected reports whether a destination requires an authenticated
// session: movie detail and the wishlist. Everything else is public.
func IsProtected(path string) bool {
	return path == WishlistPath || strings.HasPrefix(path, MoviePrefix)
}

// DecisionKind enumerates guard outcomes.
type DecisionKind int

const (
	// Allow lets the navigation proceed.
	Allow DecisionKind = iota
	// Defer means the session is still resolving: render nothing rather
	// than flash a login redirect at an already signed-in user.
	Defer
	// RedirectToLogin sends the user to the login view, remembering where
	// they were headed.
	RedirectToLogin
)

func (k DecisionKind) String() string {
	switch k {
	case Allow:
		return "allow"
	case Defer:
		return "defer"
	case RedirectToLogin:
		return "redirect-to-login"
	default:
		return "unknown"
	}
}

// Decision is a guard outcome. From carries the originally requested
// destination when Kind is RedirectToLogin.
type Decision struct {
	Kind DecisionKind
	From string
}

// Guard gates navigation on session state.
//
// Every protected action routes through Check, not just full navigations: a
// signed-out click on a card or hero button redirects to login with the
// intended destination preserved instead of silently failing.
type Guard struct {
	session    *session.Manager
	remembered string
}

// NewGuard creates a guard over the given session manager.
func NewGuard(s *session.Manager) *Guard {
	return &Guard{session: s}
}

// Check decides whether navigation to path may proceed.
//
// Public destinations are always allowed. Protected destinations require a
// resolved-present session; while the session is still loading the decision
// is Defer, and a resolved-absent session yields RedirectToLogin with the
// destination remembered for after sign-in.
func (g *Guard) Check(path string) Decision {
	if !IsProtected(path) {
		return Decision{Kind: Allow}
	}

	switch g.session.State() {
	case session.Loading:
		return Decision{Kind: Defer}
	case session.Present:
		return Decision{Kind: Allow}
	default:
		g.remembered = path
		return Decision{Kind: RedirectToLogin, From: path}
	}
}

// Remembered returns the destination of the most recent login redirect,
// or an empty string.
func (g *Guard) Remembered() string {
	return g.remembered
}

// ConsumeRemembered returns and clears the remembered destination. Called
// after a successful login to return the user where they were headed.
func (g *Guard) ConsumeRemembered() string {
	path := g.remembered
	g.remembered = ""
	return path
}
