package routes

import (
	"context"
	"testing"

	"github.com/desertthunder/mvx/internal/session"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/store"
	tu "github.com/desertthunder/mvx/internal/testing"
)

// newTestSession creates a session manager over an in-memory database,
// optionally resolved to the signed-out state.
func newTestSession(t *testing.T, resolve bool) *session.Manager {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	mgr := session.NewManager(&tu.MockIdentity{}, store.NewKVStore(db, nil), nil)
	if resolve {
		mgr.Resolve(context.Background())
	}
	return mgr
}

func TestIsProtected(t *testing.T) {
	tc := []struct {
		path string
		want bool
	}{
		{path: HomePath, want: false},
		{path: TrendingPath, want: false},
		{path: SearchPath, want: false},
		{path: LoginPath, want: false},
		{path: SignupPath, want: false},
		{path: WishlistPath, want: true},
		{path: DetailPath(42), want: true},
	}

	for _, tt := range tc {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsProtected(tt.path); got != tt.want {
				t.Errorf("IsProtected(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGuardCheck(t *testing.T) {
	t.Run("Public Paths Always Allowed", func(t *testing.T) {
		guard := NewGuard(newTestSession(t, false))

		for _, path := range []string{HomePath, SearchPath, LoginPath, SignupPath} {
			if d := guard.Check(path); d.Kind != Allow {
				t.Errorf("expected Allow for %q while loading, got %s", path, d.Kind)
			}
		}
	})

	t.Run("Loading Defers Protected Paths", func(t *testing.T) {
		guard := NewGuard(newTestSession(t, false))

		if d := guard.Check(WishlistPath); d.Kind != Defer {
			t.Errorf("expected Defer while loading, got %s", d.Kind)
		}
		if guard.Remembered() != "" {
			t.Error("defer should not remember a destination")
		}
	})

	t.Run("Signed Out Redirects With Origin", func(t *testing.T) {
		guard := NewGuard(newTestSession(t, true))

		d := guard.Check(WishlistPath)
		if d.Kind != RedirectToLogin {
			t.Fatalf("expected RedirectToLogin, got %s", d.Kind)
		}
		if d.From != WishlistPath {
			t.Errorf("expected origin %q, got %q", WishlistPath, d.From)
		}
	})

	t.Run("Signed In Allows Protected Paths", func(t *testing.T) {
		mgr := newTestSession(t, true)
		if err := mgr.Login(context.Background(), "user@example.com", "secret"); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		guard := NewGuard(mgr)
		if d := guard.Check(DetailPath(42)); d.Kind != Allow {
			t.Errorf("expected Allow when signed in, got %s", d.Kind)
		}
	})
}

func TestGuardRedirectAndReturn(t *testing.T) {
	mgr := newTestSession(t, true)
	guard := NewGuard(mgr)

	if d := guard.Check(WishlistPath); d.Kind != RedirectToLogin {
		t.Fatalf("expected RedirectToLogin, got %s", d.Kind)
	}

	if err := mgr.Login(context.Background(), "user@example.com", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if got := guard.ConsumeRemembered(); got != WishlistPath {
		t.Errorf("expected remembered %q, got %q", WishlistPath, got)
	}

	// Consumed: a later login with no redirect goes to the default view.
	if got := guard.ConsumeRemembered(); got != "" {
		t.Errorf("expected empty after consume, got %q", got)
	}

	if d := guard.Check(WishlistPath); d.Kind != Allow {
		t.Errorf("expected Allow after login, got %s", d.Kind)
	}
}
