package session

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/store"
	tu "github.com/desertthunder/mvx/internal/testing"
)

// setupTestStore creates a kv store over an in-memory database.
func setupTestStore(t *testing.T) *store.KVStore {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return store.NewKVStore(db, nil)
}

func TestManagerResolve(t *testing.T) {
	t.Run("Starts Loading", func(t *testing.T) {
		mgr := NewManager(&tu.MockIdentity{}, setupTestStore(t), nil)
		if mgr.State() != Loading {
			t.Errorf("expected Loading, got %s", mgr.State())
		}
	})

	t.Run("No Stored Token Resolves Absent", func(t *testing.T) {
		identity := &tu.MockIdentity{}
		mgr := NewManager(identity, setupTestStore(t), nil)

		if state := mgr.Resolve(context.Background()); state != Absent {
			t.Errorf("expected Absent, got %s", state)
		}
		if identity.ResolveCalls != 0 {
			t.Error("provider should not be called without a stored token")
		}
	})

	t.Run("Stored Token Resolves Present", func(t *testing.T) {
		s := setupTestStore(t)
		s.Save(StorageKey, []byte(`{"refresh_token":"stored","identity":{"uid":"old-uid","email":"user@example.com"}}`))

		identity := &tu.MockIdentity{}
		mgr := NewManager(identity, s, nil)

		if state := mgr.Resolve(context.Background()); state != Present {
			t.Fatalf("expected Present, got %s", state)
		}

		user := mgr.User()
		if user == nil || user.Email != "user@example.com" {
			t.Errorf("expected restored profile, got %+v", user)
		}
		if user.UID != "uid-resolved" {
			t.Errorf("expected resolved uid, got %s", user.UID)
		}
	})

	t.Run("Invalid Stored Token Resolves Absent", func(t *testing.T) {
		s := setupTestStore(t)
		s.Save(StorageKey, []byte(`{"refresh_token":"stale","identity":{}}`))

		identity := &tu.MockIdentity{ResolveErr: shared.ErrSessionExpired}
		mgr := NewManager(identity, s, nil)

		if state := mgr.Resolve(context.Background()); state != Absent {
			t.Errorf("expected Absent, got %s", state)
		}
		if s.Load(StorageKey) != nil {
			t.Error("stale session record should be deleted")
		}
	})

	t.Run("Resolves Exactly Once", func(t *testing.T) {
		s := setupTestStore(t)
		s.Save(StorageKey, []byte(`{"refresh_token":"stored","identity":{}}`))

		identity := &tu.MockIdentity{}
		mgr := NewManager(identity, s, nil)

		mgr.Resolve(context.Background())
		mgr.Resolve(context.Background())

		if identity.ResolveCalls != 1 {
			t.Errorf("expected 1 resolve call, got %d", identity.ResolveCalls)
		}
	})

	t.Run("Corrupt Session Record Resolves Absent", func(t *testing.T) {
		s := setupTestStore(t)
		s.Save(StorageKey, []byte(`{broken`))

		mgr := NewManager(&tu.MockIdentity{}, s, nil)
		if state := mgr.Resolve(context.Background()); state != Absent {
			t.Errorf("expected Absent, got %s", state)
		}
	})
}

func TestManagerLogin(t *testing.T) {
	t.Run("Success Transitions To Present", func(t *testing.T) {
		s := setupTestStore(t)
		mgr := NewManager(&tu.MockIdentity{}, s, nil)
		mgr.Resolve(context.Background())

		if err := mgr.Login(context.Background(), "user@example.com", "secret"); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		if mgr.State() != Present {
			t.Errorf("expected Present, got %s", mgr.State())
		}
		if s.Load(StorageKey) == nil {
			t.Error("session record should persist after login")
		}
	})

	t.Run("Failure Retains Prior State", func(t *testing.T) {
		identity := &tu.MockIdentity{LoginErr: shared.ErrInvalidCredentials}
		mgr := NewManager(identity, setupTestStore(t), nil)
		mgr.Resolve(context.Background())

		err := mgr.Login(context.Background(), "user@example.com", "wrong")
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if mgr.State() != Absent {
			t.Errorf("state should be unchanged, got %s", mgr.State())
		}
	})

	t.Run("Concurrent Login Rejected", func(t *testing.T) {
		identity := &tu.MockIdentity{
			Block:   make(chan struct{}),
			Entered: make(chan struct{}),
		}
		mgr := NewManager(identity, setupTestStore(t), nil)
		mgr.Resolve(context.Background())

		firstDone := make(chan error, 1)
		go func() {
			firstDone <- mgr.Login(context.Background(), "user@example.com", "secret")
		}()

		// Wait until the first call is inside the provider.
		<-identity.Entered

		if err := mgr.Signup(context.Background(), "other@example.com", "secret"); !errors.Is(err, shared.ErrAuthInFlight) {
			t.Errorf("expected ErrAuthInFlight, got %v", err)
		}

		close(identity.Block)
		if err := <-firstDone; err != nil {
			t.Errorf("first login should succeed: %v", err)
		}
	})
}

func TestManagerAdopt(t *testing.T) {
	t.Run("Success Transitions To Present", func(t *testing.T) {
		s := setupTestStore(t)
		identity := &tu.MockIdentity{
			ResolveResult: tu.NewAuthResult("uid-browser", "user@example.com", "refresh-rotated"),
		}
		mgr := NewManager(identity, s, nil)
		mgr.Resolve(context.Background())

		if err := mgr.Adopt(context.Background(), "refresh-from-callback"); err != nil {
			t.Fatalf("adopt failed: %v", err)
		}

		if mgr.State() != Present {
			t.Errorf("expected Present, got %s", mgr.State())
		}
		if s.Load(StorageKey) == nil {
			t.Error("session record should persist after adopt")
		}
	})

	t.Run("Failure Retains Prior State", func(t *testing.T) {
		identity := &tu.MockIdentity{ResolveErr: shared.ErrSessionExpired}
		mgr := NewManager(identity, setupTestStore(t), nil)
		mgr.Resolve(context.Background())

		if err := mgr.Adopt(context.Background(), "stale"); !errors.Is(err, shared.ErrSessionExpired) {
			t.Errorf("expected ErrSessionExpired, got %v", err)
		}
		if mgr.State() != Absent {
			t.Errorf("state should be unchanged, got %s", mgr.State())
		}
	})
}

func TestManagerLogout(t *testing.T) {
	t.Run("Success Transitions To Absent", func(t *testing.T) {
		s := setupTestStore(t)
		mgr := NewManager(&tu.MockIdentity{}, s, nil)
		mgr.Resolve(context.Background())
		mgr.Login(context.Background(), "user@example.com", "secret")

		if err := mgr.Logout(context.Background()); err != nil {
			t.Fatalf("logout failed: %v", err)
		}

		if mgr.State() != Absent {
			t.Errorf("expected Absent, got %s", mgr.State())
		}
		if mgr.User() != nil {
			t.Error("user should be nil after logout")
		}
		if s.Load(StorageKey) != nil {
			t.Error("session record should be deleted")
		}
	})

	t.Run("Failure Retains Prior State", func(t *testing.T) {
		identity := &tu.MockIdentity{LogoutErr: shared.ErrServiceUnavailable}
		mgr := NewManager(identity, setupTestStore(t), nil)
		mgr.Resolve(context.Background())
		mgr.Login(context.Background(), "user@example.com", "secret")

		if err := mgr.Logout(context.Background()); err == nil {
			t.Fatal("expected logout error")
		}
		if mgr.State() != Present {
			t.Errorf("state should be retained, got %s", mgr.State())
		}
	})
}

func TestManagerSubscribe(t *testing.T) {
	mgr := NewManager(&tu.MockIdentity{}, setupTestStore(t), nil)

	var states []State
	mgr.Subscribe(func(s State, _ *models.Identity) {
		states = append(states, s)
	})

	mgr.Resolve(context.Background())
	mgr.Login(context.Background(), "user@example.com", "secret")
	mgr.Logout(context.Background())

	want := []State{Absent, Present, Absent}
	if len(states) != len(want) {
		t.Fatalf("expected %d notifications, got %d", len(want), len(states))
	}
	for i, s := range want {
		if states[i] != s {
			t.Errorf("notification %d: expected %s, got %s", i, s, states[i])
		}
	}
}
