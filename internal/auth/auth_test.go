package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"flightlog/internal/store"
	"flightlog/internal/store/memory"
)

func newTestService() *Service {
	return NewService(memory.New(), time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if err := s.Register(ctx, "alice", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := s.Login(ctx, "alice", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	user, ok := s.UserForToken(token)
	if !ok || user != "alice" {
		t.Fatalf("UserForToken = %q %v", user, ok)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if err := s.Register(ctx, "alice", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := s.Register(ctx, "alice", "other"); !errors.Is(err, store.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterEmptyCredentials(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	for _, c := range []struct{ u, p string }{{"", "pw"}, {"alice", ""}, {"  ", "pw"}} {
		if err := s.Register(ctx, c.u, c.p); !errors.Is(err, ErrEmptyCredentials) {
			t.Fatalf("Register(%q, %q): expected ErrEmptyCredentials, got %v", c.u, c.p, err)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if err := s.Register(ctx, "alice", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := s.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(ctx, "nobody", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if err := s.Register(ctx, "alice", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := s.Login(ctx, "alice", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	s.Logout(token)
	if _, ok := s.UserForToken(token); ok {
		t.Fatalf("token must be invalid after logout")
	}
}
