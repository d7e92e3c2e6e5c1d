package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"flightlog/internal/cache"
	"flightlog/internal/store"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyCredentials   = errors.New("username and password cannot be empty")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const maxSessions = 1000

// Service handles account registration, login, and bearer-token sessions.
// Passwords are stored as bcrypt hashes; tokens live in an in-memory cache
// with a sliding TTL.
type Service struct {
	users    store.UserStore
	sessions *cache.TTLCache[string]
}

func NewService(users store.UserStore, sessionTTL time.Duration) *Service {
	return &Service{
		users:    users,
		sessions: cache.NewTTLCache[string](maxSessions, sessionTTL),
	}
}

// Register creates a new account. Returns store.ErrUsernameTaken when the
// username is already in use.
func (s *Service) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrEmptyCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.CreateUser(ctx, username, hash); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Account registered", "user", username)
	return nil
}

// Login verifies credentials and returns a new session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrEmptyCredentials
	}

	hash, err := s.users.GetPasswordHash(ctx, username)
	if errors.Is(err, store.ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		slog.WarnContext(ctx, "Failed login attempt", "user", username)
		return "", ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	s.sessions.Put(token, username)

	slog.InfoContext(ctx, "User logged in", "user", username)
	return token, nil
}

// UserForToken resolves a session token to its user, refreshing the session
// lifetime.
func (s *Service) UserForToken(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	return s.sessions.Get(token)
}

// Logout invalidates a session token.
func (s *Service) Logout(token string) {
	s.sessions.Remove(token)
}

// Sessions exposes the session cache for janitor registration.
func (s *Service) Sessions() *cache.TTLCache[string] {
	return s.sessions
}

func newToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
