package service

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"docvault/internal/model"
)

const bcryptCost = 12

// UserStore is the persistence contract the auth service needs. The pgx
// implementation lives in internal/repository.
type UserStore interface {
	Create(ctx context.Context, username string, passwordHash string, hasAccess bool, isAdmin bool) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	SetAccess(ctx context.Context, id int64, hasAccess bool) (model.User, error)
	UpsertAdmin(ctx context.Context, username string, passwordHash string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type AuthService struct {
	users  UserStore
	tokens *TokenService
}

func NewAuthService(users UserStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with access withheld until an administrator
// grants it.
func (s *AuthService) Register(ctx context.Context, username string, password string) (model.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.Account{}, model.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.Account{}, err
	}

	user, err := s.users.Create(ctx, username, string(hash), false, false)
	if err != nil {
		return model.Account{}, err
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user.Account(), nil
}

// Login verifies credentials and the access gate, then issues a session
// token. An unknown username and a wrong password are indistinguishable
// to the caller.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.LoginResult{}, model.ErrInvalidInput
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return model.LoginResult{}, model.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.LoginResult{}, model.ErrInvalidCredentials
	}

	if !user.HasAccess {
		return model.LoginResult{}, model.ErrAccessDenied
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return model.LoginResult{}, err
	}

	return model.LoginResult{Token: token, ExpiresAt: expiresAt, User: user.Account()}, nil
}

// SetAccess toggles a user's access gate. Revocation takes effect on the
// next login; tokens already issued remain valid until they expire.
func (s *AuthService) SetAccess(ctx context.Context, userID int64, hasAccess bool) (model.Account, error) {
	user, err := s.users.SetAccess(ctx, userID, hasAccess)
	if err != nil {
		return model.Account{}, err
	}

	slog.Info("user access updated", "user_id", user.ID, "has_access", user.HasAccess)
	return user.Account(), nil
}

// EnsureSeedAdmin upserts the distinguished administrator record at
// process start. Safe to run on every boot.
func (s *AuthService) EnsureSeedAdmin(ctx context.Context, username string, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return model.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	admin, err := s.users.UpsertAdmin(ctx, username, string(hash))
	if err != nil {
		return err
	}

	slog.Info("seed admin ensured", "user_id", admin.ID, "username", admin.Username)
	return nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID int64) (model.Account, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.Account{}, err
	}
	return user.Account(), nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.Account, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]model.Account, 0, len(users))
	for _, u := range users {
		accounts = append(accounts, u.Account())
	}
	return accounts, nil
}
