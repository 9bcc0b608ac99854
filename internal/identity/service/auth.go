package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/opensalary/identity/internal/identity/domain"
	"github.com/opensalary/identity/internal/identity/store"
	"github.com/opensalary/identity/pkg/cryptox"
	"github.com/opensalary/identity/pkg/slogx"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// AuthService composes the password hasher, credential store, and token
// service into the three public operations: Signup, Login, ValidateToken.
// It is the only place low-level failures are translated into the sentinel
// errors the HTTP layer understands.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
}

type SignupParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string // optional
	LastName  string // optional
}

type SignupResult struct {
	UserID   int64
	Username string
	Message  string
}

type LoginResult struct {
	Token    string
	UserID   int64
	Username string
}

// Signup registers a new account. The existence pre-checks give precise
// conflict messages for the common case; the store's UNIQUE constraints are
// what actually guarantee uniqueness against concurrent registrations, so
// constraint violations at insert time are remapped to the same sentinels.
func (s *AuthService) Signup(ctx context.Context, p SignupParams) (SignupResult, error) {
	log := slogx.FromContext(ctx)

	if err := validateSignup(p); err != nil {
		return SignupResult{}, err
	}

	emailTaken, err := s.Store.Accounts().ExistsByEmail(ctx, p.Email)
	if err != nil {
		return SignupResult{}, fmt.Errorf("checking email: %w", err)
	}
	if emailTaken {
		return SignupResult{}, ErrEmailTaken
	}

	usernameTaken, err := s.Store.Accounts().ExistsByUsername(ctx, p.Username)
	if err != nil {
		return SignupResult{}, fmt.Errorf("checking username: %w", err)
	}
	if usernameTaken {
		return SignupResult{}, ErrUsernameTaken
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return SignupResult{}, fmt.Errorf("hashing password: %w", err)
	}

	id, err := s.Store.Accounts().Create(ctx, domain.Account{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Active:       true,
	})
	if err != nil {
		// A concurrent registration can slip past the pre-checks; the
		// constraint violation carries the same meaning.
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			return SignupResult{}, ErrEmailTaken
		case errors.Is(err, store.ErrUsernameTaken):
			return SignupResult{}, ErrUsernameTaken
		}
		return SignupResult{}, fmt.Errorf("creating account: %w", err)
	}

	log.Info("account registered", slog.Int64("user_id", id), slog.String("username", p.Username))

	return SignupResult{
		UserID:   id,
		Username: p.Username,
		Message:  "Signup successful",
	}, nil
}

// Login authenticates by username or email plus password, records the login
// time, and issues a bearer token. Lookup misses and password mismatches
// return the identical ErrInvalidCredentials so the response never reveals
// which part was wrong.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	if err := validateLogin(usernameOrEmail, password); err != nil {
		return LoginResult{}, err
	}

	account, err := s.Store.Accounts().GetByIdentifier(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("looking up account: %w", err)
	}

	if !account.Active {
		log.Info("login rejected for deactivated account", slog.Int64("user_id", account.ID))
		return LoginResult{}, ErrAccountDeactivated
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return LoginResult{}, ErrInvalidCredentials
		}
		// The stored hash itself is unreadable - that is ours to fix,
		// not the caller's.
		return LoginResult{}, fmt.Errorf("verifying password: %w", err)
	}

	now := time.Now().UTC()
	if err := s.Store.Accounts().UpdateLastLogin(ctx, account.ID, now); err != nil {
		return LoginResult{}, fmt.Errorf("recording login: %w", err)
	}

	token, err := s.Tokens.Issue(account.ID, now)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issuing token: %w", err)
	}

	log.Info("login succeeded", slog.Int64("user_id", account.ID))

	return LoginResult{
		Token:    token,
		UserID:   account.ID,
		Username: account.Username,
	}, nil
}

// ValidateToken verifies a previously issued token and returns the account
// id it asserts. All failure causes collapse into ErrInvalidToken.
//
// The account's existence and active flag are intentionally not re-checked:
// validation is stateless, so a deactivated account's tokens stay valid
// until they expire on their own.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (int64, error) {
	log := slogx.FromContext(ctx)

	id, err := s.Tokens.Verify(token, time.Now().UTC())
	if err != nil {
		log.Debug("token rejected", slog.Any("cause", err))
		return 0, ErrInvalidToken
	}
	return id, nil
}

func validateSignup(p SignupParams) error {
	fields := make(map[string]string)

	switch {
	case p.Username == "":
		fields["username"] = "username is required"
	case len(p.Username) < minUsernameLength:
		fields["username"] = fmt.Sprintf("username must be at least %d characters", minUsernameLength)
	}

	switch {
	case p.Email == "":
		fields["email"] = "email is required"
	case !strings.Contains(p.Email, "@"):
		fields["email"] = "email must be a valid email address"
	}

	switch {
	case p.Password == "":
		fields["password"] = "password is required"
	case len(p.Password) < minPasswordLength:
		fields["password"] = fmt.Sprintf("password must be at least %d characters", minPasswordLength)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateLogin(usernameOrEmail, password string) error {
	fields := make(map[string]string)

	if usernameOrEmail == "" {
		fields["usernameOrEmail"] = "usernameOrEmail is required"
	}
	if password == "" {
		fields["password"] = "password is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
