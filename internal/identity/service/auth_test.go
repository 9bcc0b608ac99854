package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opensalary/identity/internal/identity/store/drivers/sqlite"
	"github.com/opensalary/identity/pkg/cryptox"
	"github.com/opensalary/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "identity-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "identity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	secret := []byte("service-test-secret-0123456789abcdef")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(secret)
	require.NoError(t, err)

	return &AuthService{
		Store: st,
		Tokens: &TokenService{
			Signer:   signer,
			Verifier: verifier,
			TTL:      time.Hour,
		},
	}
}

func signupAlice(t *testing.T, svc *AuthService) SignupResult {
	t.Helper()

	res, err := svc.Signup(context.Background(), SignupParams{
		Username: "alice",
		Email:    "a@b.com",
		Password: "Secr3t!",
	})
	require.NoError(t, err)
	return res
}

func TestSignup_Success(t *testing.T) {
	svc := newAuthService(t)

	res := signupAlice(t, svc)
	require.Equal(t, int64(1), res.UserID)
	require.Equal(t, "alice", res.Username)
	require.Equal(t, "Signup successful", res.Message)

	// The stored account carries a hash, never the raw password.
	account, err := svc.Store.Accounts().GetByID(context.Background(), res.UserID)
	require.NoError(t, err)
	require.NotEmpty(t, account.PasswordHash)
	require.NotContains(t, account.PasswordHash, "Secr3t!")
	require.True(t, account.Active)
	require.Nil(t, account.LastLogin)
}

func TestSignup_Validation(t *testing.T) {
	svc := newAuthService(t)

	tests := []struct {
		name   string
		params SignupParams
		fields []string
	}{
		{
			"all missing",
			SignupParams{},
			[]string{"username", "email", "password"},
		},
		{
			"short username",
			SignupParams{Username: "al", Email: "a@b.com", Password: "Secr3t!"},
			[]string{"username"},
		},
		{
			"bad email",
			SignupParams{Username: "alice", Email: "not-an-email", Password: "Secr3t!"},
			[]string{"email"},
		},
		{
			"short password",
			SignupParams{Username: "alice", Email: "a@b.com", Password: "abc"},
			[]string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.params)
			require.Error(t, err)

			ve, ok := AsValidation(err)
			require.True(t, ok, "expected a validation error, got %v", err)
			require.Len(t, ve.Fields, len(tt.fields))
			for _, f := range tt.fields {
				require.Contains(t, ve.Fields, f)
			}
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	signupAlice(t, svc)

	_, err := svc.Signup(context.Background(), SignupParams{
		Username: "different",
		Email:    "a@b.com",
		Password: "Secr3t!",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	svc := newAuthService(t)
	signupAlice(t, svc)

	_, err := svc.Signup(context.Background(), SignupParams{
		Username: "alice",
		Email:    "different@b.com",
		Password: "Secr3t!",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestSignup_EmailTakesPrecedence(t *testing.T) {
	svc := newAuthService(t)
	signupAlice(t, svc)

	// Both collide; the email conflict is reported.
	_, err := svc.Signup(context.Background(), SignupParams{
		Username: "alice",
		Email:    "a@b.com",
		Password: "Secr3t!",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_ByUsernameOrEmail(t *testing.T) {
	svc := newAuthService(t)
	res := signupAlice(t, svc)
	ctx := context.Background()

	for _, identifier := range []string{"alice", "a@b.com"} {
		t.Run(identifier, func(t *testing.T) {
			login, err := svc.Login(ctx, identifier, "Secr3t!")
			require.NoError(t, err)
			require.Equal(t, res.UserID, login.UserID)
			require.Equal(t, "alice", login.Username)
			require.NotEmpty(t, login.Token)

			// The token round-trips through validation.
			id, err := svc.ValidateToken(ctx, login.Token)
			require.NoError(t, err)
			require.Equal(t, res.UserID, id)
		})
	}

	// Login recorded a timestamp.
	account, err := svc.Store.Accounts().GetByID(ctx, res.UserID)
	require.NoError(t, err)
	require.NotNil(t, account.LastLogin)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newAuthService(t)
	signupAlice(t, svc)
	ctx := context.Background()

	// Unknown identifier and wrong password yield the same error so the
	// caller cannot tell which part was wrong.
	_, err := svc.Login(ctx, "nobody", "Secr3t!")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "alice", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), "", "")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	require.Contains(t, ve.Fields, "usernameOrEmail")
	require.Contains(t, ve.Fields, "password")
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	svc := newAuthService(t)
	res := signupAlice(t, svc)
	ctx := context.Background()

	login, err := svc.Login(ctx, "alice", "Secr3t!")
	require.NoError(t, err)

	require.NoError(t, svc.Store.Accounts().SetActive(ctx, res.UserID, false))

	_, err = svc.Login(ctx, "alice", "Secr3t!")
	require.ErrorIs(t, err, ErrAccountDeactivated)

	// Known limitation: validation is stateless, so the token issued
	// before deactivation stays valid until it expires on its own.
	id, err := svc.ValidateToken(ctx, login.Token)
	require.NoError(t, err)
	require.Equal(t, res.UserID, id)
}

func TestValidateToken_Rejections(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "garbage")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		// Issue a token already past its lifetime.
		token, err := svc.Tokens.Issue(1, time.Now().UTC().Add(-2*time.Hour))
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong key", func(t *testing.T) {
		otherSigner, err := jwtx.NewSignerHS256([]byte("some-other-service-secret-value!"))
		require.NoError(t, err)
		other := &TokenService{Signer: otherSigner, TTL: time.Hour}

		token, err := other.Issue(1, time.Now().UTC())
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
