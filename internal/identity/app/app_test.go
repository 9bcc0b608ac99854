package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_RequiresJWTSecret(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestNew_InitializesAndShutsDown(t *testing.T) {
	dir := t.TempDir()

	cfg := LoadConfig()
	cfg.JWTSecret = "test-secret"
	cfg.DatabaseFile = filepath.Join(dir, "identity.db")
	cfg.PepperFile = filepath.Join(dir, "pepper")
	cfg.LogLevel = "error"

	application, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, application.authService)
	require.NotNil(t, application.tokenService)
	require.NotNil(t, application.server)

	require.NoError(t, application.Shutdown())
}
