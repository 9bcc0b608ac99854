package store

import (
	"context"
	"errors"
	"time"

	"github.com/opensalary/identity/internal/identity/domain"
)

var (
	ErrNotFound = errors.New("store: not found")

	// Uniqueness violations are distinguished so the service layer can
	// report which field collided. The UNIQUE constraints in the driver
	// are the actual enforcement; any pre-checks above are advisory.
	ErrEmailTaken    = errors.New("store: email already registered")
	ErrUsernameTaken = errors.New("store: username already taken")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Accounts interface {
	// GetByID returns an account by id.
	GetByID(ctx context.Context, id int64) (domain.Account, error)

	// GetByIdentifier returns the account whose username OR email equals
	// the identifier. Matching is case-sensitive.
	GetByIdentifier(ctx context.Context, identifier string) (domain.Account, error)

	// ExistsByEmail reports whether any account holds this email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByUsername reports whether any account holds this username.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Create inserts a new account and returns the assigned id. A UNIQUE
	// violation on email or username surfaces as ErrEmailTaken or
	// ErrUsernameTaken - this check is atomic with the insert itself.
	Create(ctx context.Context, a domain.Account) (int64, error)

	// UpdateLastLogin sets the last_login timestamp and bumps updated_at.
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error

	// SetActive flips the active flag. Deactivation has no HTTP route;
	// this exists for administrative tooling and tests.
	SetActive(ctx context.Context, id int64, active bool) error
}
