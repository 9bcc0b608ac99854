package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/opensalary/identity/internal/identity/domain"
	"github.com/opensalary/identity/internal/identity/store"
)

const accountColumns = `id, username, email, password_hash, first_name, last_name, active, last_login, created_at, updated_at`

type accountsRepo struct {
	db *sql.DB
}

func (r *accountsRepo) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)

	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetByIdentifier(ctx context.Context, identifier string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = ? OR email = ?`,
		identifier, identifier)

	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM accounts WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *accountsRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM accounts WHERE username = ?`, username).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *accountsRepo) Create(ctx context.Context, a domain.Account) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (username, email, password_hash, first_name, last_name, active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.Username,
		a.Email,
		a.PasswordHash,
		mapStringNull(a.FirstName),
		mapStringNull(a.LastName),
		a.Active,
	)
	if err != nil {
		return 0, mapUniqueViolation(err)
	}

	return res.LastInsertId()
}

func (r *accountsRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET last_login = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		at.UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountsRepo) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		active, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// mapUniqueViolation translates sqlite UNIQUE constraint failures into the
// store's taxonomy. The constraint is the source of truth for uniqueness;
// any existence pre-check in the service layer only improves error messages
// for the common case.
func mapUniqueViolation(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return err
	}

	switch {
	case strings.Contains(msg, "accounts.email"):
		return store.ErrEmailTaken
	case strings.Contains(msg, "accounts.username"):
		return store.ErrUsernameTaken
	default:
		return err
	}
}
