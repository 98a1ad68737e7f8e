package auth

import (
	"context"
	"database/sql"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// ActivateUserSQL flips the activation state for the account matching the
// one-time code. The code is left in place, so re-submitting it is an
// idempotent success rather than an error.
var ActivateUserSQL = `UPDATE "users" AS "usr"
SET
	"is_active" = TRUE,
	"updated_at" = CURRENT_TIMESTAMP
WHERE
	"usr"."activation_code" = ?
RETURNING *;`

// Users is the account store contract. Uniqueness of username and email is
// enforced by the store's unique constraints, not by the service, so
// concurrent registrations with the same identifier have exactly one winner.
type Users interface {
	Create(ctx context.Context, record *User) (*User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	ActivateByCode(ctx context.Context, code string) (*User, error)
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository returns a bun-backed Users store.
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

// Create inserts a new account. Defaults are applied first: fresh id, role
// "user", fresh activation code, inactive.
func (a *users) Create(ctx context.Context, record *User) (*User, error) {
	prepareUserDefaults(record)

	if _, err := a.db.NewInsert().Model(record).Returning("*").Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateIdentifier
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create user")
	}

	return record, nil
}

// GetByIdentifier finds an *active* account whose username or email matches
// the identifier. Inactive and missing accounts are both a not-found result;
// this is the login lookup predicate.
func (a *users) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	identifier = strings.TrimSpace(identifier)

	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("(?TableAlias.username = ? OR ?TableAlias.email = ?)", identifier, identifier).
		Where("?TableAlias.is_active = TRUE").
		Limit(1).
		Scan(ctx)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, newRecordNotFound(map[string]any{"identifier": identifier})
		}
		return nil, err
	}

	return record, nil
}

// GetByID fetches an account by primary key regardless of activation state.
func (a *users) GetByID(ctx context.Context, id string) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", strings.TrimSpace(id)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, newRecordNotFound(map[string]any{"id": id})
		}
		return nil, err
	}

	return record, nil
}

// ActivateByCode activates the account holding the given one-time code and
// returns the updated record. An unknown code yields ErrActivationCodeNotFound.
func (a *users) ActivateByCode(ctx context.Context, code string) (*User, error) {
	record := &User{}
	err := a.db.NewRaw(ActivateUserSQL, code).Scan(ctx, record)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrActivationCodeNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not activate user")
	}

	return record, nil
}

// CreateUserTables creates the users table with its unique indexes. Intended
// for embedded setups and tests; production schemas are usually migrated.
func CreateUserTables(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create users table")
	}
	return nil
}

func newRecordNotFound(meta map[string]any) error {
	return goerrors.New("record not found", goerrors.CategoryNotFound).
		WithTextCode("RECORD_NOT_FOUND").
		WithCode(goerrors.CodeNotFound).
		WithMetadata(meta)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "Duplicate entry")
}
