package postgres

import (
	"context"

	"github.com/and161185/studyhub/internal/errs"
	"github.com/and161185/studyhub/internal/model"
	"github.com/gofrs/uuid/v5"
)

// AccountRepo implements AccountRepository using PostgreSQL.
type AccountRepo struct{ db *DB }

// NewAccountRepo constructs an account repository.
func NewAccountRepo(db *DB) *AccountRepo { return &AccountRepo{db: db} }

const accountColumns = `id, email, username, pwd_hash, role, first_name, last_name, permissions, created_at, updated_at`

// Create inserts a new account row.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	const q = `
INSERT INTO accounts (id, email, username, pwd_hash, role, first_name, last_name, permissions)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at, updated_at`
	first, last, perms := profileColumns(a)
	err := r.db.Pool.QueryRow(ctx, q, a.ID, a.Email, a.Username, a.PwdHash, string(a.Role), first, last, perms).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	switch uniqueViolation(err) {
	case "":
		return err
	case "accounts_email_key":
		return errs.ErrEmailTaken
	case "accounts_username_key":
		return errs.ErrUsernameTaken
	default:
		return errs.ErrEmailTaken
	}
}

// GetByID selects an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE id=$1`
	return scanAccount(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByEmail selects an account by email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE email=$1`
	return scanAccount(r.db.Pool.QueryRow(ctx, q, email))
}

// Taken checks email and username uniqueness in one round trip.
func (r *AccountRepo) Taken(ctx context.Context, email, username string) (bool, bool, error) {
	const q = `
SELECT EXISTS (SELECT 1 FROM accounts WHERE email=$1),
       EXISTS (SELECT 1 FROM accounts WHERE username=$2)`
	var emailTaken, usernameTaken bool
	if err := r.db.Pool.QueryRow(ctx, q, email, username).Scan(&emailTaken, &usernameTaken); err != nil {
		return false, false, err
	}
	return emailTaken, usernameTaken, nil
}

// Delete removes the account; decks, cards and transcripts go with it via ON DELETE CASCADE.
func (r *AccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM accounts WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func profileColumns(a *model.Account) (first, last string, perms []string) {
	perms = []string{}
	if a.User != nil {
		first, last = a.User.FirstName, a.User.LastName
	}
	if a.Admin != nil && a.Admin.Permissions != nil {
		perms = a.Admin.Permissions
	}
	return first, last, perms
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var (
		a           model.Account
		role        string
		first, last string
		perms       []string
	)
	if err := row.Scan(&a.ID, &a.Email, &a.Username, &a.PwdHash, &role, &first, &last, &perms, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	a.Role = model.Role(role)
	switch a.Role {
	case model.RoleAdmin:
		a.Admin = &model.AdminProfile{Permissions: perms}
	default:
		a.User = &model.UserProfile{FirstName: first, LastName: last}
	}
	return &a, nil
}
