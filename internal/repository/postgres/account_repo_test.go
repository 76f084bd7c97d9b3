package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/and161185/studyhub/internal/errs"
	"github.com/and161185/studyhub/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

var accountCols = []string{"id", "email", "username", "pwd_hash", "role", "first_name", "last_name", "permissions", "created_at", "updated_at"}

func TestAccountRepo_Create_OK_and_UniqueViolation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	ctx := context.Background()
	now := time.Now()
	a := &model.Account{
		ID:       uuid.Must(uuid.NewV4()),
		Email:    "alice@x.io",
		Username: "alice",
		PwdHash:  "$argon2id$...",
		Role:     model.RoleUser,
		User:     &model.UserProfile{FirstName: "Alice", LastName: "Smith"},
	}
	const ins = `INSERT INTO accounts \(id, email, username, pwd_hash, role, first_name, last_name, permissions\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8\) RETURNING created_at, updated_at`

	mock.ExpectQuery(ins).
		WithArgs(a.ID, a.Email, a.Username, a.PwdHash, "USER", "Alice", "Smith", []string{}).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	require.NoError(t, r.Create(ctx, a))
	require.Equal(t, now, a.CreatedAt)

	mock.ExpectQuery(ins).
		WithArgs(a.ID, a.Email, a.Username, a.PwdHash, "USER", "Alice", "Smith", []string{}).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})
	require.ErrorIs(t, r.Create(ctx, a), errs.ErrEmailTaken)

	mock.ExpectQuery(ins).
		WithArgs(a.ID, a.Email, a.Username, a.PwdHash, "USER", "Alice", "Smith", []string{}).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_username_key"})
	require.ErrorIs(t, r.Create(ctx, a), errs.ErrUsernameTaken)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_Create_AdminPermissions(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	now := time.Now()
	a := &model.Account{
		ID:       uuid.Must(uuid.NewV4()),
		Email:    "root@x.io",
		Username: "root",
		PwdHash:  "h",
		Role:     model.RoleAdmin,
		Admin:    &model.AdminProfile{Permissions: []string{"decks:read"}},
	}

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs(a.ID, a.Email, a.Username, a.PwdHash, "ADMIN", "", "", []string{"decks:read"}).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	require.NoError(t, r.Create(context.Background(), a))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	now := time.Now()

	mock.ExpectQuery(`SELECT id, email, username, pwd_hash, role, first_name, last_name, permissions, created_at, updated_at FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(accountCols).
			AddRow(id, "a@b.co", "alice", "h", "USER", "Alice", "Smith", []string{}, now, now))
	a, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, a.ID)
	require.Equal(t, model.RoleUser, a.Role)
	require.NotNil(t, a.User)
	require.Nil(t, a.Admin)
	require.Equal(t, "Alice", a.User.FirstName)

	mock.ExpectQuery(`FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByID(ctx, id)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAccountRepo_GetByEmail_Admin(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	id := uuid.Must(uuid.NewV4())
	now := time.Now()

	mock.ExpectQuery(`FROM accounts WHERE email=\$1`).
		WithArgs("root@x.io").
		WillReturnRows(pgxmock.NewRows(accountCols).
			AddRow(id, "root@x.io", "root", "h", "ADMIN", "", "", []string{"all"}, now, now))
	a, err := r.GetByEmail(context.Background(), "root@x.io")
	require.NoError(t, err)
	require.Nil(t, a.User)
	require.Equal(t, []string{"all"}, a.Admin.Permissions)
}

func TestAccountRepo_Taken(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM accounts WHERE email=\$1\), EXISTS \(SELECT 1 FROM accounts WHERE username=\$2\)`).
		WithArgs("a@b.co", "alice").
		WillReturnRows(pgxmock.NewRows([]string{"e", "u"}).AddRow(false, true))
	e, u, err := r.Taken(context.Background(), "a@b.co", "alice")
	require.NoError(t, err)
	require.False(t, e)
	require.True(t, u)
}

func TestAccountRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	id := uuid.Must(uuid.NewV4())

	mock.ExpectExec(`DELETE FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(context.Background(), id))

	mock.ExpectExec(`DELETE FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(context.Background(), id), errs.ErrNotFound)
}

func TestDB_Ping(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()

	mock.ExpectExec(`SELECT 1`).WillReturnResult(pgxmock.NewResult("SELECT", 1))
	require.NoError(t, db.Ping(context.Background()))
}
