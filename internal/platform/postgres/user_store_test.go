package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newUserStoreMock returns a user store backed by sqlmock, using the
// cheapest bcrypt cost for test speed.
func newUserStoreMock(t *testing.T) (*PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresUserStore(db, bcrypt.MinCost, nil), mock
}

func TestPostgresUserStore_Create(t *testing.T) {
	t.Run("hashes password before insert", func(t *testing.T) {
		s, mock := newUserStoreMock(t)
		user, err := domain.NewUser("user@example.com", "longenoughpassword")
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(user.ID, user.Email, sqlmock.AnyArg(), user.CreatedAt, user.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), user))

		// Plaintext is gone and the stored hash verifies.
		assert.Empty(t, user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(user.HashedPassword), []byte("longenoughpassword")))
	})

	t.Run("duplicate email maps to ErrEmailExists", func(t *testing.T) {
		s, mock := newUserStoreMock(t)
		user, err := domain.NewUser("user@example.com", "longenoughpassword")
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(&pgconn.PgError{
				Code:           pgUniqueViolationCode,
				ConstraintName: userEmailUniqueConstraint,
			})

		assert.ErrorIs(t, s.Create(context.Background(), user), store.ErrEmailExists)
	})
}

func TestPostgresUserStore_GetByEmail(t *testing.T) {
	now := time.Now().UTC()
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		s, mock := newUserStoreMock(t)

		rows := sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at", "updated_at"}).
			AddRow(userID, "user@example.com", "$2a$04$hash", now, now)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
			WithArgs("user@example.com").
			WillReturnRows(rows)

		user, err := s.GetByEmail(context.Background(), "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "$2a$04$hash", user.HashedPassword)
	})

	t.Run("missing maps to ErrUserNotFound", func(t *testing.T) {
		s, mock := newUserStoreMock(t)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at", "updated_at"}))

		user, err := s.GetByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.Nil(t, user)
	})
}
