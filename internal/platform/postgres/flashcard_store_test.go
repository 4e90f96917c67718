package postgres

import (
	"context"
	"database/sql/driver"
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
)

// newFlashcardStoreMock returns a flashcard store backed by sqlmock.
func newFlashcardStoreMock(t *testing.T) (*PostgresFlashcardStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresFlashcardStore(db, nil), mock
}

// testFlashcard builds a valid flashcard for the given owner and folder.
func testFlashcard(t *testing.T, userID, folderID uuid.UUID) *domain.Flashcard {
	t.Helper()
	card, err := domain.NewFlashcard(userID, folderID, "Front", "Back", domain.GenerationSourceManual)
	require.NoError(t, err)
	return card
}

func TestPostgresFlashcardStore_Create(t *testing.T) {
	userID := uuid.New()
	folderID := uuid.New()

	t.Run("successful create", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)
		card := testFlashcard(t, userID, folderID)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flashcards")).
			WithArgs(card.ID, card.UserID, card.FolderID, card.Front, card.Back,
				string(card.Source), card.CreatedAt, card.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), card))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("vanished folder maps to ErrFolderNotFound", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)
		card := testFlashcard(t, userID, folderID)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flashcards")).
			WillReturnError(&pgconn.PgError{
				Code:           pgForeignKeyViolationCode,
				ConstraintName: flashcardFolderFKConstraint,
			})

		assert.ErrorIs(t, s.Create(context.Background(), card), store.ErrFolderNotFound)
	})
}

func TestPostgresFlashcardStore_CreateMultiple(t *testing.T) {
	userID := uuid.New()
	folderID := uuid.New()

	t.Run("empty batch is a no-op", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)
		require.NoError(t, s.CreateMultiple(context.Background(), nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("batch inserts with a single statement", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)
		cards := []*domain.Flashcard{
			testFlashcard(t, userID, folderID),
			testFlashcard(t, userID, folderID),
			testFlashcard(t, userID, folderID),
		}

		args := make([]driver.Value, 0, len(cards)*8)
		for _, c := range cards {
			args = append(args,
				c.ID, c.UserID, c.FolderID, c.Front, c.Back,
				string(c.Source), c.CreatedAt, c.UpdatedAt)
		}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flashcards")).
			WithArgs(args...).
			WillReturnResult(sqlmock.NewResult(0, int64(len(cards))))

		require.NoError(t, s.CreateMultiple(context.Background(), cards))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("one invalid card fails the whole batch before any write", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)
		bad := testFlashcard(t, userID, folderID)
		bad.Front = ""
		cards := []*domain.Flashcard{testFlashcard(t, userID, folderID), bad}

		err := s.CreateMultiple(context.Background(), cards)
		assert.ErrorIs(t, err, domain.ErrFlashcardFrontEmpty)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresFlashcardStore_GetForUser(t *testing.T) {
	userID := uuid.New()
	cardID := uuid.New()
	folderID := uuid.New()
	now := time.Now().UTC()

	columns := []string{
		"id", "user_id", "folder_id", "front", "back",
		"generation_source", "created_at", "updated_at",
	}

	t.Run("found", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)

		rows := sqlmock.NewRows(columns).
			AddRow(cardID, userID, folderID, "Front", "Back", "ai", now, now)
		mock.ExpectQuery(regexp.QuoteMeta("FROM flashcards")).
			WithArgs(cardID, userID).
			WillReturnRows(rows)

		card, err := s.GetForUser(context.Background(), cardID, userID)
		require.NoError(t, err)
		assert.Equal(t, cardID, card.ID)
		assert.Equal(t, domain.GenerationSourceAI, card.Source)
	})

	t.Run("not owned maps to ErrFlashcardNotFound", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM flashcards")).
			WithArgs(cardID, userID).
			WillReturnRows(sqlmock.NewRows(columns))

		card, err := s.GetForUser(context.Background(), cardID, userID)
		assert.ErrorIs(t, err, store.ErrFlashcardNotFound)
		assert.Nil(t, card)
	})
}

func TestPostgresFlashcardStore_ListForUser(t *testing.T) {
	userID := uuid.New()
	folderID := uuid.New()
	now := time.Now().UTC()

	columns := []string{
		"id", "user_id", "folder_id", "front", "back",
		"generation_source", "created_at", "updated_at",
	}

	t.Run("folder filter and sort direction", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)

		rows := sqlmock.NewRows(columns).
			AddRow(uuid.New(), userID, folderID, "A", "B", "manual", now, now)
		mock.ExpectQuery("ORDER BY front ASC").
			WithArgs(userID, folderID, 10, 0).
			WillReturnRows(rows)

		cards, err := s.ListForUser(context.Background(), userID, store.ListFlashcardsOptions{
			FolderID: &folderID,
			Limit:    10,
			SortBy:   store.FlashcardSortFront,
			Order:    store.SortAsc,
		})
		require.NoError(t, err)
		assert.Len(t, cards, 1)
	})

	t.Run("unknown sort column falls back to created_at", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)

		mock.ExpectQuery("ORDER BY created_at DESC").
			WithArgs(userID, 20, 0).
			WillReturnRows(sqlmock.NewRows(columns))

		cards, err := s.ListForUser(context.Background(), userID, store.ListFlashcardsOptions{
			Limit:  20,
			SortBy: store.FlashcardSortColumn("password"),
			Order:  store.SortDesc,
		})
		require.NoError(t, err)
		assert.Empty(t, cards)
	})
}

func TestPostgresFlashcardStore_CountForUser(t *testing.T) {
	userID := uuid.New()
	folderID := uuid.New()

	t.Run("all folders", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM flashcards WHERE user_id = $1")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		count, err := s.CountForUser(context.Background(), userID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(12), count)
	})

	t.Run("single folder", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("AND folder_id = $2")).
			WithArgs(userID, folderID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := s.CountForUser(context.Background(), userID, &folderID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestPostgresFlashcardStore_Update(t *testing.T) {
	userID := uuid.New()
	folderID := uuid.New()

	t.Run("successful update", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)
		card := testFlashcard(t, userID, folderID)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE flashcards")).
			WithArgs(card.FolderID, card.Front, card.Back, string(card.Source),
				card.UpdatedAt, card.ID, card.UserID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Update(context.Background(), card))
	})

	t.Run("no matching row maps to ErrFlashcardNotFound", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)
		card := testFlashcard(t, userID, folderID)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE flashcards")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Update(context.Background(), card), store.ErrFlashcardNotFound)
	})
}

func TestPostgresFlashcardStore_Delete(t *testing.T) {
	userID := uuid.New()
	cardID := uuid.New()

	t.Run("successful delete", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM flashcards")).
			WithArgs(cardID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Delete(context.Background(), cardID, userID))
	})

	t.Run("no matching row maps to ErrFlashcardNotFound", func(t *testing.T) {
		s, mock := newFlashcardStoreMock(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM flashcards")).
			WithArgs(cardID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(context.Background(), cardID, userID), store.ErrFlashcardNotFound)
	})
}
