package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/platform/logger"
	"github.com/fiszki-app/fiszki-api/internal/store"
	"github.com/google/uuid"
)

// Schema constraint names relied on for error mapping.
const (
	flashcardFolderFKConstraint = "flashcards_folder_id_fkey"
	flashcardUserFKConstraint   = "flashcards_user_id_fkey"
)

// flashcardSortColumns whitelists the ORDER BY targets. Caller input never
// reaches the SQL text directly.
var flashcardSortColumns = map[store.FlashcardSortColumn]string{
	store.FlashcardSortCreatedAt: "created_at",
	store.FlashcardSortUpdatedAt: "updated_at",
	store.FlashcardSortFront:     "front",
}

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the
// FlashcardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// Create implements store.FlashcardStore.Create
func (s *PostgresFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during create",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return err
	}

	query := `
		INSERT INTO flashcards (id, user_id, folder_id, front, back, generation_source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.UserID,
		card.FolderID,
		card.Front,
		card.Back,
		card.Source,
		card.CreatedAt,
		card.UpdatedAt,
	)

	if err != nil {
		if mapped := s.mapWriteError(err, card, log); mapped != nil {
			return mapped
		}
		log.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return err
	}

	log.Info("flashcard created successfully",
		slog.String("flashcard_id", card.ID.String()),
		slog.String("folder_id", card.FolderID.String()),
		slog.String("user_id", card.UserID.String()))
	return nil
}

// CreateMultiple implements store.FlashcardStore.CreateMultiple
// All cards are inserted with a single multi-row INSERT statement, so the
// batch persists entirely or not at all even outside an explicit transaction.
func (s *PostgresFlashcardStore) CreateMultiple(
	ctx context.Context,
	cards []*domain.Flashcard,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return nil
	}

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("flashcard validation failed during bulk create",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", card.ID.String()))
			return err
		}
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO flashcards (id, user_id, folder_id, front, back, generation_source, created_at, updated_at)
		VALUES `)

	const fieldsPerCard = 8
	args := make([]any, 0, len(cards)*fieldsPerCard)
	for i, card := range cards {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * fieldsPerCard
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8)
		args = append(args,
			card.ID,
			card.UserID,
			card.FolderID,
			card.Front,
			card.Back,
			card.Source,
			card.CreatedAt,
			card.UpdatedAt,
		)
	}

	_, err := s.db.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		if mapped := s.mapWriteError(err, cards[0], log); mapped != nil {
			return mapped
		}
		log.Error("failed to create flashcards in bulk",
			slog.String("error", err.Error()),
			slog.Int("card_count", len(cards)))
		return err
	}

	log.Info("flashcards created successfully",
		slog.Int("card_count", len(cards)),
		slog.String("folder_id", cards[0].FolderID.String()),
		slog.String("user_id", cards[0].UserID.String()))
	return nil
}

// mapWriteError converts constraint violations on insert/update into store
// sentinels. Returns nil when the error is not a recognized constraint.
func (s *PostgresFlashcardStore) mapWriteError(
	err error,
	card *domain.Flashcard,
	log *slog.Logger,
) error {
	if isForeignKeyViolation(err, flashcardFolderFKConstraint) {
		// The folder was verified before the write; reaching this path means
		// it was deleted concurrently.
		log.Debug("folder vanished before flashcard write",
			slog.String("folder_id", card.FolderID.String()))
		return store.ErrFolderNotFound
	}
	if isForeignKeyViolation(err, flashcardUserFKConstraint) {
		log.Warn("foreign key violation on user during flashcard write",
			slog.String("user_id", card.UserID.String()))
		return fmt.Errorf("%w: user with ID %s not found",
			store.ErrInvalidEntity, card.UserID)
	}
	return nil
}

// GetForUser implements store.FlashcardStore.GetForUser
func (s *PostgresFlashcardStore) GetForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, folder_id, front, back, generation_source, created_at, updated_at
		FROM flashcards
		WHERE id = $1 AND user_id = $2
	`

	card, err := scanFlashcard(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard not found", slog.String("flashcard_id", id.String()))
			return nil, store.ErrFlashcardNotFound
		}
		log.Error("failed to get flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return nil, err
	}

	return card, nil
}

// ListForUser implements store.FlashcardStore.ListForUser
func (s *PostgresFlashcardStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	opts store.ListFlashcardsOptions,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	column, ok := flashcardSortColumns[opts.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if opts.Order == store.SortAsc {
		direction = "ASC"
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT id, user_id, folder_id, front, back, generation_source, created_at, updated_at
		FROM flashcards
		WHERE user_id = $1`)

	args := []any{userID}
	if opts.FolderID != nil {
		sb.WriteString(" AND folder_id = $2")
		args = append(args, *opts.FolderID)
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s LIMIT $%d OFFSET $%d",
		column, direction, len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		log.Error("failed to list flashcards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cards := make([]*domain.Flashcard, 0)
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			log.Error("failed to scan flashcard row",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, err
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// CountForUser implements store.FlashcardStore.CountForUser
func (s *PostgresFlashcardStore) CountForUser(
	ctx context.Context,
	userID uuid.UUID,
	folderID *uuid.UUID,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COUNT(*) FROM flashcards WHERE user_id = $1`
	args := []any{userID}
	if folderID != nil {
		query += ` AND folder_id = $2`
		args = append(args, *folderID)
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count flashcards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, err
	}

	return count, nil
}

// Update implements store.FlashcardStore.Update
func (s *PostgresFlashcardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during update",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return err
	}

	query := `
		UPDATE flashcards
		SET folder_id = $1, front = $2, back = $3, generation_source = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		card.FolderID,
		card.Front,
		card.Back,
		card.Source,
		card.UpdatedAt,
		card.ID,
		card.UserID,
	)

	if err != nil {
		if mapped := s.mapWriteError(err, card, log); mapped != nil {
			return mapped
		}
		log.Error("failed to update flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Debug("flashcard not found during update",
			slog.String("flashcard_id", card.ID.String()))
		return store.ErrFlashcardNotFound
	}

	log.Info("flashcard updated successfully",
		slog.String("flashcard_id", card.ID.String()),
		slog.String("user_id", card.UserID.String()))
	return nil
}

// Delete implements store.FlashcardStore.Delete
func (s *PostgresFlashcardStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM flashcards WHERE id = $1 AND user_id = $2`,
		id,
		userID,
	)
	if err != nil {
		log.Error("failed to delete flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Debug("flashcard not found during delete",
			slog.String("flashcard_id", id.String()))
		return store.ErrFlashcardNotFound
	}

	log.Info("flashcard deleted successfully",
		slog.String("flashcard_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// WithTx implements store.FlashcardStore.WithTx
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanFlashcard.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanFlashcard maps one row onto a domain.Flashcard.
func scanFlashcard(row rowScanner) (*domain.Flashcard, error) {
	var card domain.Flashcard
	var source string

	if err := row.Scan(
		&card.ID,
		&card.UserID,
		&card.FolderID,
		&card.Front,
		&card.Back,
		&source,
		&card.CreatedAt,
		&card.UpdatedAt,
	); err != nil {
		return nil, err
	}

	card.Source = domain.GenerationSource(source)
	return &card, nil
}
