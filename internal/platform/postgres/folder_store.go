package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/platform/logger"
	"github.com/fiszki-app/fiszki-api/internal/store"
	"github.com/google/uuid"
)

// Schema constraint names relied on for error mapping.
const (
	folderNameUniqueConstraint = "folders_user_id_name_key"
	folderUserFKConstraint     = "folders_user_id_fkey"
)

// PostgresFolderStore implements the store.FolderStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFolderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFolderStore creates a new PostgreSQL implementation of the
// FolderStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFolderStore(db store.DBTX, logger *slog.Logger) *PostgresFolderStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFolderStore{
		db:     db,
		logger: logger.With(slog.String("component", "folder_store")),
	}
}

// Ensure PostgresFolderStore implements store.FolderStore interface
var _ store.FolderStore = (*PostgresFolderStore)(nil)

// Create implements store.FolderStore.Create
// It saves a new folder to the database, handling domain validation.
// Returns store.ErrFolderNameExists when the unique index on
// (user_id, name) rejects the insert, which also covers the race between
// two concurrent creates with the same name.
func (s *PostgresFolderStore) Create(ctx context.Context, folder *domain.Folder) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := folder.Validate(); err != nil {
		log.Warn("folder validation failed during create",
			slog.String("error", err.Error()),
			slog.String("folder_id", folder.ID.String()))
		return err
	}

	query := `
		INSERT INTO folders (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		folder.ID,
		folder.UserID,
		folder.Name,
		folder.CreatedAt,
		folder.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, folderNameUniqueConstraint) {
			log.Debug("duplicate folder name during create",
				slog.String("folder_id", folder.ID.String()),
				slog.String("user_id", folder.UserID.String()))
			return store.ErrFolderNameExists
		}
		if isForeignKeyViolation(err, folderUserFKConstraint) {
			log.Warn("foreign key violation during folder creation",
				slog.String("error", err.Error()),
				slog.String("user_id", folder.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, folder.UserID)
		}

		log.Error("failed to create folder",
			slog.String("error", err.Error()),
			slog.String("folder_id", folder.ID.String()),
			slog.String("user_id", folder.UserID.String()))
		return err
	}

	log.Info("folder created successfully",
		slog.String("folder_id", folder.ID.String()),
		slog.String("user_id", folder.UserID.String()))
	return nil
}

// GetForUser implements store.FolderStore.GetForUser
// The (id AND user_id) predicate makes "not found" and "not owned"
// indistinguishable.
func (s *PostgresFolderStore) GetForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.Folder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM folders
		WHERE id = $1 AND user_id = $2
	`

	var folder domain.Folder
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.Name,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("folder not found", slog.String("folder_id", id.String()))
			return nil, store.ErrFolderNotFound
		}
		log.Error("failed to get folder",
			slog.String("error", err.Error()),
			slog.String("folder_id", id.String()))
		return nil, err
	}

	return &folder, nil
}

// ListForUser implements store.FolderStore.ListForUser
// Folders are returned newest first.
func (s *PostgresFolderStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Folder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM folders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error("failed to list folders",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	folders := make([]*domain.Folder, 0)
	for rows.Next() {
		var folder domain.Folder
		if err := rows.Scan(
			&folder.ID,
			&folder.UserID,
			&folder.Name,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		); err != nil {
			log.Error("failed to scan folder row",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, err
		}
		folders = append(folders, &folder)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return folders, nil
}

// CountForUser implements store.FolderStore.CountForUser
func (s *PostgresFolderStore) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM folders WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		log.Error("failed to count folders",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, err
	}

	return count, nil
}

// NameExistsForUser implements store.FolderStore.NameExistsForUser
// excludeID of uuid.Nil excludes nothing (no folder carries the nil UUID).
func (s *PostgresFolderStore) NameExistsForUser(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	excludeID uuid.UUID,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM folders WHERE user_id = $1 AND name = $2 AND id <> $3)`,
		userID,
		name,
		excludeID,
	).Scan(&exists)
	if err != nil {
		log.Error("failed to check folder name existence",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return false, err
	}

	return exists, nil
}

// Update implements store.FolderStore.Update
func (s *PostgresFolderStore) Update(ctx context.Context, folder *domain.Folder) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := folder.Validate(); err != nil {
		log.Warn("folder validation failed during update",
			slog.String("error", err.Error()),
			slog.String("folder_id", folder.ID.String()))
		return err
	}

	query := `
		UPDATE folders
		SET name = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		folder.Name,
		folder.UpdatedAt,
		folder.ID,
		folder.UserID,
	)

	if err != nil {
		if isUniqueViolation(err, folderNameUniqueConstraint) {
			log.Debug("duplicate folder name during update",
				slog.String("folder_id", folder.ID.String()),
				slog.String("user_id", folder.UserID.String()))
			return store.ErrFolderNameExists
		}
		log.Error("failed to update folder",
			slog.String("error", err.Error()),
			slog.String("folder_id", folder.ID.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Debug("folder not found during update",
			slog.String("folder_id", folder.ID.String()))
		return store.ErrFolderNotFound
	}

	log.Info("folder updated successfully",
		slog.String("folder_id", folder.ID.String()),
		slog.String("user_id", folder.UserID.String()))
	return nil
}

// Delete implements store.FolderStore.Delete
// Flashcards in the folder are removed by ON DELETE CASCADE; no explicit
// flashcard deletes are issued here.
func (s *PostgresFolderStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM folders WHERE id = $1 AND user_id = $2`,
		id,
		userID,
	)
	if err != nil {
		log.Error("failed to delete folder",
			slog.String("error", err.Error()),
			slog.String("folder_id", id.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Debug("folder not found during delete",
			slog.String("folder_id", id.String()))
		return store.ErrFolderNotFound
	}

	log.Info("folder deleted successfully",
		slog.String("folder_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// CountFlashcards implements store.FolderStore.CountFlashcards
func (s *PostgresFolderStore) CountFlashcards(
	ctx context.Context,
	folderID, userID uuid.UUID,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM flashcards WHERE folder_id = $1 AND user_id = $2`,
		folderID,
		userID,
	).Scan(&count)
	if err != nil {
		log.Error("failed to count flashcards in folder",
			slog.String("error", err.Error()),
			slog.String("folder_id", folderID.String()))
		return 0, err
	}

	return count, nil
}

// WithTx implements store.FolderStore.WithTx
func (s *PostgresFolderStore) WithTx(tx *sql.Tx) store.FolderStore {
	return &PostgresFolderStore{
		db:     tx,
		logger: s.logger,
	}
}
