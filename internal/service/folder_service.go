package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/platform/logger"
	"github.com/fiszki-app/fiszki-api/internal/store"
)

// FolderDetails pairs a folder with the number of flashcards it holds.
type FolderDetails struct {
	Folder         *domain.Folder `json:"folder"`
	FlashcardCount int64          `json:"flashcard_count"`
}

// FolderPage is one page of a user's folders.
type FolderPage struct {
	Folders    []*domain.Folder `json:"folders"`
	Pagination PageMeta         `json:"pagination"`
}

// FolderService provides folder-related operations scoped to an owner.
//
// Every lookup is filtered on (folder ID AND owner ID), so a folder owned
// by another user is reported with the same not-found error as a folder
// that does not exist.
type FolderService interface {
	// Create creates a folder for the owner. The name is trimmed before
	// validation. Returns store.ErrFolderNameExists if the owner already
	// has a folder with the same name.
	Create(ctx context.Context, userID uuid.UUID, name string) (*domain.Folder, error)

	// GetDetails retrieves a folder and its flashcard count.
	// Returns store.ErrFolderNotFound when no folder matches both IDs.
	GetDetails(ctx context.Context, folderID, userID uuid.UUID) (*FolderDetails, error)

	// List returns the owner's folders newest-first, paginated. A page past
	// the end yields an empty (non-error) result.
	List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*FolderPage, error)

	// Update renames a folder. Renaming a folder to its current name is a
	// no-op success. Returns store.ErrFolderNameExists when another folder
	// of the same owner already carries the new name.
	Update(ctx context.Context, folderID, userID uuid.UUID, name string) (*domain.Folder, error)

	// Delete removes a folder and, through the schema's cascade, its
	// flashcards. Returns store.ErrFolderNotFound when no folder matches.
	Delete(ctx context.Context, folderID, userID uuid.UUID) error
}

// folderServiceImpl implements the FolderService interface.
type folderServiceImpl struct {
	folderStore store.FolderStore
	logger      *slog.Logger
}

// NewFolderService creates a new FolderService.
// It returns an error if any of the required dependencies are nil.
func NewFolderService(folderStore store.FolderStore, logger *slog.Logger) (FolderService, error) {
	if folderStore == nil {
		return nil, domain.NewValidationError("folderStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &folderServiceImpl{
		folderStore: folderStore,
		logger:      logger.With(slog.String("component", "folder_service")),
	}, nil
}

// Create implements FolderService.Create.
func (s *folderServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (*domain.Folder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	folder, err := domain.NewFolder(userID, name)
	if err != nil {
		return nil, err
	}

	// Pre-check for a friendlier duplicate error. The unique index on
	// (user_id, name) remains authoritative: a concurrent create slipping
	// past this check still surfaces ErrFolderNameExists from the insert.
	exists, err := s.folderStore.NameExistsForUser(ctx, userID, folder.Name, uuid.Nil)
	if err != nil {
		log.Error("failed to check folder name uniqueness",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewFolderServiceError("create", "failed to check name uniqueness", err)
	}
	if exists {
		return nil, store.ErrFolderNameExists
	}

	if err := s.folderStore.Create(ctx, folder); err != nil {
		if store.IsDuplicateError(err) {
			return nil, store.ErrFolderNameExists
		}
		log.Error("failed to create folder",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewFolderServiceError("create", "failed to save folder", err)
	}

	log.Info("folder created",
		slog.String("folder_id", folder.ID.String()),
		slog.String("user_id", userID.String()))
	return folder, nil
}

// GetDetails implements FolderService.GetDetails.
func (s *folderServiceImpl) GetDetails(
	ctx context.Context,
	folderID, userID uuid.UUID,
) (*FolderDetails, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	folder, err := s.folderStore.GetForUser(ctx, folderID, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrFolderNotFound
		}
		log.Error("failed to retrieve folder",
			slog.String("error", err.Error()),
			slog.String("folder_id", folderID.String()))
		return nil, NewFolderServiceError("get_details", "failed to retrieve folder", err)
	}

	count, err := s.folderStore.CountFlashcards(ctx, folderID, userID)
	if err != nil {
		log.Error("failed to count flashcards in folder",
			slog.String("error", err.Error()),
			slog.String("folder_id", folderID.String()))
		return nil, NewFolderServiceError("get_details", "failed to count flashcards", err)
	}

	return &FolderDetails{Folder: folder, FlashcardCount: count}, nil
}

// List implements FolderService.List.
func (s *folderServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	page, pageSize int,
) (*FolderPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	total, err := s.folderStore.CountForUser(ctx, userID)
	if err != nil {
		log.Error("failed to count folders",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewFolderServiceError("list", "failed to count folders", err)
	}

	folders, err := s.folderStore.ListForUser(ctx, userID, offsetFor(page, pageSize), pageSize)
	if err != nil {
		log.Error("failed to list folders",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewFolderServiceError("list", "failed to list folders", err)
	}

	return &FolderPage{
		Folders:    folders,
		Pagination: newPageMeta(page, pageSize, total),
	}, nil
}

// Update implements FolderService.Update.
func (s *folderServiceImpl) Update(
	ctx context.Context,
	folderID, userID uuid.UUID,
	name string,
) (*domain.Folder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	trimmed := strings.TrimSpace(name)
	if err := domain.ValidateFolderName(trimmed); err != nil {
		return nil, err
	}

	folder, err := s.folderStore.GetForUser(ctx, folderID, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrFolderNotFound
		}
		log.Error("failed to retrieve folder for update",
			slog.String("error", err.Error()),
			slog.String("folder_id", folderID.String()))
		return nil, NewFolderServiceError("update", "failed to retrieve folder", err)
	}

	// Renaming to the current name is a no-op success.
	if folder.Name == trimmed {
		return folder, nil
	}

	// The conflict check excludes the folder being renamed, so only the
	// owner's other folders can collide.
	exists, err := s.folderStore.NameExistsForUser(ctx, userID, trimmed, folderID)
	if err != nil {
		log.Error("failed to check folder name uniqueness",
			slog.String("error", err.Error()),
			slog.String("folder_id", folderID.String()))
		return nil, NewFolderServiceError("update", "failed to check name uniqueness", err)
	}
	if exists {
		return nil, store.ErrFolderNameExists
	}

	if err := folder.Rename(trimmed); err != nil {
		return nil, err
	}

	if err := s.folderStore.Update(ctx, folder); err != nil {
		if store.IsDuplicateError(err) {
			return nil, store.ErrFolderNameExists
		}
		if store.IsNotFoundError(err) {
			return nil, store.ErrFolderNotFound
		}
		log.Error("failed to update folder",
			slog.String("error", err.Error()),
			slog.String("folder_id", folderID.String()))
		return nil, NewFolderServiceError("update", "failed to save folder", err)
	}

	log.Info("folder renamed",
		slog.String("folder_id", folder.ID.String()),
		slog.String("user_id", userID.String()))
	return folder, nil
}

// Delete implements FolderService.Delete.
func (s *folderServiceImpl) Delete(ctx context.Context, folderID, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.folderStore.Delete(ctx, folderID, userID); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrFolderNotFound
		}
		log.Error("failed to delete folder",
			slog.String("error", err.Error()),
			slog.String("folder_id", folderID.String()))
		return NewFolderServiceError("delete", "failed to delete folder", err)
	}

	log.Info("folder deleted",
		slog.String("folder_id", folderID.String()),
		slog.String("user_id", userID.String()))
	return nil
}
