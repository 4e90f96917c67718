package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/generation"
	"github.com/fiszki-app/fiszki-api/internal/platform/logger"
	"github.com/fiszki-app/fiszki-api/internal/store"
)

// MaxBulkSaveSize caps a single bulk save. The handler enforces the same
// bound on the request body; the service re-checks it below the HTTP layer.
const MaxBulkSaveSize = 50

// BulkSaveItem is one accepted proposal in a bulk save request.
type BulkSaveItem struct {
	Front string
	Back  string
}

// UpdateFlashcardInput carries the mutable fields of a flashcard update.
// A nil FolderID leaves the card in its current folder; a nil Source keeps
// the current generation source.
type UpdateFlashcardInput struct {
	Front    string
	Back     string
	FolderID *uuid.UUID
	Source   *domain.GenerationSource
}

// ListFlashcardsInput carries filtering, pagination, and ordering for a
// flashcard listing. Zero-valued SortBy/Order fall back to created_at desc.
type ListFlashcardsInput struct {
	FolderID *uuid.UUID
	Page     int
	PageSize int
	SortBy   store.FlashcardSortColumn
	Order    store.SortOrder
}

// FlashcardPage is one page of a user's flashcards.
type FlashcardPage struct {
	Flashcards []*domain.Flashcard `json:"flashcards"`
	Pagination PageMeta            `json:"pagination"`
}

// FlashcardService provides flashcard-related operations scoped to an owner,
// plus proposal generation through the Generator seam.
type FlashcardService interface {
	// Generate produces flashcard proposals from pasted text. Proposals are
	// transient: nothing persists until the client bulk-saves the accepted
	// ones. Input errors surface as generation.ErrTextEmpty/ErrTextTooLong.
	Generate(ctx context.Context, text string) (*generation.Result, error)

	// Create saves a single flashcard after verifying the target folder is
	// owned by the user. Returns store.ErrFolderNotFound otherwise.
	Create(
		ctx context.Context,
		userID, folderID uuid.UUID,
		front, back string,
		source domain.GenerationSource,
	) (*domain.Flashcard, error)

	// BulkSave persists 1 to MaxBulkSaveSize accepted proposals into one
	// owned folder atomically. The generation source of every saved card is
	// forced to "ai". Returns the inserted flashcards.
	BulkSave(
		ctx context.Context,
		userID, folderID uuid.UUID,
		items []BulkSaveItem,
	) ([]*domain.Flashcard, error)

	// List returns the owner's flashcards per input, paginated. When
	// FolderID is set the folder's ownership is verified first: filtering
	// by a nonexistent or foreign folder returns ErrFolderNotFound rather
	// than an empty page, matching every other folder-scoped operation.
	List(ctx context.Context, userID uuid.UUID, input ListFlashcardsInput) (*FlashcardPage, error)

	// Get retrieves a flashcard scoped to its owner.
	// Returns store.ErrFlashcardNotFound when no card matches both IDs.
	Get(ctx context.Context, cardID, userID uuid.UUID) (*domain.Flashcard, error)

	// Update rewrites a flashcard's content and optionally moves it to
	// another owned folder. Returns store.ErrFlashcardNotFound for an
	// unknown card and store.ErrFolderNotFound for an unowned target folder.
	Update(
		ctx context.Context,
		cardID, userID uuid.UUID,
		input UpdateFlashcardInput,
	) (*domain.Flashcard, error)

	// Delete removes a flashcard scoped to its owner.
	Delete(ctx context.Context, cardID, userID uuid.UUID) error
}

// flashcardServiceImpl implements the FlashcardService interface.
type flashcardServiceImpl struct {
	db             *sql.DB
	flashcardStore store.FlashcardStore
	folderStore    store.FolderStore
	generator      generation.Generator
	logger         *slog.Logger
}

// NewFlashcardService creates a new FlashcardService.
// The db handle is used to open transactions for bulk saves; it must be the
// same handle the stores were built on. It returns an error if any of the
// required dependencies are nil.
func NewFlashcardService(
	db *sql.DB,
	flashcardStore store.FlashcardStore,
	folderStore store.FolderStore,
	generator generation.Generator,
	logger *slog.Logger,
) (FlashcardService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if flashcardStore == nil {
		return nil, domain.NewValidationError("flashcardStore", "cannot be nil", domain.ErrValidation)
	}
	if folderStore == nil {
		return nil, domain.NewValidationError("folderStore", "cannot be nil", domain.ErrValidation)
	}
	if generator == nil {
		return nil, domain.NewValidationError("generator", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &flashcardServiceImpl{
		db:             db,
		flashcardStore: flashcardStore,
		folderStore:    folderStore,
		generator:      generator,
		logger:         logger.With(slog.String("component", "flashcard_service")),
	}, nil
}

// Generate implements FlashcardService.Generate.
func (s *flashcardServiceImpl) Generate(
	ctx context.Context,
	text string,
) (*generation.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.generator.Generate(ctx, text)
	if err != nil {
		// Input errors pass through untouched so the API layer can map
		// them to 400s; anything else is an internal generation failure.
		switch {
		case isGenerationInputError(err):
			return nil, err
		default:
			log.Error("proposal generation failed",
				slog.String("error", err.Error()))
			return nil, NewFlashcardServiceError("generate", "generation failed", err)
		}
	}

	log.Debug("generated flashcard proposals",
		slog.Int("proposal_count", len(result.Proposals)))
	return result, nil
}

func isGenerationInputError(err error) bool {
	return errorIsAny(err, generation.ErrTextEmpty, generation.ErrTextTooLong)
}

// Create implements FlashcardService.Create.
func (s *flashcardServiceImpl) Create(
	ctx context.Context,
	userID, folderID uuid.UUID,
	front, back string,
	source domain.GenerationSource,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.verifyFolderOwnership(ctx, folderID, userID); err != nil {
		return nil, err
	}

	card, err := domain.NewFlashcard(userID, folderID, front, back, source)
	if err != nil {
		return nil, err
	}

	if err := s.flashcardStore.Create(ctx, card); err != nil {
		// The folder can disappear between the ownership check and the
		// insert; the store reports that as a folder-not-found.
		if store.IsNotFoundError(err) {
			return nil, store.ErrFolderNotFound
		}
		log.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("folder_id", folderID.String()))
		return nil, NewFlashcardServiceError("create", "failed to save flashcard", err)
	}

	log.Info("flashcard created",
		slog.String("flashcard_id", card.ID.String()),
		slog.String("folder_id", folderID.String()))
	return card, nil
}

// BulkSave implements FlashcardService.BulkSave.
// The folder is verified once, then all cards are inserted in a single
// transaction so a failure anywhere persists nothing.
func (s *flashcardServiceImpl) BulkSave(
	ctx context.Context,
	userID, folderID uuid.UUID,
	items []BulkSaveItem,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(items) == 0 || len(items) > MaxBulkSaveSize {
		return nil, ErrBulkSaveSize
	}

	if err := s.verifyFolderOwnership(ctx, folderID, userID); err != nil {
		return nil, err
	}

	cards := make([]*domain.Flashcard, 0, len(items))
	for _, item := range items {
		card, err := domain.NewFlashcard(
			userID, folderID, item.Front, item.Back, domain.GenerationSourceAI)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.flashcardStore.WithTx(tx).CreateMultiple(ctx, cards); err != nil {
			log.Error("failed to bulk save flashcards",
				slog.String("error", err.Error()),
				slog.String("folder_id", folderID.String()),
				slog.Int("card_count", len(cards)))
			if store.IsNotFoundError(err) {
				return store.ErrFolderNotFound
			}
			return NewFlashcardServiceError("bulk_save", "failed to save flashcards", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("flashcards bulk saved",
		slog.String("folder_id", folderID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("card_count", len(cards)))
	return cards, nil
}

// List implements FlashcardService.List.
func (s *flashcardServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	input ListFlashcardsInput,
) (*FlashcardPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if input.SortBy == "" {
		input.SortBy = store.FlashcardSortCreatedAt
	}
	if input.Order == "" {
		input.Order = store.SortDesc
	}
	if !store.ValidFlashcardSortColumn(input.SortBy) || !store.ValidSortOrder(input.Order) {
		return nil, ErrInvalidSortParameters
	}

	if input.FolderID != nil {
		if err := s.verifyFolderOwnership(ctx, *input.FolderID, userID); err != nil {
			return nil, err
		}
	}

	total, err := s.flashcardStore.CountForUser(ctx, userID, input.FolderID)
	if err != nil {
		log.Error("failed to count flashcards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewFlashcardServiceError("list", "failed to count flashcards", err)
	}

	cards, err := s.flashcardStore.ListForUser(ctx, userID, store.ListFlashcardsOptions{
		FolderID: input.FolderID,
		Offset:   offsetFor(input.Page, input.PageSize),
		Limit:    input.PageSize,
		SortBy:   input.SortBy,
		Order:    input.Order,
	})
	if err != nil {
		log.Error("failed to list flashcards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewFlashcardServiceError("list", "failed to list flashcards", err)
	}

	return &FlashcardPage{
		Flashcards: cards,
		Pagination: newPageMeta(input.Page, input.PageSize, total),
	}, nil
}

// Get implements FlashcardService.Get.
func (s *flashcardServiceImpl) Get(
	ctx context.Context,
	cardID, userID uuid.UUID,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.flashcardStore.GetForUser(ctx, cardID, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrFlashcardNotFound
		}
		log.Error("failed to retrieve flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", cardID.String()))
		return nil, NewFlashcardServiceError("get", "failed to retrieve flashcard", err)
	}
	return card, nil
}

// Update implements FlashcardService.Update.
func (s *flashcardServiceImpl) Update(
	ctx context.Context,
	cardID, userID uuid.UUID,
	input UpdateFlashcardInput,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.flashcardStore.GetForUser(ctx, cardID, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrFlashcardNotFound
		}
		log.Error("failed to retrieve flashcard for update",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", cardID.String()))
		return nil, NewFlashcardServiceError("update", "failed to retrieve flashcard", err)
	}

	if err := card.UpdateContent(input.Front, input.Back); err != nil {
		return nil, err
	}

	if input.Source != nil {
		if err := card.ChangeSource(*input.Source); err != nil {
			return nil, err
		}
	}

	// Moving the card requires the target folder to pass the same
	// ownership check as any other folder lookup.
	if input.FolderID != nil && *input.FolderID != card.FolderID {
		if err := s.verifyFolderOwnership(ctx, *input.FolderID, userID); err != nil {
			return nil, err
		}
		if err := card.MoveToFolder(*input.FolderID); err != nil {
			return nil, err
		}
	}

	if err := s.flashcardStore.Update(ctx, card); err != nil {
		if store.IsNotFoundError(err) {
			// ErrFolderNotFound from the store means the target folder
			// vanished mid-flight; anything else is the card itself.
			if errorIsAny(err, store.ErrFolderNotFound) {
				return nil, store.ErrFolderNotFound
			}
			return nil, store.ErrFlashcardNotFound
		}
		log.Error("failed to update flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", cardID.String()))
		return nil, NewFlashcardServiceError("update", "failed to save flashcard", err)
	}

	log.Info("flashcard updated",
		slog.String("flashcard_id", card.ID.String()),
		slog.String("user_id", userID.String()))
	return card, nil
}

// Delete implements FlashcardService.Delete.
func (s *flashcardServiceImpl) Delete(ctx context.Context, cardID, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.flashcardStore.Delete(ctx, cardID, userID); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrFlashcardNotFound
		}
		log.Error("failed to delete flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", cardID.String()))
		return NewFlashcardServiceError("delete", "failed to delete flashcard", err)
	}

	log.Info("flashcard deleted",
		slog.String("flashcard_id", cardID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// verifyFolderOwnership confirms the folder exists and belongs to the user.
func (s *flashcardServiceImpl) verifyFolderOwnership(
	ctx context.Context,
	folderID, userID uuid.UUID,
) error {
	_, err := s.folderStore.GetForUser(ctx, folderID, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrFolderNotFound
		}
		return NewFlashcardServiceError("verify_folder", "failed to verify folder ownership", err)
	}
	return nil
}
