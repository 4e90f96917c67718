package store

import (
	"context"
	"database/sql"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/google/uuid"
)

// FlashcardSortColumn names a column flashcard listings may be sorted by.
type FlashcardSortColumn string

// Columns exposed for sorting. The postgres implementation maps these onto
// real column names through a whitelist, never by interpolating caller input.
const (
	FlashcardSortCreatedAt FlashcardSortColumn = "created_at"
	FlashcardSortUpdatedAt FlashcardSortColumn = "updated_at"
	FlashcardSortFront     FlashcardSortColumn = "front"
)

// SortOrder is the direction of a sorted listing.
type SortOrder string

// Possible sort orders
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ValidFlashcardSortColumn reports whether the column is exposed for sorting.
func ValidFlashcardSortColumn(c FlashcardSortColumn) bool {
	switch c {
	case FlashcardSortCreatedAt, FlashcardSortUpdatedAt, FlashcardSortFront:
		return true
	default:
		return false
	}
}

// ValidSortOrder reports whether the order is asc or desc.
func ValidSortOrder(o SortOrder) bool {
	return o == SortAsc || o == SortDesc
}

// ListFlashcardsOptions carries filtering, pagination, and ordering for
// flashcard listings. FolderID of nil means all of the owner's flashcards.
// The service layer validates SortBy/Order before they reach the store.
type ListFlashcardsOptions struct {
	FolderID *uuid.UUID
	Offset   int
	Limit    int
	SortBy   FlashcardSortColumn
	Order    SortOrder
}

// FlashcardStore defines the interface for flashcard data persistence.
//
// As with folders, every ID lookup is scoped by (id AND user_id) so that
// "not found" and "not owned" are reported identically.
type FlashcardStore interface {
	// Create saves a new flashcard to the store.
	// It handles domain validation internally.
	// Returns ErrFolderNotFound if the referenced folder does not exist
	// (foreign key violation); the service verifies folder ownership before
	// calling, so this path covers the folder being deleted concurrently.
	Create(ctx context.Context, card *domain.Flashcard) error

	// CreateMultiple saves multiple flashcards in a single multi-row insert.
	// The insert is atomic: either every card persists or none does.
	// IMPORTANT: run this within a transaction (WithTx + RunInTransaction)
	// when it must be atomic with other statements.
	// All cards must be valid according to domain validation rules.
	CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error

	// GetForUser retrieves a flashcard by ID, scoped to the given owner.
	// Returns ErrFlashcardNotFound if no flashcard matches both IDs.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Flashcard, error)

	// ListForUser retrieves the owner's flashcards per opts. Returns an
	// empty slice (not an error) when nothing matches.
	ListForUser(ctx context.Context, userID uuid.UUID, opts ListFlashcardsOptions) ([]*domain.Flashcard, error)

	// CountForUser returns the number of the owner's flashcards, optionally
	// restricted to one folder (nil means all folders).
	CountForUser(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID) (int64, error)

	// Update saves changes to an existing flashcard, scoped to its owner.
	// Returns ErrFlashcardNotFound if no flashcard matches (card.ID AND
	// card.UserID). Returns ErrFolderNotFound if the card was moved to a
	// folder that no longer exists.
	Update(ctx context.Context, card *domain.Flashcard) error

	// Delete removes a flashcard, scoped to the given owner.
	// Returns ErrFlashcardNotFound if no flashcard matches both IDs.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// WithTx returns a new FlashcardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service via RunInTransaction).
	WithTx(tx *sql.Tx) FlashcardStore
}
