package store

import (
	"context"
	"database/sql"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/google/uuid"
)

// FolderStore defines the interface for folder data persistence.
//
// All lookups and mutations that take both a folder ID and a user ID filter
// on (id AND user_id) in a single predicate. "Not found" and "not owned" are
// therefore indistinguishable to callers; see ErrNotFound.
type FolderStore interface {
	// Create saves a new folder to the store.
	// It handles domain validation internally.
	// Returns ErrFolderNameExists if the owner already has a folder with the
	// same trimmed name (the unique index on (user_id, name) is authoritative,
	// so concurrent creates with the same name surface this error too).
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, folder *domain.Folder) error

	// GetForUser retrieves a folder by ID, scoped to the given owner.
	// Returns ErrFolderNotFound if no folder matches both IDs.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Folder, error)

	// ListForUser retrieves the owner's folders ordered by creation time
	// descending, with offset/limit pagination. Returns an empty slice (not
	// an error) when the owner has no folders or the page is past the end.
	ListForUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Folder, error)

	// CountForUser returns the total number of folders owned by the user.
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// NameExistsForUser reports whether the owner already has a folder with
	// the given (trimmed) name, excluding the folder identified by excludeID
	// (pass uuid.Nil to exclude nothing). Used as a pre-insert optimization
	// for a friendlier duplicate error; the unique index remains the source
	// of truth.
	NameExistsForUser(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)

	// Update saves changes to an existing folder, scoped to its owner.
	// Returns ErrFolderNotFound if no folder matches (folder.ID AND
	// folder.UserID). Returns ErrFolderNameExists on a name collision with
	// another folder of the same owner.
	Update(ctx context.Context, folder *domain.Folder) error

	// Delete removes a folder, scoped to the given owner.
	// Returns ErrFolderNotFound if no folder matches both IDs.
	//
	// Flashcards in the folder are removed by the database's ON DELETE
	// CASCADE constraint; this method issues no flashcard deletes. If the
	// schema ever loses the cascade, this method must be updated to maintain
	// referential integrity.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// CountFlashcards returns the number of flashcards in the folder for the
	// given owner. A folder that does not exist (or is not owned) counts as
	// zero; callers wanting NotFound semantics should GetForUser first.
	CountFlashcards(ctx context.Context, folderID, userID uuid.UUID) (int64, error)

	// WithTx returns a new FolderStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service via RunInTransaction).
	WithTx(tx *sql.Tx) FolderStore
}
