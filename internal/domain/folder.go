package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Folder name length bound after trimming.
const MaxFolderNameLength = 100

// Folder-specific validation errors
var (
	// ErrFolderIDEmpty is returned when a folder ID is empty or nil.
	ErrFolderIDEmpty = errors.New("folder ID cannot be empty")

	// ErrFolderUserIDEmpty is returned when a folder's user ID is empty or nil.
	ErrFolderUserIDEmpty = errors.New("folder user ID cannot be empty")

	// ErrFolderNameEmpty is returned when a folder name is empty after trimming.
	ErrFolderNameEmpty = errors.New("folder name cannot be empty")

	// ErrFolderNameTooLong is returned when a folder name exceeds MaxFolderNameLength.
	ErrFolderNameTooLong = errors.New("folder name cannot exceed 100 characters")
)

// Folder is a named container scoping a set of flashcards for one owner.
// A user never has two folders whose trimmed names are equal; the name is
// always stored without surrounding whitespace.
type Folder struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFolder creates a new Folder owned by the given user.
// The name is trimmed before validation and storage.
// It generates a new UUID for the folder ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewFolder(userID uuid.UUID, name string) (*Folder, error) {
	folder := &Folder{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := folder.Validate(); err != nil {
		return nil, err
	}

	return folder, nil
}

// Validate checks if the Folder has valid data.
// Returns an error if any field fails validation.
func (f *Folder) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFolderIDEmpty
	}

	if f.UserID == uuid.Nil {
		return ErrFolderUserIDEmpty
	}

	return ValidateFolderName(f.Name)
}

// Rename updates the folder's name and the UpdatedAt timestamp.
// The new name is trimmed before validation.
// Returns an error if the trimmed name is invalid.
func (f *Folder) Rename(name string) error {
	trimmed := strings.TrimSpace(name)
	if err := ValidateFolderName(trimmed); err != nil {
		return err
	}

	f.Name = trimmed
	f.UpdatedAt = time.Now().UTC()
	return nil
}

// ValidateFolderName checks a folder name against the domain rules.
// The caller is expected to have trimmed the name already; a name with
// surrounding whitespace that trims to empty is reported as empty.
func ValidateFolderName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrFolderNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxFolderNameLength {
		return ErrFolderNameTooLong
	}
	return nil
}
