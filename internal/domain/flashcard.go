package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// GenerationSource distinguishes manually authored flashcards from
// AI-suggested ones.
type GenerationSource string

// Possible generation source values
const (
	GenerationSourceManual GenerationSource = "manual"
	GenerationSourceAI     GenerationSource = "ai"
)

// Flashcard text length bounds after trimming.
const (
	MaxFlashcardFrontLength = 200
	MaxFlashcardBackLength  = 500
)

// Flashcard-specific validation errors
var (
	// ErrFlashcardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrFlashcardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrFlashcardUserIDEmpty is returned when a flashcard's user ID is empty or nil.
	ErrFlashcardUserIDEmpty = errors.New("flashcard user ID cannot be empty")

	// ErrFlashcardFolderIDEmpty is returned when a flashcard's folder ID is empty or nil.
	ErrFlashcardFolderIDEmpty = errors.New("flashcard folder ID cannot be empty")

	// ErrFlashcardFrontEmpty is returned when the front text is empty after trimming.
	ErrFlashcardFrontEmpty = errors.New("flashcard front cannot be empty")

	// ErrFlashcardFrontTooLong is returned when the front text exceeds 200 characters.
	ErrFlashcardFrontTooLong = errors.New("flashcard front cannot exceed 200 characters")

	// ErrFlashcardBackEmpty is returned when the back text is empty after trimming.
	ErrFlashcardBackEmpty = errors.New("flashcard back cannot be empty")

	// ErrFlashcardBackTooLong is returned when the back text exceeds 500 characters.
	ErrFlashcardBackTooLong = errors.New("flashcard back cannot exceed 500 characters")

	// ErrInvalidGenerationSource is returned when the source is not manual or ai.
	ErrInvalidGenerationSource = errors.New("invalid generation source")
)

// Flashcard is a front/back study item belonging to exactly one folder
// and one owner at a time.
type Flashcard struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	FolderID  uuid.UUID        `json:"folder_id"`
	Front     string           `json:"front"`
	Back      string           `json:"back"`
	Source    GenerationSource `json:"generation_source"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewFlashcard creates a new Flashcard in the given folder for the given user.
// Front and back are trimmed before validation and storage.
// It generates a new UUID for the flashcard ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewFlashcard(
	userID, folderID uuid.UUID,
	front, back string,
	source GenerationSource,
) (*Flashcard, error) {
	card := &Flashcard{
		ID:        uuid.New(),
		UserID:    userID,
		FolderID:  folderID,
		Front:     strings.TrimSpace(front),
		Back:      strings.TrimSpace(back),
		Source:    source,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrFlashcardUserIDEmpty
	}

	if c.FolderID == uuid.Nil {
		return ErrFlashcardFolderIDEmpty
	}

	if err := ValidateFlashcardText(c.Front, c.Back); err != nil {
		return err
	}

	if !isValidGenerationSource(c.Source) {
		return ErrInvalidGenerationSource
	}

	return nil
}

// UpdateContent replaces the flashcard's front and back text and updates
// the UpdatedAt timestamp. The new text is trimmed before validation.
// Returns an error if the new text is invalid; the flashcard is left
// unchanged on failure.
func (c *Flashcard) UpdateContent(front, back string) error {
	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)

	if err := ValidateFlashcardText(front, back); err != nil {
		return err
	}

	c.Front = front
	c.Back = back
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// MoveToFolder reassigns the flashcard to another folder and updates the
// UpdatedAt timestamp. Ownership of the target folder is a service-level
// concern; the domain only rejects a nil folder ID.
func (c *Flashcard) MoveToFolder(folderID uuid.UUID) error {
	if folderID == uuid.Nil {
		return ErrFlashcardFolderIDEmpty
	}

	c.FolderID = folderID
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// ChangeSource relabels how the flashcard was produced and updates the
// UpdatedAt timestamp. Returns ErrInvalidGenerationSource for unknown values.
func (c *Flashcard) ChangeSource(source GenerationSource) error {
	if !isValidGenerationSource(source) {
		return ErrInvalidGenerationSource
	}

	c.Source = source
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// ValidateFlashcardText checks front and back text against the domain rules.
func ValidateFlashcardText(front, back string) error {
	if strings.TrimSpace(front) == "" {
		return ErrFlashcardFrontEmpty
	}
	if utf8.RuneCountInString(front) > MaxFlashcardFrontLength {
		return ErrFlashcardFrontTooLong
	}
	if strings.TrimSpace(back) == "" {
		return ErrFlashcardBackEmpty
	}
	if utf8.RuneCountInString(back) > MaxFlashcardBackLength {
		return ErrFlashcardBackTooLong
	}
	return nil
}

// isValidGenerationSource checks if the given source is a valid GenerationSource.
func isValidGenerationSource(source GenerationSource) bool {
	switch source {
	case GenerationSourceManual, GenerationSourceAI:
		return true
	default:
		return false
	}
}
