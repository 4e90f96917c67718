package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/generation"
	"github.com/fiszki-app/fiszki-api/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh
// endpoint. Both tokens are rotated.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateFolderRequest defines the payload for creating a folder.
// Length limits are re-checked against the trimmed name by the domain layer.
type CreateFolderRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateFolderRequest defines the payload for renaming a folder.
type UpdateFolderRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// FolderResponse represents a folder in API responses. FlashcardCount is
// only populated on the detail endpoint.
type FolderResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	FlashcardCount *int64    `json:"flashcard_count,omitempty"`
}

// FolderListResponse is the payload of the folder listing endpoint.
type FolderListResponse struct {
	Folders    []FolderResponse `json:"folders"`
	Pagination service.PageMeta `json:"pagination"`
}

// CreateFlashcardRequest defines the payload for creating a single flashcard.
type CreateFlashcardRequest struct {
	FolderID string `json:"folder_id"         validate:"required"`
	Front    string `json:"front"             validate:"required,max=200"`
	Back     string `json:"back"              validate:"required,max=500"`
	Source   string `json:"generation_source" validate:"omitempty,oneof=manual ai"`
}

// UpdateFlashcardRequest defines the payload for updating a flashcard.
// FolderID, when present, moves the card to another owned folder; Source,
// when present, relabels how the card was produced.
type UpdateFlashcardRequest struct {
	Front    string  `json:"front"             validate:"required,max=200"`
	Back     string  `json:"back"              validate:"required,max=500"`
	FolderID *string `json:"folder_id"         validate:"omitempty"`
	Source   *string `json:"generation_source" validate:"omitempty,oneof=manual ai"`
}

// FlashcardResponse represents a flashcard in API responses.
type FlashcardResponse struct {
	ID        uuid.UUID `json:"id"`
	FolderID  uuid.UUID `json:"folder_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	Source    string    `json:"generation_source"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FlashcardListResponse is the payload of the flashcard listing endpoint.
type FlashcardListResponse struct {
	Flashcards []FlashcardResponse `json:"flashcards"`
	Pagination service.PageMeta    `json:"pagination"`
}

// GenerateRequest defines the payload for the proposal generation endpoint.
type GenerateRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

// ProposalResponse represents one generated flashcard proposal. Proposals
// are transient; the ID only identifies the proposal within this response.
type ProposalResponse struct {
	ID     uuid.UUID `json:"id"`
	Front  string    `json:"front"`
	Back   string    `json:"back"`
	Source string    `json:"generation_source"`
}

// GenerateResponse is the payload of the proposal generation endpoint.
type GenerateResponse struct {
	SuggestedFolderName string             `json:"suggested_folder_name"`
	Proposals           []ProposalResponse `json:"proposals"`
}

// BulkSaveCardRequest is one accepted proposal in a bulk save payload.
type BulkSaveCardRequest struct {
	Front string `json:"front" validate:"required,max=200"`
	Back  string `json:"back"  validate:"required,max=500"`
}

// BulkSaveRequest defines the payload for saving accepted proposals.
type BulkSaveRequest struct {
	FolderID   string                `json:"folder_id"  validate:"required"`
	Flashcards []BulkSaveCardRequest `json:"flashcards" validate:"required,min=1,max=50,dive"`
}

// BulkSaveResponse is the payload of the bulk save endpoint.
type BulkSaveResponse struct {
	SavedCount int                 `json:"saved_count"`
	Flashcards []FlashcardResponse `json:"flashcards"`
}

// newFolderResponse converts a domain folder for the API.
func newFolderResponse(folder *domain.Folder) FolderResponse {
	return FolderResponse{
		ID:        folder.ID,
		Name:      folder.Name,
		CreatedAt: folder.CreatedAt,
		UpdatedAt: folder.UpdatedAt,
	}
}

// newFlashcardResponse converts a domain flashcard for the API.
func newFlashcardResponse(card *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:        card.ID,
		FolderID:  card.FolderID,
		Front:     card.Front,
		Back:      card.Back,
		Source:    string(card.Source),
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}

// newFlashcardResponses converts a slice of domain flashcards for the API.
// Always returns a non-nil slice so empty listings serialize as [].
func newFlashcardResponses(cards []*domain.Flashcard) []FlashcardResponse {
	out := make([]FlashcardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, newFlashcardResponse(card))
	}
	return out
}

// newGenerateResponse converts a generation result for the API.
func newGenerateResponse(result *generation.Result) GenerateResponse {
	proposals := make([]ProposalResponse, 0, len(result.Proposals))
	for _, p := range result.Proposals {
		proposals = append(proposals, ProposalResponse{
			ID:     p.ID,
			Front:  p.Front,
			Back:   p.Back,
			Source: string(p.Source),
		})
	}
	return GenerateResponse{
		SuggestedFolderName: result.SuggestedFolderName,
		Proposals:           proposals,
	}
}
