package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/generation"
	"github.com/fiszki-app/fiszki-api/internal/service"
)

// MockFlashcardService implements service.FlashcardService for testing.
type MockFlashcardService struct {
	GenerateFn func(ctx context.Context, text string) (*generation.Result, error)
	CreateFn   func(ctx context.Context, userID, folderID uuid.UUID, front, back string, source domain.GenerationSource) (*domain.Flashcard, error)
	BulkSaveFn func(ctx context.Context, userID, folderID uuid.UUID, items []service.BulkSaveItem) ([]*domain.Flashcard, error)
	ListFn     func(ctx context.Context, userID uuid.UUID, input service.ListFlashcardsInput) (*service.FlashcardPage, error)
	GetFn      func(ctx context.Context, cardID, userID uuid.UUID) (*domain.Flashcard, error)
	UpdateFn   func(ctx context.Context, cardID, userID uuid.UUID, input service.UpdateFlashcardInput) (*domain.Flashcard, error)
	DeleteFn   func(ctx context.Context, cardID, userID uuid.UUID) error

	// Default response values used when the matching Fn is nil.
	Result     *generation.Result
	Flashcard  *domain.Flashcard
	Flashcards []*domain.Flashcard
	Page       *service.FlashcardPage
	Err        error
}

var _ service.FlashcardService = (*MockFlashcardService)(nil)

func (m *MockFlashcardService) Generate(
	ctx context.Context,
	text string,
) (*generation.Result, error) {
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, text)
	}
	return m.Result, m.Err
}

func (m *MockFlashcardService) Create(
	ctx context.Context,
	userID, folderID uuid.UUID,
	front, back string,
	source domain.GenerationSource,
) (*domain.Flashcard, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, folderID, front, back, source)
	}
	return m.Flashcard, m.Err
}

func (m *MockFlashcardService) BulkSave(
	ctx context.Context,
	userID, folderID uuid.UUID,
	items []service.BulkSaveItem,
) ([]*domain.Flashcard, error) {
	if m.BulkSaveFn != nil {
		return m.BulkSaveFn(ctx, userID, folderID, items)
	}
	return m.Flashcards, m.Err
}

func (m *MockFlashcardService) List(
	ctx context.Context,
	userID uuid.UUID,
	input service.ListFlashcardsInput,
) (*service.FlashcardPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, input)
	}
	return m.Page, m.Err
}

func (m *MockFlashcardService) Get(
	ctx context.Context,
	cardID, userID uuid.UUID,
) (*domain.Flashcard, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, cardID, userID)
	}
	return m.Flashcard, m.Err
}

func (m *MockFlashcardService) Update(
	ctx context.Context,
	cardID, userID uuid.UUID,
	input service.UpdateFlashcardInput,
) (*domain.Flashcard, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, cardID, userID, input)
	}
	return m.Flashcard, m.Err
}

func (m *MockFlashcardService) Delete(ctx context.Context, cardID, userID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, cardID, userID)
	}
	return m.Err
}
