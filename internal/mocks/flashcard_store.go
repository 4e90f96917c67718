package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/store"
)

// MockFlashcardStore implements store.FlashcardStore for testing.
type MockFlashcardStore struct {
	CreateFn         func(ctx context.Context, card *domain.Flashcard) error
	CreateMultipleFn func(ctx context.Context, cards []*domain.Flashcard) error
	GetForUserFn     func(ctx context.Context, id, userID uuid.UUID) (*domain.Flashcard, error)
	ListForUserFn    func(ctx context.Context, userID uuid.UUID, opts store.ListFlashcardsOptions) ([]*domain.Flashcard, error)
	CountForUserFn   func(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID) (int64, error)
	UpdateFn         func(ctx context.Context, card *domain.Flashcard) error
	DeleteFn         func(ctx context.Context, id, userID uuid.UUID) error

	// Default response values used when the matching Fn is nil.
	Flashcard  *domain.Flashcard
	Flashcards []*domain.Flashcard
	Count      int64
	Err        error

	// Call tracking for verification.
	mu                  sync.Mutex
	CreateMultipleCalls [][]*domain.Flashcard
	WithTxCalls         int
}

var _ store.FlashcardStore = (*MockFlashcardStore)(nil)

func (m *MockFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, card)
	}
	return m.Err
}

func (m *MockFlashcardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	m.mu.Lock()
	m.CreateMultipleCalls = append(m.CreateMultipleCalls, cards)
	m.mu.Unlock()

	if m.CreateMultipleFn != nil {
		return m.CreateMultipleFn(ctx, cards)
	}
	return m.Err
}

func (m *MockFlashcardStore) GetForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.Flashcard, error) {
	if m.GetForUserFn != nil {
		return m.GetForUserFn(ctx, id, userID)
	}
	return m.Flashcard, m.Err
}

func (m *MockFlashcardStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	opts store.ListFlashcardsOptions,
) ([]*domain.Flashcard, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID, opts)
	}
	return m.Flashcards, m.Err
}

func (m *MockFlashcardStore) CountForUser(
	ctx context.Context,
	userID uuid.UUID,
	folderID *uuid.UUID,
) (int64, error) {
	if m.CountForUserFn != nil {
		return m.CountForUserFn(ctx, userID, folderID)
	}
	return m.Count, m.Err
}

func (m *MockFlashcardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, card)
	}
	return m.Err
}

func (m *MockFlashcardStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, userID)
	}
	return m.Err
}

// WithTx returns the mock itself; transactional behavior is not simulated.
func (m *MockFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	m.mu.Lock()
	m.WithTxCalls++
	m.mu.Unlock()
	return m
}
