package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/store"
)

// MockFolderStore implements store.FolderStore for testing.
type MockFolderStore struct {
	CreateFn            func(ctx context.Context, folder *domain.Folder) error
	GetForUserFn        func(ctx context.Context, id, userID uuid.UUID) (*domain.Folder, error)
	ListForUserFn       func(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Folder, error)
	CountForUserFn      func(ctx context.Context, userID uuid.UUID) (int64, error)
	NameExistsForUserFn func(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	UpdateFn            func(ctx context.Context, folder *domain.Folder) error
	DeleteFn            func(ctx context.Context, id, userID uuid.UUID) error
	CountFlashcardsFn   func(ctx context.Context, folderID, userID uuid.UUID) (int64, error)

	// Default response values used when the matching Fn is nil.
	Folder  *domain.Folder
	Folders []*domain.Folder
	Count   int64
	Exists  bool
	Err     error
}

var _ store.FolderStore = (*MockFolderStore)(nil)

func (m *MockFolderStore) Create(ctx context.Context, folder *domain.Folder) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, folder)
	}
	return m.Err
}

func (m *MockFolderStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Folder, error) {
	if m.GetForUserFn != nil {
		return m.GetForUserFn(ctx, id, userID)
	}
	return m.Folder, m.Err
}

func (m *MockFolderStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Folder, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID, offset, limit)
	}
	return m.Folders, m.Err
}

func (m *MockFolderStore) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.CountForUserFn != nil {
		return m.CountForUserFn(ctx, userID)
	}
	return m.Count, m.Err
}

func (m *MockFolderStore) NameExistsForUser(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	excludeID uuid.UUID,
) (bool, error) {
	if m.NameExistsForUserFn != nil {
		return m.NameExistsForUserFn(ctx, userID, name, excludeID)
	}
	return m.Exists, m.Err
}

func (m *MockFolderStore) Update(ctx context.Context, folder *domain.Folder) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, folder)
	}
	return m.Err
}

func (m *MockFolderStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, userID)
	}
	return m.Err
}

func (m *MockFolderStore) CountFlashcards(
	ctx context.Context,
	folderID, userID uuid.UUID,
) (int64, error) {
	if m.CountFlashcardsFn != nil {
		return m.CountFlashcardsFn(ctx, folderID, userID)
	}
	return m.Count, m.Err
}

// WithTx returns the mock itself; transactional behavior is not simulated.
func (m *MockFolderStore) WithTx(tx *sql.Tx) store.FolderStore {
	return m
}
