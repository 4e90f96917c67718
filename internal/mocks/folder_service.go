package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/service"
)

// MockFolderService implements service.FolderService for testing.
type MockFolderService struct {
	CreateFn     func(ctx context.Context, userID uuid.UUID, name string) (*domain.Folder, error)
	GetDetailsFn func(ctx context.Context, folderID, userID uuid.UUID) (*service.FolderDetails, error)
	ListFn       func(ctx context.Context, userID uuid.UUID, page, pageSize int) (*service.FolderPage, error)
	UpdateFn     func(ctx context.Context, folderID, userID uuid.UUID, name string) (*domain.Folder, error)
	DeleteFn     func(ctx context.Context, folderID, userID uuid.UUID) error

	// Default response values used when the matching Fn is nil.
	Folder  *domain.Folder
	Details *service.FolderDetails
	Page    *service.FolderPage
	Err     error
}

var _ service.FolderService = (*MockFolderService)(nil)

func (m *MockFolderService) Create(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (*domain.Folder, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, name)
	}
	return m.Folder, m.Err
}

func (m *MockFolderService) GetDetails(
	ctx context.Context,
	folderID, userID uuid.UUID,
) (*service.FolderDetails, error) {
	if m.GetDetailsFn != nil {
		return m.GetDetailsFn(ctx, folderID, userID)
	}
	return m.Details, m.Err
}

func (m *MockFolderService) List(
	ctx context.Context,
	userID uuid.UUID,
	page, pageSize int,
) (*service.FolderPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, page, pageSize)
	}
	return m.Page, m.Err
}

func (m *MockFolderService) Update(
	ctx context.Context,
	folderID, userID uuid.UUID,
	name string,
) (*domain.Folder, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, folderID, userID, name)
	}
	return m.Folder, m.Err
}

func (m *MockFolderService) Delete(ctx context.Context, folderID, userID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, folderID, userID)
	}
	return m.Err
}
