package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fiszki-app/fiszki-api/internal/api/shared"
	"github.com/fiszki-app/fiszki-api/internal/platform/logger"
	"github.com/fiszki-app/fiszki-api/internal/service"
)

// FolderHandler handles folder-related HTTP requests.
type FolderHandler struct {
	folderService service.FolderService
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewFolderHandler creates a new FolderHandler.
func NewFolderHandler(folderService service.FolderService, logger *slog.Logger) *FolderHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &FolderHandler{
		folderService: folderService,
		validator:     validator.New(),
		logger:        logger.With(slog.String("component", "folder_handler")),
	}
}

// ListFolders handles GET /folders requests.
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	page, pageSize := parsePagination(r)

	result, err := h.folderService.List(r.Context(), userID, page, pageSize)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	folders := make([]FolderResponse, 0, len(result.Folders))
	for _, folder := range result.Folders {
		folders = append(folders, newFolderResponse(folder))
	}

	shared.RespondWithData(w, r, http.StatusOK, FolderListResponse{
		Folders:    folders,
		Pagination: result.Pagination,
	})
}

// CreateFolder handles POST /folders requests.
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateFolderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	folder, err := h.folderService.Create(r.Context(), userID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, newFolderResponse(folder))
}

// GetFolder handles GET /folders/{id} requests. The response includes the
// folder's flashcard count.
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, folderID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	details, err := h.folderService.GetDetails(r.Context(), folderID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := newFolderResponse(details.Folder)
	resp.FlashcardCount = &details.FlashcardCount
	shared.RespondWithData(w, r, http.StatusOK, resp)
}

// UpdateFolder handles PUT /folders/{id} requests.
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, folderID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateFolderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	folder, err := h.folderService.Update(r.Context(), folderID, userID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, newFolderResponse(folder))
}

// DeleteFolder handles DELETE /folders/{id} requests. Flashcards in the
// folder are removed with it.
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, folderID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.folderService.Delete(r.Context(), folderID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Folder deleted")
}
