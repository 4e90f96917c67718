package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fiszki-app/fiszki-api/internal/api/shared"
	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/platform/logger"
	"github.com/fiszki-app/fiszki-api/internal/service"
	"github.com/fiszki-app/fiszki-api/internal/store"
)

// FlashcardHandler handles flashcard-related HTTP requests, including
// proposal generation and bulk save.
type FlashcardHandler struct {
	flashcardService service.FlashcardService
	validator        *validator.Validate
	logger           *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler.
func NewFlashcardHandler(
	flashcardService service.FlashcardService,
	logger *slog.Logger,
) *FlashcardHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardHandler{
		flashcardService: flashcardService,
		validator:        validator.New(),
		logger:           logger.With(slog.String("component", "flashcard_handler")),
	}
}

// Generate handles POST /flashcards/generate requests. Nothing is persisted;
// the returned proposals live only in this response.
func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if _, ok := getUserIDFromContext(r); !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.flashcardService.Generate(r.Context(), req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, newGenerateResponse(result))
}

// BulkSave handles POST /flashcards/bulk-save requests. The accepted
// proposals are saved atomically into a single owned folder.
func (h *FlashcardHandler) BulkSave(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req BulkSaveRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	folderID, err := domain.ParseID(req.FolderID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid folder_id")
		return
	}

	items := make([]service.BulkSaveItem, 0, len(req.Flashcards))
	for _, card := range req.Flashcards {
		items = append(items, service.BulkSaveItem{Front: card.Front, Back: card.Back})
	}

	cards, err := h.flashcardService.BulkSave(r.Context(), userID, folderID, items)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, BulkSaveResponse{
		SavedCount: len(cards),
		Flashcards: newFlashcardResponses(cards),
	})
}

// ListFlashcards handles GET /flashcards requests. Supports folder_id,
// sort_by, order, page, and limit query parameters.
func (h *FlashcardHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	page, pageSize := parsePagination(r)
	input := service.ListFlashcardsInput{
		Page:     page,
		PageSize: pageSize,
		SortBy:   store.FlashcardSortColumn(r.URL.Query().Get("sort_by")),
		Order:    store.SortOrder(r.URL.Query().Get("order")),
	}

	if raw := r.URL.Query().Get("folder_id"); raw != "" {
		folderID, err := domain.ParseID(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid folder_id")
			return
		}
		input.FolderID = &folderID
	}

	result, err := h.flashcardService.List(r.Context(), userID, input)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, FlashcardListResponse{
		Flashcards: newFlashcardResponses(result.Flashcards),
		Pagination: result.Pagination,
	})
}

// CreateFlashcard handles POST /flashcards requests.
func (h *FlashcardHandler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateFlashcardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	folderID, err := domain.ParseID(req.FolderID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid folder_id")
		return
	}

	source := domain.GenerationSourceManual
	if req.Source != "" {
		source = domain.GenerationSource(req.Source)
	}

	card, err := h.flashcardService.Create(
		r.Context(), userID, folderID, req.Front, req.Back, source)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, newFlashcardResponse(card))
}

// GetFlashcard handles GET /flashcards/{id} requests.
func (h *FlashcardHandler) GetFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	card, err := h.flashcardService.Get(r.Context(), cardID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, newFlashcardResponse(card))
}

// UpdateFlashcard handles PUT /flashcards/{id} requests.
func (h *FlashcardHandler) UpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateFlashcardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	input := service.UpdateFlashcardInput{Front: req.Front, Back: req.Back}
	if req.Source != nil {
		source := domain.GenerationSource(*req.Source)
		input.Source = &source
	}
	if req.FolderID != nil {
		folderID, err := domain.ParseID(*req.FolderID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid folder_id")
			return
		}
		input.FolderID = &folderID
	}

	card, err := h.flashcardService.Update(r.Context(), cardID, userID, input)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, newFlashcardResponse(card))
}

// DeleteFlashcard handles DELETE /flashcards/{id} requests.
func (h *FlashcardHandler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.flashcardService.Delete(r.Context(), cardID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Flashcard deleted")
}
