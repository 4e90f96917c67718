package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/generation"
	"github.com/fiszki-app/fiszki-api/internal/mocks"
	"github.com/fiszki-app/fiszki-api/internal/service"
	"github.com/fiszki-app/fiszki-api/internal/store"
)

func mustFlashcard(t *testing.T, userID, folderID uuid.UUID) *domain.Flashcard {
	t.Helper()
	card, err := domain.NewFlashcard(
		userID, folderID, "What is ATP?", "Adenosine triphosphate.", domain.GenerationSourceAI)
	require.NoError(t, err)
	return card
}

func TestFlashcardHandler_Generate(t *testing.T) {
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		flashcardService := &mocks.MockFlashcardService{
			Result: &generation.Result{
				SuggestedFolderName: "The mitochondria is the",
				Proposals: []generation.Proposal{
					{ID: uuid.New(), Front: "Q1", Back: "A1", Source: domain.GenerationSourceAI},
					{ID: uuid.New(), Front: "Q2", Back: "A2", Source: domain.GenerationSourceAI},
				},
			},
		}
		handler := NewFlashcardHandler(flashcardService, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Post("/flashcards/generate", handler.Generate)
		})

		rec := doJSON(t, router, http.MethodPost, "/flashcards/generate",
			GenerateRequest{Text: "The mitochondria is the powerhouse of the cell."})

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "The mitochondria is the", data["suggested_folder_name"])
		proposals := data["proposals"].([]interface{})
		assert.Len(t, proposals, 2)
		first := proposals[0].(map[string]interface{})
		assert.Equal(t, "ai", first["generation_source"])
	})

	t.Run("empty text", func(t *testing.T) {
		handler := NewFlashcardHandler(&mocks.MockFlashcardService{}, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Post("/flashcards/generate", handler.Generate)
		})

		rec := doJSON(t, router, http.MethodPost, "/flashcards/generate",
			GenerateRequest{Text: ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("text above the limit", func(t *testing.T) {
		handler := NewFlashcardHandler(&mocks.MockFlashcardService{}, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Post("/flashcards/generate", handler.Generate)
		})

		rec := doJSON(t, router, http.MethodPost, "/flashcards/generate",
			GenerateRequest{Text: strings.Repeat("a", generation.MaxTextLength+1)})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("generator failure is a redacted 500", func(t *testing.T) {
		flashcardService := &mocks.MockFlashcardService{
			Err: service.NewFlashcardServiceError("generate", "generation failed",
				generation.ErrGenerationFailed),
		}
		handler := NewFlashcardHandler(flashcardService, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Post("/flashcards/generate", handler.Generate)
		})

		rec := doJSON(t, router, http.MethodPost, "/flashcards/generate",
			GenerateRequest{Text: "Some text."})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "An unexpected error occurred")
	})
}

func TestFlashcardHandler_BulkSave(t *testing.T) {
	userID := uuid.New()
	folderID := uuid.New()

	validRequest := BulkSaveRequest{
		FolderID: folderID.String(),
		Flashcards: []BulkSaveCardRequest{
			{Front: "Q1", Back: "A1"},
			{Front: "Q2", Back: "A2"},
		},
	}

	t.Run("success", func(t *testing.T) {
		flashcardService := &mocks.MockFlashcardService{
			Flashcards: []*domain.Flashcard{
				mustFlashcard(t, userID, folderID),
				mustFlashcard(t, userID, folderID),
			},
		}
		handler := NewFlashcardHandler(flashcardService, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Post("/flashcards/bulk-save", handler.BulkSave)
		})

		rec := doJSON(t, router, http.MethodPost, "/flashcards/bulk-save", validRequest)

		assert.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeResponse(t, rec)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(2), data["saved_count"])
		assert.Len(t, data["flashcards"].([]interface{}), 2)
	})

	t.Run("empty list rejected at the handler", func(t *testing.T) {
		handler := NewFlashcardHandler(&mocks.MockFlashcardService{}, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Post("/flashcards/bulk-save", handler.BulkSave)
		})

		rec := doJSON(t, router, http.MethodPost, "/flashcards/bulk-save",
			BulkSaveRequest{FolderID: folderID.String()})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("more than fifty cards rejected at the handler", func(t *testing.T) {
		cards := make([]BulkSaveCardRequest, 51)
		for i := range cards {
			cards[i] = BulkSaveCardRequest{Front: "Q", Back: "A"}
		}
		handler := NewFlashcardHandler(&mocks.MockFlashcardService{}, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Post("/flashcards/bulk-save", handler.BulkSave)
		})

		rec := doJSON(t, router, http.MethodPost, "/flashcards/bulk-save",
			BulkSaveRequest{FolderID: folderID.String(), Flashcards: cards})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("foreign folder is a 404", func(t *testing.T) {
		flashcardService := &mocks.MockFlashcardService{Err: store.ErrFolderNotFound}
		handler := NewFlashcardHandler(flashcardService, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Post("/flashcards/bulk-save", handler.BulkSave)
		})

		rec := doJSON(t, router, http.MethodPost, "/flashcards/bulk-save", validRequest)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Folder not found")
	})

	t.Run("invalid folder id", func(t *testing.T) {
		handler := NewFlashcardHandler(&mocks.MockFlashcardService{}, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Post("/flashcards/bulk-save", handler.BulkSave)
		})

		req := validRequest
		req.FolderID = "not-a-uuid"
		rec := doJSON(t, router, http.MethodPost, "/flashcards/bulk-save", req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFlashcardHandler_ListFlashcards(t *testing.T) {
	userID := uuid.New()
	folderID := uuid.New()

	t.Run("forwards filters and sorting", func(t *testing.T) {
		var gotInput service.ListFlashcardsInput
		flashcardService := &mocks.MockFlashcardService{
			ListFn: func(ctx context.Context, uID uuid.UUID, input service.ListFlashcardsInput) (*service.FlashcardPage, error) {
				gotInput = input
				return &service.FlashcardPage{
					Flashcards: []*domain.Flashcard{mustFlashcard(t, userID, folderID)},
					Pagination: service.PageMeta{Page: 1, PageSize: 20, Total: 1, TotalPages: 1},
				}, nil
			},
		}
		handler := NewFlashcardHandler(flashcardService, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Get("/flashcards", handler.ListFlashcards)
		})

		rec := doJSON(t, router, http.MethodGet,
			"/flashcards?folder_id="+folderID.String()+"&sort_by=front&order=asc", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotInput.FolderID)
		assert.Equal(t, folderID, *gotInput.FolderID)
		assert.Equal(t, store.FlashcardSortFront, gotInput.SortBy)
		assert.Equal(t, store.SortAsc, gotInput.Order)
	})

	t.Run("sort column outside the whitelist is a 400", func(t *testing.T) {
		flashcardService := &mocks.MockFlashcardService{Err: service.ErrInvalidSortParameters}
		handler := NewFlashcardHandler(flashcardService, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Get("/flashcards", handler.ListFlashcards)
		})

		rec := doJSON(t, router, http.MethodGet, "/flashcards?sort_by=back", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid folder filter", func(t *testing.T) {
		handler := NewFlashcardHandler(&mocks.MockFlashcardService{}, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Get("/flashcards", handler.ListFlashcards)
		})

		rec := doJSON(t, router, http.MethodGet, "/flashcards?folder_id=junk", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFlashcardHandler_CRUD(t *testing.T) {
	userID := uuid.New()
	folderID := uuid.New()
	card := mustFlashcard(t, userID, folderID)

	t.Run("create", func(t *testing.T) {
		var gotSource domain.GenerationSource
		flashcardService := &mocks.MockFlashcardService{
			CreateFn: func(ctx context.Context, uID, fID uuid.UUID, front, back string, source domain.GenerationSource) (*domain.Flashcard, error) {
				gotSource = source
				return card, nil
			},
		}
		handler := NewFlashcardHandler(flashcardService, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Post("/flashcards", handler.CreateFlashcard)
		})

		rec := doJSON(t, router, http.MethodPost, "/flashcards", CreateFlashcardRequest{
			FolderID: folderID.String(),
			Front:    "What is ATP?",
			Back:     "Adenosine triphosphate.",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, domain.GenerationSourceManual, gotSource)
	})

	t.Run("create rejects an unknown source", func(t *testing.T) {
		handler := NewFlashcardHandler(&mocks.MockFlashcardService{}, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Post("/flashcards", handler.CreateFlashcard)
		})

		rec := doJSON(t, router, http.MethodPost, "/flashcards", CreateFlashcardRequest{
			FolderID: folderID.String(),
			Front:    "Q",
			Back:     "A",
			Source:   "telepathy",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get", func(t *testing.T) {
		flashcardService := &mocks.MockFlashcardService{Flashcard: card}
		handler := NewFlashcardHandler(flashcardService, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Get("/flashcards/{id}", handler.GetFlashcard)
		})

		rec := doJSON(t, router, http.MethodGet, "/flashcards/"+card.ID.String(), nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, card.ID.String(), data["id"])
		assert.Equal(t, "ai", data["generation_source"])
	})

	t.Run("get not found", func(t *testing.T) {
		flashcardService := &mocks.MockFlashcardService{Err: store.ErrFlashcardNotFound}
		handler := NewFlashcardHandler(flashcardService, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Get("/flashcards/{id}", handler.GetFlashcard)
		})

		rec := doJSON(t, router, http.MethodGet, "/flashcards/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update with a folder move", func(t *testing.T) {
		target := uuid.New()
		var gotInput service.UpdateFlashcardInput
		flashcardService := &mocks.MockFlashcardService{
			UpdateFn: func(ctx context.Context, cardID, uID uuid.UUID, input service.UpdateFlashcardInput) (*domain.Flashcard, error) {
				gotInput = input
				return card, nil
			},
		}
		handler := NewFlashcardHandler(flashcardService, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Put("/flashcards/{id}", handler.UpdateFlashcard)
		})

		targetStr := target.String()
		rec := doJSON(t, router, http.MethodPut, "/flashcards/"+card.ID.String(),
			UpdateFlashcardRequest{Front: "F", Back: "B", FolderID: &targetStr})

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotInput.FolderID)
		assert.Equal(t, target, *gotInput.FolderID)
	})

	t.Run("update with a generation source change", func(t *testing.T) {
		var gotInput service.UpdateFlashcardInput
		flashcardService := &mocks.MockFlashcardService{
			UpdateFn: func(ctx context.Context, cardID, uID uuid.UUID, input service.UpdateFlashcardInput) (*domain.Flashcard, error) {
				gotInput = input
				return card, nil
			},
		}
		handler := NewFlashcardHandler(flashcardService, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Put("/flashcards/{id}", handler.UpdateFlashcard)
		})

		source := "manual"
		rec := doJSON(t, router, http.MethodPut, "/flashcards/"+card.ID.String(),
			UpdateFlashcardRequest{Front: "F", Back: "B", Source: &source})

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotInput.Source)
		assert.Equal(t, domain.GenerationSourceManual, *gotInput.Source)
	})

	t.Run("update rejects an unknown generation source", func(t *testing.T) {
		flashcardService := &mocks.MockFlashcardService{
			UpdateFn: func(ctx context.Context, cardID, uID uuid.UUID, input service.UpdateFlashcardInput) (*domain.Flashcard, error) {
				t.Fatal("Update should not be called for an invalid source")
				return nil, nil
			},
		}
		handler := NewFlashcardHandler(flashcardService, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Put("/flashcards/{id}", handler.UpdateFlashcard)
		})

		source := "telepathy"
		rec := doJSON(t, router, http.MethodPut, "/flashcards/"+card.ID.String(),
			UpdateFlashcardRequest{Front: "F", Back: "B", Source: &source})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		handler := NewFlashcardHandler(&mocks.MockFlashcardService{}, nil)
		router := newAuthedRouter(userID, func(r chi.Router) {
			r.Delete("/flashcards/{id}", handler.DeleteFlashcard)
		})

		rec := doJSON(t, router, http.MethodDelete, "/flashcards/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "Flashcard deleted", resp.Message)
	})
}
