package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiszki-app/fiszki-api/internal/api"
	"github.com/fiszki-app/fiszki-api/internal/api/middleware"
	"github.com/fiszki-app/fiszki-api/internal/config"
	"github.com/fiszki-app/fiszki-api/internal/mocks"
	"github.com/fiszki-app/fiszki-api/internal/service"
	"github.com/fiszki-app/fiszki-api/internal/service/auth"
)

// newTestApplication builds an application backed by mocks so routing can be
// exercised without a database.
func newTestApplication(t *testing.T) (*application, *mocks.MockJWTService) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtService := &mocks.MockJWTService{
		Claims: &auth.Claims{UserID: uuid.New(), TokenType: "access"},
	}
	folderService := &mocks.MockFolderService{
		Page: &service.FolderPage{Pagination: service.PageMeta{Page: 1, PageSize: 20}},
	}
	flashcardService := &mocks.MockFlashcardService{}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "info"},
	}

	return &application{
		config:           cfg,
		logger:           logger,
		authHandler:      api.NewAuthHandler(&mocks.MockUserStore{}, jwtService, &mocks.MockPasswordVerifier{}, logger),
		folderHandler:    api.NewFolderHandler(folderService, logger),
		flashcardHandler: api.NewFlashcardHandler(flashcardService, logger),
		authMiddleware:   middleware.NewAuthMiddleware(jwtService),
	}, jwtService
}

func TestSetupRouter_HealthCheck(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestSetupRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/folders"},
		{http.MethodPost, "/api/folders"},
		{http.MethodGet, "/api/flashcards"},
		{http.MethodPost, "/api/flashcards/generate"},
		{http.MethodPost, "/api/flashcards/bulk-save"},
	}

	for _, route := range protected {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestSetupRouter_AuthenticatedRequestReachesHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/folders", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
}

func TestSetupRouter_UnknownRoute(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/decks", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
