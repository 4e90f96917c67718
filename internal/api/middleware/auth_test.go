package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiszki-app/fiszki-api/internal/mocks"
	"github.com/fiszki-app/fiszki-api/internal/service/auth"
)

func authTestHandler(t *testing.T, wantUserID uuid.UUID) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r)
		require.True(t, ok)
		assert.Equal(t, wantUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	jwtService := &mocks.MockJWTService{
		Claims: &auth.Claims{UserID: userID, TokenType: "access"},
	}
	m := NewAuthMiddleware(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/folders", nil)
	req.Header.Set("Authorization", "Bearer some-valid-token")
	rec := httptest.NewRecorder()

	m.Authenticate(authTestHandler(t, userID)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		jwtErr     error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Authorization header required",
		},
		{
			name:       "not bearer",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid authorization format",
		},
		{
			name:       "malformed header",
			authHeader: "Bearer",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid authorization format",
		},
		{
			name:       "expired token",
			authHeader: "Bearer expired",
			jwtErr:     auth.ErrExpiredToken,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Token expired",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer garbage",
			jwtErr:     auth.ErrInvalidToken,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid token",
		},
		{
			name:       "refresh token used as access token",
			authHeader: "Bearer refresh-token",
			jwtErr:     auth.ErrWrongTokenType,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtService := &mocks.MockJWTService{Err: tt.jwtErr}
			m := NewAuthMiddleware(jwtService)

			req := httptest.NewRequest(http.MethodGet, "/folders", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler should not be reached")
			})
			m.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/folders", nil)
	_, ok := GetUserID(req)
	assert.False(t, ok)
}
