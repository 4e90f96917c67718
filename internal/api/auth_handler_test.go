package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiszki-app/fiszki-api/internal/api/shared"
	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/mocks"
	"github.com/fiszki-app/fiszki-api/internal/service/auth"
	"github.com/fiszki-app/fiszki-api/internal/store"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) shared.Response {
	t.Helper()
	var resp shared.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func newAuthHandlerFixture() (*AuthHandler, *mocks.MockUserStore, *mocks.MockJWTService, *mocks.MockPasswordVerifier) {
	userStore := &mocks.MockUserStore{}
	jwtService := &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"}
	verifier := &mocks.MockPasswordVerifier{}
	return NewAuthHandler(userStore, jwtService, verifier, nil), userStore, jwtService, verifier
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, _, _, _ := newAuthHandlerFixture()

		rec := postJSON(t, handler.Register, "/api/auth/register", RegisterRequest{
			Email:    "student@example.com",
			Password: "a-long-enough-password",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)

		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "access-token", data["access_token"])
		assert.Equal(t, "refresh-token", data["refresh_token"])
		assert.NotEmpty(t, data["user_id"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		handler, userStore, _, _ := newAuthHandlerFixture()
		userStore.Err = store.ErrEmailExists

		rec := postJSON(t, handler.Register, "/api/auth/register", RegisterRequest{
			Email:    "taken@example.com",
			Password: "a-long-enough-password",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, "Email already exists", resp.Error)
	})

	t.Run("invalid payloads", func(t *testing.T) {
		tests := []struct {
			name string
			req  RegisterRequest
		}{
			{name: "missing email", req: RegisterRequest{Password: "a-long-enough-password"}},
			{name: "malformed email", req: RegisterRequest{Email: "nope", Password: "a-long-enough-password"}},
			{name: "short password", req: RegisterRequest{Email: "a@example.com", Password: "short"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				handler, _, _, _ := newAuthHandlerFixture()
				rec := postJSON(t, handler.Register, "/api/auth/register", tt.req)
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			})
		}
	})

	t.Run("malformed JSON body", func(t *testing.T) {
		handler, _, _, _ := newAuthHandlerFixture()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	userID := uuid.New()
	existingUser := &domain.User{
		ID:             userID,
		Email:          "student@example.com",
		HashedPassword: "$2a$04$fakehash",
	}

	t.Run("success", func(t *testing.T) {
		handler, userStore, _, _ := newAuthHandlerFixture()
		userStore.User = existingUser

		rec := postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
			Email:    "student@example.com",
			Password: "a-long-enough-password",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)

		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, userID.String(), data["user_id"])
		assert.Equal(t, "access-token", data["access_token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		handler, userStore, _, verifier := newAuthHandlerFixture()
		userStore.User = existingUser
		verifier.Err = auth.ErrInvalidCredentials

		rec := postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
			Email:    "student@example.com",
			Password: "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("unknown email gets the same response as wrong password", func(t *testing.T) {
		handler, userStore, _, _ := newAuthHandlerFixture()
		userStore.Err = store.ErrUserNotFound

		rec := postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
			Email:    "nobody@example.com",
			Password: "a-long-enough-password",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
		assert.NotContains(t, rec.Body.String(), "not found")
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Run("rotates the pair", func(t *testing.T) {
		handler, _, jwtService, _ := newAuthHandlerFixture()
		jwtService.Claims = &auth.Claims{UserID: uuid.New(), TokenType: "refresh"}

		rec := postJSON(t, handler.RefreshToken, "/api/auth/refresh", RefreshTokenRequest{
			RefreshToken: "old-refresh-token",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "access-token", data["access_token"])
		assert.Equal(t, "refresh-token", data["refresh_token"])
	})

	t.Run("access token rejected", func(t *testing.T) {
		handler, _, jwtService, _ := newAuthHandlerFixture()
		jwtService.ValidateRefreshTokenFn = func(ctx context.Context, tokenString string) (*auth.Claims, error) {
			return nil, auth.ErrWrongTokenType
		}

		rec := postJSON(t, handler.RefreshToken, "/api/auth/refresh", RefreshTokenRequest{
			RefreshToken: "actually-an-access-token",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		handler, _, _, _ := newAuthHandlerFixture()

		rec := postJSON(t, handler.RefreshToken, "/api/auth/refresh", RefreshTokenRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
