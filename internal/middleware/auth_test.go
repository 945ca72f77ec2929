package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/smartchef/backend/internal/types"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValidateToken(_ context.Context, token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func whoAmI(c *gin.Context) {
	_, hasClaims := Claims(c)
	c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "username": c.GetString(ContextUsername), "claims": hasClaims})
}

func serve(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	validator := new(mockValidator)
	validator.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: "u1", Username: "asha"}, nil)
	validator.On("ValidateToken", "bad").Return(nil, errors.New("invalid token"))

	router := gin.New()
	router.GET("/", AuthMiddleware(validator), whoAmI)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.header)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user_id":"u1","username":"asha","claims":true}`, w.Body.String())
			}
		})
	}
	validator.AssertExpectations(t)
}

func TestOptionalAuth(t *testing.T) {
	validator := new(mockValidator)
	validator.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: "u1", Username: "asha"}, nil)
	validator.On("ValidateToken", "bad").Return(nil, errors.New("invalid token"))

	router := gin.New()
	router.GET("/", OptionalAuth(validator), whoAmI)

	w := serve(router, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"","username":"","claims":false}`, w.Body.String())

	w = serve(router, "Bearer bad")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"","username":"","claims":false}`, w.Body.String())

	w = serve(router, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"u1","username":"asha","claims":true}`, w.Body.String())
}
