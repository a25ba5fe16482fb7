package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mallesh-145/job-application-tracker/internal/models"
	"github.com/Mallesh-145/job-application-tracker/internal/repository"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserLookup struct {
	mock.Mock
}

func (m *mockUserLookup) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newTestJWT(t *testing.T) *utils.JWTManager {
	t.Helper()
	m, err := utils.NewJWTManager("middleware-secret", "HS256", time.Hour)
	require.NoError(t, err)
	return m
}

func newProtectedEngine(jwtManager *utils.JWTManager, users UserLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CorrelationID())

	protected := r.Group("/", AuthMiddleware(jwtManager, users))
	protected.GET("/me", func(c *gin.Context) {
		userID, _ := GetUserID(c)
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "username": user.Username})
	})
	protected.GET("/admin", AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func perform(r http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := newTestJWT(t)
	users := new(mockUserLookup)
	users.On("GetByID", mock.Anything, uint(7)).Return(&models.User{ID: 7, Username: "alice", IsActive: true}, nil)
	r := newProtectedEngine(jwtManager, users)

	token, err := jwtManager.GenerateToken(7, "alice", false)
	require.NoError(t, err)

	w := perform(r, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"username":"alice"}`, w.Body.String())

	w = perform(r, "/me", "bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, header := range []string{"", "Bearer", "Bearer ", "Token " + token, "Bearer not-a-jwt"} {
		w = perform(r, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}

	other, err := utils.NewJWTManager("other-secret", "HS256", time.Hour)
	require.NoError(t, err)
	forged, err := other.GenerateToken(7, "alice", true)
	require.NoError(t, err)
	w = perform(r, "/me", "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ReloadsUser(t *testing.T) {
	jwtManager := newTestJWT(t)

	tests := []struct {
		name     string
		user     *models.User
		err      error
		expected int
	}{
		{"active user", &models.User{ID: 3, Username: "renamed", IsActive: true}, nil, http.StatusOK},
		{"disabled after token issued", &models.User{ID: 3, Username: "bob", IsActive: false}, nil, http.StatusForbidden},
		{"deleted after token issued", nil, repository.ErrNotFound, http.StatusUnauthorized},
		{"database error", nil, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserLookup)
			users.On("GetByID", mock.Anything, uint(3)).Return(tt.user, tt.err).Once()
			r := newProtectedEngine(jwtManager, users)

			token, err := jwtManager.GenerateToken(3, "bob", false)
			require.NoError(t, err)

			w := perform(r, "/me", "Bearer "+token)
			assert.Equal(t, tt.expected, w.Code)
			if tt.expected == http.StatusOK {
				assert.JSONEq(t, `{"user_id":3,"username":"renamed"}`, w.Body.String())
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	jwtManager := newTestJWT(t)

	tests := []struct {
		name       string
		tokenAdmin bool
		user       *models.User
		err        error
		expected   int
	}{
		{"admin in database", false, &models.User{ID: 1, IsAdmin: true, IsActive: true}, nil, http.StatusNoContent},
		{"token claims admin but database does not", true, &models.User{ID: 1, IsAdmin: false, IsActive: true}, nil, http.StatusForbidden},
		{"disabled admin", true, &models.User{ID: 1, IsAdmin: true, IsActive: false}, nil, http.StatusForbidden},
		{"user deleted", true, nil, repository.ErrNotFound, http.StatusUnauthorized},
		{"database error", true, nil, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserLookup)
			users.On("GetByID", mock.Anything, uint(1)).Return(tt.user, tt.err).Once()
			r := newProtectedEngine(jwtManager, users)

			token, err := jwtManager.GenerateToken(1, "someone", tt.tokenAdmin)
			require.NoError(t, err)

			w := perform(r, "/admin", "Bearer "+token)
			assert.Equal(t, tt.expected, w.Code)
			users.AssertExpectations(t)
		})
	}
}

func TestCorrelationID(t *testing.T) {
	r := newProtectedEngine(newTestJWT(t), new(mockUserLookup))

	w := perform(r, "/me", "")
	generated := w.Header().Get("X-Correlation-ID")
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)

	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Correlation-ID", existing)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, existing, w.Header().Get("X-Correlation-ID"))

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Correlation-ID", "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get("X-Correlation-ID"))
}
