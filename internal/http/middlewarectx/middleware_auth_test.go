package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// MockAuthService реализует интерфейс middlewarectx.Service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestJWTMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockAuthService)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:       "валидный токен добавляет пользователя в контекст",
			authHeader: "Bearer good-token",
			setupMock: func(m *MockAuthService) {
				m.On("ValidateToken", mock.Anything, "good-token").
					Return(&models.User{Username: "testuser", Role: "user", UUID: "uid-1"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "отсутствие заголовка",
			authHeader:     "",
			setupMock:      func(_ *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "заголовок без Bearer",
			authHeader:     "Token abc",
			setupMock:      func(_ *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "невалидный токен",
			authHeader: "Bearer bad-token",
			setupMock: func(m *MockAuthService) {
				m.On("ValidateToken", mock.Anything, "bad-token").Return(nil, errors.New("invalid token"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.setupMock(mockService)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, "testuser", r.Context().Value(User))
				assert.Equal(t, "user", r.Context().Value(Role))
				assert.Equal(t, "uid-1", r.Context().Value(UserUID))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/memberships", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			JWTMiddleware(mockService, logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if !tt.expectNext {
				assert.True(t, strings.Contains(w.Body.String(), "Error"))
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestRequireRole(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("роль совпадает", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/memberships/1/approve", nil)
		req = req.WithContext(context.WithValue(req.Context(), Role, "admin"))
		w := httptest.NewRecorder()

		RequireRole("admin", logger)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("чужая роль получает 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/memberships/1/approve", nil)
		req = req.WithContext(context.WithValue(req.Context(), Role, "user"))
		w := httptest.NewRecorder()

		RequireRole("admin", logger)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("без роли в контексте", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/memberships/1/approve", nil)
		w := httptest.NewRecorder()

		RequireRole("admin", logger)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
