package renew

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// MockService реализует интерфейс renew.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Renew(ctx context.Context, id int, now time.Time) (*models.Verdict, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Verdict), args.Error(1)
}

func TestRenewHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное продление",
			id:   "3",
			setupMock: func(m *MockService) {
				m.On("Renew", mock.Anything, 3, mock.Anything).Return(&models.Verdict{
					IsEligible:      true,
					IsInGracePeriod: true,
					Reason:          "membership is in its grace period and can be renewed",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"renewed":true`,
		},
		{
			name: "отказ с причиной",
			id:   "3",
			setupMock: func(m *MockService) {
				m.On("Renew", mock.Anything, 3, mock.Anything).Return(&models.Verdict{
					Reason: "grace period has already elapsed",
				}, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"grace period has already elapsed"`,
		},
		{
			name:           "некорректный id в URL",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"failed to decode id from url"`,
		},
		{
			name: "ошибка сервиса",
			id:   "3",
			setupMock: func(m *MockService) {
				m.On("Renew", mock.Anything, 3, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not renew membership"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/memberships/"+tt.id+"/renew", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
