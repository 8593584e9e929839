package create

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Purchase(ctx context.Context, userUID, username string, req models.DummyMembership, now time.Time) (int, error) {
	args := m.Called(ctx, userUID, username, req, now)
	return args.Int(0), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		withUser       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешная покупка абонемента",
			body:     `{"plan_name":"Premium","plan_mode":"monthly","duration_months":1,"has_addon":true}`,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "uid-1", "testuser", mock.MatchedBy(func(req models.DummyMembership) bool {
					return req.PlanName == "Premium" && req.HasAddon
				}), mock.Anything).Return(42, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"last_added_id":42`,
		},
		{
			name:           "некорректный JSON",
			body:           `{bad json`,
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
		{
			name:           "неизвестный режим тарифа не проходит валидацию",
			body:           `{"plan_name":"Premium","plan_mode":"weekly","duration_months":1}`,
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field PlanMode`,
		},
		{
			name:           "без пользователя в контексте",
			body:           `{"plan_name":"Premium","plan_mode":"monthly","duration_months":1}`,
			withUser:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"unauthorized"`,
		},
		{
			name:     "ошибка сервиса",
			body:     `{"plan_name":"Premium","plan_mode":"monthly","duration_months":1}`,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "uid-1", "testuser", mock.Anything, mock.Anything).Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not create membership"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/memberships", strings.NewReader(tt.body))
			if tt.withUser {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1")
				ctx = context.WithValue(ctx, middlewarectx.User, "testuser")
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
