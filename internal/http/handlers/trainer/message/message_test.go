package message

import (
	"context"
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

// MockService реализует интерфейс message.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SendMessage(ctx context.Context, userUID, body string, now time.Time) (*models.Verdict, int, error) {
	args := m.Called(ctx, userUID, body, now)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*models.Verdict), args.Int(1), args.Error(2)
}

func TestMessageHandler(t *testing.T) {
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
			name:     "сообщение отправлено",
			body:     `{"body":"hello coach"}`,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("SendMessage", mock.Anything, "uid-1", "hello coach", mock.Anything).
					Return(&models.Verdict{IsEligible: true, Reason: "trainer access is active"}, 77, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message_id":77`,
		},
		{
			name:     "переписка в льготном периоде запрещена",
			body:     `{"body":"hello coach"}`,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("SendMessage", mock.Anything, "uid-1", "hello coach", mock.Anything).
					Return(&models.Verdict{
						IsInGracePeriod: true,
						Reason:          "trainer access is in its grace period, messaging is unavailable until renewal",
					}, 0, nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"is_in_grace_period":true`,
		},
		{
			name:           "пустое сообщение не проходит валидацию",
			body:           `{"body":""}`,
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Body`,
		},
		{
			name:           "без пользователя в контексте",
			body:           `{"body":"hello coach"}`,
			withUser:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"unauthorized"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/trainers/message", strings.NewReader(tt.body))
			if tt.withUser {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
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
