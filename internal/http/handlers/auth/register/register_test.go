package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, username, password string, level models.Level) (*models.PublicUser, error) {
	args := m.Called(ctx, username, password, level)
	user, _ := args.Get(0).(*models.PublicUser)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockUser       *models.PublicUser
		mockErr        error
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "created",
			body:           `{"username":"a@x.com","password":"secret1","level":"1bac-math"}`,
			mockUser:       &models.PublicUser{ID: "u1", Username: "a@x.com", Level: models.Level1BacMath},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "duplicate username",
			body:           `{"username":"a@x.com","password":"secret1","level":"1bac-math"}`,
			mockErr:        models.ErrDuplicateUser,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "username already exists",
		},
		{
			name:           "invalid level",
			body:           `{"username":"a@x.com","password":"secret1","level":"3bac"}`,
			mockErr:        models.ErrInvalidLevel,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid level",
		},
		{
			name:           "storage failure",
			body:           `{"username":"a@x.com","password":"secret1","level":"1bac-math"}`,
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "internal error",
		},
		{
			name:           "invalid json",
			body:           `{"username":`,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "short password",
			body:           `{"username":"a@x.com","password":"123","level":"1bac-math"}`,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password must be at least 6 characters",
		},
		{
			name:           "multi-byte password over 72 bytes",
			body:           `{"username":"a@x.com","password":"` + strings.Repeat("é", 72) + `","level":"1bac-math"}`,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password must be at most 72 bytes",
		},
		{
			name:           "multi-byte password within 72 bytes",
			body:           `{"username":"a@x.com","password":"` + strings.Repeat("é", 36) + `","level":"1bac-math"}`,
			mockUser:       &models.PublicUser{ID: "u1", Username: "a@x.com", Level: models.Level1BacMath},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "missing level",
			body:           `{"username":"a@x.com","password":"secret1"}`,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Level is a required field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mockUser != nil || tt.mockErr != nil {
				var req Request
				require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
				svc.On("Register", mock.Anything, req.Username, req.Password, models.Level(req.Level)).
					Return(tt.mockUser, tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString(tt.body))
			New(newNoopLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			if tt.wantError != "" {
				assert.Equal(t, "Error", resp["status"])
				assert.Contains(t, resp["error"], tt.wantError)
			} else {
				assert.Equal(t, "OK", resp["status"])
				data := resp["data"].(map[string]any)
				assert.Equal(t, "u1", data["id"])
				assert.NotContains(t, data, "password_hash")
			}
			svc.AssertExpectations(t)
		})
	}
}
