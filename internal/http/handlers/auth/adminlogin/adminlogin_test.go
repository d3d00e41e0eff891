package adminlogin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/edu-platform/internal/models"
	authservice "github.com/magabrotheeeer/edu-platform/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) AdminLogin(ctx context.Context, username, password string) (*authservice.AdminLoginResult, error) {
	args := m.Called(ctx, username, password)
	resp, _ := args.Get(0).(*authservice.AdminLoginResult)
	return resp, args.Error(1)
}

func TestAdminLoginHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success", func(t *testing.T) {
		svc := new(AuthServiceMock)
		svc.On("AdminLogin", mock.Anything, "root", "adminpass").Return(&authservice.AdminLoginResult{
			Token: "admin-tok",
			User:  models.PublicAdmin{ID: "a1", Username: "root", Role: models.RoleAdmin},
		}, nil).Once()

		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login",
			bytes.NewBufferString(`{"username":"root","password":"adminpass"}`)))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Data authservice.AdminLoginResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "admin-tok", resp.Data.Token)
		assert.Equal(t, models.RoleAdmin, resp.Data.User.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := new(AuthServiceMock)
		svc.On("AdminLogin", mock.Anything, "root", "nope").Return(nil, models.ErrInvalidCredentials).Once()

		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login",
			bytes.NewBufferString(`{"username":"root","password":"nope"}`)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing username", func(t *testing.T) {
		rec := httptest.NewRecorder()
		New(logger, new(AuthServiceMock)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login",
			bytes.NewBufferString(`{"password":"nope"}`)))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
