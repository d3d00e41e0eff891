package stream

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ResolveStream(ctx context.Context, lessonID, token string) (string, error) {
	args := m.Called(ctx, lessonID, token)
	return args.String(0), args.Error(1)
}

func TestStreamHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		url      string
		header   string
		mockURL  string
		mockErr  error
		wantCode int
	}{
		{
			name:     "redirect with query token",
			url:      "/video/video-1/stream?token=vtok",
			mockURL:  "https://cdn.example.com/v.mp4",
			wantCode: http.StatusFound,
		},
		{
			name:     "redirect with header token",
			url:      "/video/video-1/stream",
			header:   "Bearer vtok",
			mockURL:  "https://cdn.example.com/v.mp4",
			wantCode: http.StatusFound,
		},
		{
			name:     "revoked token",
			url:      "/video/video-1/stream?token=vtok",
			mockErr:  models.ErrInvalidToken,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "unknown lesson",
			url:      "/video/video-1/stream?token=vtok",
			mockErr:  models.ErrLessonNotFound,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "no token",
			url:      "/video/video-1/stream",
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mockURL != "" || tt.mockErr != nil {
				svc.On("ResolveStream", mock.Anything, "video-1", "vtok").Return(tt.mockURL, tt.mockErr).Once()
			}
			r := chi.NewRouter()
			r.Method(http.MethodGet, "/video/{lessonId}/stream", New(logger, svc))

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusFound {
				assert.Equal(t, tt.mockURL, rec.Header().Get("Location"))
			}
			svc.AssertExpectations(t)
		})
	}
}
