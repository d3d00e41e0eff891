package remove

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/edu-platform/internal/catalog"
	"github.com/magabrotheeeer/edu-platform/internal/models"
	"github.com/magabrotheeeer/edu-platform/internal/storage/memory"
)

func TestRemoveHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := memory.New()
	require.NoError(t, st.CreateVideo(context.Background(), models.Video{
		ID: "video-1", Title: "Forces", SubjectID: "2", Level: models.Level1BacExp, CreatedAt: time.Now(),
	}))

	r := chi.NewRouter()
	r.Method(http.MethodDelete, "/api/admin/videos/{id}", New(logger, catalog.New(st, logger, 16, time.Minute)))

	tests := []struct {
		name     string
		id       string
		wantCode int
	}{
		{"existing", "video-1", http.StatusOK},
		{"already deleted", "video-1", http.StatusNotFound},
		{"unknown", "video-404", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/videos/"+tt.id, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
