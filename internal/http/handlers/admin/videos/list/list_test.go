package list

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/edu-platform/internal/catalog"
	"github.com/magabrotheeeer/edu-platform/internal/models"
	"github.com/magabrotheeeer/edu-platform/internal/storage/memory"
)

func TestListHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := memory.New()
	cat := catalog.New(st, logger, 16, time.Minute)

	t.Run("empty catalog", func(t *testing.T) {
		rec := httptest.NewRecorder()
		New(logger, cat).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/videos", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"OK"`)
		assert.NotContains(t, rec.Body.String(), "source_url")
	})

	t.Run("admin sees source url", func(t *testing.T) {
		require.NoError(t, st.CreateVideo(context.Background(), models.Video{
			ID:        "video-1",
			Title:     "Ondes",
			SubjectID: "2",
			Level:     models.Level2BacPhys,
			SourceURL: "https://drive.google.com/file/d/abc/view",
			CreatedAt: time.Now(),
		}))

		rec := httptest.NewRecorder()
		New(logger, cat).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/videos", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "drive.google.com/file/d/abc")
	})
}
