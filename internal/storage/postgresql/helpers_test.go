package postgresql

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/edu-platform/internal/migrations"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	root, err := filepath.Abs("../../..")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(s.DB, filepath.Join(root, "migrations")))
	require.NoError(t, s.CheckDatabaseReady(ctx))
	return s
}

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, username string, subs map[string]string) models.User {
	u := models.User{
		ID:                   uuid.NewString(),
		Username:             username,
		PasswordHash:         "hash",
		Level:                models.Level1BacMath,
		SubscriptionStatus:   models.SubscriptionFree,
		SubjectSubscriptions: subs,
		CreatedAt:            time.Now().UTC().Truncate(time.Microsecond),
		Version:              1,
	}
	require.NoError(t, f.storage.CreateUser(context.Background(), u))
	return u
}

// CreateVideo создает тестовое видео
func (f *TestDataFactory) CreateVideo(t *testing.T, id, subjectID string, createdAt time.Time) models.Video {
	v := models.Video{
		ID:        id,
		Title:     "Video " + id,
		SubjectID: subjectID,
		Level:     models.Level1BacMath,
		SourceURL: "https://drive.google.com/file/d/" + id + "/view",
		Duration:  "30 min",
		IsPremium: true,
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
		CreatedBy: "root",
	}
	require.NoError(t, f.storage.CreateVideo(context.Background(), v))
	return v
}
