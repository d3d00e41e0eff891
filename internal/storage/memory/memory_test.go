package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/edu-platform/internal/models"
	"github.com/magabrotheeeer/edu-platform/internal/storage"
)

var _ storage.Storage = (*Storage)(nil)

func newUser(id, username string) models.User {
	return models.User{
		ID:                 id,
		Username:           username,
		PasswordHash:       "hash",
		Level:              models.Level2BacSVT,
		SubscriptionStatus: models.SubscriptionFree,
		CreatedAt:          time.Now(),
	}
}

func TestStorage_CreateAndGetUser(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newUser("u1", "amine")))
	assert.ErrorIs(t, s.CreateUser(ctx, newUser("u2", "amine")), models.ErrDuplicateUser)

	u, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "amine", u.Username)
	assert.Equal(t, int64(1), u.Version)
	assert.NotNil(t, u.SubjectSubscriptions)

	_, err = s.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	_, err = s.GetUserByUsername(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestStorage_ReturnedUserIsACopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, newUser("u1", "amine")))

	u, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	u.SubjectSubscriptions["1"] = "active"

	again, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, again.SubjectSubscriptions)
}

func TestStorage_UpdateUserVersionCheck(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, newUser("u1", "amine")))

	first, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	second, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)

	first.SubjectSubscriptions["1"] = "active"
	require.NoError(t, s.UpdateUser(ctx, *first))

	second.SubjectSubscriptions["2"] = "active"
	assert.ErrorIs(t, s.UpdateUser(ctx, *second), models.ErrConflict)

	got, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "active"}, got.SubjectSubscriptions)
	assert.Equal(t, int64(2), got.Version)

	assert.ErrorIs(t, s.UpdateUser(ctx, models.User{ID: "ghost"}), models.ErrUserNotFound)
}

func TestStorage_ConcurrentUpdatesOneWins(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, newUser("u1", "amine")))

	snapshot, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u := *snapshot
			u.SubjectSubscriptions = map[string]string{"1": "active"}
			if err := s.UpdateUser(ctx, u); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, succeeded)
}

func TestStorage_LastLogin(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, newUser("u1", "amine")))

	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.UpdateLastLogin(ctx, "u1", at))

	u, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, u.LastLogin)
	assert.Equal(t, at, *u.LastLogin)
	assert.Equal(t, int64(1), u.Version)

	assert.ErrorIs(t, s.UpdateLastLogin(ctx, "ghost", at), models.ErrUserNotFound)
}

func TestStorage_Admins(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.EnsureAdmin(ctx, models.Admin{ID: "a1", Username: "root", PasswordHash: "h1", Role: models.RoleAdmin}))
	require.NoError(t, s.EnsureAdmin(ctx, models.Admin{ID: "a2", Username: "root", PasswordHash: "h2", Role: models.RoleAdmin}))

	a, err := s.GetAdminByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, "h2", a.PasswordHash)

	_, err = s.GetAdminByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestStorage_Videos(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateVideo(ctx, models.Video{ID: "v2", SubjectID: "1", CreatedAt: base.Add(time.Minute), CreatedBy: "root"}))
	require.NoError(t, s.CreateVideo(ctx, models.Video{ID: "v1", SubjectID: "1", CreatedAt: base, CreatedBy: "root"}))
	require.NoError(t, s.CreateVideo(ctx, models.Video{ID: "v3", SubjectID: "2", CreatedAt: base}))
	assert.Error(t, s.CreateVideo(ctx, models.Video{ID: "v1"}))

	list, err := s.ListVideosBySubject(ctx, "1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "v1", list[0].ID)

	all, err := s.ListVideos(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, s.UpdateVideo(ctx, models.Video{ID: "v1", Title: "New", SubjectID: "1"}))
	v, err := s.GetVideo(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "New", v.Title)
	assert.Equal(t, base, v.CreatedAt)
	assert.Equal(t, "root", v.CreatedBy)

	require.NoError(t, s.DeleteVideo(ctx, "v1"))
	assert.ErrorIs(t, s.DeleteVideo(ctx, "v1"), models.ErrVideoNotFound)
	assert.ErrorIs(t, s.UpdateVideo(ctx, models.Video{ID: "v1"}), models.ErrVideoNotFound)
	_, err = s.GetVideo(ctx, "v1")
	assert.ErrorIs(t, err, models.ErrVideoNotFound)
}

func TestStorage_CanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
