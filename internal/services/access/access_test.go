package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/edu-platform/internal/cache"
	"github.com/magabrotheeeer/edu-platform/internal/models"
	services "github.com/magabrotheeeer/edu-platform/internal/services/access"
	"github.com/magabrotheeeer/edu-platform/internal/storage/memory"
)

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, event models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdateUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedUser(t *testing.T, st *memory.Storage, subs map[string]string) models.User {
	t.Helper()
	u := models.User{
		ID:                   "u1",
		Username:             "alice",
		PasswordHash:         "hash",
		Level:                models.Level1BacMath,
		SubscriptionStatus:   models.SubscriptionFree,
		SubjectSubscriptions: subs,
		CreatedAt:            time.Now(),
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func TestIsLessonAccessible(t *testing.T) {
	free := &models.Lesson{ID: "l1", SubjectID: "1", IsPremium: false}
	premium := &models.Lesson{ID: "l2", SubjectID: "1", IsPremium: true}

	tests := []struct {
		name   string
		user   *models.User
		lesson *models.Lesson
		want   bool
	}{
		{"free lesson without user", nil, free, true},
		{"free lesson without subscription", &models.User{}, free, true},
		{"premium without subscription", &models.User{SubjectSubscriptions: map[string]string{}}, premium, false},
		{"premium with nil map", &models.User{}, premium, false},
		{"premium with other subject", &models.User{SubjectSubscriptions: map[string]string{"2": "active"}}, premium, false},
		{"premium with empty status", &models.User{SubjectSubscriptions: map[string]string{"1": ""}}, premium, false},
		{"premium with subscription", &models.User{SubjectSubscriptions: map[string]string{"1": "active"}}, premium, true},
		{"premium with custom status", &models.User{SubjectSubscriptions: map[string]string{"1": "trial"}}, premium, true},
		{"unknown user on premium", nil, premium, false},
		{"nil lesson", &models.User{}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.IsLessonAccessible(tt.user, tt.lesson))
		})
	}
}

func TestAccessService_IsLessonAccessible(t *testing.T) {
	st := memory.New()
	seedUser(t, st, map[string]string{"1": "active"})
	svc := services.NewAccessService(st, cache.NewLocalRevocations(16, time.Hour), new(PublisherMock), newNoopLogger())

	ok, err := svc.IsLessonAccessible(context.Background(), "u1", &models.Lesson{SubjectID: "1", IsPremium: true})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsLessonAccessible(context.Background(), "missing", &models.Lesson{SubjectID: "1", IsPremium: true})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsLessonAccessible(context.Background(), "missing", &models.Lesson{SubjectID: "1"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAccessService_GrantSubscription(t *testing.T) {
	st := memory.New()
	seedUser(t, st, nil)
	events := new(PublisherMock)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
		return e.Type == models.EventSubscriptionGranted && e.SubjectID == "1"
	})).Return(nil)
	svc := services.NewAccessService(st, cache.NewLocalRevocations(16, time.Hour), events, newNoopLogger())

	got, err := svc.GrantSubscription(context.Background(), "u1", "1", "")
	require.NoError(t, err)
	assert.Equal(t, "active", got.SubjectSubscriptions["1"])

	// повторная выдача перезаписывает статус
	got, err = svc.GrantSubscription(context.Background(), "u1", "1", "trial")
	require.NoError(t, err)
	assert.Equal(t, "trial", got.SubjectSubscriptions["1"])

	stored, err := st.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "trial"}, stored.SubjectSubscriptions)
	assert.Equal(t, int64(3), stored.Version)

	ok, err := svc.IsLessonAccessible(context.Background(), "u1", &models.Lesson{SubjectID: "1", IsPremium: true})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.GrantSubscription(context.Background(), "missing", "1", "")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	events.AssertNumberOfCalls(t, "Publish", 2)
}

func TestAccessService_RevokeSubscription(t *testing.T) {
	st := memory.New()
	seedUser(t, st, map[string]string{"1": "active", "2": "active"})
	events := new(PublisherMock)
	events.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	revocations := cache.NewLocalRevocations(16, time.Hour)
	svc := services.NewAccessService(st, revocations, events, newNoopLogger())

	got, err := svc.RevokeSubscription(context.Background(), "u1", "1")
	require.NoError(t, err)
	_, present := got.SubjectSubscriptions["1"]
	assert.False(t, present)
	assert.Equal(t, "active", got.SubjectSubscriptions["2"])

	_, revoked, err := revocations.RevokedAt(context.Background(), "u1", "1")
	require.NoError(t, err)
	assert.True(t, revoked)

	_, revoked, err = revocations.RevokedAt(context.Background(), "u1", "2")
	require.NoError(t, err)
	assert.False(t, revoked)

	ok, err := svc.IsLessonAccessible(context.Background(), "u1", &models.Lesson{SubjectID: "1", IsPremium: true})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.RevokeSubscription(context.Background(), "u1", "1")
	assert.ErrorIs(t, err, models.ErrSubscriptionNotFound)

	_, err = svc.RevokeSubscription(context.Background(), "missing", "1")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestAccessService_VersionConflict(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("GetUser", mock.Anything, "u1").
		Return(&models.User{ID: "u1", SubjectSubscriptions: map[string]string{"1": "active"}, Version: 4}, nil)
	repo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool { return u.Version == 4 })).
		Return(models.ErrConflict)
	events := new(PublisherMock)
	svc := services.NewAccessService(repo, cache.NewLocalRevocations(16, time.Hour), events, newNoopLogger())

	_, err := svc.GrantSubscription(context.Background(), "u1", "2", "")
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = svc.RevokeSubscription(context.Background(), "u1", "1")
	assert.ErrorIs(t, err, models.ErrConflict)

	events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
