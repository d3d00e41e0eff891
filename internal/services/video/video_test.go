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
	"github.com/magabrotheeeer/edu-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/edu-platform/internal/models"
	services "github.com/magabrotheeeer/edu-platform/internal/services/video"
)

type LessonProviderMock struct {
	mock.Mock
}

func (m *LessonProviderMock) Lesson(ctx context.Context, lessonID string) (*models.Lesson, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

type AccessCheckerMock struct {
	mock.Mock
}

func (m *AccessCheckerMock) IsLessonAccessible(ctx context.Context, userID string, lesson *models.Lesson) (bool, error) {
	args := m.Called(ctx, userID, lesson)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const driveLink = "https://drive.google.com/file/d/abc123/view?usp=sharing"

var (
	premiumLesson = &models.Lesson{ID: "video-1", SubjectID: "1", IsPremium: true, SourceURL: driveLink}
	freeLesson    = &models.Lesson{ID: "video-2", SubjectID: "1", SourceURL: "https://cdn.example.com/v.mp4"}
	noVideo       = &models.Lesson{ID: "math-1-1", SubjectID: "1"}
)

type fixture struct {
	lessons     *LessonProviderMock
	access      *AccessCheckerMock
	revocations *cache.LocalRevocations
	now         time.Time
	maker       *jwt.VideoMakerImpl
	svc         *services.VideoService
}

func newFixture() *fixture {
	f := &fixture{
		lessons:     new(LessonProviderMock),
		access:      new(AccessCheckerMock),
		revocations: cache.NewLocalRevocations(16, 2*time.Hour),
		now:         time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	f.maker = jwt.NewVideoMaker("video-secret", 2*time.Hour).WithClock(func() time.Time { return f.now })
	f.svc = services.NewVideoService(f.lessons, f.access, f.revocations, f.maker, newNoopLogger())
	return f
}

func session(userID string) *jwt.SessionClaims {
	c := &jwt.SessionClaims{Username: "alice", Role: models.RoleStudent}
	c.Subject = userID
	return c
}

func TestVideoService_IssueVideoAccess(t *testing.T) {
	tests := []struct {
		name       string
		lessonID   string
		setupMocks func(f *fixture)
		wantErr    error
	}{
		{
			name:     "premium with subscription",
			lessonID: "video-1",
			setupMocks: func(f *fixture) {
				f.lessons.On("Lesson", mock.Anything, "video-1").Return(premiumLesson, nil)
				f.access.On("IsLessonAccessible", mock.Anything, "u1", premiumLesson).Return(true, nil)
			},
		},
		{
			name:     "premium without subscription",
			lessonID: "video-1",
			setupMocks: func(f *fixture) {
				f.lessons.On("Lesson", mock.Anything, "video-1").Return(premiumLesson, nil)
				f.access.On("IsLessonAccessible", mock.Anything, "u1", premiumLesson).Return(false, nil)
			},
			wantErr: models.ErrSubscriptionRequired,
		},
		{
			name:     "free lesson skips access check",
			lessonID: "video-2",
			setupMocks: func(f *fixture) {
				f.lessons.On("Lesson", mock.Anything, "video-2").Return(freeLesson, nil)
			},
		},
		{
			name:     "unknown lesson",
			lessonID: "nope",
			setupMocks: func(f *fixture) {
				f.lessons.On("Lesson", mock.Anything, "nope").Return(nil, models.ErrLessonNotFound)
			},
			wantErr: models.ErrLessonNotFound,
		},
		{
			name:     "lesson without video",
			lessonID: "math-1-1",
			setupMocks: func(f *fixture) {
				f.lessons.On("Lesson", mock.Anything, "math-1-1").Return(noVideo, nil)
			},
			wantErr: models.ErrVideoUnavailable,
		},
		{
			name:     "access check failure",
			lessonID: "video-1",
			setupMocks: func(f *fixture) {
				f.lessons.On("Lesson", mock.Anything, "video-1").Return(premiumLesson, nil)
				f.access.On("IsLessonAccessible", mock.Anything, "u1", premiumLesson).Return(false, errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setupMocks(f)

			got, err := f.svc.IssueVideoAccess(context.Background(), session("u1"), tt.lessonID)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, models.ErrSubscriptionRequired) || errors.Is(tt.wantErr, models.ErrLessonNotFound) ||
					errors.Is(tt.wantErr, models.ErrVideoUnavailable) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7200), got.ExpiresIn)
			assert.NotEmpty(t, got.VideoToken)

			claims, err := f.maker.ParseVideoToken(got.VideoToken)
			require.NoError(t, err)
			assert.Equal(t, tt.lessonID, claims.LessonID)
			assert.Equal(t, "u1", claims.UserID())
			assert.Equal(t, f.now.Add(2*time.Hour).Unix(), claims.ExpiresAt.Unix())
			f.access.AssertExpectations(t)
		})
	}
}

func TestVideoService_IssueVideoAccess_ResolvesDriveLink(t *testing.T) {
	f := newFixture()
	f.lessons.On("Lesson", mock.Anything, "video-1").Return(premiumLesson, nil)
	f.access.On("IsLessonAccessible", mock.Anything, "u1", premiumLesson).Return(true, nil)

	got, err := f.svc.IssueVideoAccess(context.Background(), session("u1"), "video-1")
	require.NoError(t, err)
	assert.Equal(t, "https://drive.google.com/uc?export=download&id=abc123", got.VideoURL)
}

func TestVideoService_ResolveStream(t *testing.T) {
	f := newFixture()
	f.lessons.On("Lesson", mock.Anything, "video-1").Return(premiumLesson, nil)
	f.lessons.On("Lesson", mock.Anything, "video-2").Return(freeLesson, nil)

	token, err := f.maker.GenerateVideoToken("video-1", "u1")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		url, err := f.svc.ResolveStream(context.Background(), "video-1", token)
		require.NoError(t, err)
		assert.Equal(t, "https://drive.google.com/uc?export=download&id=abc123", url)
	})

	t.Run("token for another lesson", func(t *testing.T) {
		_, err := f.svc.ResolveStream(context.Background(), "video-2", token)
		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := f.svc.ResolveStream(context.Background(), "video-1", "not-a-jwt")
		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})

	t.Run("session token is rejected", func(t *testing.T) {
		sessionToken, err := jwt.NewJWTMaker("video-secret", time.Hour).GenerateToken("u1", "alice", models.RoleStudent, "")
		require.NoError(t, err)
		_, err = f.svc.ResolveStream(context.Background(), "video-1", sessionToken)
		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})

	t.Run("revoked after issuance", func(t *testing.T) {
		require.NoError(t, f.revocations.MarkRevoked(context.Background(), "u1", "1", f.now.Add(time.Minute)))
		_, err := f.svc.ResolveStream(context.Background(), "video-1", token)
		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})

	t.Run("token issued after revocation", func(t *testing.T) {
		f.now = f.now.Add(10 * time.Minute)
		fresh, err := f.maker.GenerateVideoToken("video-1", "u1")
		require.NoError(t, err)
		_, err = f.svc.ResolveStream(context.Background(), "video-1", fresh)
		assert.NoError(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		f.now = f.now.Add(3 * time.Hour)
		_, err := f.svc.ResolveStream(context.Background(), "video-1", token)
		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})
}
