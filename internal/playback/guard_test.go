package playback_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/edu-platform/internal/playback"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newGuard(t *testing.T, duration float64) (*playback.Guard, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	g := playback.New(playback.WithClock(clock.now))
	require.NoError(t, g.Load(duration))
	return g, clock
}

func TestGuard_SkipAheadIsBlocked(t *testing.T) {
	g, _ := newGuard(t, 600)
	require.NoError(t, g.Play())

	// плеер присылает позицию несколько раз в секунду: 0, 10 и 25 достигаются обычным просмотром
	for pos := 0.0; pos <= 25; pos++ {
		require.True(t, g.OnTimeUpdate(pos))
	}
	assert.Equal(t, 25.0, g.MaxWatched())
	assert.False(t, g.OnTimeUpdate(80))

	assert.Equal(t, 25.0, g.Position())
	assert.Equal(t, 25.0, g.MaxWatched())
	assert.Equal(t, playback.SkipBlocked, g.State())
	assert.True(t, g.WarningVisible())
}

func TestGuard_SparseUpdatesAreJumps(t *testing.T) {
	g, _ := newGuard(t, 600)
	require.NoError(t, g.Play())

	// без промежуточных отметок каждый шаг больше 5 секунд считается прыжком
	updates := []struct {
		pos     float64
		allowed bool
	}{
		{0, true},
		{10, false},
		{25, false},
		{80, false},
	}
	for _, u := range updates {
		assert.Equal(t, u.allowed, g.OnTimeUpdate(u.pos), "position %v", u.pos)
	}

	assert.Equal(t, 0.0, g.Position())
	assert.Equal(t, 0.0, g.MaxWatched())
	assert.Equal(t, playback.SkipBlocked, g.State())
}

func TestGuard_NaNPositionIgnored(t *testing.T) {
	g, _ := newGuard(t, 100)
	require.NoError(t, g.Play())
	require.True(t, g.OnTimeUpdate(4))

	assert.False(t, g.OnTimeUpdate(math.NaN()))
	assert.False(t, g.Seek(math.NaN()))

	assert.Equal(t, 4.0, g.Position())
	assert.Equal(t, 4.0, g.MaxWatched())
	assert.Equal(t, 4.0, g.WatchedPercentage())
	assert.Equal(t, playback.Playing, g.State())
}

func TestGuard_WarningClearsAfterThreeSeconds(t *testing.T) {
	g, clock := newGuard(t, 600)
	require.NoError(t, g.Play())
	require.True(t, g.OnTimeUpdate(5))
	require.False(t, g.OnTimeUpdate(100))

	clock.advance(2 * time.Second)
	assert.True(t, g.WarningVisible())

	clock.advance(time.Second)
	assert.False(t, g.WarningVisible())
	assert.Equal(t, playback.Playing, g.State())
}

func TestGuard_ToleranceBoundary(t *testing.T) {
	tests := []struct {
		name    string
		target  float64
		allowed bool
		wantMax float64
	}{
		{"exactly at tolerance", 25, true, 25},
		{"just past tolerance", 25.5, false, 20},
		{"backwards", 5, true, 20},
		{"negative clamps to zero", -3, true, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newGuard(t, 100)
			require.NoError(t, g.Play())
			for pos := 0.0; pos <= 20; pos += 5 {
				require.True(t, g.OnTimeUpdate(pos))
			}
			assert.Equal(t, tt.allowed, g.OnTimeUpdate(tt.target))
			assert.Equal(t, tt.wantMax, g.MaxWatched())
		})
	}
}

func TestGuard_SeekWithinWatchedRange(t *testing.T) {
	g, _ := newGuard(t, 300)
	require.NoError(t, g.Play())
	for pos := 0.0; pos <= 120; pos += 4 {
		require.True(t, g.OnTimeUpdate(pos))
	}

	assert.True(t, g.Seek(30))
	assert.Equal(t, 30.0, g.Position())
	assert.Equal(t, 120.0, g.MaxWatched())

	assert.True(t, g.Seek(124))
	assert.False(t, g.Seek(200))
	assert.Equal(t, 124.0, g.Position())
	assert.Equal(t, playback.SkipBlocked, g.State())
}

func TestGuard_MarkCompleted(t *testing.T) {
	watchTo := func(g *playback.Guard, target float64) {
		for pos := 0.0; pos <= target; pos++ {
			g.OnTimeUpdate(pos)
		}
	}

	t.Run("89 percent is not enough", func(t *testing.T) {
		g, _ := newGuard(t, 100)
		require.NoError(t, g.Play())
		watchTo(g, 89)
		assert.InDelta(t, 89.0, g.WatchedPercentage(), 1e-9)
		assert.ErrorIs(t, g.MarkCompleted(), playback.ErrNotEnoughWatched)
		assert.Equal(t, playback.Playing, g.State())
	})

	t.Run("90 percent completes", func(t *testing.T) {
		g, _ := newGuard(t, 100)
		require.NoError(t, g.Play())
		watchTo(g, 90)
		require.NoError(t, g.MarkCompleted())
		assert.Equal(t, playback.Completed, g.State())
	})

	t.Run("rewinding drops the percentage", func(t *testing.T) {
		g, _ := newGuard(t, 100)
		require.NoError(t, g.Play())
		watchTo(g, 95)
		g.Seek(10)
		assert.ErrorIs(t, g.MarkCompleted(), playback.ErrNotEnoughWatched)
	})
}

func TestGuard_PlayPauseRestart(t *testing.T) {
	g := playback.New()
	assert.ErrorIs(t, g.Play(), playback.ErrNotLoaded)
	assert.ErrorIs(t, g.Load(0), playback.ErrInvalidDuration)

	require.NoError(t, g.Load(60))
	assert.Equal(t, playback.NotStarted, g.State())

	require.NoError(t, g.Play())
	assert.Equal(t, playback.Playing, g.State())
	g.OnTimeUpdate(4)
	g.Pause()
	assert.Equal(t, playback.Paused, g.State())

	g.Restart()
	assert.Equal(t, playback.NotStarted, g.State())
	assert.Zero(t, g.Position())
	assert.Zero(t, g.MaxWatched())
	assert.False(t, g.OnTimeUpdate(30))
}

func TestGuard_PauseWhileBlocked(t *testing.T) {
	g, clock := newGuard(t, 600)
	require.NoError(t, g.Play())
	g.OnTimeUpdate(50)

	g.Pause()
	clock.advance(playback.WarningDuration)
	assert.Equal(t, playback.Paused, g.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "skip_blocked", playback.SkipBlocked.String())
	assert.Equal(t, "completed", playback.Completed.String())
}
