// Package playback следит за просмотром урока: не даёт перематывать вперёд
// дальше уже просмотренного и разрешает завершение только после 90% видео.
//
// Guard не потокобезопасен: события плеера приходят из одного цикла.
package playback

import (
	"errors"
	"math"
	"time"
)

// State — состояние просмотра.
type State int

const (
	NotStarted State = iota
	Playing
	Paused
	SkipBlocked
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case SkipBlocked:
		return "skip_blocked"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

const (
	// Tolerance — на сколько секунд позиция может обгонять просмотренное
	// из-за дрожания декодера.
	Tolerance = 5.0
	// WarningDuration — сколько показывается предупреждение о перемотке.
	WarningDuration = 3 * time.Second
	// CompletionThreshold — минимальный процент просмотра для завершения.
	CompletionThreshold = 90.0
)

var (
	ErrNotLoaded        = errors.New("video duration is not loaded")
	ErrInvalidDuration  = errors.New("video duration must be positive")
	ErrNotEnoughWatched = errors.New("at least 90% of the video must be watched")
)

// Guard — состояние просмотра одного урока.
type Guard struct {
	duration   float64
	position   float64
	maxWatched float64

	state        State
	beforeBlock  State
	warningUntil time.Time

	now func() time.Time
}

// Option настраивает Guard.
type Option func(*Guard)

// WithClock подменяет часы, по которым гаснет предупреждение.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// New создаёт Guard в состоянии NotStarted.
func New(opts ...Option) *Guard {
	g := &Guard{state: NotStarted, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load задаёт длительность видео в секундах и сбрасывает прогресс.
func (g *Guard) Load(duration float64) error {
	if duration <= 0 {
		return ErrInvalidDuration
	}
	g.duration = duration
	g.reset()
	return nil
}

// Play запускает или возобновляет просмотр. Завершённый урок остаётся Completed.
func (g *Guard) Play() error {
	if g.duration == 0 {
		return ErrNotLoaded
	}
	g.settle()
	switch g.state {
	case Completed:
	case SkipBlocked:
		g.beforeBlock = Playing
	default:
		g.state = Playing
	}
	return nil
}

// Pause приостанавливает просмотр.
func (g *Guard) Pause() {
	g.settle()
	switch g.state {
	case Playing:
		g.state = Paused
	case SkipBlocked:
		g.beforeBlock = Paused
	}
}

// OnTimeUpdate обрабатывает новую позицию от плеера. Возвращает false, если
// позиция обгоняет просмотренное больше чем на Tolerance: тогда позиция
// возвращается к maxWatched, а maxWatched не меняется.
func (g *Guard) OnTimeUpdate(t float64) bool {
	return g.move(t)
}

// Seek обрабатывает ручную перемотку по тем же правилам. Перемотка назад
// всегда разрешена.
func (g *Guard) Seek(t float64) bool {
	return g.move(t)
}

func (g *Guard) move(t float64) bool {
	g.settle()
	if math.IsNaN(t) {
		return false
	}
	t = g.clamp(t)
	if t > g.maxWatched+Tolerance {
		g.position = g.maxWatched
		g.block()
		return false
	}
	g.position = t
	if t > g.maxWatched {
		g.maxWatched = t
	}
	return true
}

// MarkCompleted завершает урок, если просмотрено не меньше CompletionThreshold процентов.
func (g *Guard) MarkCompleted() error {
	g.settle()
	if g.WatchedPercentage() < CompletionThreshold {
		return ErrNotEnoughWatched
	}
	g.state = Completed
	g.warningUntil = time.Time{}
	return nil
}

// Restart возвращает просмотр в начало.
func (g *Guard) Restart() {
	g.reset()
}

// State возвращает текущее состояние; SkipBlocked снимается по истечении WarningDuration.
func (g *Guard) State() State {
	g.settle()
	return g.state
}

// WarningVisible сообщает, показывается ли предупреждение о перемотке.
func (g *Guard) WarningVisible() bool {
	return g.State() == SkipBlocked
}

// Position — текущая позиция в секундах.
func (g *Guard) Position() float64 { return g.position }

// MaxWatched — наибольшая просмотренная позиция в секундах.
func (g *Guard) MaxWatched() float64 { return g.maxWatched }

// Duration — длительность видео в секундах.
func (g *Guard) Duration() float64 { return g.duration }

// WatchedPercentage — текущая позиция в процентах от длительности.
func (g *Guard) WatchedPercentage() float64 {
	if g.duration == 0 {
		return 0
	}
	return g.position * 100 / g.duration
}

func (g *Guard) clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if g.duration > 0 && t > g.duration {
		return g.duration
	}
	return t
}

func (g *Guard) block() {
	if g.state != SkipBlocked {
		g.beforeBlock = g.state
	}
	g.state = SkipBlocked
	g.warningUntil = g.now().Add(WarningDuration)
}

func (g *Guard) settle() {
	if g.state == SkipBlocked && !g.now().Before(g.warningUntil) {
		g.state = g.beforeBlock
		g.warningUntil = time.Time{}
	}
}

func (g *Guard) reset() {
	g.position = 0
	g.maxWatched = 0
	g.state = NotStarted
	g.beforeBlock = NotStarted
	g.warningUntil = time.Time{}
}
