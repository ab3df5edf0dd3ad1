// Package timer keeps the cooking timers and counts them down once per tick.
package timer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pantrychef/internal/recipe"
)

var (
	// ErrNotFound is returned for an unknown timer id.
	ErrNotFound = errors.New("timer not found")
	// ErrInvalidDuration is returned when a timer would last less than a minute.
	ErrInvalidDuration = errors.New("timer duration must be at least one minute")
	// ErrCompleted is returned when starting a timer that already finished.
	ErrCompleted = errors.New("timer already completed")
)

// Timer is a named countdown. Durations are in seconds.
type Timer struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DurationSeconds  int    `json:"durationSeconds"`
	RemainingSeconds int    `json:"remainingSeconds"`
	IsActive         bool   `json:"isActive"`
	IsCompleted      bool   `json:"isCompleted"`
}

// Option configures the board.
type Option func(*Board)

// WithIDFunc overrides how timer ids are generated.
func WithIDFunc(fn func() string) Option {
	return func(b *Board) {
		b.newID = fn
	}
}

// WithOnComplete registers a callback run once for each timer that reaches zero.
// It is called without the board lock held.
func WithOnComplete(fn func(Timer)) Option {
	return func(b *Board) {
		b.onComplete = fn
	}
}

// Board holds the timers in creation order. Safe for concurrent use.
type Board struct {
	mu         sync.Mutex
	timers     []*Timer
	newID      func() string
	onComplete func(Timer)
	log        *zap.Logger
}

// NewBoard creates an empty board.
func NewBoard(log *zap.Logger, opts ...Option) *Board {
	b := &Board{
		newID: uuid.NewString,
		log:   log,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add creates a paused timer of the given length.
func (b *Board) Add(name string, minutes int) (Timer, error) {
	if minutes < 1 {
		return Timer{}, ErrInvalidDuration
	}

	t := &Timer{
		ID:               b.newID(),
		Name:             name,
		DurationSeconds:  minutes * 60,
		RemainingSeconds: minutes * 60,
	}

	b.mu.Lock()
	b.timers = append(b.timers, t)
	b.mu.Unlock()

	b.log.Debug("timer added", zap.String("id", t.ID), zap.String("name", name), zap.Int("minutes", minutes))
	return *t, nil
}

// AddFromStep creates a timer for a recipe step that has a known duration.
func (b *Board) AddFromStep(step recipe.Step) (Timer, error) {
	return b.Add(stepName(step), step.Time)
}

// Start resumes counting down the timer.
func (b *Board) Start(id string) (Timer, error) {
	return b.update(id, func(t *Timer) error {
		if t.IsCompleted {
			return ErrCompleted
		}
		t.IsActive = true
		return nil
	})
}

// Pause stops counting down the timer.
func (b *Board) Pause(id string) (Timer, error) {
	return b.update(id, func(t *Timer) error {
		t.IsActive = false
		return nil
	})
}

// Remove deletes the timer.
func (b *Board) Remove(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, t := range b.timers {
		if t.ID == id {
			b.timers = append(b.timers[:i], b.timers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// List returns a snapshot of all timers.
func (b *Board) List() []Timer {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Timer, 0, len(b.timers))
	for _, t := range b.timers {
		out = append(out, *t)
	}
	return out
}

// Tick advances every active timer by one second and returns the timers that
// completed on this tick.
func (b *Board) Tick() []Timer {
	b.mu.Lock()
	var done []Timer
	for _, t := range b.timers {
		if !t.IsActive || t.RemainingSeconds <= 0 {
			continue
		}
		t.RemainingSeconds--
		if t.RemainingSeconds == 0 {
			t.IsActive = false
			t.IsCompleted = true
			done = append(done, *t)
		}
	}
	b.mu.Unlock()

	for _, t := range done {
		b.log.Info("timer completed", zap.String("id", t.ID), zap.String("name", t.Name))
		if b.onComplete != nil {
			b.onComplete(t)
		}
	}
	return done
}

// Run calls Tick every interval until ctx is done. Blocking.
func (b *Board) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	b.log.Info("timer board started", zap.Duration("tick", interval))
	for {
		select {
		case <-ctx.Done():
			b.log.Info("timer board stopped")
			return
		case <-ticker.C:
			b.Tick()
		}
	}
}

func (b *Board) update(id string, fn func(*Timer) error) (Timer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range b.timers {
		if t.ID == id {
			if err := fn(t); err != nil {
				return Timer{}, err
			}
			return *t, nil
		}
	}
	return Timer{}, ErrNotFound
}

func stepName(step recipe.Step) string {
	const maxLen = 40
	name := step.Instruction
	if r := []rune(name); len(r) > maxLen {
		name = string(r[:maxLen]) + "..."
	}
	return name
}
