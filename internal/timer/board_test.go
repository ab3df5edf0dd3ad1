package timer

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pantrychef/internal/recipe"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func TestBoard_AddAndList(t *testing.T) {
	b := NewBoard(zap.NewNop(), WithIDFunc(sequentialIDs()))

	tm, err := b.Add("Pasta", 2)
	require.NoError(t, err)
	assert.Equal(t, Timer{ID: "t1", Name: "Pasta", DurationSeconds: 120, RemainingSeconds: 120}, tm)

	_, err = b.Add("Nothing", 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	assert.Len(t, b.List(), 1)
}

func TestBoard_TickOnlyActive(t *testing.T) {
	b := NewBoard(zap.NewNop(), WithIDFunc(sequentialIDs()))
	b.Add("a", 1)
	b.Add("b", 1)

	_, err := b.Start("t1")
	require.NoError(t, err)

	b.Tick()
	b.Tick()

	timers := b.List()
	assert.Equal(t, 58, timers[0].RemainingSeconds)
	assert.Equal(t, 60, timers[1].RemainingSeconds)

	_, err = b.Pause("t1")
	require.NoError(t, err)
	b.Tick()
	assert.Equal(t, 58, b.List()[0].RemainingSeconds)
}

func TestBoard_CompletesExactlyOnce(t *testing.T) {
	var mu sync.Mutex
	var completed []string
	b := NewBoard(zap.NewNop(), WithIDFunc(sequentialIDs()), WithOnComplete(func(tm Timer) {
		mu.Lock()
		defer mu.Unlock()
		completed = append(completed, tm.ID)
	}))
	b.Add("eggs", 1)
	b.Start("t1")

	var done []Timer
	for i := 0; i < 65; i++ {
		done = append(done, b.Tick()...)
	}

	require.Len(t, done, 1)
	assert.Equal(t, []string{"t1"}, completed)

	tm := b.List()[0]
	assert.Equal(t, 0, tm.RemainingSeconds)
	assert.False(t, tm.IsActive)
	assert.True(t, tm.IsCompleted)

	_, err := b.Start("t1")
	assert.ErrorIs(t, err, ErrCompleted)
}

func TestBoard_Remove(t *testing.T) {
	b := NewBoard(zap.NewNop(), WithIDFunc(sequentialIDs()))
	b.Add("a", 1)
	b.Add("b", 1)

	require.NoError(t, b.Remove("t1"))
	assert.ErrorIs(t, b.Remove("t1"), ErrNotFound)

	timers := b.List()
	require.Len(t, timers, 1)
	assert.Equal(t, "t2", timers[0].ID)

	_, err := b.Start("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoard_AddFromStep(t *testing.T) {
	b := NewBoard(zap.NewNop(), WithIDFunc(sequentialIDs()))

	tm, err := b.AddFromStep(recipe.Step{Step: 3, Instruction: "Bake for 25 minutes until golden and crisp at the edges", Time: 25})
	require.NoError(t, err)
	assert.Equal(t, 1500, tm.DurationSeconds)
	assert.Equal(t, "Bake for 25 minutes until golden and cri...", tm.Name)

	_, err = b.AddFromStep(recipe.Step{Step: 1, Instruction: "Chop onions"})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestBoard_Run(t *testing.T) {
	b := NewBoard(zap.NewNop(), WithIDFunc(sequentialIDs()))
	b.Add("quick", 1)
	b.Start("t1")

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		b.Run(ctx, time.Millisecond)
		close(stopped)
	}()

	assert.Eventually(t, func() bool {
		return b.List()[0].IsCompleted
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-stopped
}
