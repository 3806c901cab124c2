package latency

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithoutDelayCompletesInline(t *testing.T) {
	var calls int32
	task := Run(0, func() (int, error) {
		atomic.AddInt32(&calls, 1)
		return 42, nil
	})

	select {
	case <-task.Done():
	default:
		t.Fatal("zero-delay task should complete before Run returns")
	}

	v, err := task.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	// a second wait sees the same single result
	v, err = task.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRunDeliversError(t *testing.T) {
	boom := errors.New("Fondos insuficientes")
	_, err := Run(time.Millisecond, func() (string, error) { return "", boom }).Wait(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestCancelledWaiterDoesNotStopOperation(t *testing.T) {
	var applied atomic.Bool
	task := Run(20*time.Millisecond, func() (struct{}, error) {
		applied.Store(true)
		return struct{}{}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := task.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("operation never ran")
	}
	assert.True(t, applied.Load())
}

func TestDo(t *testing.T) {
	v, err := Do(context.Background(), Simulator{Delay: time.Millisecond}, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestDoTimesOut(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := Do(ctx, Simulator{Delay: 200 * time.Millisecond}, func() (int, error) { return 1, nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
