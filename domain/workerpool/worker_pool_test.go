package workerpool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MrCuPper/synapse-contracts/domain/workerpool"
)

func TestDispatcherRun_PreservesOrder(t *testing.T) {
	dispatcher := workerpool.NewDispatcher[int](3)

	tasks := make([]func(ctx context.Context) (int, error), 10)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context) (int, error) {
			// later tasks finish first
			time.Sleep(time.Duration(10-i) * time.Millisecond)
			if i == 4 {
				return 0, errors.New("test error")
			}
			return i * i, nil
		}
	}

	results := dispatcher.Run(context.Background(), tasks)
	require.Len(t, results, len(tasks))

	for i, result := range results {
		require.Equal(t, i, result.Index)
		if i == 4 {
			require.EqualError(t, result.Err, "test error")
			continue
		}
		require.NoError(t, result.Err)
		require.Equal(t, i*i, result.Result)
	}
}

func TestDispatcherRun_BoundsConcurrency(t *testing.T) {
	const maxWorkers = 2
	dispatcher := workerpool.NewDispatcher[struct{}](maxWorkers)

	var running, maxRunning atomic.Int32
	tasks := make([]func(ctx context.Context) (struct{}, error), 8)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) (struct{}, error) {
			current := running.Add(1)
			for {
				observed := maxRunning.Load()
				if current <= observed || maxRunning.CompareAndSwap(observed, current) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return struct{}{}, nil
		}
	}

	dispatcher.Run(context.Background(), tasks)

	require.LessOrEqual(t, maxRunning.Load(), int32(maxWorkers))
}

func TestDispatcherRun_CanceledContext(t *testing.T) {
	dispatcher := workerpool.NewDispatcher[int](0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var called atomic.Bool
	results := dispatcher.Run(ctx, []func(ctx context.Context) (int, error){
		func(ctx context.Context) (int, error) {
			called.Store(true)
			return 1, nil
		},
	})

	require.False(t, called.Load())
	require.ErrorIs(t, results[0].Err, context.Canceled)

	require.Empty(t, dispatcher.Run(context.Background(), nil))
}

func TestDispatcherRun_RecoversPanic(t *testing.T) {
	dispatcher := workerpool.NewDispatcher[int](1)

	results := dispatcher.Run(context.Background(), []func(ctx context.Context) (int, error){
		func(ctx context.Context) (int, error) { return 1, nil },
		func(ctx context.Context) (int, error) { panic("Int overflow") },
		func(ctx context.Context) (int, error) { return 3, nil },
	})
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	require.Equal(t, 1, results[0].Result)

	var panicErr workerpool.PanicError
	require.ErrorAs(t, results[1].Err, &panicErr)
	require.Equal(t, 1, panicErr.Index)
	require.Equal(t, "Int overflow", panicErr.Value)
	require.Zero(t, results[1].Result)

	require.NoError(t, results[2].Err)
	require.Equal(t, 3, results[2].Result)
}
