package workerpool

import (
	"context"
	"fmt"
	"sync"
)

// Job represents the job to be run
type Job[T any] struct {
	Index int
	Task  func(ctx context.Context) (T, error)
}

// Result represents the result of a job
type JobResult[T any] struct {
	Index  int
	Result T
	Err    error
}

// PanicError is returned for a job whose task panicked.
type PanicError struct {
	Index int
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("job %d panicked: %v", e.Index, e.Value)
}

// Dispatcher runs jobs on a bounded number of workers.
type Dispatcher[T any] struct {
	MaxWorkers int
}

func NewDispatcher[T any](maxWorkers int) *Dispatcher[T] {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Dispatcher[T]{MaxWorkers: maxWorkers}
}

// Run executes every task and returns the results in task order.
// Tasks not started before ctx is done fail with the context error.
// A panicking task fails with PanicError and leaves the other jobs running.
func (d *Dispatcher[T]) Run(ctx context.Context, tasks []func(ctx context.Context) (T, error)) []JobResult[T] {
	results := make([]JobResult[T], len(tasks))
	if len(tasks) == 0 {
		return results
	}

	jobQueue := make(chan Job[T])

	workers := min(d.MaxWorkers, len(tasks))
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobQueue {
				result := JobResult[T]{Index: job.Index}
				if err := ctx.Err(); err != nil {
					result.Err = err
				} else {
					result.Result, result.Err = runJob(ctx, job)
				}

				// Each index is written by exactly one worker.
				results[job.Index] = result
			}
		}()
	}

	for i, task := range tasks {
		jobQueue <- Job[T]{Index: i, Task: task}
	}
	close(jobQueue)

	wg.Wait()

	return results
}

func runJob[T any](ctx context.Context, job Job[T]) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result, err = zero, PanicError{Index: job.Index, Value: r}
		}
	}()
	return job.Task(ctx)
}
