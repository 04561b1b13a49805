// Package datafetchers keeps values that are slow to read refreshed in the background.
package datafetchers

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrNoValue = errors.New("no cached value has ever been retrieved")
	ErrClosed  = errors.New("fetcher has been closed")
)

// Fetcher provides the latest prefetched value.
type Fetcher[T any] interface {
	Get() (T, time.Time, error)
	GetRefetchInterval() time.Duration
}

// IntervalFetcher calls updateFn every interval and serves the last successful result.
// It may return stale data if updateFn takes longer than the interval.
type IntervalFetcher[T any] struct {
	updateFn func(ctx context.Context) (T, error)
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	firstResult     chan struct{}
	firstResultOnce sync.Once

	mutex             sync.RWMutex
	lastRetrievedTime time.Time
	lastErr           error
	cache             T
}

var _ Fetcher[bool] = (*IntervalFetcher[bool])(nil)

// NewIntervalFetcher starts fetching immediately and then every interval until Close.
func NewIntervalFetcher[T any](updateFn func(ctx context.Context) (T, error), interval time.Duration) *IntervalFetcher[T] {
	if interval <= 0 {
		panic("interval must be greater than 0")
	}

	ctx, cancel := context.WithCancel(context.Background())
	fetcher := &IntervalFetcher[T]{
		updateFn:    updateFn,
		interval:    interval,
		ctx:         ctx,
		cancel:      cancel,
		firstResult: make(chan struct{}),
	}

	go fetcher.run()

	return fetcher
}

func (p *IntervalFetcher[T]) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.prefetch()
	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.prefetch()
		}
	}
}

func (p *IntervalFetcher[T]) prefetch() {
	newValue, err := p.updateFn(p.ctx)

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// Failed updates keep the previous value so that it ages, signaling staleness to the caller.
	p.lastErr = err
	if err != nil {
		return
	}

	p.lastRetrievedTime = time.Now()
	p.cache = newValue
	p.firstResultOnce.Do(func() { close(p.firstResult) })
}

// Get returns the latest value and the time it was retrieved.
func (p *IntervalFetcher[T]) Get() (T, time.Time, error) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if p.ctx.Err() != nil {
		var zero T
		return zero, time.Time{}, ErrClosed
	}
	if p.lastRetrievedTime.IsZero() {
		if p.lastErr != nil {
			return p.cache, time.Time{}, errors.Join(ErrNoValue, p.lastErr)
		}
		return p.cache, time.Time{}, ErrNoValue
	}

	return p.cache, p.lastRetrievedTime, nil
}

// IsStale returns true if more than two intervals passed since the last successful update.
func (p *IntervalFetcher[T]) IsStale() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.lastRetrievedTime.IsZero() || time.Since(p.lastRetrievedTime) > 2*p.interval
}

// WaitUntilFirstResult blocks until the first successful update or until ctx is done.
func (p *IntervalFetcher[T]) WaitUntilFirstResult(ctx context.Context) error {
	select {
	case <-p.firstResult:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the background updates.
func (p *IntervalFetcher[T]) Close() {
	p.cancel()
}

func (p *IntervalFetcher[T]) GetRefetchInterval() time.Duration {
	return p.interval
}
