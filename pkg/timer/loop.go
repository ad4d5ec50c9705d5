package timer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/alertkit/pkg/logger"
)

const defaultQueueSize = 64

// Loop is a single-goroutine event loop. Timers fire on their own goroutines
// but only hand their callback to the loop, which runs callbacks one at a time.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithQueueSize sets how many callbacks may wait before Post blocks.
func WithQueueSize(n int) LoopOption {
	return func(l *Loop) {
		if n > 0 {
			l.tasks = make(chan func(), n)
		}
	}
}

// WithLoopLogger sets the logger used to report recovered panics.
func WithLoopLogger(log *slog.Logger) LoopOption {
	return func(l *Loop) {
		if log != nil {
			l.logger = log
		}
	}
}

// NewLoop creates a Loop. Call Run to start processing.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		tasks:  make(chan func(), defaultQueueSize),
		done:   make(chan struct{}),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run processes callbacks until ctx is done. Callbacks still queued when the
// loop stops are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			l.exec(ctx, fn)
		}
	}
}

// Post queues fn for the loop. It reports false when the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// ScheduleAfter posts fn to the loop once delay has elapsed.
func (l *Loop) ScheduleAfter(delay time.Duration, fn func()) {
	time.AfterFunc(max(delay, 0), func() { l.Post(fn) })
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) stop() {
	l.once.Do(func() { close(l.done) })
}

// exec keeps the loop alive when a callback panics.
func (l *Loop) exec(ctx context.Context, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.LogAttrs(ctx, slog.LevelError, "timer callback panicked",
				logger.Component("timer.loop"),
				logger.Error(fmt.Errorf("panic: %v", r)),
			)
		}
	}()
	fn()
}
