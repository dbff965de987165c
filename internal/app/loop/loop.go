package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"wildbound/internal/app/ports"
	"wildbound/pkg/logger"
)

const DefaultQueueSize = 100

var ErrStopped = errors.New("event loop stopped")

// Loop runs posted funcs one at a time on a single goroutine. Game state is
// only touched from inside the loop.
type Loop struct {
	cmds     chan func()
	done     chan struct{}
	stopOnce sync.Once
}

func New(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Loop{
		cmds: make(chan func(), queueSize),
		done: make(chan struct{}),
	}
}

// Run blocks until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) {
	logger.L().WithField("component", "loop").Info("Event loop started")
	defer logger.L().WithField("component", "loop").Info("Event loop stopped")
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return
		case <-l.done:
			return
		case fn := <-l.cmds:
			l.exec(fn)
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().WithFields(logrus.Fields{
				"component": "loop",
				"panic":     r,
			}).Error("Recovered from panic in loop command")
		}
	}()
	fn()
}

func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// Post enqueues fn. It reports false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.cmds <- fn:
		return true
	case <-l.done:
		return false
	}
}

func (l *Loop) Do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	ok := l.Post(func() {
		if err := ctx.Err(); err != nil {
			result <- err
			return
		}
		result <- fn()
	})
	if !ok {
		return ErrStopped
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	}
}

func (l *Loop) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		l.Post(fn)
	})
}

var _ ports.EventLoop = (*Loop)(nil)
