package loop

import (
	"context"
	"sort"
	"sync"
	"time"

	"wildbound/internal/app/ports"
)

// Manual is a deterministic EventLoop for tests. Do runs inline and After
// queues work until Advance moves the fake clock past its deadline.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []timer
}

type timer struct {
	at  time.Duration
	seq int
	fn  func()
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Do(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn()
}

func (m *Manual) After(d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.pending = append(m.pending, timer{at: m.now + d, seq: m.seq, fn: fn})
}

func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Advance runs every timer due within d, in deadline order. Timers posted by
// those callbacks run too when they fall inside the window.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	ran := 0
	for {
		m.mu.Lock()
		sort.Slice(m.pending, func(i, j int) bool {
			if m.pending[i].at != m.pending[j].at {
				return m.pending[i].at < m.pending[j].at
			}
			return m.pending[i].seq < m.pending[j].seq
		})
		if len(m.pending) == 0 || m.pending[0].at > target {
			m.now = target
			m.mu.Unlock()
			return ran
		}
		next := m.pending[0]
		m.pending = m.pending[1:]
		m.now = next.at
		m.mu.Unlock()

		next.fn()
		ran++
	}
}

var _ ports.EventLoop = (*Manual)(nil)
