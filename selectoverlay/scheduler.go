package selectoverlay

import (
	"sync"
	"time"
)

// Timer is a pending task returned by a Scheduler.
type Timer interface {
	// Stop cancels the task. It reports whether the task was still pending.
	Stop() bool
}

// Scheduler runs delayed tasks and supplies the clock used for menu
// animation. Tasks must run on the goroutine that owns the overlays.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// TimeScheduler is a Scheduler backed by wall-clock timers. A fired task
// never runs on the timer goroutine: it is handed to the post function,
// or without one it waits in a queue until the owner calls RunPending.
//
// Only the timer goroutines and RunPending may run concurrently; the
// tasks themselves always run where post or RunPending runs them.
type TimeScheduler struct {
	post  func(func())
	ready chan struct{}

	mu    sync.Mutex
	queue []*timeTask
}

type timeTask struct {
	s     *TimeScheduler
	timer *time.Timer
	f     func()
	done  bool // guarded by s.mu
}

// NewTimeScheduler returns a Scheduler using wall-clock timers. post
// delivers fired tasks to the goroutine that owns the overlay, typically
// by enqueueing them on a UI event loop. If post is nil, fired tasks are
// queued and Ready is signalled; the owner runs them with RunPending.
func NewTimeScheduler(post func(func())) *TimeScheduler {
	return &TimeScheduler{post: post, ready: make(chan struct{}, 1)}
}

// Now returns the current time.
func (s *TimeScheduler) Now() time.Time { return time.Now() }

// AfterFunc arranges for f to run on the owner goroutine once d has
// elapsed.
func (s *TimeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &timeTask{s: s, f: f}
	t.timer = time.AfterFunc(d, t.fire)
	return t
}

// Ready is signalled when a fired task is waiting for RunPending.
func (s *TimeScheduler) Ready() <-chan struct{} { return s.ready }

// RunPending runs every queued task on the calling goroutine and returns
// how many ran. Tasks stopped after they fired are skipped.
func (s *TimeScheduler) RunPending() int {
	s.mu.Lock()
	q := s.queue
	s.queue = nil
	s.mu.Unlock()

	n := 0
	for _, t := range q {
		if t.run() {
			n++
		}
	}
	return n
}

// fire runs on the timer goroutine.
func (t *timeTask) fire() {
	s := t.s
	if s.post != nil {
		s.post(func() { t.run() })
		return
	}
	s.mu.Lock()
	if t.done {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, t)
	s.mu.Unlock()
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

func (t *timeTask) run() bool {
	t.s.mu.Lock()
	if t.done {
		t.s.mu.Unlock()
		return false
	}
	t.done = true
	t.s.mu.Unlock()
	t.f()
	return true
}

// Stop cancels the task, including one that fired but has not run yet.
func (t *timeTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.timer.Stop()
	return true
}

// pendingRunner is implemented by schedulers that queue fired tasks.
type pendingRunner interface {
	RunPending() int
}
