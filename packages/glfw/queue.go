package glfw

import "sync"

// TaskQueue holds functions that must run on the main thread. Post may be
// called from any goroutine and never blocks; Run drains what is queued
// on the calling (main) thread.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *TaskQueue) Post(f func()) {
	if f == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, f)
	q.mu.Unlock()
}

// Run executes queued tasks in FIFO order until the queue is empty,
// including tasks posted by the tasks themselves. It returns the number
// of tasks run.
func (q *TaskQueue) Run() int {
	n := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return n
		}
		f := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()
		f()
		n++
	}
}

func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// FrameQueue collects frame callbacks. Callbacks requested while a frame
// is being served are deferred to the next frame.
type FrameQueue struct {
	mu      sync.Mutex
	pending []func()
}

func (q *FrameQueue) Request(f func()) {
	if f == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, f)
	q.mu.Unlock()
}

// Run serves one frame and returns the number of callbacks invoked.
func (q *FrameQueue) Run() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, f := range batch {
		f()
	}
	return len(batch)
}

func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// FPS averages the frame rate over windows of at least one second.
type FPS struct {
	rate  float64
	prev  float64
	count float64
}

// Update counts a frame at time now (seconds) and returns the current
// estimate.
func (f *FPS) Update(now float64) float64 {
	f.count++
	if dt := now - f.prev; dt >= 1 {
		f.rate = f.count / dt
		f.count = 0
		f.prev = now
	}
	return f.rate
}

func (f *FPS) Rate() float64 { return f.rate }

// Damage records whether anything was drawn since it was last taken.
type Damage struct {
	mu    sync.Mutex
	dirty bool
}

func (d *Damage) Mark() {
	d.mu.Lock()
	d.dirty = true
	d.mu.Unlock()
}

// Take reports whether Mark was called since the previous Take.
func (d *Damage) Take() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	dirty := d.dirty
	d.dirty = false
	return dirty
}
