package anim

import "math"

// Clock is the host's frame clock. Now returns milliseconds; RequestFrame
// runs f once before the next repaint, on the render thread.
type Clock interface {
	Now() float64
	RequestFrame(f func())
}

// State of a Scheduler.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Scheduler drives one demo's animation loop. Every tick it advances its
// cycles by the elapsed milliseconds, calls the frame function and asks
// the clock for the next tick for as long as its token stays current.
//
// A Scheduler is used from the render thread only.
type Scheduler struct {
	ctl    *RunController
	clock  Clock
	frame  func()
	cycles []*Cycle

	tok  Token
	last float64
	// ticks counts completed frames of the current run.
	ticks int
}

// NewScheduler creates an idle scheduler. A nil controller means
// DefaultRunController.
func NewScheduler(ctl *RunController, clock Clock, frame func(), cycles ...*Cycle) *Scheduler {
	if ctl == nil {
		ctl = DefaultRunController
	}
	return &Scheduler{ctl: ctl, clock: clock, frame: frame, cycles: cycles}
}

// Start toggles the run flag and, if that turned it on, schedules the
// first tick. It does nothing and returns false when this scheduler is
// already running, or when the toggle switched the flag off because some
// other loop was running.
func (s *Scheduler) Start() bool {
	if s.State() == Running {
		return false
	}
	tok, on := s.ctl.Begin()
	if !on {
		s.tok = 0
		return false
	}
	s.tok = tok
	s.ticks = 0
	s.last = math.Floor(s.clock.Now())
	s.clock.RequestFrame(func() { s.tick(tok) })
	return true
}

// Stop clears the run flag, which ends whatever loop is running.
func (s *Scheduler) Stop() {
	s.ctl.Stop()
	s.tok = 0
}

// State reports Running while this scheduler's loop is the live one.
func (s *Scheduler) State() State {
	if s.tok != 0 && s.ctl.Current(s.tok) {
		return Running
	}
	return Idle
}

// Ticks returns the number of frames drawn since the last Start.
func (s *Scheduler) Ticks() int {
	return s.ticks
}

func (s *Scheduler) Cycles() []*Cycle {
	return s.cycles
}

func (s *Scheduler) tick(tok Token) {
	if !s.ctl.Running() || !s.ctl.Current(tok) {
		return
	}
	dt := math.Floor(s.clock.Now()) - s.last
	s.last += dt
	for _, c := range s.cycles {
		c.Add(dt)
	}
	if s.frame != nil {
		s.frame()
	}
	s.ticks++
	if s.ctl.Current(tok) {
		s.clock.RequestFrame(func() { s.tick(tok) })
	}
}
