package anim

import "sync"

// Token identifies one started animation loop.
// The zero Token is never current.
type Token uint64

// RunController is the single "an animation is running" flag shared by
// every demo. Starting a loop mints a new generation; a loop keeps
// rescheduling itself only while its token is the current one, so the
// most recently started loop wins.
type RunController struct {
	mu      sync.Mutex
	running bool
	gen     Token
}

// DefaultRunController is the process-wide controller used by the demos.
var DefaultRunController = &RunController{}

// Toggle flips the flag and returns its new value.
func (rc *RunController) Toggle() bool {
	_, on := rc.toggle()
	return on
}

// Begin is Toggle that also returns the token minted when the flag went
// from false to true. When the flag went to false the token is zero.
func (rc *RunController) Begin() (Token, bool) {
	return rc.toggle()
}

func (rc *RunController) toggle() (Token, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.running = !rc.running
	if !rc.running {
		rc.gen++
		return 0, false
	}
	rc.gen++
	return rc.gen, true
}

// Stop forces the flag to false and invalidates the current token.
func (rc *RunController) Stop() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.running {
		rc.gen++
	}
	rc.running = false
}

// Running reports the flag.
func (rc *RunController) Running() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.running
}

// Current reports whether tok belongs to the loop started last and the
// flag is still set.
func (rc *RunController) Current(tok Token) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.running && tok != 0 && tok == rc.gen
}
