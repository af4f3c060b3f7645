package render

import "sync"

// Scope releases GPU resources when a demo is torn down. Disposers run in
// reverse order of registration, once.
type Scope struct {
	mu  sync.Mutex
	fns []func()
}

// Defer registers f to run on Close.
func (s *Scope) Defer(f func()) {
	s.mu.Lock()
	s.fns = append(s.fns, f)
	s.mu.Unlock()
}

// Close runs the registered disposers. Calling Close on a nil Scope is a
// no-op.
func (s *Scope) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	fns := s.fns
	s.fns = nil
	s.mu.Unlock()
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
