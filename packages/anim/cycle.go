// Package anim holds the animation state shared by the demos: cyclic
// counters, the process-wide run flag and the per-frame scheduler.
package anim

import (
	"fmt"
	"math"
)

// Cycle is a counter that wraps around at Span.
// Value always stays in [0, Span), also when negative amounts are added.
type Cycle struct {
	span  int64
	value int64
	last  int64
	ratio float64
}

// NewCycle returns a Cycle with the given period.
// Fractions are floored and periods below 1 become 1.
func NewCycle(span float64) *Cycle {
	s := int64(math.Floor(span))
	if s < 1 || math.IsNaN(span) {
		s = 1
	}
	return &Cycle{span: s}
}

// Add adds floor(n) to the value, keeping the previous value in Last.
func (c *Cycle) Add(n float64) {
	c.last = c.value
	v := (c.value + int64(math.Floor(n))%c.span) % c.span
	if v < 0 {
		v += c.span
	}
	c.value = v
	c.ratio = float64(c.value) / float64(c.span)
}

func (c *Cycle) Span() int64 {
	return c.span
}

func (c *Cycle) Value() int64 {
	return c.value
}

// Ratio is Value/Span, in [0, 1).
func (c *Cycle) Ratio() float64 {
	return c.ratio
}

// Last is the value before the latest Add.
func (c *Cycle) Last() int64 {
	return c.last
}

// Degree formats 360*Ratio as three integer digits, a point and one
// decimal, e.g. "045.0".
func (c *Cycle) Degree() string {
	return fmt.Sprintf("%05.1f", 360*c.ratio)
}
