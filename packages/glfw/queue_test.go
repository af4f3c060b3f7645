package glfw

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskQueueFIFO(t *testing.T) {
	var q TaskQueue
	var got []int
	for i := 0; i < 3; i++ {
		q.Post(func() { got = append(got, i) })
	}
	q.Post(nil)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 3, q.Run())
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 0, q.Run())
}

func TestTaskQueueNestedPost(t *testing.T) {
	var q TaskQueue
	var got []string
	q.Post(func() {
		got = append(got, "a")
		q.Post(func() { got = append(got, "c") })
	})
	q.Post(func() { got = append(got, "b") })
	assert.Equal(t, 3, q.Run())
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestTaskQueueConcurrentPost(t *testing.T) {
	var q TaskQueue
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Post(func() {})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, q.Run())
}

func TestFrameQueueDefersRequestsToNextFrame(t *testing.T) {
	var q FrameQueue
	n := 0
	var loop func()
	loop = func() {
		n++
		q.Request(loop)
	}
	q.Request(loop)
	assert.Equal(t, 1, q.Run())
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 1, q.Run())
	assert.Equal(t, 2, n)
}

func TestFrameQueueEmpty(t *testing.T) {
	var q FrameQueue
	q.Request(nil)
	assert.Equal(t, 0, q.Run())
}

func TestFPS(t *testing.T) {
	var f FPS
	for i := 1; i <= 60; i++ {
		f.Update(float64(i) / 60)
	}
	assert.InDelta(t, 60, f.Rate(), 0.001)
	f.Update(1.5)
	assert.InDelta(t, 60, f.Rate(), 0.001)
}

func TestDamageOnlyAfterDraw(t *testing.T) {
	var q FrameQueue
	var d Damage
	assert.False(t, d.Take())

	// a stale tick that returns without drawing
	q.Request(func() {})
	q.Run()
	assert.False(t, d.Take())

	q.Request(func() { d.Mark() })
	q.Run()
	assert.True(t, d.Take())
	assert.False(t, d.Take())
}
