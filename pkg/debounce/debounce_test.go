package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTriggerRunsOnceAfterQuietPeriod(t *testing.T) {
	d := New(30 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, d.Pending())

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())
}

func TestTriggerRunsLatestTask(t *testing.T) {
	d := New(20 * time.Millisecond)
	var got atomic.Value

	d.Trigger(func() { got.Store("first") })
	d.Trigger(func() { got.Store("second") })

	assert.Eventually(t, func() bool { return got.Load() == "second" }, time.Second, 5*time.Millisecond)
}

func TestCancelDropsPendingTask(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	assert.True(t, d.Cancel())
	assert.False(t, d.Cancel())

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
