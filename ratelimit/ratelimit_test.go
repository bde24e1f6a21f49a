package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckAndConsume_WindowBehavior(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewWithClock(func() time.Time { return current })

	const max = 5
	window := 5 * time.Minute

	for i := 0; i < max; i++ {
		assert.True(t, l.CheckAndConsume("k", max, window), "call %d should be allowed", i+1)
	}

	// 6th call inside the window is denied
	assert.False(t, l.CheckAndConsume("k", max, window))

	// denial does not consume: still denied, still denied
	assert.False(t, l.CheckAndConsume("k", max, window))

	// past the reset boundary the window starts fresh at count 1
	current = current.Add(window + time.Second)
	assert.True(t, l.CheckAndConsume("k", max, window))

	// and the fresh window again admits max-1 more
	for i := 0; i < max-1; i++ {
		assert.True(t, l.CheckAndConsume("k", max, window))
	}
	assert.False(t, l.CheckAndConsume("k", max, window))
}

func TestCheckAndConsume_IndependentKeys(t *testing.T) {
	l := New()
	defer l.Close()

	assert.True(t, l.CheckAndConsume("a", 1, time.Minute))
	assert.False(t, l.CheckAndConsume("a", 1, time.Minute))
	assert.True(t, l.CheckAndConsume("b", 1, time.Minute))
}

func TestCheckAndConsume_Concurrent(t *testing.T) {
	l := New()
	defer l.Close()

	const max = 50
	var wg sync.WaitGroup
	allowed := make(chan bool, 200)

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- l.CheckAndConsume("shared", max, time.Minute)
		}()
	}
	wg.Wait()
	close(allowed)

	got := 0
	for ok := range allowed {
		if ok {
			got++
		}
	}
	assert.Equal(t, max, got, "exactly max requests must be admitted under contention")
}

func TestSweep_DropsExpiredRecords(t *testing.T) {
	current := time.Now()
	l := NewWithClock(func() time.Time { return current })

	for i := 0; i < 10; i++ {
		l.CheckAndConsume(fmt.Sprintf("k%d", i), 5, time.Minute)
	}
	assert.Equal(t, 10, l.Len())

	current = current.Add(2 * time.Minute)
	l.sweep()
	assert.Equal(t, 0, l.Len())
}
