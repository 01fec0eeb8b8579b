package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMapKeepsOrder(t *testing.T) {
	out := Map(context.Background(), 3, 5, func(ctx context.Context, i int) int {
		// Later indices finish first.
		time.Sleep(time.Duration(5-i) * time.Millisecond)
		return i * 10
	})

	assert.Equal(t, []int{0, 10, 20, 30, 40}, out)
}

func TestMapRespectsLimit(t *testing.T) {
	var inFlight, peak int32
	Map(context.Background(), 2, 8, func(ctx context.Context, i int) struct{} {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return struct{}{}
	})

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestMapEmpty(t *testing.T) {
	out := Map(context.Background(), 1, 0, func(ctx context.Context, i int) string { return "x" })
	assert.Nil(t, out)
}
