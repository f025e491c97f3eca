package scanner

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsAllSubmittedTasks(t *testing.T) {
	p := newWorkerPool(4, 10)
	var count int64
	for i := 0; i < 50; i++ {
		p.submit(func() { atomic.AddInt64(&count, 1) })
	}
	p.wait()
	p.close()

	if got := atomic.LoadInt64(&count); got != 50 {
		t.Errorf("count = %d, want 50", got)
	}
}

func TestWorkerPoolDefaultsToNumCPUWhenZero(t *testing.T) {
	p := newWorkerPool(0, 1)
	if p.workers <= 0 {
		t.Errorf("workers = %d, want > 0", p.workers)
	}
	p.close()
}
