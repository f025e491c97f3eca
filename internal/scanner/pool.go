package scanner

import (
	"runtime"
	"sync"
)

// workerPool runs submitted tasks across a fixed set of goroutines,
// adapted from stojg-playlist-sorter/pool/pool.go's submit-and-wait
// pattern: here it backs the analyzer stage of the scan pipeline
// (spec.md §4.9) instead of genetic-algorithm batch evaluation.
type workerPool struct {
	workers  int
	taskChan chan func()
	workerWg sync.WaitGroup
	taskWg   sync.WaitGroup
}

// newWorkerPool starts a pool sized to numWorkers (0 means runtime.NumCPU,
// per spec.md §6 analyzers.num_parallel_jobs), with the task channel
// buffered to bufferSize.
func newWorkerPool(numWorkers, bufferSize int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	p := &workerPool{
		workers:  numWorkers,
		taskChan: make(chan func(), bufferSize),
	}
	for range numWorkers {
		p.workerWg.Add(1)
		go func() {
			defer p.workerWg.Done()
			for task := range p.taskChan {
				task()
				p.taskWg.Done()
			}
		}()
	}
	return p
}

// submit enqueues a task, blocking if the pool's channel is full.
func (p *workerPool) submit(task func()) {
	p.taskWg.Add(1)
	p.taskChan <- task
}

// wait blocks until every submitted task has completed.
func (p *workerPool) wait() {
	p.taskWg.Wait()
}

// close shuts the pool down and waits for every worker goroutine to exit.
func (p *workerPool) close() {
	close(p.taskChan)
	p.workerWg.Wait()
}
