// Package parallel runs shape generation jobs on a fixed set of workers.
//
// Every job receives the index of the worker executing it, so callers can
// keep one thread-confined engine per worker and reuse it across jobs.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Job is a unit of work. worker is the index of the executing worker, in
// [0, Workers()).
type Job func(worker int)

// WorkerPool is a pool of goroutines with per-worker queues.
//
// Each worker pulls from its own queue and steals from the others when its
// queue is empty. A stolen job runs with the thief's worker index.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan Job
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool creates a pool and starts its workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan Job, workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan Job, queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drainQueue(id, myQueue)
			return
		case job := <-myQueue:
			job(id)
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen(id)
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(id, myQueue)
				return
			case job := <-myQueue:
				job(id)
			}
		}
	}
}

func (p *WorkerPool) drainQueue(id int, queue chan Job) {
	for {
		select {
		case job := <-queue:
			job(id)
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(myID int) Job {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case job := <-p.workQueues[i]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll distributes jobs round-robin and waits for all of them.
// Nil jobs are skipped. After Close, ExecuteAll does nothing.
func (p *WorkerPool) ExecuteAll(jobs []Job) {
	if len(jobs) == 0 || !p.running.Load() {
		return
	}

	var completion sync.WaitGroup
	for i, job := range jobs {
		if job == nil {
			continue
		}
		completion.Add(1)
		wrapped := func(worker int) {
			defer completion.Done()
			job(worker)
		}
		select {
		case p.workQueues[i%p.workers] <- wrapped:
		case <-p.done:
			completion.Done()
		}
	}
	completion.Wait()
}

// Close stops the workers after the queued jobs finish.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }
