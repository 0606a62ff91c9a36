// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import (
	"context"
	"sync"
)

// An Executor runs submitted tasks. Enqueue uses a background Executor
// to run the request and a foreground Executor to deliver the result.
type Executor interface {
	Submit(task func())
}

// The ExecutorFunc type is an adapter to allow the use of ordinary
// functions as executors.
type ExecutorFunc func(task func())

// Submit calls f(task).
func (f ExecutorFunc) Submit(task func()) {
	f(task)
}

// Goroutines runs every task on a new goroutine. It is the default
// background executor.
var Goroutines Executor = ExecutorFunc(func(task func()) { go task() })

// A Loop is a serial executor: tasks run one at a time, in submission
// order, on the goroutine running Run. A Loop plays the role of a
// main thread for callers that need result delivery on one goroutine.
//
// Use NewLoop to make a Loop.
type Loop struct {
	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}
	once  sync.Once
}

// NewLoop returns an empty Loop. Tasks submitted before Run or Start
// is called are queued.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Submit queues a task. It never blocks.
func (l *Loop) Submit(task func()) {
	if task == nil {
		panic("rage: nil task")
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run runs queued tasks on the calling goroutine until ctx is done,
// then returns ctx.Err(). Only one goroutine may call Run.
func (l *Loop) Run(ctx context.Context) error {
	for {
		for task := l.next(); task != nil; task = l.next() {
			task()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Start runs the loop on a dedicated goroutine for the life of the
// process. Calling Start more than once has no further effect.
func (l *Loop) Start() {
	l.once.Do(func() {
		go func() { _ = l.Run(context.Background()) }()
	})
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.tasks) == 0 {
		return nil
	}
	task := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return task
}

// A Pool runs tasks on a fixed number of worker goroutines. The queue
// is unbounded, so Submit never blocks.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []func()
	closed bool
	wg     sync.WaitGroup
}

// NewPool starts a pool with the given number of workers.
func NewPool(workers int) *Pool {
	if workers < 1 {
		panic("rage: pool needs at least one worker")
	}
	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work()
	}
	return p
}

// Submit queues a task. Submitting to a closed pool panics.
func (p *Pool) Submit(task func()) {
	if task == nil {
		panic("rage: nil task")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		panic("rage: submit to closed pool")
	}
	p.tasks = append(p.tasks, task)
	p.cond.Signal()
}

// Close stops accepting tasks, waits for the queued tasks to finish,
// and stops the workers.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) work() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.tasks) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.tasks) == 0 {
			p.mu.Unlock()
			return
		}
		task := p.tasks[0]
		p.tasks[0] = nil
		p.tasks = p.tasks[1:]
		p.mu.Unlock()
		task()
	}
}

var mainLoop = NewLoop()

// defaultForeground returns the package loop, started on first use.
func defaultForeground() Executor {
	mainLoop.Start()
	return mainLoop
}
