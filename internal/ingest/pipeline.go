package ingest

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/event"
	"github.com/fuyurina/sellerhub/internal/metrics"
)

// Pipeline is the explicit fire-and-forget boundary between the
// webhook HTTP handler and background processing: the handler enqueues
// and returns, workers drain the queue. No ordering is guaranteed
// across deliveries.
type Pipeline struct {
	dispatcher *Dispatcher
	queue      chan event.Inbound
	workers    int
	logger     *zap.Logger

	mu      sync.Mutex
	started bool
	stopped bool
	wg      sync.WaitGroup
}

func NewPipeline(dispatcher *Dispatcher, queueSize, workers int, logger *zap.Logger) *Pipeline {
	if queueSize <= 0 {
		queueSize = 256
	}
	if workers <= 0 {
		workers = 4
	}
	return &Pipeline{
		dispatcher: dispatcher,
		queue:      make(chan event.Inbound, queueSize),
		workers:    workers,
		logger:     logger,
	}
}

// Start launches the worker goroutines
func (p *Pipeline) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return fmt.Errorf("pipeline already started")
	}
	p.started = true

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work(i)
	}

	p.logger.Info("Ingest pipeline started",
		zap.Int("workers", p.workers),
		zap.Int("queue_size", cap(p.queue)),
	)
	return nil
}

// Enqueue hands one delivery to the background workers. Never blocks:
// when the queue is saturated the delivery is dropped and counted; the
// marketplace redelivers on missing acknowledgment patterns anyway.
func (p *Pipeline) Enqueue(in event.Inbound) bool {
	p.mu.Lock()
	if p.stopped || !p.started {
		p.mu.Unlock()
		return false
	}
	select {
	case p.queue <- in:
		p.mu.Unlock()
		metrics.QueueDepth.Set(float64(len(p.queue)))
		return true
	default:
		p.mu.Unlock()
		metrics.QueueDropped.Inc()
		p.logger.Error("Task queue full, dropping webhook delivery",
			zap.Int("code", in.Code),
			zap.Int64("shop_id", in.ShopID),
		)
		return false
	}
}

// Stop closes the queue and waits for workers to drain it. In-flight
// deliveries are never cancelled once started.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	if !p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info("Ingest pipeline stopped")
}

// Depth reports the current queue backlog
func (p *Pipeline) Depth() int {
	return len(p.queue)
}

func (p *Pipeline) work(id int) {
	defer p.wg.Done()
	for in := range p.queue {
		metrics.QueueDepth.Set(float64(len(p.queue)))
		p.dispatcher.Dispatch(context.Background(), in)
	}
	p.logger.Debug("Ingest worker exiting", zap.Int("worker", id))
}
