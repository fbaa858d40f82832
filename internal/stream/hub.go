// Package stream implements the push side of the dashboard: a
// broadcast hub over live SSE subscribers and the rate limiter guarding
// the subscription endpoint.
package stream

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/metrics"
)

// Mirror receives a copy of every broadcast frame payload. Used to
// bridge fan-out to an external broker for multi-instance deployments.
type Mirror interface {
	Publish(ctx context.Context, body []byte) error
}

// Subscriber is one live push connection. Frames are delivered through
// a buffered channel; a subscriber whose buffer is full is considered
// dead and removed from the hub.
type Subscriber struct {
	ID     uuid.UUID
	frames chan []byte
	closed bool
}

// Frames is the subscriber's delivery channel. Closed by the hub on
// unregister.
func (s *Subscriber) Frames() <-chan []byte {
	return s.frames
}

// Hub is the process-wide registry of push subscribers. Explicitly
// constructed and injected; tests run isolated instances.
type Hub struct {
	mu          sync.Mutex
	subscribers map[*Subscriber]struct{}
	buffer      int
	mirror      Mirror
	logger      *zap.Logger
	closed      bool
}

func NewHub(buffer int, logger *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
		buffer:      buffer,
		logger:      logger,
	}
}

// SetMirror attaches the optional broker bridge
func (h *Hub) SetMirror(m Mirror) {
	h.mu.Lock()
	h.mirror = m
	h.mu.Unlock()
}

// Register adds a new subscriber to the hub
func (h *Hub) Register() *Subscriber {
	sub := &Subscriber{
		ID:     uuid.New(),
		frames: make(chan []byte, h.buffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(sub.frames)
		sub.closed = true
		return sub
	}
	h.subscribers[sub] = struct{}{}
	count := len(h.subscribers)
	h.mu.Unlock()

	metrics.Subscribers.Set(float64(count))
	h.logger.Info("Subscriber registered",
		zap.String("subscriber_id", sub.ID.String()),
		zap.Int("subscribers", count),
	)
	return sub
}

// Unregister removes a subscriber and closes its channel
func (h *Hub) Unregister(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		close(sub.frames)
		sub.closed = true
	}
	count := len(h.subscribers)
	h.mu.Unlock()

	metrics.Subscribers.Set(float64(count))
	h.logger.Info("Subscriber removed",
		zap.String("subscriber_id", sub.ID.String()),
		zap.Int("subscribers", count),
	)
}

// Broadcast serializes event once and fans the frame out to every
// subscriber. A subscriber that cannot accept the frame is removed;
// delivery to the remaining subscribers continues.
func (h *Hub) Broadcast(event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to serialize broadcast event", zap.Error(err))
		return
	}
	frame := EncodeFrame(time.Now().UnixMilli(), payload)

	h.mu.Lock()
	var dead []*Subscriber
	for sub := range h.subscribers {
		select {
		case sub.frames <- frame:
		default:
			dead = append(dead, sub)
		}
	}
	for _, sub := range dead {
		delete(h.subscribers, sub)
		close(sub.frames)
		sub.closed = true
		metrics.BroadcastFailures.Inc()
		h.logger.Warn("Dropping unresponsive subscriber",
			zap.String("subscriber_id", sub.ID.String()),
		)
	}
	count := len(h.subscribers)
	mirror := h.mirror
	h.mu.Unlock()

	metrics.Subscribers.Set(float64(count))

	if mirror != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mirror.Publish(ctx, payload); err != nil {
			h.logger.Warn("Failed to mirror broadcast to broker", zap.Error(err))
		}
	}
}

// Len reports the current subscriber count
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Close drops every subscriber and rejects future registrations
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subscribers {
		delete(h.subscribers, sub)
		close(sub.frames)
		sub.closed = true
	}
	metrics.Subscribers.Set(0)
}
