package stream

import (
	"bufio"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/metrics"
)

// SSEHandler serves the long-lived subscription endpoint
type SSEHandler struct {
	hub       *Hub
	limiter   *RateLimiter
	heartbeat time.Duration
	logger    *zap.Logger
}

func NewSSEHandler(hub *Hub, limiter *RateLimiter, heartbeat time.Duration, logger *zap.Logger) *SSEHandler {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &SSEHandler{
		hub:       hub,
		limiter:   limiter,
		heartbeat: heartbeat,
		logger:    logger,
	}
}

// Subscribe handles GET /webhook. Rate-limited per client IP; an
// accepted connection gets a connection_established frame, periodic
// heartbeats, and every broadcast until the client disconnects.
func (h *SSEHandler) Subscribe(c *fiber.Ctx) error {
	ip := c.IP()
	if !h.limiter.Allow(ip, time.Now()) {
		metrics.RateLimited.Inc()
		retryAfter := int(math.Ceil(h.limiter.Window().Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Set("Retry-After", strconv.Itoa(retryAfter))
		h.logger.Warn("Subscription rejected by rate limiter", zap.String("ip", ip))
		return c.Status(fiber.StatusTooManyRequests).SendString("Too Many Requests")
	}

	sub := h.hub.Register()

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")

	ctx := c.Context()
	done := ctx.Done()

	ctx.SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer h.hub.Unregister(sub)

		if !h.write(w, controlFrame("connection_established", time.Now())) {
			return
		}

		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				// Client disconnected
				return
			case frame, ok := <-sub.Frames():
				if !ok {
					return
				}
				if !h.write(w, frame) {
					return
				}
			case now := <-ticker.C:
				if !h.write(w, controlFrame("heartbeat", now)) {
					return
				}
			}
		}
	}))

	return nil
}

func (h *SSEHandler) write(w *bufio.Writer, frame []byte) bool {
	if _, err := w.Write(frame); err != nil {
		return false
	}
	if err := w.Flush(); err != nil {
		return false
	}
	return true
}
