package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/event"
)

type fakePipeline struct {
	enqueued []event.Inbound
	accept   bool
}

func (f *fakePipeline) Enqueue(in event.Inbound) bool {
	f.enqueued = append(f.enqueued, in)
	return f.accept
}

func newWebhookApp(pipeline *fakePipeline) *fiber.App {
	app := fiber.New()
	handler := NewWebhookHandler(pipeline, zap.NewNop())
	app.Post("/webhook", handler.Receive)
	return app
}

func TestReceiveAcknowledgesImmediately(t *testing.T) {
	pipeline := &fakePipeline{accept: true}
	app := newWebhookApp(pipeline)

	body := `{"code":3,"shop_id":42,"data":{"ordersn":"X1","status":"READY_TO_SHIP"}}`
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Test returned error: %v", err)
	}
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var ack struct {
		Received  bool  `json:"received"`
		Timestamp int64 `json:"timestamp"`
	}
	if err := json.Unmarshal(raw, &ack); err != nil {
		t.Fatalf("invalid ack body: %v", err)
	}
	if !ack.Received || ack.Timestamp == 0 {
		t.Fatalf("unexpected ack: %+v", ack)
	}

	if len(pipeline.enqueued) != 1 {
		t.Fatalf("expected 1 enqueued delivery, got %d", len(pipeline.enqueued))
	}
	if pipeline.enqueued[0].Code != 3 || pipeline.enqueued[0].ShopID != 42 {
		t.Fatalf("unexpected delivery: %+v", pipeline.enqueued[0])
	}
}

func TestReceiveAcknowledgesEvenWhenQueueFull(t *testing.T) {
	pipeline := &fakePipeline{accept: false}
	app := newWebhookApp(pipeline)

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{"code":3,"shop_id":1}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Test returned error: %v", err)
	}
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("status = %d, want 202 even on queue saturation", resp.StatusCode)
	}
}

func TestReceiveRejectsMalformedBody(t *testing.T) {
	pipeline := &fakePipeline{accept: true}
	app := newWebhookApp(pipeline)

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{"code":`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Test returned error: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if len(pipeline.enqueued) != 0 {
		t.Fatal("malformed bodies must not reach the queue")
	}
}
