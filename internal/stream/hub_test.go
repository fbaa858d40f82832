package stream

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type testEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func recvFrame(t *testing.T, sub *Subscriber) []byte {
	t.Helper()
	select {
	case frame, ok := <-sub.Frames():
		if !ok {
			t.Fatal("subscriber channel closed unexpectedly")
		}
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
	}
	return nil
}

func TestBroadcastReachesEverySubscriber(t *testing.T) {
	hub := NewHub(4, zap.NewNop())
	defer hub.Close()

	subs := []*Subscriber{hub.Register(), hub.Register(), hub.Register()}
	if hub.Len() != 3 {
		t.Fatalf("expected 3 subscribers, got %d", hub.Len())
	}

	hub.Broadcast(testEvent{Type: "new_order", Message: "X1"})

	for i, sub := range subs {
		frame := string(recvFrame(t, sub))
		if !strings.Contains(frame, `"type":"new_order"`) {
			t.Fatalf("subscriber %d got unexpected frame: %s", i, frame)
		}
	}
}

func TestUnregisteredSubscriberStopsReceiving(t *testing.T) {
	hub := NewHub(4, zap.NewNop())
	defer hub.Close()

	stay := hub.Register()
	leave := hub.Register()
	hub.Unregister(leave)

	hub.Broadcast(testEvent{Type: "new_message"})

	recvFrame(t, stay)
	if _, ok := <-leave.Frames(); ok {
		t.Fatal("unregistered subscriber channel should be closed")
	}
	if hub.Len() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", hub.Len())
	}
}

func TestSlowSubscriberIsDroppedOthersKeepReceiving(t *testing.T) {
	hub := NewHub(1, zap.NewNop())
	defer hub.Close()

	healthy := hub.Register()
	slow := hub.Register()

	// Fill the slow subscriber's buffer, then overflow it
	hub.Broadcast(testEvent{Type: "first"})
	recvFrame(t, healthy)
	hub.Broadcast(testEvent{Type: "second"})

	if hub.Len() != 1 {
		t.Fatalf("expected slow subscriber to be dropped, have %d", hub.Len())
	}
	frame := string(recvFrame(t, healthy))
	if !strings.Contains(frame, `"type":"second"`) {
		t.Fatalf("healthy subscriber got unexpected frame: %s", frame)
	}

	// Drain what the slow subscriber buffered before the drop
	<-slow.Frames()
	if _, ok := <-slow.Frames(); ok {
		t.Fatal("dropped subscriber channel should be closed")
	}
}

func TestCloseRejectsNewSubscribers(t *testing.T) {
	hub := NewHub(4, zap.NewNop())
	sub := hub.Register()
	hub.Close()

	if _, ok := <-sub.Frames(); ok {
		t.Fatal("expected closed channel after hub close")
	}

	late := hub.Register()
	if _, ok := <-late.Frames(); ok {
		t.Fatal("registration after close should hand out a closed channel")
	}
	if hub.Len() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", hub.Len())
	}
}

type captureMirror struct {
	bodies [][]byte
}

func (m *captureMirror) Publish(_ context.Context, body []byte) error {
	m.bodies = append(m.bodies, body)
	return nil
}

func TestBroadcastMirrorsPayload(t *testing.T) {
	hub := NewHub(4, zap.NewNop())
	defer hub.Close()

	mirror := &captureMirror{}
	hub.SetMirror(mirror)

	hub.Broadcast(testEvent{Type: "document_status", Message: "PKG1"})

	if len(mirror.bodies) != 1 {
		t.Fatalf("expected 1 mirrored payload, got %d", len(mirror.bodies))
	}
	var got testEvent
	if err := json.Unmarshal(mirror.bodies[0], &got); err != nil {
		t.Fatalf("mirrored payload is not valid JSON: %v", err)
	}
	if got.Type != "document_status" {
		t.Fatalf("unexpected mirrored payload: %+v", got)
	}
}

func TestEncodeFrameFormat(t *testing.T) {
	frame := string(EncodeFrame(1700000000123, []byte(`{"type":"heartbeat"}`)))
	want := "id: 1700000000123\ndata: {\"type\":\"heartbeat\"}\n\n"
	if frame != want {
		t.Fatalf("frame = %q, want %q", frame, want)
	}
}

func TestControlFrame(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	frame := string(controlFrame("connection_established", now))
	if !strings.HasPrefix(frame, "id: 1700000000123\n") {
		t.Fatalf("missing id line: %q", frame)
	}
	if !strings.Contains(frame, `"type":"connection_established"`) {
		t.Fatalf("missing control type: %q", frame)
	}
	if !strings.HasSuffix(frame, "\n\n") {
		t.Fatalf("frame not terminated: %q", frame)
	}
}
