package stream

import (
	"encoding/json"
	"fmt"
	"time"
)

// EncodeFrame renders one SSE frame: an id line carrying the
// millisecond timestamp, a data line carrying the JSON payload.
func EncodeFrame(id int64, payload []byte) []byte {
	return []byte(fmt.Sprintf("id: %d\ndata: %s\n\n", id, payload))
}

// ControlEvent is the shape of connection_established and heartbeat
// frames.
type ControlEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

func controlFrame(eventType string, now time.Time) []byte {
	payload, _ := json.Marshal(ControlEvent{
		Type:      eventType,
		Timestamp: now.UnixMilli(),
	})
	return EncodeFrame(now.UnixMilli(), payload)
}
