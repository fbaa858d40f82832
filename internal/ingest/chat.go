package ingest

import (
	"context"

	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/event"
)

// ChatEvent is the new_message broadcast frame payload
type ChatEvent struct {
	Type           string `json:"type"`
	ShopID         int64  `json:"shop_id"`
	ShopName       string `json:"shop_name"`
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	FromID         int64  `json:"from_id"`
	FromUserName   string `json:"from_user_name"`
	ToID           int64  `json:"to_id"`
	ToUserName     string `json:"to_user_name"`
	Text           string `json:"text"`
	Timestamp      int64  `json:"timestamp"`
}

// handleChatMessage enriches a webchat push with the shop name and
// broadcasts it. Chat content is never persisted; only text messages
// are forwarded to the dashboard.
func (d *Dispatcher) handleChatMessage(ctx context.Context, in event.Inbound) error {
	payload, err := in.Chat()
	if err != nil {
		return err
	}

	if payload.MessageType != "text" {
		d.logger.Debug("Skipping non-text chat message",
			zap.String("message_type", payload.MessageType),
			zap.Int64("shop_id", in.ShopID),
		)
		return nil
	}

	shopName, err := d.directory.ShopName(ctx, in.ShopID)
	if err != nil {
		// Enrichment is best-effort; the message still goes out
		d.logger.Warn("Failed to resolve shop name",
			zap.Int64("shop_id", in.ShopID),
			zap.Error(err),
		)
	}

	d.hub.Broadcast(ChatEvent{
		Type:           "new_message",
		ShopID:         in.ShopID,
		ShopName:       shopName,
		ConversationID: payload.ConversationID,
		MessageID:      payload.MessageID,
		FromID:         payload.FromID,
		FromUserName:   payload.FromUserName,
		ToID:           payload.ToID,
		ToUserName:     payload.ToUserName,
		Text:           payload.Content.Text,
		Timestamp:      payload.CreatedTimestamp,
	})
	return nil
}
