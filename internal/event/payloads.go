package event

import (
	"encoding/json"
	"fmt"
)

// OrderStatusPayload is the data block of an order-status push
type OrderStatusPayload struct {
	OrderSN    string `json:"ordersn"`
	Status     string `json:"status"`
	UpdateTime int64  `json:"update_time"`
}

// TrackingPayload is the data block of a tracking-number push
type TrackingPayload struct {
	OrderSN       string `json:"ordersn"`
	TrackingNo    string `json:"tracking_no"`
	PackageNumber string `json:"package_number"`
}

// DocumentPayload is the data block of a shipping-document push
type DocumentPayload struct {
	OrderSN       string `json:"ordersn"`
	PackageNumber string `json:"package_number"`
}

// ChatPayload is the content block of a webchat push. Chat deliveries
// carry their payload under "content" rather than "data".
type ChatPayload struct {
	MessageType      string `json:"message_type"`
	ConversationID   string `json:"conversation_id"`
	MessageID        string `json:"message_id"`
	FromID           int64  `json:"from_id"`
	FromUserName     string `json:"from_user_name"`
	ToID             int64  `json:"to_id"`
	ToUserName       string `json:"to_user_name"`
	CreatedTimestamp int64  `json:"created_timestamp"`
	Content          struct {
		Text string `json:"text"`
	} `json:"content"`
}

// OrderStatus decodes the order-status payload of this delivery
func (in Inbound) OrderStatus() (OrderStatusPayload, error) {
	var p OrderStatusPayload
	if err := json.Unmarshal(in.Data, &p); err != nil {
		return p, fmt.Errorf("failed to decode order status payload: %w", err)
	}
	if p.OrderSN == "" {
		return p, fmt.Errorf("order status payload missing ordersn")
	}
	return p, nil
}

// Tracking decodes the tracking-update payload of this delivery
func (in Inbound) Tracking() (TrackingPayload, error) {
	var p TrackingPayload
	if err := json.Unmarshal(in.Data, &p); err != nil {
		return p, fmt.Errorf("failed to decode tracking payload: %w", err)
	}
	if p.OrderSN == "" {
		return p, fmt.Errorf("tracking payload missing ordersn")
	}
	return p, nil
}

// Document decodes the shipping-document payload of this delivery
func (in Inbound) Document() (DocumentPayload, error) {
	var p DocumentPayload
	if err := json.Unmarshal(in.Data, &p); err != nil {
		return p, fmt.Errorf("failed to decode document payload: %w", err)
	}
	if p.OrderSN == "" {
		return p, fmt.Errorf("document payload missing ordersn")
	}
	return p, nil
}

// Chat decodes the webchat payload of this delivery
func (in Inbound) Chat() (ChatPayload, error) {
	var p ChatPayload
	if err := json.Unmarshal(in.Content, &p); err != nil {
		return p, fmt.Errorf("failed to decode chat payload: %w", err)
	}
	return p, nil
}
