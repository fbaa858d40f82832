package event

import (
	"encoding/json"
	"fmt"
)

// Kind is the closed set of webhook families this service understands.
// The integer push codes exist only at the wire boundary; everything
// past Classify works in terms of Kind.
type Kind int

const (
	KindUnknown Kind = iota
	KindOrderStatus
	KindTrackingUpdate
	KindChatMessage
	KindDocumentStatus
	KindShopPenalty
	KindPlatformUpdate
	KindItemViolation
)

// Marketplace push codes
const (
	codeOrderStatus    = 3
	codeTrackingUpdate = 4
	codeChatMessage    = 10
	codeDocumentStatus = 15
	codeShopPenalty    = 16
	codePlatformUpdate = 24
	codeItemViolation  = 28
)

func (k Kind) String() string {
	switch k {
	case KindOrderStatus:
		return "order_status"
	case KindTrackingUpdate:
		return "tracking_update"
	case KindChatMessage:
		return "chat_message"
	case KindDocumentStatus:
		return "document_status"
	case KindShopPenalty:
		return "shop_penalty"
	case KindPlatformUpdate:
		return "platform_update"
	case KindItemViolation:
		return "item_violation"
	default:
		return "unknown"
	}
}

// Classify maps a wire push code to its Kind. Unmapped codes map to
// KindUnknown so new push types never break ingestion.
func Classify(code int) Kind {
	switch code {
	case codeOrderStatus:
		return KindOrderStatus
	case codeTrackingUpdate:
		return KindTrackingUpdate
	case codeChatMessage:
		return KindChatMessage
	case codeDocumentStatus:
		return KindDocumentStatus
	case codeShopPenalty:
		return KindShopPenalty
	case codePlatformUpdate:
		return KindPlatformUpdate
	case codeItemViolation:
		return KindItemViolation
	default:
		return KindUnknown
	}
}

// Inbound is one webhook delivery. It is transient: it lives for the
// duration of one pipeline pass. Raw preserves the exact body bytes so
// notification records can store the payload untouched.
type Inbound struct {
	Code      int             `json:"code"`
	ShopID    int64           `json:"shop_id"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
	Content   json.RawMessage `json:"content"`

	Raw json.RawMessage `json:"-"`
}

// Kind returns the event family of this delivery
func (in Inbound) Kind() Kind {
	return Classify(in.Code)
}

// Parse decodes a webhook body into an Inbound envelope
func Parse(body []byte) (Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(body, &in); err != nil {
		return Inbound{}, fmt.Errorf("failed to parse webhook body: %w", err)
	}
	in.Raw = append(json.RawMessage(nil), body...)
	return in, nil
}
