package notify

import (
	"encoding/json"
	"fmt"
)

// ViolationDetail is one violation entry of an item-violation push
type ViolationDetail struct {
	ViolationType     string `json:"violation_type"`
	ViolationReason   string `json:"violation_reason"`
	Suggestion        string `json:"suggestion"`
	FixDeadlineTime   int64  `json:"fix_deadline_time"`
	UpdateTime        int64  `json:"update_time"`
	SuggestedCategory []struct {
		CategoryID   int64  `json:"category_id"`
		CategoryName string `json:"category_name"`
	} `json:"suggested_category"`
}

// ViolationWebhook is the stored payload of an item-violation push.
// deboost selects which of the two parallel detail arrays applies.
type ViolationWebhook struct {
	Code      int   `json:"code"`
	ShopID    int64 `json:"shop_id"`
	Timestamp int64 `json:"timestamp"`
	Data      struct {
		ItemID            int64             `json:"item_id"`
		ItemName          string            `json:"item_name"`
		ItemStatus        string            `json:"item_status"`
		Deboost           bool              `json:"deboost"`
		ItemStatusDetails []ViolationDetail `json:"item_status_details"`
		DeboostedDetails  []ViolationDetail `json:"deboosted_details"`
	} `json:"data"`
}

// ViolationEntry is one normalized violation of the notification
type ViolationEntry struct {
	Type              string              `json:"type"`
	Reason            string              `json:"reason"`
	Suggestion        string              `json:"suggestion"`
	Deadline          int64               `json:"deadline"`
	SuggestedCategory []SuggestedCategory `json:"suggested_category,omitempty"`
}

type SuggestedCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ViolationDetails is the details block of the normalized notification
type ViolationDetails struct {
	ItemID     int64            `json:"item_id"`
	ItemName   string           `json:"item_name"`
	Status     string           `json:"status"`
	Violations []ViolationEntry `json:"violations"`
}

// ViolationNotification is the normalized item-violation record
type ViolationNotification struct {
	ID        int64            `json:"id,omitempty"`
	Type      string           `json:"type"`
	Action    string           `json:"action"`
	ShopID    int64            `json:"shop_id"`
	Details   ViolationDetails `json:"details"`
	Timestamp int64            `json:"timestamp"`
	Read      bool             `json:"read"`
}

// BuildViolation builds the normalized item-violation notification from
// a stored webhook payload blob.
func BuildViolation(blob []byte) (ViolationNotification, error) {
	var raw ViolationWebhook
	if err := json.Unmarshal(blob, &raw); err != nil {
		return ViolationNotification{}, fmt.Errorf("failed to decode violation payload: %w", err)
	}

	details := raw.Data.ItemStatusDetails
	if raw.Data.Deboost {
		details = raw.Data.DeboostedDetails
	}

	violations := make([]ViolationEntry, 0, len(details))
	for _, d := range details {
		entry := ViolationEntry{
			Type:       d.ViolationType,
			Reason:     d.ViolationReason,
			Suggestion: d.Suggestion,
			Deadline:   d.FixDeadlineTime,
		}
		for _, c := range d.SuggestedCategory {
			entry.SuggestedCategory = append(entry.SuggestedCategory, SuggestedCategory{
				ID:   c.CategoryID,
				Name: c.CategoryName,
			})
		}
		violations = append(violations, entry)
	}

	return ViolationNotification{
		Type:   "item_violation",
		Action: violationAction(raw),
		ShopID: raw.ShopID,
		Details: ViolationDetails{
			ItemID:     raw.Data.ItemID,
			ItemName:   raw.Data.ItemName,
			Status:     raw.Data.ItemStatus,
			Violations: violations,
		},
		Timestamp: raw.Timestamp,
	}, nil
}

// violationAction derives the single action value. Priority:
// banned > deleted > deboosted > generic violation.
func violationAction(raw ViolationWebhook) string {
	switch {
	case raw.Data.ItemStatus == "BANNED":
		return "ITEM_BANNED"
	case raw.Data.ItemStatus == "SHOPEE_DELETE":
		return "ITEM_DELETED"
	case raw.Data.Deboost:
		return "ITEM_DEBOOSTED"
	default:
		return "ITEM_VIOLATION"
	}
}
