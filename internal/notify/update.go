package notify

import (
	"encoding/json"
	"fmt"
)

// UpdateAction is one actionable item of a platform-update push
type UpdateAction struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	URL        string `json:"url"`
	UpdateTime int64  `json:"update_time"`
}

// UpdateWebhook is the stored payload of a platform-update push. Stored
// records always carry exactly one action: the ingest handler splits
// multi-action deliveries into one record per action.
type UpdateWebhook struct {
	Code      int   `json:"code"`
	ShopID    int64 `json:"shop_id"`
	Timestamp int64 `json:"timestamp"`
	Data      struct {
		Actions []UpdateAction `json:"actions"`
	} `json:"data"`
}

// UpdateDetails duplicates the action fields for frame consumers
type UpdateDetails struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// UpdateNotification is the normalized platform-update record
type UpdateNotification struct {
	ID        int64         `json:"id,omitempty"`
	Type      string        `json:"type"`
	Action    string        `json:"action"`
	ShopID    int64         `json:"shop_id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	URL       string        `json:"url"`
	Details   UpdateDetails `json:"details"`
	Timestamp int64         `json:"timestamp"`
	Read      bool          `json:"read"`
}

// SingleAction re-wraps an update envelope around one action so each
// stored record holds exactly the action it notifies about.
func SingleAction(blob []byte, action UpdateAction) ([]byte, error) {
	var raw UpdateWebhook
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode update payload: %w", err)
	}
	raw.Data.Actions = []UpdateAction{action}
	return json.Marshal(raw)
}

// BuildUpdate builds the normalized platform-update notification from a
// stored webhook payload blob. The first action is the record's action.
func BuildUpdate(blob []byte) (UpdateNotification, error) {
	var raw UpdateWebhook
	if err := json.Unmarshal(blob, &raw); err != nil {
		return UpdateNotification{}, fmt.Errorf("failed to decode update payload: %w", err)
	}
	if len(raw.Data.Actions) == 0 {
		return UpdateNotification{}, fmt.Errorf("update payload has no actions")
	}

	action := raw.Data.Actions[0]
	return UpdateNotification{
		Type:    "shopee_update",
		Action:  "UPDATE",
		ShopID:  raw.ShopID,
		Title:   action.Title,
		Content: action.Content,
		URL:     action.URL,
		Details: UpdateDetails{
			Title:   action.Title,
			Content: action.Content,
			URL:     action.URL,
		},
		Timestamp: action.UpdateTime,
	}, nil
}

// Actions decodes every action of an update delivery
func Actions(blob []byte) ([]UpdateAction, error) {
	var raw UpdateWebhook
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode update payload: %w", err)
	}
	return raw.Data.Actions, nil
}
