// Package notify builds the normalized notification records that are
// broadcast to dashboard clients and rehydrated by the polling API.
// Builders are pure functions of the stored webhook payload: both call
// sites must produce identical output from the same blob.
package notify

import (
	"encoding/json"
	"fmt"
)

// PenaltyWebhook is the stored payload of a shop-penalty push. Exactly
// one of the three detail blocks is present, selected by ActionType.
type PenaltyWebhook struct {
	Code      int   `json:"code"`
	ShopID    int64 `json:"shop_id"`
	Timestamp int64 `json:"timestamp"`
	Data      struct {
		ActionType       int `json:"action_type"`
		PointsIssuedData *struct {
			IssuedPoints  int `json:"issued_points"`
			ViolationType int `json:"violation_type"`
		} `json:"points_issued_data"`
		PointsRemovedData *struct {
			RemovedPoints int `json:"removed_points"`
			ViolationType int `json:"violation_type"`
			RemovedReason int `json:"removed_reason"`
		} `json:"points_removed_data"`
		TierUpdateData *struct {
			OldTier int `json:"old_tier"`
			NewTier int `json:"new_tier"`
		} `json:"tier_update_data"`
		UpdateTime int64 `json:"update_time"`
	} `json:"data"`
}

// PenaltyDetails carries whichever detail shape the payload held.
// Unused fields stay omitted in the serialized frame.
type PenaltyDetails struct {
	Points        int    `json:"points,omitempty"`
	ViolationType string `json:"violation_type,omitempty"`
	Reason        string `json:"reason,omitempty"`
	OldTier       int    `json:"old_tier,omitempty"`
	NewTier       int    `json:"new_tier,omitempty"`
}

// PenaltyNotification is the normalized shop-penalty record
type PenaltyNotification struct {
	ID        int64          `json:"id,omitempty"`
	Type      string         `json:"type"`
	Action    string         `json:"action"`
	ShopID    int64          `json:"shop_id"`
	Details   PenaltyDetails `json:"details"`
	Timestamp int64          `json:"timestamp"`
	Read      bool           `json:"read"`
}

// BuildPenalty builds the normalized penalty notification from a stored
// webhook payload blob.
func BuildPenalty(blob []byte) (PenaltyNotification, error) {
	var raw PenaltyWebhook
	if err := json.Unmarshal(blob, &raw); err != nil {
		return PenaltyNotification{}, fmt.Errorf("failed to decode penalty payload: %w", err)
	}

	n := PenaltyNotification{
		Type:      "shop_penalty",
		Action:    lookupOrRaw(penaltyActions, raw.Data.ActionType),
		ShopID:    raw.ShopID,
		Timestamp: raw.Timestamp,
	}

	switch {
	case raw.Data.PointsIssuedData != nil:
		n.Details = PenaltyDetails{
			Points:        raw.Data.PointsIssuedData.IssuedPoints,
			ViolationType: lookupOrRaw(violationTypes, raw.Data.PointsIssuedData.ViolationType),
		}
	case raw.Data.PointsRemovedData != nil:
		n.Details = PenaltyDetails{
			Points: raw.Data.PointsRemovedData.RemovedPoints,
			Reason: lookupOrRaw(removalReasons, raw.Data.PointsRemovedData.RemovedReason),
		}
	case raw.Data.TierUpdateData != nil:
		n.Details = PenaltyDetails{
			OldTier: raw.Data.TierUpdateData.OldTier,
			NewTier: raw.Data.TierUpdateData.NewTier,
		}
	}

	return n, nil
}
