package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPenaltyPointIssued(t *testing.T) {
	blob := []byte(`{
		"code": 16,
		"shop_id": 42,
		"timestamp": 1700000000,
		"data": {
			"action_type": 1,
			"points_issued_data": {"issued_points": 3, "violation_type": 9}
		}
	}`)

	n, err := BuildPenalty(blob)
	require.NoError(t, err)

	assert.Equal(t, "shop_penalty", n.Type)
	assert.Equal(t, "POINT_ISSUED", n.Action)
	assert.Equal(t, int64(42), n.ShopID)
	assert.Equal(t, int64(1700000000), n.Timestamp)
	assert.Equal(t, 3, n.Details.Points)
	assert.Equal(t, "Produk Terlarang", n.Details.ViolationType)
	assert.Empty(t, n.Details.Reason)
}

func TestBuildPenaltyPointRemoved(t *testing.T) {
	blob := []byte(`{
		"code": 16,
		"shop_id": 42,
		"timestamp": 1700000000,
		"data": {
			"action_type": 2,
			"points_removed_data": {"removed_points": 2, "violation_type": 9, "removed_reason": 102}
		}
	}`)

	n, err := BuildPenalty(blob)
	require.NoError(t, err)

	assert.Equal(t, "POINT_REMOVED", n.Action)
	assert.Equal(t, 2, n.Details.Points)
	assert.Equal(t, "Error Sistem Marketplace", n.Details.Reason)
	assert.Empty(t, n.Details.ViolationType)
}

func TestBuildPenaltyTierUpdate(t *testing.T) {
	blob := []byte(`{
		"code": 16,
		"shop_id": 42,
		"timestamp": 1700000000,
		"data": {
			"action_type": 3,
			"tier_update_data": {"old_tier": 1, "new_tier": 2}
		}
	}`)

	n, err := BuildPenalty(blob)
	require.NoError(t, err)

	assert.Equal(t, "TIER_UPDATE", n.Action)
	assert.Equal(t, 1, n.Details.OldTier)
	assert.Equal(t, 2, n.Details.NewTier)
}

func TestBuildPenaltyUnknownCodesPassThrough(t *testing.T) {
	blob := []byte(`{
		"code": 16,
		"shop_id": 1,
		"data": {
			"action_type": 99,
			"points_issued_data": {"issued_points": 1, "violation_type": 9999}
		}
	}`)

	n, err := BuildPenalty(blob)
	require.NoError(t, err)

	assert.Equal(t, "99", n.Action)
	assert.Equal(t, "9999", n.Details.ViolationType)
}

func TestBuildUpdateUsesFirstAction(t *testing.T) {
	blob := []byte(`{
		"code": 24,
		"shop_id": 7,
		"timestamp": 1700000000,
		"data": {
			"actions": [
				{"title": "Kebijakan Baru", "content": "Detail kebijakan", "url": "https://example.com/a", "update_time": 1700000100},
				{"title": "Pengumuman Kedua", "content": "Lainnya", "url": "https://example.com/b", "update_time": 1700000200}
			]
		}
	}`)

	n, err := BuildUpdate(blob)
	require.NoError(t, err)

	assert.Equal(t, "shopee_update", n.Type)
	assert.Equal(t, "UPDATE", n.Action)
	assert.Equal(t, "Kebijakan Baru", n.Title)
	assert.Equal(t, "https://example.com/a", n.URL)
	// Timestamp comes from the action, not the envelope
	assert.Equal(t, int64(1700000100), n.Timestamp)
	assert.Equal(t, n.Title, n.Details.Title)
}

func TestBuildUpdateNoActions(t *testing.T) {
	_, err := BuildUpdate([]byte(`{"code":24,"shop_id":7,"data":{"actions":[]}}`))
	assert.Error(t, err)
}

func TestSingleActionRewrap(t *testing.T) {
	blob := []byte(`{
		"code": 24,
		"shop_id": 7,
		"timestamp": 1700000000,
		"data": {
			"actions": [
				{"title": "A", "content": "ca", "url": "u-a", "update_time": 1},
				{"title": "B", "content": "cb", "url": "u-b", "update_time": 2}
			]
		}
	}`)

	actions, err := Actions(blob)
	require.NoError(t, err)
	require.Len(t, actions, 2)

	single, err := SingleAction(blob, actions[1])
	require.NoError(t, err)

	n, err := BuildUpdate(single)
	require.NoError(t, err)
	assert.Equal(t, "B", n.Title)
	assert.Equal(t, int64(7), n.ShopID)
	assert.Equal(t, int64(2), n.Timestamp)

	rewrapped, err := Actions(single)
	require.NoError(t, err)
	assert.Len(t, rewrapped, 1)
}

func TestBuildViolationActionPriority(t *testing.T) {
	cases := []struct {
		name    string
		status  string
		deboost bool
		want    string
	}{
		{"banned wins over deboost", "BANNED", true, "ITEM_BANNED"},
		{"deleted", "SHOPEE_DELETE", false, "ITEM_DELETED"},
		{"deboosted", "NORMAL", true, "ITEM_DEBOOSTED"},
		{"generic", "NORMAL", false, "ITEM_VIOLATION"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := ViolationWebhook{}
			raw.Data.ItemStatus = tc.status
			raw.Data.Deboost = tc.deboost
			assert.Equal(t, tc.want, violationAction(raw))
		})
	}
}

func TestBuildViolationSelectsDetailArray(t *testing.T) {
	blob := []byte(`{
		"code": 28,
		"shop_id": 9,
		"timestamp": 1700000000,
		"data": {
			"item_id": 555,
			"item_name": "Kaos Polos",
			"item_status": "NORMAL",
			"deboost": true,
			"item_status_details": [
				{"violation_type": "WRONG", "violation_reason": "should not appear"}
			],
			"deboosted_details": [
				{
					"violation_type": "MISLEADING",
					"violation_reason": "judul menyesatkan",
					"suggestion": "perbaiki judul",
					"fix_deadline_time": 1700099999,
					"suggested_category": [{"category_id": 12, "category_name": "Pakaian Pria"}]
				}
			]
		}
	}`)

	n, err := BuildViolation(blob)
	require.NoError(t, err)

	assert.Equal(t, "item_violation", n.Type)
	assert.Equal(t, "ITEM_DEBOOSTED", n.Action)
	assert.Equal(t, int64(555), n.Details.ItemID)
	require.Len(t, n.Details.Violations, 1)
	v := n.Details.Violations[0]
	assert.Equal(t, "MISLEADING", v.Type)
	assert.Equal(t, int64(1700099999), v.Deadline)
	require.Len(t, v.SuggestedCategory, 1)
	assert.Equal(t, "Pakaian Pria", v.SuggestedCategory[0].Name)
}

// Builders must be deterministic on the stored blob: the live frame
// and the rehydrated polling record have to agree.
func TestBuildersAreDeterministic(t *testing.T) {
	blob := []byte(`{
		"code": 16,
		"shop_id": 42,
		"timestamp": 1700000000,
		"data": {
			"action_type": 1,
			"points_issued_data": {"issued_points": 3, "violation_type": 5}
		}
	}`)

	first, err := BuildPenalty(blob)
	require.NoError(t, err)
	second, err := BuildPenalty(blob)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
