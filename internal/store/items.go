package store

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/fuyurina/sellerhub/internal/models"
)

var itemConflictKey = []clause.Column{
	{Name: "order_sn"},
	{Name: "order_item_id"},
	{Name: "model_id"},
}

// ItemOutcome reports the result of one line-item upsert
type ItemOutcome struct {
	OrderItemID int64
	ModelID     int64
	Err         error
}

// Failed reports how many outcomes carry an error
func Failed(outcomes []ItemOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// UpsertOrderItems writes a batch of line items keyed by
// (order_sn, order_item_id, model_id). Each item is retried and
// reported independently; one failing item never aborts its siblings.
func (s *Store) UpsertOrderItems(ctx context.Context, items []models.OrderItem) []ItemOutcome {
	outcomes := make([]ItemOutcome, 0, len(items))
	for i := range items {
		item := &items[i]
		err := s.policy.Do(ctx, "upsert_order_item", func() error {
			return s.db.WithContext(ctx).
				Clauses(clause.OnConflict{
					Columns:   itemConflictKey,
					UpdateAll: true,
				}).
				Create(item).Error
		})
		if err != nil {
			s.logger.Error("Failed to upsert order item",
				zap.String("order_sn", item.OrderSN),
				zap.Int64("order_item_id", item.OrderItemID),
				zap.Int64("model_id", item.ModelID),
				zap.Error(err),
			)
		}
		outcomes = append(outcomes, ItemOutcome{
			OrderItemID: item.OrderItemID,
			ModelID:     item.ModelID,
			Err:         err,
		})
	}
	return outcomes
}
