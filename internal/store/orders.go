package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fuyurina/sellerhub/internal/models"
)

var orderConflictKey = []clause.Column{
	{Name: "shop_id"},
	{Name: "order_sn"},
}

// UpsertOrder writes one order row keyed by (shop_id, order_sn).
// Redelivered webhooks overwrite with last-write-wins semantics.
func (s *Store) UpsertOrder(ctx context.Context, order *models.Order) error {
	return s.policy.Do(ctx, "upsert_order", func() error {
		return s.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   orderConflictKey,
				UpdateAll: true,
			}).
			Create(order).Error
	})
}

// UpdateOrderStatus performs the narrow status-only update used for
// terminal statuses that do not require a full order re-fetch.
func (s *Store) UpdateOrderStatus(ctx context.Context, shopID int64, orderSN, status string, updateTime int64) error {
	return s.policy.Do(ctx, "update_order_status", func() error {
		return s.db.WithContext(ctx).
			Model(&models.Order{}).
			Where("shop_id = ? AND order_sn = ?", shopID, orderSN).
			Updates(map[string]interface{}{
				"order_status": status,
				"update_time":  updateTime,
				"updated_at":   time.Now().UTC(),
			}).Error
	})
}

// FindOrderStatus looks an order up by order_sn alone, the way the
// tracking handler receives it. found is false when no row exists yet.
func (s *Store) FindOrderStatus(ctx context.Context, orderSN string) (status string, found bool, err error) {
	var order models.Order
	err = s.db.WithContext(ctx).
		Select("order_sn", "order_status").
		Where("order_sn = ?", orderSN).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up order %s: %w", orderSN, err)
	}
	return order.OrderStatus, true, nil
}
