package store

import (
	"context"
	"time"

	"github.com/fuyurina/sellerhub/internal/models"
)

// InsertNotification stores one penalty / update / violation record.
// Insert-only: notifications are never overwritten by redelivery.
func (s *Store) InsertNotification(ctx context.Context, n *models.ShopNotification) error {
	return s.policy.Do(ctx, "insert_notification", func() error {
		return s.db.WithContext(ctx).Create(n).Error
	})
}

// MarkNotificationProcessed records that side-effect handling completed
func (s *Store) MarkNotificationProcessed(ctx context.Context, id int64) error {
	return s.policy.Do(ctx, "mark_notification_processed", func() error {
		return s.db.WithContext(ctx).
			Model(&models.ShopNotification{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"processed":  true,
				"updated_at": time.Now().UTC(),
			}).Error
	})
}

// ListNotifications returns stored notifications newest-first,
// optionally filtered by shop and unread state.
func (s *Store) ListNotifications(ctx context.Context, shopID int64, unreadOnly bool) ([]models.ShopNotification, error) {
	query := s.db.WithContext(ctx).
		Where("notification_type IN ?", []models.NotificationType{
			models.NotificationShopPenalty,
			models.NotificationShopeeUpdate,
			models.NotificationItemViolation,
		}).
		Order("created_at DESC")

	if shopID != 0 {
		query = query.Where("shop_id = ?", shopID)
	}
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []models.ShopNotification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationsRead flips the read flag for the given ids and
// returns how many rows changed.
func (s *Store) MarkNotificationsRead(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).
		Model(&models.ShopNotification{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"read":       true,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}
