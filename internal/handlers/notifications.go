package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/models"
	"github.com/fuyurina/sellerhub/internal/notify"
)

// NotificationStore is the persistence surface of the notification API
type NotificationStore interface {
	ListNotifications(ctx context.Context, shopID int64, unreadOnly bool) ([]models.ShopNotification, error)
	MarkNotificationsRead(ctx context.Context, ids []int64) (int64, error)
}

// NotificationsHandler serves the polling counterpart of the push
// stream: stored notifications rebuilt through the same builders that
// produced the live frames.
type NotificationsHandler struct {
	store  NotificationStore
	logger *zap.Logger
}

func NewNotificationsHandler(store NotificationStore, logger *zap.Logger) *NotificationsHandler {
	return &NotificationsHandler{
		store:  store,
		logger: logger,
	}
}

// List handles GET /notifications
// Query parameters:
//   - shop_id (optional): restrict to one shop
//   - unread_only (optional): "true" returns unread records only
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	var shopID int64
	if raw := c.Query("shop_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "shop_id must be an integer",
			})
		}
		shopID = parsed
	}
	unreadOnly := c.Query("unread_only") == "true"

	records, err := h.store.ListNotifications(c.Context(), shopID, unreadOnly)
	if err != nil {
		h.logger.Error("Failed to list notifications", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch notifications",
		})
	}

	notifications := make([]interface{}, 0, len(records))
	for _, record := range records {
		n, err := rebuild(record)
		if err != nil {
			// A corrupt blob hides one record, not the whole list
			h.logger.Warn("Skipping unreadable notification record",
				zap.Int64("id", record.ID),
				zap.String("type", string(record.NotificationType)),
				zap.Error(err),
			)
			continue
		}
		notifications = append(notifications, n)
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// rebuild reconstructs the broadcast payload from the stored blob and
// stamps the record identity onto it.
func rebuild(record models.ShopNotification) (interface{}, error) {
	switch record.NotificationType {
	case models.NotificationShopPenalty:
		n, err := notify.BuildPenalty(record.Data)
		if err != nil {
			return nil, err
		}
		n.ID = record.ID
		n.Read = record.Read
		return n, nil
	case models.NotificationShopeeUpdate:
		n, err := notify.BuildUpdate(record.Data)
		if err != nil {
			return nil, err
		}
		n.ID = record.ID
		n.Read = record.Read
		return n, nil
	case models.NotificationItemViolation:
		n, err := notify.BuildViolation(record.Data)
		if err != nil {
			return nil, err
		}
		n.ID = record.ID
		n.Read = record.Read
		return n, nil
	default:
		return nil, fiber.NewError(fiber.StatusInternalServerError, "unknown notification type")
	}
}

// MarkRead handles POST /notifications/read
// Body: {"ids": [1, 2, 3]}
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	var body struct {
		IDs []int64 `json:"ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if len(body.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "ids is required",
		})
	}

	updated, err := h.store.MarkNotificationsRead(c.Context(), body.IDs)
	if err != nil {
		h.logger.Error("Failed to mark notifications read",
			zap.Int("count", len(body.IDs)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update notifications",
		})
	}

	return c.JSON(fiber.Map{
		"updated": updated,
	})
}
