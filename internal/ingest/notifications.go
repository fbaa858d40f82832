package ingest

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/event"
	"github.com/fuyurina/sellerhub/internal/models"
	"github.com/fuyurina/sellerhub/internal/notify"
)

// handleShopPenalty stores the penalty record, runs side-effect
// handling, then broadcasts the normalized notification. The record is
// inserted unprocessed so a crash between insert and side effects
// leaves a visible marker.
func (d *Dispatcher) handleShopPenalty(ctx context.Context, in event.Inbound) error {
	record := &models.ShopNotification{
		NotificationType: models.NotificationShopPenalty,
		ShopID:           in.ShopID,
		Data:             models.JSONBlob(in.Raw),
	}
	if err := d.store.InsertNotification(ctx, record); err != nil {
		return err
	}

	n, err := notify.BuildPenalty(in.Raw)
	if err != nil {
		return err
	}

	d.logger.Warn("Shop penalty received",
		zap.Int64("shop_id", in.ShopID),
		zap.String("action", n.Action),
		zap.Int("points", n.Details.Points),
	)

	if err := d.store.MarkNotificationProcessed(ctx, record.ID); err != nil {
		return err
	}

	n.ID = record.ID
	d.hub.Broadcast(n)
	return nil
}

// handlePlatformUpdate splits a multi-action update delivery into one
// stored record per action, broadcasting each. A failed action does
// not stop the remaining ones.
func (d *Dispatcher) handlePlatformUpdate(ctx context.Context, in event.Inbound) error {
	actions, err := notify.Actions(in.Raw)
	if err != nil {
		return err
	}
	if len(actions) == 0 {
		d.logger.Debug("Platform update with no actions", zap.Int64("shop_id", in.ShopID))
		return nil
	}

	var errs []error
	for _, action := range actions {
		blob, err := notify.SingleAction(in.Raw, action)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		record := &models.ShopNotification{
			NotificationType: models.NotificationShopeeUpdate,
			ShopID:           in.ShopID,
			Data:             models.JSONBlob(blob),
			Processed:        true,
		}
		if err := d.store.InsertNotification(ctx, record); err != nil {
			errs = append(errs, err)
			continue
		}

		n, err := notify.BuildUpdate(blob)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		n.ID = record.ID
		d.hub.Broadcast(n)
	}
	return errors.Join(errs...)
}

// handleItemViolation stores the violation record and broadcasts the
// normalized notification. No side effects beyond persistence.
func (d *Dispatcher) handleItemViolation(ctx context.Context, in event.Inbound) error {
	record := &models.ShopNotification{
		NotificationType: models.NotificationItemViolation,
		ShopID:           in.ShopID,
		Data:             models.JSONBlob(in.Raw),
		Processed:        true,
	}
	if err := d.store.InsertNotification(ctx, record); err != nil {
		return err
	}

	n, err := notify.BuildViolation(in.Raw)
	if err != nil {
		return err
	}
	n.ID = record.ID
	d.hub.Broadcast(n)
	return nil
}
