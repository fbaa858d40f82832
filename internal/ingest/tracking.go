package ingest

import (
	"context"

	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/event"
	"github.com/fuyurina/sellerhub/internal/marketplace"
	"github.com/fuyurina/sellerhub/internal/metrics"
	"github.com/fuyurina/sellerhub/internal/models"
)

// handleTrackingUpdate records the tracking number of a package. The
// update is dropped when the order was never seen: tracking rows
// without a parent order are unrecoverable orphans.
func (d *Dispatcher) handleTrackingUpdate(ctx context.Context, in event.Inbound) error {
	payload, err := in.Tracking()
	if err != nil {
		return err
	}

	status, found, err := d.store.FindOrderStatus(ctx, payload.OrderSN)
	if err != nil {
		return err
	}
	if !found {
		metrics.TrackingDropped.Inc()
		d.logger.Warn("Dropping tracking update for unknown order",
			zap.String("order_sn", payload.OrderSN),
			zap.String("tracking_no", payload.TrackingNo),
		)
		return nil
	}

	documentStatus := models.DocumentStatusPending
	if status == models.OrderStatusProcessed {
		docErr := d.policy.Do(ctx, "create_shipping_document", func() error {
			return d.client.CreateShippingDocument(ctx, in.ShopID, []marketplace.DocumentRequest{{
				OrderSN:        payload.OrderSN,
				PackageNumber:  payload.PackageNumber,
				TrackingNumber: payload.TrackingNo,
			}})
		})
		if docErr != nil {
			documentStatus = models.DocumentStatusFailed
			d.logger.Error("Shipping document creation failed",
				zap.String("order_sn", payload.OrderSN),
				zap.String("package_number", payload.PackageNumber),
				zap.Error(docErr),
			)
		} else {
			documentStatus = models.DocumentStatusReady
		}
	}

	// The tracking number is recorded even when document creation
	// failed; the FAILED status marks the package for manual retry.
	return d.store.SetTracking(ctx, payload.OrderSN, payload.PackageNumber, payload.TrackingNo, documentStatus)
}
