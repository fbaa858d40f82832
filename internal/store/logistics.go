package store

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/fuyurina/sellerhub/internal/models"
)

var logisticConflictKey = []clause.Column{
	{Name: "order_sn"},
	{Name: "package_number"},
}

// UpsertLogistics writes the package rows of an order. Packages are
// retried independently; the joined error reports every failure.
func (s *Store) UpsertLogistics(ctx context.Context, packages []models.Logistic) error {
	var errs []error
	for i := range packages {
		pkg := &packages[i]
		err := s.policy.Do(ctx, "upsert_logistic", func() error {
			return s.db.WithContext(ctx).
				Clauses(clause.OnConflict{
					Columns: logisticConflictKey,
					DoUpdates: clause.AssignmentColumns([]string{
						"logistics_status",
						"shipping_carrier",
						"parcel_chargeable_weight_gram",
						"recipient_name",
						"recipient_phone",
						"recipient_town",
						"recipient_district",
						"recipient_city",
						"recipient_state",
						"recipient_region",
						"recipient_zipcode",
						"recipient_full_address",
						"updated_at",
					}),
				}).
				Create(pkg).Error
		})
		if err != nil {
			s.logger.Error("Failed to upsert logistic",
				zap.String("order_sn", pkg.OrderSN),
				zap.String("package_number", pkg.PackageNumber),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SetTracking upserts the tracking number and document status of a
// package. Called by the tracking-update handler after (or instead of)
// shipping-document creation.
func (s *Store) SetTracking(ctx context.Context, orderSN, packageNumber, trackingNo, documentStatus string) error {
	row := models.Logistic{
		OrderSN:        orderSN,
		PackageNumber:  packageNumber,
		TrackingNumber: trackingNo,
		DocumentStatus: documentStatus,
	}
	return s.policy.Do(ctx, "set_tracking", func() error {
		return s.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: logisticConflictKey,
				DoUpdates: clause.AssignmentColumns([]string{
					"tracking_number",
					"document_status",
					"updated_at",
				}),
			}).
			Create(&row).Error
	})
}

// MarkDocumentReady flips a package's document status to READY
func (s *Store) MarkDocumentReady(ctx context.Context, orderSN, packageNumber string) error {
	return s.policy.Do(ctx, "mark_document_ready", func() error {
		return s.db.WithContext(ctx).
			Model(&models.Logistic{}).
			Where("order_sn = ? AND package_number = ?", orderSN, packageNumber).
			Updates(map[string]interface{}{
				"document_status": models.DocumentStatusReady,
				"updated_at":      time.Now().UTC(),
			}).Error
	})
}
