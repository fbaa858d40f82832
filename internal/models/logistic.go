package models

import (
	"time"
)

// Shipping-document states for a package. Once document creation has
// been attempted the status is never left PENDING.
const (
	DocumentStatusPending = "PENDING"
	DocumentStatusReady   = "READY"
	DocumentStatusFailed  = "FAILED"
)

// Logistic tracks one package of an order. Created by the order
// handler, tracking number filled in by the tracking-update handler,
// document_status flipped by the document-update handler.
type Logistic struct {
	OrderSN                    string    `gorm:"primaryKey;column:order_sn" json:"order_sn"`
	PackageNumber              string    `gorm:"primaryKey" json:"package_number"`
	TrackingNumber             string    `json:"tracking_number"`
	LogisticsStatus            string    `json:"logistics_status"`
	ShippingCarrier            string    `json:"shipping_carrier"`
	ParcelChargeableWeightGram int       `json:"parcel_chargeable_weight_gram"`
	RecipientName              string    `json:"recipient_name"`
	RecipientPhone             string    `json:"recipient_phone"`
	RecipientTown              string    `json:"recipient_town"`
	RecipientDistrict          string    `json:"recipient_district"`
	RecipientCity              string    `json:"recipient_city"`
	RecipientState             string    `json:"recipient_state"`
	RecipientRegion            string    `json:"recipient_region"`
	RecipientZipcode           string    `json:"recipient_zipcode"`
	RecipientFullAddress       string    `json:"recipient_full_address"`
	DocumentStatus             string    `gorm:"not null;default:PENDING" json:"document_status"`
	CreatedAt                  time.Time `json:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at"`
}

func (Logistic) TableName() string {
	return "logistics"
}
