package models

import (
	"time"
)

// Order lifecycle statuses pushed by the marketplace
const (
	OrderStatusUnpaid      = "UNPAID"
	OrderStatusReadyToShip = "READY_TO_SHIP"
	OrderStatusProcessed   = "PROCESSED"
	OrderStatusShipped     = "SHIPPED"
	OrderStatusCompleted   = "COMPLETED"
	OrderStatusInCancel    = "IN_CANCEL"
	OrderStatusCancelled   = "CANCELLED"
	OrderStatusToReturn    = "TO_RETURN"
)

// Order mirrors one marketplace order per shop. Webhooks may be
// redelivered, so every write keyed by (shop_id, order_sn) must be an
// upsert.
type Order struct {
	ShopID                     int64     `gorm:"primaryKey" json:"shop_id"`
	OrderSN                    string    `gorm:"primaryKey;column:order_sn" json:"order_sn"`
	BuyerUserID                int64     `json:"buyer_user_id"`
	BuyerUsername              string    `json:"buyer_username"`
	CreateTime                 int64     `json:"create_time"`
	PayTime                    int64     `json:"pay_time"`
	OrderStatus                string    `gorm:"not null;index" json:"order_status"`
	Currency                   string    `json:"currency"`
	TotalAmount                float64   `json:"total_amount"`
	ShippingCarrier            string    `json:"shipping_carrier"`
	EstimatedShippingFee       float64   `json:"estimated_shipping_fee"`
	ActualShippingFeeConfirmed bool      `json:"actual_shipping_fee_confirmed"`
	COD                        bool      `gorm:"column:cod" json:"cod"`
	DaysToShip                 int       `json:"days_to_ship"`
	ShipByDate                 int64     `json:"ship_by_date"`
	PaymentMethod              string    `json:"payment_method"`
	FulfillmentFlag            string    `json:"fulfillment_flag"`
	MessageToSeller            string    `json:"message_to_seller"`
	Note                       string    `json:"note"`
	NoteUpdateTime             int64     `json:"note_update_time"`
	OrderChargeableWeightGram  int       `json:"order_chargeable_weight_gram"`
	PickupDoneTime             int64     `json:"pickup_done_time"`
	UpdateTime                 int64     `json:"update_time"`
	CancelBy                   string    `json:"cancel_by"`
	CancelReason               string    `json:"cancel_reason"`
	CreatedAt                  time.Time `json:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
