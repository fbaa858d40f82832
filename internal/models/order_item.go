package models

import (
	"time"
)

// OrderItem is a line item of an Order, keyed by
// (order_sn, order_item_id, model_id) so redelivered batches never
// duplicate rows.
type OrderItem struct {
	OrderSN                string    `gorm:"primaryKey;column:order_sn" json:"order_sn"`
	OrderItemID            int64     `gorm:"primaryKey" json:"order_item_id"`
	ModelID                int64     `gorm:"primaryKey" json:"model_id"`
	ItemID                 int64     `json:"item_id"`
	ItemName               string    `json:"item_name"`
	ItemSKU                string    `gorm:"column:item_sku" json:"item_sku"`
	ModelName              string    `json:"model_name"`
	ModelSKU               string    `gorm:"column:model_sku" json:"model_sku"`
	ModelQuantityPurchased int       `json:"model_quantity_purchased"`
	ModelOriginalPrice     float64   `json:"model_original_price"`
	ModelDiscountedPrice   float64   `json:"model_discounted_price"`
	Wholesale              bool      `json:"wholesale"`
	Weight                 float64   `json:"weight"`
	AddOnDeal              bool      `json:"add_on_deal"`
	MainItem               bool      `json:"main_item"`
	AddOnDealID            int64     `json:"add_on_deal_id"`
	PromotionType          string    `json:"promotion_type"`
	PromotionID            int64     `json:"promotion_id"`
	PromotionGroupID       int64     `json:"promotion_group_id"`
	ImageURL               string    `json:"image_url"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
