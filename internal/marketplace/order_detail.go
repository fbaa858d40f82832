package marketplace

// OrderDetail is the full order record returned by the detail fetch
type OrderDetail struct {
	OrderSN                    string        `json:"order_sn"`
	OrderStatus                string        `json:"order_status"`
	BuyerUserID                int64         `json:"buyer_user_id"`
	BuyerUsername              string        `json:"buyer_username"`
	CreateTime                 int64         `json:"create_time"`
	PayTime                    int64         `json:"pay_time"`
	UpdateTime                 int64         `json:"update_time"`
	Currency                   string        `json:"currency"`
	TotalAmount                float64       `json:"total_amount"`
	ShippingCarrier            string        `json:"shipping_carrier"`
	EstimatedShippingFee       float64       `json:"estimated_shipping_fee"`
	ActualShippingFeeConfirmed bool          `json:"actual_shipping_fee_confirmed"`
	COD                        bool          `json:"cod"`
	DaysToShip                 int           `json:"days_to_ship"`
	ShipByDate                 int64         `json:"ship_by_date"`
	PaymentMethod              string        `json:"payment_method"`
	FulfillmentFlag            string        `json:"fulfillment_flag"`
	MessageToSeller            string        `json:"message_to_seller"`
	Note                       string        `json:"note"`
	NoteUpdateTime             int64         `json:"note_update_time"`
	OrderChargeableWeightGram  int           `json:"order_chargeable_weight_gram"`
	PickupDoneTime             int64         `json:"pickup_done_time"`
	CancelBy                   string        `json:"cancel_by"`
	CancelReason               string        `json:"cancel_reason"`
	ItemList                   []ItemDetail  `json:"item_list"`
	PackageList                []PackageInfo `json:"package_list"`
	RecipientAddress           Recipient     `json:"recipient_address"`
}

type ItemDetail struct {
	OrderItemID            int64   `json:"order_item_id"`
	ItemID                 int64   `json:"item_id"`
	ItemName               string  `json:"item_name"`
	ItemSKU                string  `json:"item_sku"`
	ModelID                int64   `json:"model_id"`
	ModelName              string  `json:"model_name"`
	ModelSKU               string  `json:"model_sku"`
	ModelQuantityPurchased int     `json:"model_quantity_purchased"`
	ModelOriginalPrice     float64 `json:"model_original_price"`
	ModelDiscountedPrice   float64 `json:"model_discounted_price"`
	Wholesale              bool    `json:"wholesale"`
	Weight                 float64 `json:"weight"`
	AddOnDeal              bool    `json:"add_on_deal"`
	MainItem               bool    `json:"main_item"`
	AddOnDealID            int64   `json:"add_on_deal_id"`
	PromotionType          string  `json:"promotion_type"`
	PromotionID            int64   `json:"promotion_id"`
	PromotionGroupID       int64   `json:"promotion_group_id"`
	ImageInfo              struct {
		ImageURL string `json:"image_url"`
	} `json:"image_info"`
}

type PackageInfo struct {
	PackageNumber              string `json:"package_number"`
	LogisticsStatus            string `json:"logistics_status"`
	ShippingCarrier            string `json:"shipping_carrier"`
	ParcelChargeableWeightGram int    `json:"parcel_chargeable_weight_gram"`
}

type Recipient struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Town        string `json:"town"`
	District    string `json:"district"`
	City        string `json:"city"`
	State       string `json:"state"`
	Region      string `json:"region"`
	Zipcode     string `json:"zipcode"`
	FullAddress string `json:"full_address"`
}
