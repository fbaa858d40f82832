package models

import (
	"time"
)

// Shop is one connected seller account. auto_ship drives the
// fire-and-forget ship trigger when an order reaches READY_TO_SHIP.
type Shop struct {
	ShopID           int64     `gorm:"primaryKey" json:"shop_id"`
	ShopName         string    `gorm:"not null" json:"shop_name"`
	AutoShip         bool      `gorm:"not null;default:false" json:"auto_ship"`
	AutoShipInterval int       `gorm:"not null;default:5" json:"auto_ship_interval"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Shop) TableName() string {
	return "shops"
}
