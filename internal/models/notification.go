package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// NotificationType classifies a stored marketplace notification
type NotificationType string

const (
	NotificationShopPenalty   NotificationType = "shop_penalty"
	NotificationShopeeUpdate  NotificationType = "shopee_update"
	NotificationItemViolation NotificationType = "item_violation"
)

// ParseNotificationType parses a string into a NotificationType.
// Returns an error if the type is unknown.
func ParseNotificationType(name string) (NotificationType, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	validTypes := []NotificationType{
		NotificationShopPenalty,
		NotificationShopeeUpdate,
		NotificationItemViolation,
	}

	for _, notiType := range validTypes {
		if string(notiType) == name {
			return notiType, nil
		}
	}

	return "", fmt.Errorf("unknown notification type: %s", name)
}

// JSONBlob stores an opaque JSON payload as-is. The notification
// builders must be able to re-read exactly the bytes the webhook
// delivered, so no intermediate map round-trip is allowed.
type JSONBlob json.RawMessage

func (j JSONBlob) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

func (j *JSONBlob) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		buf := make([]byte, len(v))
		copy(buf, v)
		*j = buf
	case string:
		*j = JSONBlob(v)
	default:
		return fmt.Errorf("unsupported type %T for JSONBlob", value)
	}
	return nil
}

func (j JSONBlob) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSONBlob) UnmarshalJSON(data []byte) error {
	*j = append((*j)[0:0], data...)
	return nil
}

// ShopNotification is one stored penalty / platform-update / violation
// record. data holds the raw webhook payload; processed marks that
// side-effect handling completed; read is flipped by the mark-as-read
// endpoint.
type ShopNotification struct {
	ID               int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	NotificationType NotificationType `gorm:"not null;index" json:"notification_type"`
	ShopID           int64            `gorm:"not null;index" json:"shop_id"`
	Data             JSONBlob         `gorm:"type:jsonb" json:"data"`
	Processed        bool             `gorm:"not null;default:false" json:"processed"`
	Read             bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (ShopNotification) TableName() string {
	return "shop_notifications"
}
