package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const NotificationTypeCashCheck = "cash_check"

// Notification is a persisted user notification for in-app delivery.
type Notification struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	Type      string         `gorm:"size:50;default:info" json:"type"`
	Title     string         `gorm:"size:200" json:"title"`
	Message   string         `json:"message"`
	Payload   datatypes.JSON `json:"payload"`
	IsRead    bool           `gorm:"index" json:"is_read"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
}
