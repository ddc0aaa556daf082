package db

import (
	"time"

	"gorm.io/datatypes"
)

type RoomEvent struct {
	ID        uint           `gorm:"primaryKey"`
	RoomID    string         `gorm:"size:36;index;not null"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
