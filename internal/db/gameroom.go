package db

import (
	"time"

	"gorm.io/datatypes"
)

// GameRoom is the single durable record a duel is coordinated through.
// The per-player number sequences are stored serialized; they are decoded
// at the store boundary and never manipulated in encoded form.
type GameRoom struct {
	ID             string         `gorm:"primaryKey;size:36"`
	RoomName       string         `gorm:"size:64;not null"`
	RoomCode       string         `gorm:"size:6;not null;index"`
	Rounds         int            `gorm:"not null"`
	CurrentRound   int            `gorm:"not null;default:1"`
	Status         string         `gorm:"size:16;not null;index"`
	Player1ID      string         `gorm:"size:64;not null"`
	Player1Name    string         `gorm:"size:64;not null"`
	Player2ID      *string        `gorm:"size:64"`
	Player2Name    *string        `gorm:"size:64"`
	Player1Score   int            `gorm:"not null;default:0"`
	Player1Numbers datatypes.JSON `gorm:"type:jsonb;not null"`
	Player2Score   int            `gorm:"not null;default:0"`
	Player2Numbers datatypes.JSON `gorm:"type:jsonb;not null"`
	WinnerID       *string        `gorm:"size:64"`
	Version        int64          `gorm:"not null;default:0"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
}
