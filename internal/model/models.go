package model

import (
	"time"
)

// Server is one stored proxy configuration.
type Server struct {
	ID        uint   `gorm:"primaryKey"`
	Hash      string `gorm:"uniqueIndex"` // factory.Fingerprint
	Family    string `gorm:"index"`
	Config    string // base64-wrapped engine JSON
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Extras
	Remark string
	Delay  string
	Speed  string

	// Denormalized views for listing without decoding
	Protocol string `gorm:"index"`
	Address  string
	Port     string
}
