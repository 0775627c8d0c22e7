package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a catalog entry. Tickets copy its fields at creation time.
type Service struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index;not null" json:"barber_id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	DurationMin int             `json:"duration_min"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"price"`
	Active      bool            `gorm:"default:true" json:"active"`
	Category    string          `gorm:"size:50" json:"category"`
	Materials   Materials       `gorm:"type:jsonb" json:"materials"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
