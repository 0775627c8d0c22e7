package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index;not null" json:"barber_id"`

	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category    string          `gorm:"size:30;default:'general'" json:"category"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
