package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index;not null" json:"barber_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Category string `gorm:"size:20;default:'consumable'" json:"category"`

	// pode ficar negativo
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`
	MinQuantity int             `gorm:"not null;default:5" json:"min_quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
