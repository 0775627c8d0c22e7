package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the barber. Its ID is the tenant key for queue, appointments and CRM.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`

	DailyGoal   decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"daily_goal"`
	MonthlyGoal decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"monthly_goal"`
	FixedCosts  decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"fixed_costs"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
