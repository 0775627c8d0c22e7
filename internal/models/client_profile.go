package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientProfile is keyed by (barber, normalized phone digits).
type ClientProfile struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID uint   `gorm:"not null;uniqueIndex:idx_profile_barber_phone,priority:1" json:"barber_id"`
	Phone    string `gorm:"size:20;not null;uniqueIndex:idx_profile_barber_phone,priority:2" json:"phone"`

	Name        string          `gorm:"size:100" json:"name"`
	LastVisit   *time.Time      `json:"last_visit"`
	LastService string          `gorm:"size:100" json:"last_service"`
	TotalVisits int64           `gorm:"not null;default:0" json:"total_visits"`
	TotalSpent  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_spent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ClientPhoto struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID uint   `gorm:"not null;index:idx_photo_barber_phone,priority:1" json:"barber_id"`
	Phone    string `gorm:"size:20;not null;index:idx_photo_barber_phone,priority:2" json:"phone"`
	EntryID  string `gorm:"size:36" json:"entry_id"`
	URL      string `gorm:"size:500;not null" json:"url"`

	CreatedAt time.Time `json:"created_at"`
}
