package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QueueEntry is one ticket in a barber's waiting line.
type QueueEntry struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	BarberID uint   `gorm:"not null;index:idx_queue_barber_status,priority:1" json:"barber_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index" json:"phone"`

	ServiceName     string          `gorm:"size:100" json:"service_name"`
	ServiceDuration int             `json:"service_duration"`
	ServicePrice    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"service_price"`

	Notes     string    `gorm:"size:500" json:"notes"`
	PhotoURL  string    `gorm:"size:500" json:"photo_url"`
	Materials Materials `gorm:"type:jsonb" json:"materials"`

	Status string `gorm:"size:20;default:'waiting';index:idx_queue_barber_status,priority:2" json:"status"`

	// nil para entradas antigas sem ordem
	Order *int64 `gorm:"column:queue_order" json:"order"`

	JoinedAt    time.Time  `gorm:"not null" json:"joined_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	PaymentMethod string `gorm:"size:10" json:"payment_method,omitempty"`
	Rating        *int   `json:"rating,omitempty"`

	AppointmentID *string `gorm:"size:36" json:"appointment_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveTime is the moment used for history and statistics.
func (e QueueEntry) EffectiveTime() time.Time {
	if e.CompletedAt != nil {
		return *e.CompletedAt
	}
	return e.JoinedAt
}
