package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	BarberID uint   `gorm:"not null;index:idx_appointment_barber_date,priority:1" json:"barber_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`

	// meia-noite local do dia escolhido
	ScheduledDate time.Time `gorm:"not null;index:idx_appointment_barber_date,priority:2" json:"scheduled_date"`
	ScheduledTime string    `gorm:"size:5;not null" json:"scheduled_time"`

	ServiceName     string          `gorm:"size:100" json:"service_name"`
	ServiceDuration int             `json:"service_duration"`
	ServicePrice    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"service_price"`
	Materials       Materials       `gorm:"type:jsonb" json:"materials"`

	Notes  string `gorm:"size:500" json:"notes"`
	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	// shared by every week of a recurring series; empty for single bookings
	RecurrenceGroup string `gorm:"size:36;index" json:"recurrence_group,omitempty"`

	QueueEntryID *string    `gorm:"size:36" json:"queue_entry_id,omitempty"`
	MovedAt      *time.Time `json:"moved_at"`
	CancelledAt  *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
