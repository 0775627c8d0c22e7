package models

import "time"

type BarberStatus struct {
	BarberID uint   `gorm:"primaryKey;autoIncrement:false" json:"barber_id"`
	Status   string `gorm:"size:20;default:'available'" json:"status"`

	BreakStartedAt *time.Time `json:"break_started_at"`
	// minutos; nil = pausa sem prazo
	BreakDuration *int       `json:"break_duration"`
	BreakEndsAt   *time.Time `gorm:"index" json:"break_ends_at"`

	UpdatedAt time.Time `json:"updated_at"`
}
