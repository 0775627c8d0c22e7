package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type AppointmentListDTO struct {
	ID              string          `json:"id"`
	ScheduledDate   time.Time       `json:"scheduled_date"`
	ScheduledTime   string          `json:"scheduled_time"`
	Status          string          `json:"status"`
	ClientName      string          `json:"client_name"`
	ClientPhone     string          `json:"client_phone"`
	ServiceName     string          `json:"service_name"`
	ServiceDuration int             `json:"service_duration"`
	ServicePrice    decimal.Decimal `json:"service_price"`
	RecurrenceGroup string          `json:"recurrence_group,omitempty"`
	QueueEntryID    *string         `json:"queue_entry_id,omitempty"`
}

func AppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, AppointmentListDTO{
			ID:              ap.ID,
			ScheduledDate:   ap.ScheduledDate,
			ScheduledTime:   ap.ScheduledTime,
			Status:          ap.Status,
			ClientName:      ap.Name,
			ClientPhone:     ap.Phone,
			ServiceName:     ap.ServiceName,
			ServiceDuration: ap.ServiceDuration,
			ServicePrice:    ap.ServicePrice,
			RecurrenceGroup: ap.RecurrenceGroup,
			QueueEntryID:    ap.QueueEntryID,
		})
	}
	return out
}
