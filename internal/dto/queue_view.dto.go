package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// QueueEntryView is a waiting entry with the values derived from its place
// in the line.
type QueueEntryView struct {
	models.QueueEntry

	Position        int    `json:"position"`
	EstimatedWait   int    `json:"estimated_wait"`
	EstimatedText   string `json:"estimated_wait_text"`
	WaitingTimeText string `json:"waiting_time"`
}

type QueueView struct {
	Entries []QueueEntryView     `json:"entries"`
	Status  *models.BarberStatus `json:"status"`
	At      time.Time            `json:"at"`
}

func BuildQueueView(list []models.QueueEntry, status *models.BarberStatus, now time.Time) QueueView {
	out := make([]QueueEntryView, 0, len(list))
	for i, e := range list {
		wait := queue.EstimatedWait(list, i, status, now)
		out = append(out, QueueEntryView{
			QueueEntry:      e,
			Position:        i + 1,
			EstimatedWait:   wait,
			EstimatedText:   queue.FormatDuration(wait),
			WaitingTimeText: queue.WaitingTime(e.JoinedAt, now),
		})
	}
	return QueueView{Entries: out, Status: status, At: now}
}

// PublicEntryStatus is what a client sees on the status page. No phone or
// notes of other clients leak through it.
type PublicEntryStatus struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Status        string          `json:"status"`
	ServiceName   string          `json:"service_name"`
	ServicePrice  decimal.Decimal `json:"service_price"`
	Position      int             `json:"position"`
	Ahead         int             `json:"ahead"`
	EstimatedWait int             `json:"estimated_wait"`
	EstimatedText string          `json:"estimated_wait_text"`
	BarberStatus  string          `json:"barber_status"`
	BreakEndsAt   *time.Time      `json:"break_ends_at,omitempty"`
}

// BuildPublicStatus places entry within list. Position is 0 when the entry
// is no longer waiting.
func BuildPublicStatus(entry *models.QueueEntry, list []models.QueueEntry, status *models.BarberStatus, now time.Time) PublicEntryStatus {
	pos := queue.Position(list, entry.ID)

	out := PublicEntryStatus{
		ID:           entry.ID,
		Name:         entry.Name,
		Status:       entry.Status,
		ServiceName:  entry.ServiceName,
		ServicePrice: entry.ServicePrice,
		Position:     pos,
	}
	if status != nil {
		out.BarberStatus = status.Status
		out.BreakEndsAt = status.BreakEndsAt
	}
	if pos > 0 {
		out.Ahead = pos - 1
		out.EstimatedWait = queue.EstimatedWait(list, pos-1, status, now)
		out.EstimatedText = queue.FormatDuration(out.EstimatedWait)
	}
	return out
}
