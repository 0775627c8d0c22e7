package queue

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// DefaultServiceDuration is used when a ticket carries no duration.
const DefaultServiceDuration = 30

// Position is the 1-based index of id in list, or 0 when it is not waiting.
func Position(list []models.QueueEntry, id string) int {
	return indexOf(list, id) + 1
}

// EstimatedWait sums the durations of every entry before index and adds the
// remaining minutes of a determinate break, if any.
func EstimatedWait(list []models.QueueEntry, index int, status *models.BarberStatus, now time.Time) int {
	if index < 0 {
		return 0
	}
	if index > len(list) {
		index = len(list)
	}

	total := 0
	for i := 0; i < index; i++ {
		d := list[i].ServiceDuration
		if d <= 0 {
			d = DefaultServiceDuration
		}
		total += d
	}

	return total + barber.RemainingBreakMinutes(status, now)
}

func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dmin", h, m)
}

// WaitingTime formats the time elapsed since joinedAt.
func WaitingTime(joinedAt, now time.Time) string {
	minutes := int(now.Sub(joinedAt) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dmin", minutes/60, minutes%60)
}
