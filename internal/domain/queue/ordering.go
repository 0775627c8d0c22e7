package queue

import (
	"sort"
	"strings"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case DirectionUp, DirectionDown:
		return d, nil
	}
	return "", httperr.ErrValidation("invalid_direction")
}

// OrderAssignment is one order write produced by PlanMove.
type OrderAssignment struct {
	ID    string
	Order int64
}

// NextOrder returns max+1, or 1 when the barber has no ordered entries.
func NextOrder(maxOrder *int64) int64 {
	if maxOrder == nil {
		return 1
	}
	return *maxOrder + 1
}

// FrontOrder returns a key that sorts before every waiting entry.
func FrontOrder(minWaiting *int64) int64 {
	if minWaiting == nil {
		return 1
	}
	return *minWaiting - 1
}

// Less orders entries by (order, joinedAt, id). Entries without an order
// sort after every ordered entry.
func Less(a, b *models.QueueEntry) bool {
	switch {
	case a.Order != nil && b.Order == nil:
		return true
	case a.Order == nil && b.Order != nil:
		return false
	case a.Order != nil && b.Order != nil && *a.Order != *b.Order:
		return *a.Order < *b.Order
	}
	if !a.JoinedAt.Equal(b.JoinedAt) {
		return a.JoinedAt.Before(b.JoinedAt)
	}
	return a.ID < b.ID
}

func SortWaiting(entries []models.QueueEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Less(&entries[i], &entries[j])
	})
}

// PlanMove computes the order writes that move id one slot in dir within
// list, which must already be sorted. ok is false when there is nothing to
// write: id is absent or the move would cross the list boundary.
//
// Distinct orders are swapped. When either key is missing or both are equal
// the whole list is renumbered by 1-based position with the pair exchanged,
// so the keys diverge afterwards.
func PlanMove(list []models.QueueEntry, id string, dir Direction) ([]OrderAssignment, bool) {
	idx := indexOf(list, id)
	if idx < 0 {
		return nil, false
	}

	target := idx - 1
	if dir == DirectionDown {
		target = idx + 1
	}
	if target < 0 || target >= len(list) {
		return nil, false
	}

	a, b := list[idx].Order, list[target].Order
	if a != nil && b != nil && *a != *b {
		return []OrderAssignment{
			{ID: list[idx].ID, Order: *b},
			{ID: list[target].ID, Order: *a},
		}, true
	}

	plan := make([]OrderAssignment, len(list))
	for i := range list {
		pos := i
		switch i {
		case idx:
			pos = target
		case target:
			pos = idx
		}
		plan[i] = OrderAssignment{ID: list[i].ID, Order: int64(pos + 1)}
	}
	return plan, true
}

func indexOf(list []models.QueueEntry, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
