package queue

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func ord(n int64) *int64 { return &n }

func entry(id string, order *int64, joinedMin int) models.QueueEntry {
	return models.QueueEntry{
		ID:       id,
		Order:    order,
		JoinedAt: base.Add(time.Duration(joinedMin) * time.Minute),
		Status:   string(StatusWaiting),
	}
}

func ids(list []models.QueueEntry) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = list[i].ID
	}
	return out
}

// apply writes the assignments and re-sorts, the way a store would.
func apply(list []models.QueueEntry, plan []OrderAssignment) []models.QueueEntry {
	out := make([]models.QueueEntry, len(list))
	copy(out, list)
	for _, a := range plan {
		for i := range out {
			if out[i].ID == a.ID {
				out[i].Order = ord(a.Order)
			}
		}
	}
	SortWaiting(out)
	return out
}

func TestNextOrder(t *testing.T) {
	assert.Equal(t, int64(1), NextOrder(nil))
	assert.Equal(t, int64(8), NextOrder(ord(7)))
}

func TestFrontOrder(t *testing.T) {
	assert.Equal(t, int64(1), FrontOrder(nil))
	assert.Equal(t, int64(2), FrontOrder(ord(3)))
	assert.Equal(t, int64(-1), FrontOrder(ord(0)))
}

func TestSortWaiting(t *testing.T) {
	list := []models.QueueEntry{
		entry("legacy-late", nil, 9),
		entry("c", ord(3), 0),
		entry("legacy-early", nil, 1),
		entry("a", ord(1), 5),
		entry("b-tie-late", ord(2), 8),
		entry("b-tie-early", ord(2), 2),
	}

	SortWaiting(list)

	assert.Equal(t, []string{"a", "b-tie-early", "b-tie-late", "c", "legacy-early", "legacy-late"}, ids(list))
}

func TestPlanMoveSwapsDistinctOrders(t *testing.T) {
	list := []models.QueueEntry{entry("a", ord(1), 0), entry("b", ord(5), 1), entry("c", ord(9), 2)}

	plan, ok := PlanMove(list, "c", DirectionUp)
	require.True(t, ok)
	assert.ElementsMatch(t, []OrderAssignment{{ID: "c", Order: 5}, {ID: "b", Order: 9}}, plan)
	assert.Equal(t, []string{"a", "c", "b"}, ids(apply(list, plan)))
}

func TestPlanMoveBoundariesAreNoOps(t *testing.T) {
	list := []models.QueueEntry{entry("a", ord(1), 0), entry("b", ord(2), 1)}

	_, ok := PlanMove(list, "a", DirectionUp)
	assert.False(t, ok)

	_, ok = PlanMove(list, "b", DirectionDown)
	assert.False(t, ok)

	_, ok = PlanMove(list, "missing", DirectionDown)
	assert.False(t, ok)
}

func TestPlanMoveDegenerateOrders(t *testing.T) {
	tests := []struct {
		name string
		list []models.QueueEntry
	}{
		{"equal orders", []models.QueueEntry{entry("a", ord(4), 0), entry("b", ord(4), 1), entry("c", ord(4), 2)}},
		{"missing orders", []models.QueueEntry{entry("a", nil, 0), entry("b", nil, 1), entry("c", nil, 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := make([]models.QueueEntry, len(tt.list))
			copy(list, tt.list)
			SortWaiting(list)

			plan, ok := PlanMove(list, "b", DirectionDown)
			require.True(t, ok)
			assert.ElementsMatch(t, []OrderAssignment{{ID: "a", Order: 1}, {ID: "b", Order: 3}, {ID: "c", Order: 2}}, plan)

			after := apply(list, plan)
			assert.Equal(t, []string{"a", "c", "b"}, ids(after))
			for i := 1; i < len(after); i++ {
				assert.Less(t, *after[i-1].Order, *after[i].Order)
			}
		})
	}
}

func TestMoveThenMoveBackRestoresOrder(t *testing.T) {
	list := []models.QueueEntry{entry("a", ord(1), 0), entry("b", ord(2), 1), entry("c", ord(3), 2)}

	plan, ok := PlanMove(list, "c", DirectionUp)
	require.True(t, ok)
	moved := apply(list, plan)
	assert.Equal(t, []string{"a", "c", "b"}, ids(moved))

	plan, ok = PlanMove(moved, "b", DirectionUp)
	require.True(t, ok)
	assert.Equal(t, list, apply(moved, plan))

	plan, ok = PlanMove(moved, "c", DirectionDown)
	require.True(t, ok)
	assert.Equal(t, list, apply(moved, plan))
}

func TestOrderStaysTotalAfterRandomMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	list := make([]models.QueueEntry, 0, 8)
	for i := 0; i < 8; i++ {
		var o *int64
		if i%3 != 0 {
			o = ord(int64(i % 4))
		}
		list = append(list, entry(fmt.Sprintf("e%d", i), o, i))
	}
	SortWaiting(list)

	for step := 0; step < 200; step++ {
		id := list[rng.Intn(len(list))].ID
		dir := DirectionUp
		if rng.Intn(2) == 0 {
			dir = DirectionDown
		}
		if plan, ok := PlanMove(list, id, dir); ok {
			list = apply(list, plan)
		}
	}

	for i := 1; i < len(list); i++ {
		assert.True(t, Less(&list[i-1], &list[i]), "entries %d and %d are not strictly ordered", i-1, i)
		assert.False(t, Less(&list[i], &list[i-1]))
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" UP ")
	require.NoError(t, err)
	assert.Equal(t, DirectionUp, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
