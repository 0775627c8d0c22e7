package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoyalty(t *testing.T) {
	tests := []struct {
		visits    int64
		stamps    int64
		level     int64
		remaining int64
		complete  bool
	}{
		{0, 0, 0, 10, false},
		{1, 1, 1, 9, false},
		{9, 9, 1, 1, false},
		{10, 10, 1, 0, true},
		{11, 1, 2, 9, false},
		{20, 10, 2, 0, true},
	}

	for _, tt := range tests {
		card := Loyalty(tt.visits)
		assert.Equal(t, tt.stamps, card.Stamps, "visits=%d", tt.visits)
		assert.Equal(t, tt.level, card.Level, "visits=%d", tt.visits)
		assert.Equal(t, tt.remaining, card.Remaining, "visits=%d", tt.visits)
		assert.Equal(t, tt.complete, card.Complete, "visits=%d", tt.visits)
	}
}
