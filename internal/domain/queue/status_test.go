package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

func TestParsePaymentMethod(t *testing.T) {
	for _, in := range []string{"pix", "MONEY", " card "} {
		_, err := ParsePaymentMethod(in)
		require.NoError(t, err, in)
	}

	_, err := ParsePaymentMethod("cheque")
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestTransitionGuards(t *testing.T) {
	assert.NoError(t, CanComplete(StatusWaiting))
	assert.Error(t, CanComplete(StatusDone))
	assert.Error(t, CanComplete(StatusCancelled))

	assert.NoError(t, CanUndo(StatusDone))
	assert.Error(t, CanUndo(StatusWaiting))
	assert.Error(t, CanUndo(StatusCancelled))

	assert.NoError(t, CanCancel(StatusWaiting))
	assert.Equal(t, httperr.KindPrecondition, httperr.KindOf(CanCancel(StatusDone)))

	assert.NoError(t, CanRate(StatusDone))
	assert.Error(t, CanRate(StatusWaiting))
}

func TestValidateRating(t *testing.T) {
	assert.NoError(t, ValidateRating(1))
	assert.NoError(t, ValidateRating(5))
	assert.Error(t, ValidateRating(0))
	assert.Error(t, ValidateRating(6))
}
