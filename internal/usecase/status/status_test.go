package status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/infra/memstore"
)

func TestBreakLifecycle(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	now := time.Date(2024, 3, 12, 14, 0, 0, 0, time.UTC)

	set := NewSetStatus(s, nil, nil)
	set.Now = func() time.Time { return now }

	got, err := NewGetStatus(s).Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "available", got.Status)

	minutes := 15
	st, err := set.Execute(ctx, 1, "on_break", &minutes)
	require.NoError(t, err)
	assert.Equal(t, "on_break", st.Status)
	require.NotNil(t, st.BreakEndsAt)
	assert.True(t, st.BreakEndsAt.Equal(now.Add(15*time.Minute)))

	expire := NewExpireBreaks(s, nil)
	expire.Now = func() time.Time { return now.Add(10 * time.Minute) }
	n, err := expire.Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	expire.Now = func() time.Time { return now.Add(15 * time.Minute) }
	n, err = expire.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err = NewGetStatus(s).Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "available", got.Status)
	assert.Nil(t, got.BreakEndsAt)
}

func TestIndeterminateBreakNeverExpires(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	_, err := NewSetStatus(s, nil, nil).Execute(ctx, 1, "on_break", nil)
	require.NoError(t, err)

	expire := NewExpireBreaks(s, nil)
	expire.Now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	n, err := expire.Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSetStatusValidation(t *testing.T) {
	s := memstore.New()
	_, err := NewSetStatus(s, nil, nil).Execute(context.Background(), 1, "sleeping", nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	bad := 0
	_, err = NewSetStatus(s, nil, nil).Execute(context.Background(), 1, "on_break", &bad)
	assert.True(t, httperr.IsBusiness(err, "invalid_break"))
}
