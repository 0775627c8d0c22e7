package effects

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunContinuesAfterFailure(t *testing.T) {
	var ran []string
	effs := []Effect{
		{Name: "a", Run: func(context.Context) error { ran = append(ran, "a"); return errors.New("boom") }},
		{Name: "b", Run: func(context.Context) error { ran = append(ran, "b"); return nil }},
	}

	rep := NewRunner(2, 0).Run(context.Background(), effs)

	assert.Equal(t, []string{"a", "a", "b"}, ran)
	require.Len(t, rep.Results, 2)
	assert.False(t, rep.OK())
	require.Len(t, rep.Failures(), 1)
	assert.Equal(t, "a", rep.Failures()[0].Name)
	assert.Equal(t, 2, rep.Failures()[0].Attempts)
	assert.Equal(t, "boom", rep.Failures()[0].Error)
	assert.True(t, rep.Results[1].OK())
}

func TestRunRetriesUntilSuccess(t *testing.T) {
	calls := 0
	rep := NewRunner(3, 0).Run(context.Background(), []Effect{{
		Name: "flaky",
		Run: func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		},
	}})

	assert.True(t, rep.OK())
	assert.Equal(t, 3, rep.Results[0].Attempts)
}

func TestRunIgnoresParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep := DefaultRunner().Run(ctx, []Effect{{
		Name: "ctx",
		Run:  func(ctx context.Context) error { return ctx.Err() },
	}})

	assert.True(t, rep.OK())
}

func TestRunOnceSkipsRetry(t *testing.T) {
	calls := 0
	rep := NewRunner(3, 0).Run(context.Background(), []Effect{{
		Name: "delta",
		Run: func(context.Context) error {
			calls++
			return errors.New("timeout")
		},
		Once: true,
	}})

	assert.Equal(t, 1, calls)
	require.Len(t, rep.Failures(), 1)
	assert.Equal(t, 1, rep.Failures()[0].Attempts)
}
