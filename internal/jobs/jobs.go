// Package jobs holds the periodic work the API process runs next to the
// HTTP server.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/barber-queue/internal/app"
	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	ucCRM "github.com/BruksfildServices01/barber-queue/internal/usecase/crm"
	ucStatus "github.com/BruksfildServices01/barber-queue/internal/usecase/status"
)

const (
	ExpireBreaksSpec = "@every 1m"
	// 03:00 no fuso do servidor, fora do horário de atendimento
	BackfillSpec = "0 3 * * *"

	jobTimeout = 5 * time.Minute
)

type Jobs struct {
	expire   *ucStatus.ExpireBreaks
	backfill *ucCRM.Backfill
	barbers  barber.Repository
}

func New(a *app.App) *Jobs {
	return &Jobs{
		expire:   ucStatus.NewExpireBreaks(a.Stores.Barbers, a.Publisher),
		backfill: ucCRM.NewBackfill(a.Stores.Profiles, a.Stores.Queue),
		barbers:  a.Stores.Barbers,
	}
}

// Schedule registers every job on c. c is started by the caller.
func (j *Jobs) Schedule(c *cron.Cron) error {
	if _, err := c.AddFunc(ExpireBreaksSpec, func() { j.ExpireBreaks(context.Background()) }); err != nil {
		return err
	}
	if _, err := c.AddFunc(BackfillSpec, func() { j.BackfillAll(context.Background()) }); err != nil {
		return err
	}
	return nil
}

// ExpireBreaks flips timed breaks that already ended back to available.
func (j *Jobs) ExpireBreaks(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	n, err := j.expire.Execute(ctx)
	if err != nil {
		slog.Error("expire breaks failed", "error", err)
	}
	if n > 0 {
		slog.Info("breaks expired", "count", n)
	}
	return n
}

// BackfillAll seeds the missing CRM profiles of every barber from recent history.
// One barber failing does not stop the others.
func (j *Jobs) BackfillAll(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	ids, err := j.barbers.ListBarberIDs(ctx)
	if err != nil {
		slog.Error("backfill: list barbers failed", "error", err)
		return 0
	}

	total := 0
	for _, id := range ids {
		n, err := j.backfill.Execute(ctx, id)
		if err != nil {
			slog.Warn("backfill failed", "barber_id", id, "error", err)
			continue
		}
		total += n
	}
	slog.Info("crm backfill done", "barbers", len(ids), "profiles", total)
	return total
}
