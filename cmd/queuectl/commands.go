package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/barber-queue/internal/app"
	"github.com/BruksfildServices01/barber-queue/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-queue/internal/db"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	ucCRM "github.com/BruksfildServices01/barber-queue/internal/usecase/crm"
	ucStats "github.com/BruksfildServices01/barber-queue/internal/usecase/stats"
	ucStatus "github.com/BruksfildServices01/barber-queue/internal/usecase/status"
)

const cmdTimeout = 5 * time.Minute

var (
	barberFlag   uint
	daysFlag     int
	allFlag      bool
	errNoBarber  = errors.New("--barber is required")
	errMigrateDB = errors.New("migrate needs STORE=postgres")
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if cfg.UseMemoryStore() {
			return errMigrateDB
		}
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return err
		}
		if err := dbpkg.Migrate(db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the dashboard of one barber",
	RunE: withStores(func(ctx context.Context, cmd *cobra.Command, s app.Stores) error {
		if barberFlag == 0 {
			return errNoBarber
		}
		d, err := ucStats.NewDashboard(s.Queue, s.Finance, s.Barbers).Execute(ctx, barberFlag)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), d)
	}),
}

var inactiveCmd = &cobra.Command{
	Use:   "inactive",
	Short: "List clients who have not come back in --days",
	RunE: withStores(func(ctx context.Context, cmd *cobra.Command, s app.Stores) error {
		if barberFlag == 0 {
			return errNoBarber
		}
		uc := ucCRM.NewListInactive(s.Profiles, ucCRM.NewBackfill(s.Profiles, s.Queue))
		list, err := uc.Execute(ctx, barberFlag, daysFlag)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), list)
	}),
}

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Rebuild client profiles from completed tickets",
	RunE: withStores(func(ctx context.Context, cmd *cobra.Command, s app.Stores) error {
		ids := []uint{barberFlag}
		if allFlag {
			var err error
			if ids, err = s.Barbers.ListBarberIDs(ctx); err != nil {
				return err
			}
		} else if barberFlag == 0 {
			return errNoBarber
		}

		uc := ucCRM.NewBackfill(s.Profiles, s.Queue)
		for _, id := range ids {
			n, err := uc.Execute(ctx, id)
			if err != nil {
				return fmt.Errorf("barber %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "barber %d: %d profiles\n", id, n)
		}
		return nil
	}),
}

var expireBreaksCmd = &cobra.Command{
	Use:   "expire-breaks",
	Short: "End timed breaks that are already over",
	RunE: withStores(func(ctx context.Context, cmd *cobra.Command, s app.Stores) error {
		n, err := ucStatus.NewExpireBreaks(s.Barbers, live.NopPublisher{}).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d breaks expired\n", n)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().UintVar(&barberFlag, "barber", 0, "Barber id")

	rootCmd.AddCommand(inactiveCmd)
	inactiveCmd.Flags().UintVar(&barberFlag, "barber", 0, "Barber id")
	inactiveCmd.Flags().IntVar(&daysFlag, "days", ucCRM.DefaultInactiveDays, "Days without a visit")

	rootCmd.AddCommand(backfillCmd)
	backfillCmd.Flags().UintVar(&barberFlag, "barber", 0, "Barber id")
	backfillCmd.Flags().BoolVar(&allFlag, "all", false, "Run for every barber")

	rootCmd.AddCommand(expireBreaksCmd)
}

type storeFunc func(ctx context.Context, cmd *cobra.Command, s app.Stores) error

// withStores opens the configured backend for the length of one command.
func withStores(fn storeFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		stores, closeFn, err := app.OpenStores(config.Load())
		if err != nil {
			return err
		}
		defer closeFn()

		ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
		defer cancel()
		return fn(ctx, cmd, stores)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
