package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rewardstack/staking-engine/consumer"
	"github.com/rewardstack/staking-engine/internal/config"
	"github.com/rewardstack/staking-engine/internal/observability/tracing"
	"github.com/rewardstack/staking-engine/internal/queue"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// RunAccrualCmd runs one daily accrual pass for an external scheduler.
// Usage: ./staking-engine run-accrual --config config.yml [--at 2026-01-31T00:00:00Z]
func RunAccrualCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run-accrual",
		Short: "Materialize the daily yield of every active position",
		Args:  cobra.ExactArgs(0),
		RunE:  runAccrual,
	}

	cmd.Flags().String("at", "", "RFC3339 time to accrue for (default now)")

	return cmd
}

func runAccrual(cmd *cobra.Command, _ []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	at, err := accrualTime(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}

	dbClient, releaseDb, err := newDbClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer releaseDb()

	var eventConsumer consumer.EventConsumer = consumer.NoopConsumer{}
	if cfg.Queue != nil {
		qm, err := queue.NewQueueManager(cfg.Queue)
		if err != nil {
			return fmt.Errorf("failed to initialize queue manager: %w", err)
		}
		eventConsumer = qm
	}
	if err := eventConsumer.Start(); err != nil {
		return err
	}
	defer eventConsumer.Stop() //nolint:errcheck

	report, err := newService(cfg, dbClient, eventConsumer).RunDailyAccrual(ctx, at)
	if err != nil {
		return err
	}
	if len(report.Failed) > 0 {
		log.Ctx(ctx).Warn().Strs("failed", report.Failed).Msg("some positions failed, run reconcile to retry them")
	}

	return nil
}

func accrualTime(cmd *cobra.Command) (time.Time, error) {
	raw, err := cmd.Flags().GetString("at")
	if err != nil {
		return time.Time{}, err
	}
	if raw == "" {
		return time.Now().UTC(), nil
	}

	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --at value %q\n", raw)
		return time.Time{}, err
	}
	return at.UTC(), nil
}
