package cli

import (
	"fmt"
	"time"

	"github.com/rewardstack/staking-engine/consumer"
	"github.com/rewardstack/staking-engine/internal/config"
	"github.com/rewardstack/staking-engine/internal/observability/tracing"
	"github.com/spf13/cobra"
)

// ReconcileCmd retries recorded accrual failures and checks the reward audit
// of every retried position.
func ReconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Retry failed accruals and verify reward records",
		Args:  cobra.ExactArgs(0),
		RunE:  reconcile,
	}

	return cmd
}

func reconcile(cmd *cobra.Command, _ []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}

	dbClient, releaseDb, err := newDbClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer releaseDb()

	report, err := newService(cfg, dbClient, consumer.NoopConsumer{}).Reconcile(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(report.Mismatches) > 0 {
		return fmt.Errorf("reward audit failed for %d positions: %v", len(report.Mismatches), report.Mismatches)
	}

	return nil
}
