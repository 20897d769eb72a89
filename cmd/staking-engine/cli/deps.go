package cli

import (
	"context"
	"fmt"

	"github.com/rewardstack/staking-engine/consumer"
	"github.com/rewardstack/staking-engine/internal/clients/ledger"
	"github.com/rewardstack/staking-engine/internal/config"
	"github.com/rewardstack/staking-engine/internal/db"
	"github.com/rewardstack/staking-engine/internal/db/memdb"
	dbmodel "github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/services"
	"github.com/rs/zerolog/log"
)

// newDbClient connects the configured store. The returned func releases it.
func newDbClient(ctx context.Context, cfg *config.Config) (db.DbInterface, func(), error) {
	if cfg.Db.Type == config.DbTypeMemory {
		log.Ctx(ctx).Warn().Msg("using the in-memory store, state is lost on exit")
		return memdb.New(), func() {}, nil
	}

	if err := dbmodel.Setup(ctx, &cfg.Db); err != nil {
		return nil, nil, fmt.Errorf("error while setting up staking db model: %w", err)
	}

	client, err := db.New(ctx, cfg.Db)
	if err != nil {
		return nil, nil, fmt.Errorf("error while creating db client: %w", err)
	}
	release := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect db client")
		}
	}

	return db.NewDbWithMetrics(client), release, nil
}

// newService wires a service on top of dbClient. Balances live in the same
// store so ledger calls join the unit of work.
func newService(cfg *config.Config, dbClient db.DbInterface, eventConsumer consumer.EventConsumer) *services.Service {
	balanceLedger := ledger.NewLedgerWithMetrics(ledger.NewStoreLedger(dbClient))
	return services.NewService(cfg, dbClient, balanceLedger, eventConsumer)
}
