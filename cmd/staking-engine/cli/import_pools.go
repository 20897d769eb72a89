package cli

import (
	"fmt"
	"os"

	"github.com/rewardstack/staking-engine/consumer"
	"github.com/rewardstack/staking-engine/internal/config"
	dbmodel "github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type poolFile struct {
	Pools []*dbmodel.StakingPoolDocument `yaml:"pools"`
}

// ImportPoolsCmd upserts pool definitions from a yaml file.
// Usage: ./staking-engine import-pools pools.yml --config config.yml
func ImportPoolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-pools <file.yml>",
		Short: "Import staking pool definitions",
		Args:  cobra.ExactArgs(1),
		RunE:  importPools,
	}

	return cmd
}

func importPools(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	pools, err := readPoolFile(args[0])
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

	if err := newService(cfg, dbClient, consumer.NoopConsumer{}).ImportPools(ctx, pools); err != nil {
		return err
	}

	log.Info().Int("count", len(pools)).Msg("staking pools imported")
	return nil
}

func readPoolFile(path string) ([]*dbmodel.StakingPoolDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file poolFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("invalid pool file %s: %w", path, err)
	}
	if len(file.Pools) == 0 {
		return nil, fmt.Errorf("pool file %s has no pools", path)
	}

	return file.Pools, nil
}
