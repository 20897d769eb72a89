package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rewardstack/staking-engine/cmd/staking-engine/cli"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	// setup cli commands and flags, the selected command runs inside
	if err := cli.Setup(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
