// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/0xsoniclabs/ensemble/ensemble"
	"github.com/golang/snappy"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var Run = cli.Command{
	Action:    run,
	Name:      "run",
	Usage:     "runs a scenario against a fresh ensemble",
	ArgsUsage: "<scenario.yaml>",
	Flags: []cli.Flag{
		&chainIdFlag,
		&logLevelFlag,
		&dumpFlag,
	},
}

var (
	chainIdFlag = cli.StringFlag{
		Name:  "chain-id",
		Usage: "chain id reported to contracts, overrides the one of the scenario",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "one of trace, debug, info, warn, error",
		Value: "info",
	}
	dumpFlag = cli.StringFlag{
		Name:  "dump",
		Usage: "file to write a snappy compressed JSON dump of the final state to",
	}
)

func run(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("missing scenario file")
	}
	path := context.Args().Get(0)

	level, err := zerolog.ParseLevel(context.String(logLevelFlag.Name))
	if err != nil {
		return err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
	}).Level(level).With().Timestamp().Logger()

	scenario, err := LoadScenario(path)
	if err != nil {
		return err
	}

	config := ensemble.DefaultConfig()
	config.Logger = logger
	if scenario.ChainID != "" {
		config.ChainID = scenario.ChainID
	}
	if context.IsSet(chainIdFlag.Name) {
		config.ChainID = context.String(chainIdFlag.Name)
	}

	logger.Info().Str("scenario", path).Int("steps", len(scenario.Steps)).Msg("running scenario")
	e, err := RunScenario(scenario, config, context.App.Writer)
	if err != nil {
		logger.Error().Err(err).Msg("scenario failed")
	}

	// the state is dumped even if steps failed, to support investigations
	if file := context.String(dumpFlag.Name); file != "" && e != nil {
		err = errors.Join(err, writeDump(file, e))
	}
	return err
}

// writeDump stores a snappy compressed JSON dump of the state of the given
// ensemble in the given file.
func writeDump(file string, e *ensemble.Ensemble) error {
	dump, err := e.Dump()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, snappy.Encode(nil, data), 0600)
}
