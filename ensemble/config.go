// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ensemble

import (
	"time"

	"github.com/0xsoniclabs/ensemble/env"
	"github.com/rs/zerolog"
)

// Config collects the parameters of an Ensemble.
type Config struct {
	ChainID       string
	InitialHeight uint64
	GenesisTime   time.Time
	BlockInterval time.Duration

	// MaxCallDepth limits the nesting of cross-contract calls and queries.
	MaxCallDepth int

	Api    env.Api
	Logger zerolog.Logger
}

const (
	DefaultChainID       = "ensemble-1"
	DefaultBlockInterval = 5 * time.Second
	DefaultMaxCallDepth  = 64
)

func DefaultConfig() Config {
	return Config{
		ChainID:       DefaultChainID,
		InitialHeight: 1,
		GenesisTime:   time.Unix(1_600_000_000, 0).UTC(),
		BlockInterval: DefaultBlockInterval,
		MaxCallDepth:  DefaultMaxCallDepth,
		Api:           env.MockApi{},
		Logger:        zerolog.Nop(),
	}
}
