// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package env

import (
	"fmt"
	"time"

	"github.com/0xsoniclabs/ensemble/common"
)

const ErrClockMonotonic = common.ConstError("chain clock can not move backwards")

// Clock is the simulated chain clock. It only moves when explicitly told to.
type Clock struct {
	block    Block
	interval time.Duration
}

// NewClock creates a clock positioned at the given block, advancing the
// block time by the given interval per block.
func NewClock(genesis Block, interval time.Duration) *Clock {
	return &Clock{block: genesis, interval: interval}
}

func (c *Clock) Block() Block {
	return c.block
}

// Advance moves the clock forward by the given number of blocks.
func (c *Clock) Advance(blocks uint64) {
	c.block.Height += blocks
	c.block.Time = c.block.Time.Add(time.Duration(blocks) * c.interval)
}

// AdvanceTime moves the block time forward without producing blocks.
func (c *Clock) AdvanceTime(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: by %v", ErrClockMonotonic, d)
	}
	c.block.Time = c.block.Time.Add(d)
	return nil
}

// Set positions the clock at the given block height and time. The chain id
// of the clock is retained. Neither height nor time may decrease.
func (c *Clock) Set(height uint64, at time.Time) error {
	if height < c.block.Height {
		return fmt.Errorf("%w: height %d is before %d", ErrClockMonotonic, height, c.block.Height)
	}
	if at.Before(c.block.Time) {
		return fmt.Errorf("%w: time %v is before %v", ErrClockMonotonic, at, c.block.Time)
	}
	c.block.Height = height
	c.block.Time = at
	return nil
}
