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
	"time"

	"github.com/0xsoniclabs/ensemble/common"
	"github.com/0xsoniclabs/ensemble/common/amount"
)

//go:generate mockgen -source env.go -destination env_mocks.go -package env

// Block describes the simulated chain position observed by a call.
type Block struct {
	Height  uint64
	Time    time.Time
	ChainID string
}

// Env is the execution context of a single contract call. It is constructed
// freshly for every dispatch and never modified afterwards.
type Env struct {
	Block    Block
	Contract common.Address
	Sender   common.Address
	Funds    common.Coins
}

// New creates the environment of a call. The funds are copied, so the
// caller may reuse its list.
func New(block Block, contract, sender common.Address, funds common.Coins) Env {
	return Env{
		Block:    block,
		Contract: contract,
		Sender:   sender,
		Funds:    funds.Clone(),
	}
}

// Querier grants contracts read access to other contracts and to the bank.
// No method of a Querier modifies any state.
type Querier interface {
	QueryContract(address common.Address, msg []byte) ([]byte, error)
	Balance(address common.Address, denom string) amount.Amount
	AllBalances(address common.Address) common.Coins
}
