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
	"github.com/0xsoniclabs/ensemble/common"
	"github.com/0xsoniclabs/ensemble/common/amount"
)

// querier is the read-only view of an Ensemble handed to contracts.
type querier struct {
	ensemble *Ensemble
}

func (q querier) QueryContract(address common.Address, msg []byte) ([]byte, error) {
	return q.ensemble.query(address, msg)
}

func (q querier) Balance(address common.Address, denom string) amount.Amount {
	return q.ensemble.bank.Balance(address, denom)
}

func (q querier) AllBalances(address common.Address) common.Coins {
	return q.ensemble.bank.AllBalances(address)
}
