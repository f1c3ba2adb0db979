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
	"testing"
	"time"

	"github.com/0xsoniclabs/ensemble/common"
	"github.com/0xsoniclabs/ensemble/env"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

// writer stores the init message under the key "k".
var writer = ContractFuncs{
	InitFn: func(deps Deps, info env.Env, msg []byte) (*Response, error) {
		deps.Storage.Set([]byte("k"), msg)
		return &Response{}, nil
	},
}

func TestEnsemble_StateHash_EqualStatesHaveEqualHashes(t *testing.T) {
	require := require.New(t)
	build := func(value string) *Ensemble {
		e := newFundedEnsemble(t, alice, "100u,5atom")
		require.NoError(e.Register("writer", writer))
		_, err := e.Instantiate("writer", []byte(value), alice, coins(t, "10u"))
		require.NoError(err)
		return e
	}
	hash1, err := build("a").StateHash()
	require.NoError(err)
	hash2, err := build("a").StateHash()
	require.NoError(err)
	hash3, err := build("b").StateHash()
	require.NoError(err)

	require.Equal(hash1, hash2)
	require.NotEqual(hash1, hash3)
	require.NotEqual(common.Hash{}, hash1)
}

func TestEnsemble_StateHash_IgnoresClock(t *testing.T) {
	require := require.New(t)
	e := newFundedEnsemble(t, alice, "1u")
	before, err := e.StateHash()
	require.NoError(err)
	e.AdvanceBlocks(10)
	after, err := e.StateHash()
	require.NoError(err)
	require.Equal(before, after)
}

func TestEnsemble_StateHash_DependsOnBalances(t *testing.T) {
	require := require.New(t)
	e := newFundedEnsemble(t, alice, "1u")
	before, err := e.StateHash()
	require.NoError(err)
	require.NoError(e.Mint(bob, coins(t, "1u")))
	after, err := e.StateHash()
	require.NoError(err)
	require.NotEqual(before, after)
}

func TestEnsemble_Dump_ListsContractsAndAccounts(t *testing.T) {
	require := require.New(t)
	e := newFundedEnsemble(t, alice, "100u")
	require.NoError(e.Register("writer", writer))
	address, err := e.Instantiate("writer", []byte("v"), alice, coins(t, "40u"))
	require.NoError(err)

	dump, err := e.Dump()
	require.NoError(err)
	hash, err := e.StateHash()
	require.NoError(err)

	require.Equal(hash, dump.Hash)
	require.Equal(e.Block(), dump.Block)
	require.Equal([]ContractDump{{
		Address: address,
		CodeTag: "writer",
		Storage: []EntryDump{{Key: hexutil.Bytes("k"), Value: hexutil.Bytes("v")}},
	}}, dump.Contracts)

	require.Len(dump.Accounts, 2)
	balances := map[common.Address]common.Coins{}
	for _, account := range dump.Accounts {
		balances[account.Address] = account.Balances
	}
	require.Equal(coins(t, "60u"), balances[alice])
	require.Equal(coins(t, "40u"), balances[address])
}

func TestEnsemble_SetBlock_RejectsMovingBackwards(t *testing.T) {
	require := require.New(t)
	e := New(DefaultConfig())
	genesis := e.Block()
	require.NoError(e.SetBlock(genesis.Height+10, genesis.Time.Add(time.Hour)))
	require.Equal(genesis.Height+10, e.Block().Height)
	require.ErrorIs(e.SetBlock(genesis.Height, genesis.Time.Add(time.Hour)), env.ErrClockMonotonic)
}
