// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package bank

import (
	"math/rand"
	"testing"

	"github.com/0xsoniclabs/ensemble/common"
	"github.com/0xsoniclabs/ensemble/common/amount"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

const (
	alice = common.Address("alice")
	bob   = common.Address("bob")
	carol = common.Address("carol")
)

func TestBank_UnknownBalancesAreZero(t *testing.T) {
	b := New()
	require.Equal(t, amount.New(0), b.Balance(alice, "u"))
	require.Empty(t, b.AllBalances(alice))
	require.Empty(t, b.Accounts())
}

func TestBank_TransferMovesFunds(t *testing.T) {
	require := require.New(t)
	b := New()
	b.SetBalance(alice, "u", amount.New(100))

	require.NoError(b.Transfer(alice, bob, "u", amount.New(30)))
	require.Equal(amount.New(70), b.Balance(alice, "u"))
	require.Equal(amount.New(30), b.Balance(bob, "u"))
}

func TestBank_TransferWithInsufficientFundsFails(t *testing.T) {
	require := require.New(t)
	b := New()
	b.SetBalance(alice, "u", amount.New(10))

	err := b.Transfer(alice, bob, "u", amount.New(11))
	require.ErrorIs(err, ErrInsufficientFunds)
	require.Equal(amount.New(10), b.Balance(alice, "u"))
	require.Equal(amount.New(0), b.Balance(bob, "u"))
}

func TestBank_TransferToSelfStillChecksFunds(t *testing.T) {
	require := require.New(t)
	b := New()
	b.SetBalance(alice, "u", amount.New(10))

	require.NoError(b.Transfer(alice, alice, "u", amount.New(10)))
	require.Equal(amount.New(10), b.Balance(alice, "u"))
	require.ErrorIs(b.Transfer(alice, alice, "u", amount.New(11)), ErrInsufficientFunds)
}

func TestBank_TransferOverflowingReceiverFails(t *testing.T) {
	require := require.New(t)
	b := New()
	b.SetBalance(alice, "u", amount.New(1))
	b.SetBalance(bob, "u", amount.NewFromUint256(new(uint256.Int).SetAllOne()))

	require.ErrorIs(b.Transfer(alice, bob, "u", amount.New(1)), ErrOverflow)
	require.Equal(amount.New(1), b.Balance(alice, "u"))
}

func TestBank_TransferCoinsIsAllOrNothing(t *testing.T) {
	require := require.New(t)
	b := New()
	b.SetBalance(alice, "u", amount.New(100))
	b.SetBalance(alice, "v", amount.New(5))

	err := b.TransferCoins(alice, bob, common.Coins{common.NewCoin(50, "u"), common.NewCoin(6, "v")})
	require.ErrorIs(err, ErrInsufficientFunds)
	require.Equal(amount.New(100), b.Balance(alice, "u"))
	require.Equal(amount.New(5), b.Balance(alice, "v"))
	require.Empty(b.AllBalances(bob))

	require.NoError(b.TransferCoins(alice, bob, common.Coins{common.NewCoin(50, "u"), common.NewCoin(5, "v")}))
	require.Equal(common.Coins{common.NewCoin(50, "u")}, b.AllBalances(alice))
	require.Equal(common.Coins{common.NewCoin(50, "u"), common.NewCoin(5, "v")}, b.AllBalances(bob))
}

func TestBank_MintIncreasesSupply(t *testing.T) {
	require := require.New(t)
	b := New()
	require.NoError(b.Mint(alice, common.Coins{common.NewCoin(10, "u")}))
	require.NoError(b.Mint(bob, common.Coins{common.NewCoin(5, "u")}))
	require.Equal(amount.New(15), b.Supply("u"))
	require.Equal([]common.Address{alice, bob}, b.Accounts())
}

func TestBank_MintRejectsInvalidCoins(t *testing.T) {
	b := New()
	require.ErrorIs(t, b.Mint(alice, common.Coins{common.NewCoin(1, "")}), common.ErrInvalidCoins)
}

func TestBank_ZeroBalancesAreNotKept(t *testing.T) {
	require := require.New(t)
	b := New()
	b.SetBalance(alice, "u", amount.New(10))
	require.NoError(b.Transfer(alice, bob, "u", amount.New(10)))
	require.Equal([]common.Address{bob}, b.Accounts())
}

func TestBank_TransfersConserveSupply(t *testing.T) {
	require := require.New(t)
	b := New()
	accounts := []common.Address{alice, bob, carol}
	for _, account := range accounts {
		b.SetBalance(account, "u", amount.New(1000))
	}
	supply := b.Supply("u")

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		from := accounts[r.Intn(len(accounts))]
		to := accounts[r.Intn(len(accounts))]
		// failing transfers are fine, they must not change anything
		_ = b.Transfer(from, to, "u", amount.New(uint64(r.Intn(500))))
		require.Equal(supply, b.Supply("u"))
	}
}

func TestBank_RollbackRestoresBalances(t *testing.T) {
	require := require.New(t)
	b := New()
	b.SetBalance(alice, "u", amount.New(100))

	outer := b.Begin()
	require.NoError(b.Transfer(alice, bob, "u", amount.New(30)))

	inner := b.Begin()
	require.NoError(b.Transfer(bob, carol, "u", amount.New(30)))
	b.Rollback(inner)

	require.Equal(amount.New(70), b.Balance(alice, "u"))
	require.Equal(amount.New(30), b.Balance(bob, "u"))
	require.Equal(amount.New(0), b.Balance(carol, "u"))

	inner = b.Begin()
	require.NoError(b.Transfer(bob, carol, "u", amount.New(10)))
	b.Commit(inner)

	b.Rollback(outer)
	require.Equal(amount.New(100), b.Balance(alice, "u"))
	require.Equal([]common.Address{alice}, b.Accounts())
}

func TestBank_ClosingScopesOutOfOrderPanics(t *testing.T) {
	b := New()
	outer := b.Begin()
	b.Begin()
	require.Panics(t, func() { b.Rollback(outer) })
}
