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
	"fmt"

	"github.com/0xsoniclabs/ensemble/common"
	"github.com/0xsoniclabs/ensemble/common/amount"
	"github.com/0xsoniclabs/ensemble/common/journal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	ErrInsufficientFunds = common.ConstError("insufficient funds")
	ErrOverflow          = common.ConstError("balance overflow")
)

// Bank is an in-memory ledger of per-address token balances. Transfers
// conserve the total supply of every denomination; only Mint and SetBalance
// change it. Like revertable storage, the bank supports nested scopes which
// can be committed or rolled back in LIFO order.
type Bank struct {
	balances map[common.Address]map[string]amount.Amount
	journal  journal.Journal[balanceKey, amount.Amount]
}

type balanceKey struct {
	address common.Address
	denom   string
}

func New() *Bank {
	return &Bank{balances: map[common.Address]map[string]amount.Amount{}}
}

// Balance returns the balance of the given address in the given
// denomination, zero if the pair was never credited.
func (b *Bank) Balance(address common.Address, denom string) amount.Amount {
	return b.balances[address][denom]
}

// AllBalances returns all non-zero balances of an address sorted by
// denomination.
func (b *Bank) AllBalances(address common.Address) common.Coins {
	denoms := maps.Keys(b.balances[address])
	slices.Sort(denoms)
	res := make(common.Coins, 0, len(denoms))
	for _, denom := range denoms {
		res = append(res, common.Coin{Denom: denom, Amount: b.balances[address][denom]})
	}
	return res
}

// Accounts returns all addresses holding a non-zero balance in ascending
// order.
func (b *Bank) Accounts() []common.Address {
	res := maps.Keys(b.balances)
	slices.Sort(res)
	return res
}

// Supply returns the sum of all balances of the given denomination.
func (b *Bank) Supply(denom string) amount.Amount {
	sum := amount.New(0)
	for _, balances := range b.balances {
		// a supply beyond 256 bit can only be produced by SetBalance; the
		// partial sum is returned in that case
		next, err := amount.Add(sum, balances[denom])
		if err != nil {
			return sum
		}
		sum = next
	}
	return sum
}

// Transfer moves the given amount from one address to another. It fails
// with ErrInsufficientFunds if the sender's balance is lower than the
// amount, in which case no balance is modified.
func (b *Bank) Transfer(from, to common.Address, denom string, value amount.Amount) error {
	fromBalance := b.Balance(from, denom)
	remaining, err := amount.Sub(fromBalance, value)
	if err != nil {
		return fmt.Errorf("%w: %s has %s%s, needs %s%s", ErrInsufficientFunds, from, fromBalance, denom, value, denom)
	}
	if from == to || value.IsZero() {
		return nil
	}
	credited, err := amount.Add(b.Balance(to, denom), value)
	if err != nil {
		return fmt.Errorf("%w: crediting %s%s to %s", ErrOverflow, value, denom, to)
	}
	b.set(from, denom, remaining)
	b.set(to, denom, credited)
	return nil
}

// TransferCoins moves a list of coins from one address to another. All
// coins are checked before any balance is modified, so the transfer either
// happens completely or not at all.
func (b *Bank) TransferCoins(from, to common.Address, coins common.Coins) error {
	coins, err := coins.Normalize()
	if err != nil {
		return err
	}
	for _, coin := range coins {
		if b.Balance(from, coin.Denom).Cmp(coin.Amount) < 0 {
			return fmt.Errorf("%w: %s has %s%s, needs %s", ErrInsufficientFunds, from, b.Balance(from, coin.Denom), coin.Denom, coin)
		}
		if from == to {
			continue
		}
		if _, err := amount.Add(b.Balance(to, coin.Denom), coin.Amount); err != nil {
			return fmt.Errorf("%w: crediting %s to %s", ErrOverflow, coin, to)
		}
	}
	for _, coin := range coins {
		if err := b.Transfer(from, to, coin.Denom, coin.Amount); err != nil {
			return err // checked above, unreachable
		}
	}
	return nil
}

// Mint credits newly created coins to the given address.
func (b *Bank) Mint(address common.Address, coins common.Coins) error {
	coins, err := coins.Normalize()
	if err != nil {
		return err
	}
	for _, coin := range coins {
		if _, err := amount.Add(b.Balance(address, coin.Denom), coin.Amount); err != nil {
			return fmt.Errorf("%w: minting %s to %s", ErrOverflow, coin, address)
		}
	}
	for _, coin := range coins {
		sum, _ := amount.Add(b.Balance(address, coin.Denom), coin.Amount)
		b.set(address, coin.Denom, sum)
	}
	return nil
}

// SetBalance overrides a balance. It bypasses conservation and is intended
// for seeding test scenarios.
func (b *Bank) SetBalance(address common.Address, denom string, value amount.Amount) {
	b.set(address, denom, value)
}

// Begin opens a new scope nested in the currently open one.
func (b *Bank) Begin() journal.Scope {
	return b.journal.Begin()
}

// Commit closes the innermost scope and keeps its modifications.
func (b *Bank) Commit(scope journal.Scope) {
	b.journal.Commit(scope)
}

// Rollback closes the innermost scope and restores all balances modified
// since it was opened.
func (b *Bank) Rollback(scope journal.Scope) {
	b.journal.Rollback(scope, func(e journal.Entry[balanceKey, amount.Amount]) {
		b.write(e.Key.address, e.Key.denom, e.Prev)
	})
}

func (b *Bank) set(address common.Address, denom string, value amount.Amount) {
	prev, found := b.balances[address][denom]
	b.journal.Record(balanceKey{address: address, denom: denom}, prev, found)
	b.write(address, denom, value)
}

// write stores a balance without journaling. Zero balances are not kept, so
// the ledger has a canonical form.
func (b *Bank) write(address common.Address, denom string, value amount.Amount) {
	balances := b.balances[address]
	if value.IsZero() {
		delete(balances, denom)
		if len(balances) == 0 {
			delete(b.balances, address)
		}
		return
	}
	if balances == nil {
		balances = map[string]amount.Amount{}
		b.balances[address] = balances
	}
	balances[denom] = value
}
