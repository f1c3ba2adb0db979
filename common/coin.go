// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"fmt"
	"strings"

	"github.com/0xsoniclabs/ensemble/common/amount"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Coin is an amount of a single denomination.
type Coin struct {
	Denom  string        `json:"denom" yaml:"denom"`
	Amount amount.Amount `json:"amount" yaml:"amount"`
}

func NewCoin(value uint64, denom string) Coin {
	return Coin{Denom: denom, Amount: amount.New(value)}
}

func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

// Coins is a list of coins. Engine entry points accept any list and
// normalize it before use.
type Coins []Coin

// Normalize merges duplicate denominations, drops zero amounts and sorts the
// result by denomination.
func (c Coins) Normalize() (Coins, error) {
	sums := map[string]amount.Amount{}
	for _, coin := range c {
		if err := ValidateDenom(coin.Denom); err != nil {
			return nil, err
		}
		sum, err := amount.Add(sums[coin.Denom], coin.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCoins, err)
		}
		sums[coin.Denom] = sum
	}
	denoms := maps.Keys(sums)
	slices.Sort(denoms)
	res := make(Coins, 0, len(denoms))
	for _, denom := range denoms {
		if sums[denom].IsZero() {
			continue
		}
		res = append(res, Coin{Denom: denom, Amount: sums[denom]})
	}
	return res, nil
}

// AmountOf returns the amount of the given denomination, zero if absent.
func (c Coins) AmountOf(denom string) amount.Amount {
	res := amount.New(0)
	for _, coin := range c {
		if coin.Denom == denom {
			// overflow is impossible for normalized lists
			res, _ = amount.Add(res, coin.Amount)
		}
	}
	return res
}

// Clone returns a copy of the list that does not share the backing array.
func (c Coins) Clone() Coins {
	if c == nil {
		return nil
	}
	return slices.Clone(c)
}

func (c Coins) String() string {
	parts := make([]string, 0, len(c))
	for _, coin := range c {
		parts = append(parts, coin.String())
	}
	return strings.Join(parts, ",")
}

// ParseCoins parses a comma separated list of coins of the form
// "100ucosm,20uatom". An empty string yields an empty list.
func ParseCoins(s string) (Coins, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Coins{}, nil
	}
	var res Coins
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		split := strings.IndexFunc(part, func(r rune) bool {
			return r < '0' || r > '9'
		})
		if split <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCoins, part)
		}
		value, err := amount.ParseDecimal(part[:split])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidCoins, part, err)
		}
		res = append(res, Coin{Denom: part[split:], Amount: value})
	}
	return res.Normalize()
}

// ValidateDenom checks that a denomination is 1 to 128 characters of
// letters, digits, '/', ':', '.', '_' or '-', starting with a letter.
func ValidateDenom(denom string) error {
	if len(denom) == 0 || len(denom) > 128 {
		return fmt.Errorf("%w: bad denomination length %q", ErrInvalidCoins, denom)
	}
	for i, r := range denom {
		isLetter := ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
		if i == 0 && !isLetter {
			return fmt.Errorf("%w: denomination must start with a letter %q", ErrInvalidCoins, denom)
		}
		if isLetter || ('0' <= r && r <= '9') || strings.ContainsRune("/:._-", r) {
			continue
		}
		return fmt.Errorf("%w: bad character in denomination %q", ErrInvalidCoins, denom)
	}
	return nil
}
