// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package amount

import (
	"fmt"

	"github.com/holiman/uint256"
)

const (
	ErrOverflow  = constError("amount overflow")
	ErrUnderflow = constError("amount underflow")
)

type constError string

func (e constError) Error() string {
	return string(e)
}

// Amount is a non-negative token quantity of up to 256 bits. The zero value
// is a valid amount of zero. Arithmetic is checked; results that would leave
// the representable range produce an error instead of wrapping.
type Amount struct {
	internal uint256.Int
}

// New creates an amount from a uint64 value.
func New(value uint64) Amount {
	res := Amount{}
	res.internal.SetUint64(value)
	return res
}

// NewFromUint256 creates an amount from a uint256 value.
func NewFromUint256(value *uint256.Int) Amount {
	return Amount{internal: *value}
}

// ParseDecimal parses a base-10 representation of an amount.
func ParseDecimal(s string) (Amount, error) {
	value, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return NewFromUint256(value), nil
}

func Add(a, b Amount) (Amount, error) {
	res := Amount{}
	if _, overflow := res.internal.AddOverflow(&a.internal, &b.internal); overflow {
		return Amount{}, ErrOverflow
	}
	return res, nil
}

func Sub(a, b Amount) (Amount, error) {
	res := Amount{}
	if _, underflow := res.internal.SubOverflow(&a.internal, &b.internal); underflow {
		return Amount{}, ErrUnderflow
	}
	return res, nil
}

func (a Amount) IsZero() bool {
	return a.internal.IsZero()
}

// Cmp returns -1, 0 or +1 depending on whether a is less than, equal to or
// greater than b.
func (a Amount) Cmp(b Amount) int {
	return a.internal.Cmp(&b.internal)
}

func (a Amount) Uint256() uint256.Int {
	return a.internal
}

func (a Amount) Bytes32() [32]byte {
	return a.internal.Bytes32()
}

func (a Amount) String() string {
	return a.internal.Dec()
}

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	res, err := ParseDecimal(string(text))
	if err != nil {
		return err
	}
	*a = res
	return nil
}
