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

// ConstError is an error type that can be used to define immutable
// sentinel errors, e.g. const ErrNotFound = ConstError("not found").
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

const (
	// ErrInvalidAddress is returned when an address fails validation or
	// conversion between its human-readable and canonical form.
	ErrInvalidAddress = ConstError("invalid address")

	// ErrInvalidCoins is returned for malformed coin lists or denominations.
	ErrInvalidCoins = ConstError("invalid coins")
)
