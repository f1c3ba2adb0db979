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

	"github.com/0xsoniclabs/ensemble/common"
)

// CanonicalAddress is the binary form of an address as kept in contract
// storage.
type CanonicalAddress []byte

// Api converts addresses between their human-readable and canonical form.
type Api interface {
	CanonicalizeAddress(human common.Address) (CanonicalAddress, error)
	HumanizeAddress(canonical CanonicalAddress) (common.Address, error)
}

// CanonicalizeMaybeEmpty converts an address to its canonical form. Empty
// addresses are mapped to an empty canonical address without consulting the
// Api, which would reject them.
func CanonicalizeMaybeEmpty(api Api, human common.Address) (CanonicalAddress, error) {
	if human.IsEmpty() {
		return CanonicalAddress{}, nil
	}
	return api.CanonicalizeAddress(human)
}

// HumanizeMaybeEmpty converts a canonical address to its human-readable
// form. Empty canonical addresses are mapped to the empty address without
// consulting the Api.
func HumanizeMaybeEmpty(api Api, canonical CanonicalAddress) (common.Address, error) {
	if len(canonical) == 0 {
		return "", nil
	}
	return api.HumanizeAddress(canonical)
}

const (
	mockApiMinLength = 3
	mockApiMaxLength = 64
)

// MockApi is the default address conversion. The canonical form is the
// byte representation of the human-readable one, restricted to printable
// ASCII of 3 to 64 characters.
type MockApi struct{}

func (MockApi) CanonicalizeAddress(human common.Address) (CanonicalAddress, error) {
	if err := validateMockAddress([]byte(human)); err != nil {
		return nil, err
	}
	return CanonicalAddress(human), nil
}

func (MockApi) HumanizeAddress(canonical CanonicalAddress) (common.Address, error) {
	if err := validateMockAddress(canonical); err != nil {
		return "", err
	}
	return common.Address(canonical), nil
}

func validateMockAddress(address []byte) error {
	if len(address) < mockApiMinLength || len(address) > mockApiMaxLength {
		return fmt.Errorf("%w: length %d not in [%d,%d]", common.ErrInvalidAddress, len(address), mockApiMinLength, mockApiMaxLength)
	}
	for _, c := range address {
		if c < 0x21 || c > 0x7e {
			return fmt.Errorf("%w: non-printable character 0x%02x", common.ErrInvalidAddress, c)
		}
	}
	return nil
}
