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
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Address is the human-readable identifier of an account or a contract
// instance. Contract addresses are assigned by the engine, account addresses
// are chosen freely by test authors.
type Address string

// IsEmpty reports whether the address is the distinguished empty value.
func (a Address) IsEmpty() bool {
	return a == ""
}

func (a Address) String() string {
	return string(a)
}

// ContractAddress derives the address of the instance with the given
// sequence number of the code registered under the given tag. The result is
// deterministic, so re-running a scenario yields the same addresses.
func ContractAddress(codeTag string, sequence uint64) Address {
	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], sequence)
	hash := crypto.Keccak256([]byte("ensemble"), []byte(codeTag), seq[:])
	return Address(common.BytesToAddress(hash[12:]).Hex())
}
