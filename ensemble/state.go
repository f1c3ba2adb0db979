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
	"encoding/binary"
	"errors"

	"github.com/0xsoniclabs/ensemble/common"
	"github.com/0xsoniclabs/ensemble/env"
	"github.com/0xsoniclabs/ensemble/storage"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// StateHash computes a commitment to the full simulated state: all contract
// instances with their code tags and storage, and all balances. Two
// ensembles with equal state produce the same hash. The chain clock is not
// part of the state.
func (e *Ensemble) StateHash() (common.Hash, error) {
	hasher := crypto.NewKeccakState()
	write := func(data []byte) {
		var size [4]byte
		binary.BigEndian.PutUint32(size[:], uint32(len(data)))
		hasher.Write(size[:])
		hasher.Write(data)
	}

	var errs []error
	for _, address := range e.Contracts() {
		rec := e.records[address]
		write([]byte(address))
		write([]byte(rec.codeTag))
		iter := rec.store.Iterator(nil, nil)
		for ; iter.Valid(); iter.Next() {
			write(iter.Key())
			write(iter.Value())
		}
		errs = append(errs, iter.Close())
	}
	if err := errors.Join(errs...); err != nil {
		return common.Hash{}, err
	}

	for _, address := range e.bank.Accounts() {
		write([]byte(address))
		for _, coin := range e.bank.AllBalances(address) {
			write([]byte(coin.Denom))
			value := coin.Amount.Bytes32()
			write(value[:])
		}
	}

	var res common.Hash
	hasher.Read(res[:])
	return res, nil
}

// StateDump is a structured snapshot of the simulated state intended for
// inspection and diffing.
type StateDump struct {
	Block     env.Block      `json:"block"`
	Hash      common.Hash    `json:"hash"`
	Contracts []ContractDump `json:"contracts"`
	Accounts  []AccountDump  `json:"accounts"`
}

type ContractDump struct {
	Address common.Address `json:"address"`
	CodeTag string         `json:"code"`
	Storage []EntryDump    `json:"storage"`
}

type EntryDump struct {
	Key   hexutil.Bytes `json:"key"`
	Value hexutil.Bytes `json:"value"`
}

type AccountDump struct {
	Address  common.Address `json:"address"`
	Balances common.Coins   `json:"balances"`
}

// Dump collects the current state in a StateDump.
func (e *Ensemble) Dump() (*StateDump, error) {
	hash, err := e.StateHash()
	if err != nil {
		return nil, err
	}
	res := &StateDump{
		Block: e.clock.Block(),
		Hash:  hash,
	}
	for _, address := range e.Contracts() {
		rec := e.records[address]
		entries, err := storage.Entries(rec.store)
		if err != nil {
			return nil, err
		}
		contract := ContractDump{Address: address, CodeTag: rec.codeTag}
		for _, entry := range entries {
			contract.Storage = append(contract.Storage, EntryDump{Key: entry.Key, Value: entry.Value})
		}
		res.Contracts = append(res.Contracts, contract)
	}
	for _, address := range e.bank.Accounts() {
		res.Accounts = append(res.Accounts, AccountDump{
			Address:  address,
			Balances: e.bank.AllBalances(address),
		})
	}
	return res, nil
}
