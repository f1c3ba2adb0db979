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
	"fmt"

	"github.com/0xsoniclabs/ensemble/bank"
	"github.com/0xsoniclabs/ensemble/common"
)

const (
	ErrDuplicateRegistration = common.ConstError("duplicate registration")
	ErrUnknownCode           = common.ConstError("unknown code")
	ErrUnknownContract       = common.ConstError("unknown contract")
	ErrCallDepthExceeded     = common.ConstError("call depth exceeded")
	ErrNotSupported          = common.ConstError("not supported")
	ErrUnsupportedMessage    = common.ConstError("unsupported message")

	ErrInsufficientFunds = bank.ErrInsufficientFunds
)

// ErrorKind names the contract capability that failed.
type ErrorKind int

const (
	InitFailed ErrorKind = iota + 1
	HandleFailed
	QueryFailed
)

func (k ErrorKind) String() string {
	switch k {
	case InitFailed:
		return "init failed"
	case HandleFailed:
		return "handle failed"
	case QueryFailed:
		return "query failed"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ContractError is returned when a contract's Init, Handle or Query reports
// an error. It unwraps to the error reported by the contract.
type ContractError struct {
	Kind    ErrorKind
	Address common.Address
	Err     error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%v in %s: %v", e.Kind, e.Address, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}
