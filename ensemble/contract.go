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
	"github.com/0xsoniclabs/ensemble/common"
	"github.com/0xsoniclabs/ensemble/env"
	"github.com/0xsoniclabs/ensemble/storage"
)

//go:generate mockgen -source contract.go -destination contract_mocks.go -package ensemble

// Contract is the capability set of a contract implementation registered in
// an Ensemble. Messages are opaque to the engine; implementations decode
// and encode them themselves.
type Contract interface {
	Init(deps Deps, info env.Env, msg []byte) (*Response, error)
	Handle(deps Deps, info env.Env, msg []byte) (*Response, error)
	Query(deps QueryDeps, msg []byte) ([]byte, error)
}

// Deps are the dependencies handed to a contract during Init and Handle.
// Storage is the contract's own store; all changes are reverted if the call
// tree the call is part of fails.
type Deps struct {
	Storage storage.Storage
	Querier env.Querier
	Api     env.Api
}

// QueryDeps are the dependencies handed to a contract during a query. They
// provide no way of modifying any state.
type QueryDeps struct {
	Storage storage.Reader
	Querier env.Querier
	Api     env.Api
}

// Response is the result of a successful Init or Handle call. Messages are
// dispatched by the engine in order, with the responding contract as the
// sender, before the call is considered complete.
type Response struct {
	Messages   []Msg
	Attributes []Attribute
	Data       []byte
}

type Attribute struct {
	Key   string
	Value string
}

// Msg is a message emitted by a contract. It is one of ExecuteMsg,
// InstantiateMsg or BankSendMsg.
type Msg interface {
	isMsg()
}

// ExecuteMsg calls Handle on another (or the same) contract.
type ExecuteMsg struct {
	Contract common.Address
	Msg      []byte
	Funds    common.Coins
}

// InstantiateMsg creates a new instance of a registered contract.
type InstantiateMsg struct {
	CodeTag string
	Msg     []byte
	Funds   common.Coins
}

// BankSendMsg transfers coins from the emitting contract to an address.
type BankSendMsg struct {
	To     common.Address
	Amount common.Coins
}

func (ExecuteMsg) isMsg()     {}
func (InstantiateMsg) isMsg() {}
func (BankSendMsg) isMsg()    {}

// ContractFuncs adapts plain functions to the Contract interface. Missing
// functions make the respective call fail with ErrNotSupported.
type ContractFuncs struct {
	InitFn   func(deps Deps, info env.Env, msg []byte) (*Response, error)
	HandleFn func(deps Deps, info env.Env, msg []byte) (*Response, error)
	QueryFn  func(deps QueryDeps, msg []byte) ([]byte, error)
}

func (f ContractFuncs) Init(deps Deps, info env.Env, msg []byte) (*Response, error) {
	if f.InitFn == nil {
		return nil, ErrNotSupported
	}
	return f.InitFn(deps, info, msg)
}

func (f ContractFuncs) Handle(deps Deps, info env.Env, msg []byte) (*Response, error) {
	if f.HandleFn == nil {
		return nil, ErrNotSupported
	}
	return f.HandleFn(deps, info, msg)
}

func (f ContractFuncs) Query(deps QueryDeps, msg []byte) ([]byte, error) {
	if f.QueryFn == nil {
		return nil, ErrNotSupported
	}
	return f.QueryFn(deps, msg)
}
