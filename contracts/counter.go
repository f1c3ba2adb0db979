// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package contracts provides small contracts for exercising an Ensemble
// from scenarios and tests.
package contracts

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/0xsoniclabs/ensemble/common"
	"github.com/0xsoniclabs/ensemble/ensemble"
	"github.com/0xsoniclabs/ensemble/env"
	"github.com/0xsoniclabs/ensemble/storage"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const ErrUnauthorized = common.ConstError("unauthorized")

const (
	CounterCode = "counter"

	countKey   = "count"
	ownerKey   = "owner"
	dataPrefix = "data/"
)

// Counter keeps a counter and a small key/value map, and can emit messages
// to other contracts on request. Every handle message may combine several
// actions; they are applied in the order reset, increment, set, remove,
// fail, and the resulting messages are emitted in the order spawn, forward,
// send. Only the owner, the sender of the instantiation, may reset.
type Counter struct{}

var _ ensemble.Contract = Counter{}

type CounterInit struct {
	Count uint64 `json:"count"`
	// Fail makes the instantiation fail with the given reason after the
	// initial state has been written.
	Fail string `json:"fail,omitempty"`
}

type CounterHandle struct {
	Reset     bool     `json:"reset,omitempty"`
	Increment bool     `json:"increment,omitempty"`
	Set       *SetArgs `json:"set,omitempty"`
	Remove    string   `json:"remove,omitempty"`
	Fail      string   `json:"fail,omitempty"`

	Spawn   *SpawnArgs   `json:"spawn,omitempty"`
	Forward *ForwardArgs `json:"forward,omitempty"`
	Send    *SendArgs    `json:"send,omitempty"`
}

type SetArgs struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SpawnArgs struct {
	Code  string              `json:"code"`
	Msg   jsoniter.RawMessage `json:"msg"`
	Funds string              `json:"funds,omitempty"`
}

type ForwardArgs struct {
	Contract common.Address      `json:"contract"`
	Msg      jsoniter.RawMessage `json:"msg"`
	Funds    string              `json:"funds,omitempty"`
}

type SendArgs struct {
	To     common.Address `json:"to"`
	Amount string         `json:"amount"`
}

type CounterQuery struct {
	Count   bool         `json:"count,omitempty"`
	Owner   bool         `json:"owner,omitempty"`
	Get     string       `json:"get,omitempty"`
	Balance *BalanceArgs `json:"balance,omitempty"`
	Peer    *ForwardArgs `json:"peer,omitempty"`
	Keys    *struct{}    `json:"keys,omitempty"`
}

type BalanceArgs struct {
	Address common.Address `json:"address"`
	Denom   string         `json:"denom"`
}

type CountResponse struct {
	Count uint64 `json:"count"`
}

type OwnerResponse struct {
	Owner common.Address `json:"owner"`
}

type ValueResponse struct {
	Value *string `json:"value"`
}

type BalanceResponse struct {
	Amount string `json:"amount"`
}

type KeysResponse struct {
	Keys []string `json:"keys"`
}

// Encode marshals a message, panicking on failure. It is meant for building
// messages in tests and scenarios.
func Encode(msg any) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		panic(fmt.Sprintf("failed to encode message: %v", err))
	}
	return data
}

func (Counter) Init(deps ensemble.Deps, info env.Env, msg []byte) (*ensemble.Response, error) {
	var init CounterInit
	if err := json.Unmarshal(msg, &init); err != nil {
		return nil, fmt.Errorf("invalid init message: %w", err)
	}
	owner, err := env.CanonicalizeMaybeEmpty(deps.Api, info.Sender)
	if err != nil {
		return nil, err
	}
	deps.Storage.Set([]byte(ownerKey), owner)
	setCount(deps.Storage, init.Count)
	if init.Fail != "" {
		return nil, errors.New(init.Fail)
	}
	return &ensemble.Response{
		Attributes: []ensemble.Attribute{{Key: "action", Value: "init"}},
	}, nil
}

func (Counter) Handle(deps ensemble.Deps, info env.Env, msg []byte) (*ensemble.Response, error) {
	var handle CounterHandle
	if err := json.Unmarshal(msg, &handle); err != nil {
		return nil, fmt.Errorf("invalid handle message: %w", err)
	}

	res := &ensemble.Response{}
	if handle.Reset {
		if err := checkOwner(deps, info.Sender); err != nil {
			return nil, err
		}
		setCount(deps.Storage, 0)
	}
	if handle.Increment {
		count := getCount(deps.Storage) + 1
		setCount(deps.Storage, count)
		res.Attributes = append(res.Attributes, ensemble.Attribute{Key: "count", Value: fmt.Sprint(count)})
	}
	if handle.Set != nil {
		deps.Storage.Set([]byte(dataPrefix+handle.Set.Key), []byte(handle.Set.Value))
	}
	if handle.Remove != "" {
		deps.Storage.Remove([]byte(dataPrefix + handle.Remove))
	}
	if handle.Fail != "" {
		return nil, errors.New(handle.Fail)
	}

	if spawn := handle.Spawn; spawn != nil {
		funds, err := common.ParseCoins(spawn.Funds)
		if err != nil {
			return nil, err
		}
		res.Messages = append(res.Messages, ensemble.InstantiateMsg{CodeTag: spawn.Code, Msg: spawn.Msg, Funds: funds})
	}
	if forward := handle.Forward; forward != nil {
		funds, err := common.ParseCoins(forward.Funds)
		if err != nil {
			return nil, err
		}
		res.Messages = append(res.Messages, ensemble.ExecuteMsg{Contract: forward.Contract, Msg: forward.Msg, Funds: funds})
	}
	if send := handle.Send; send != nil {
		coins, err := common.ParseCoins(send.Amount)
		if err != nil {
			return nil, err
		}
		res.Messages = append(res.Messages, ensemble.BankSendMsg{To: send.To, Amount: coins})
	}
	return res, nil
}

func (Counter) Query(deps ensemble.QueryDeps, msg []byte) ([]byte, error) {
	var query CounterQuery
	if err := json.Unmarshal(msg, &query); err != nil {
		return nil, fmt.Errorf("invalid query message: %w", err)
	}
	switch {
	case query.Count:
		return json.Marshal(CountResponse{Count: getCount(deps.Storage)})
	case query.Owner:
		owner, err := env.HumanizeMaybeEmpty(deps.Api, deps.Storage.Get([]byte(ownerKey)))
		if err != nil {
			return nil, err
		}
		return json.Marshal(OwnerResponse{Owner: owner})
	case query.Get != "":
		res := ValueResponse{}
		if value := deps.Storage.Get([]byte(dataPrefix + query.Get)); value != nil {
			str := string(value)
			res.Value = &str
		}
		return json.Marshal(res)
	case query.Balance != nil:
		balance := deps.Querier.Balance(query.Balance.Address, query.Balance.Denom)
		return json.Marshal(BalanceResponse{Amount: balance.String()})
	case query.Peer != nil:
		return deps.Querier.QueryContract(query.Peer.Contract, query.Peer.Msg)
	case query.Keys != nil:
		return json.Marshal(KeysResponse{Keys: dataKeys(deps.Storage)})
	}
	return nil, fmt.Errorf("unknown query %s", msg)
}

func checkOwner(deps ensemble.Deps, sender common.Address) error {
	owner, err := env.HumanizeMaybeEmpty(deps.Api, deps.Storage.Get([]byte(ownerKey)))
	if err != nil {
		return err
	}
	if owner != sender {
		return fmt.Errorf("%w: %s is not the owner", ErrUnauthorized, sender)
	}
	return nil
}

func getCount(s storage.Reader) uint64 {
	data := s.Get([]byte(countKey))
	if len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

func setCount(s storage.Storage, count uint64) {
	s.Set([]byte(countKey), binary.BigEndian.AppendUint64(nil, count))
}

// dataKeys lists the keys of the key/value map in ascending order.
func dataKeys(s storage.Reader) []string {
	keys := []string{}
	start := []byte(dataPrefix)
	end := []byte(dataPrefix)
	end[len(end)-1]++
	iter := s.Iterator(start, end)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()[len(dataPrefix):]))
	}
	return keys
}
