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
	"time"

	"github.com/0xsoniclabs/ensemble/bank"
	"github.com/0xsoniclabs/ensemble/common"
	"github.com/0xsoniclabs/ensemble/common/amount"
	"github.com/0xsoniclabs/ensemble/env"
	"github.com/0xsoniclabs/ensemble/storage"
	"github.com/0xsoniclabs/ensemble/storage/revertable"
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Ensemble simulates a chain hosting a set of contracts. It owns the code
// catalog, the contract instances with their storage, the bank and the
// chain clock, and dispatches instantiate, execute and query calls the way
// a node would: synchronously, in order, and atomically per top-level call.
//
// An Ensemble is not safe for concurrent use. Its entry points must not be
// called from within a contract; contracts interact with other contracts
// through the messages of their responses and through their Querier.
type Ensemble struct {
	config Config
	log    zerolog.Logger
	clock  *env.Clock
	bank   *bank.Bank

	codes    map[string]Contract
	records  map[common.Address]*record
	sequence uint64 // < number of instances allocated so far

	stack      []*callFrame
	queryDepth int
	active     bool // < set while an entry point is running
}

type record struct {
	address common.Address
	codeTag string
	code    Contract
	store   *revertable.Store
}

// New creates an empty Ensemble. Zero values of MaxCallDepth and Api are
// replaced by their defaults.
func New(config Config) *Ensemble {
	if config.MaxCallDepth <= 0 {
		config.MaxCallDepth = DefaultMaxCallDepth
	}
	if config.Api == nil {
		config.Api = env.MockApi{}
	}
	genesis := env.Block{
		Height:  config.InitialHeight,
		Time:    config.GenesisTime,
		ChainID: config.ChainID,
	}
	return &Ensemble{
		config:  config,
		log:     config.Logger,
		clock:   env.NewClock(genesis, config.BlockInterval),
		bank:    bank.New(),
		codes:   map[string]Contract{},
		records: map[common.Address]*record{},
	}
}

// Register adds a contract implementation to the catalog under the given
// tag. No instance is created.
func (e *Ensemble) Register(codeTag string, contract Contract) error {
	defer e.enter()()
	if contract == nil {
		return fmt.Errorf("contract for code %q is nil", codeTag)
	}
	if _, found := e.codes[codeTag]; found {
		return fmt.Errorf("%w: %q", ErrDuplicateRegistration, codeTag)
	}
	e.codes[codeTag] = contract
	e.log.Debug().Str("code", codeTag).Msg("registered contract")
	return nil
}

// Instantiate creates a new instance of the contract registered under the
// given tag, transfers the funds from the sender to it and runs its Init
// capability, including all messages emitted by it. If any step fails, all
// state changes are reverted, the address is released again and the error
// is returned.
func (e *Ensemble) Instantiate(codeTag string, msg []byte, sender common.Address, funds common.Coins) (common.Address, error) {
	defer e.enter()()
	return e.instantiate(sender, codeTag, msg, funds)
}

// Execute transfers the funds from the sender to the given contract and
// runs its Handle capability, including all messages emitted by it and
// recursively by the contracts it calls. Either the whole call tree takes
// effect or, if any step fails, none of it does.
func (e *Ensemble) Execute(address common.Address, msg []byte, sender common.Address, funds common.Coins) (*Response, error) {
	defer e.enter()()
	return e.execute(sender, address, msg, funds)
}

// Query runs the Query capability of the given contract. Queries can not
// modify any state.
func (e *Ensemble) Query(address common.Address, msg []byte) ([]byte, error) {
	defer e.enter()()
	return e.query(address, msg)
}

// enter marks the start of an entry point and returns the function marking
// its end.
func (e *Ensemble) enter() func() {
	if e.active {
		panic("ensemble entry point invoked from within a contract call")
	}
	e.active = true
	return func() {
		e.active = false
	}
}

func (e *Ensemble) instantiate(sender common.Address, codeTag string, msg []byte, funds common.Coins) (common.Address, error) {
	code, found := e.codes[codeTag]
	if !found {
		return "", fmt.Errorf("%w: %q", ErrUnknownCode, codeTag)
	}
	funds, err := funds.Normalize()
	if err != nil {
		return "", err
	}

	address := common.ContractAddress(codeTag, e.sequence+1)
	frame, err := e.push(kindInstantiate, address, sender, funds)
	if err != nil {
		return "", err
	}
	e.sequence++
	rec := &record{
		address: address,
		codeTag: codeTag,
		code:    code,
		store:   revertable.NewStore(storage.NewMemoryStore()),
	}
	e.records[address] = rec
	frame.created = append(frame.created, address)
	frame.open(rec.store)

	_, err = e.run(frame, func() (*Response, error) {
		if err := e.bank.TransferCoins(sender, address, funds); err != nil {
			return nil, fmt.Errorf("funds for %s: %w", address, err)
		}
		res, err := code.Init(e.deps(rec), frame.env, msg)
		if err != nil {
			return nil, &ContractError{Kind: InitFailed, Address: address, Err: err}
		}
		return res, nil
	})
	if err != nil {
		return "", err
	}
	return address, nil
}

func (e *Ensemble) execute(sender, address common.Address, msg []byte, funds common.Coins) (*Response, error) {
	rec, found := e.records[address]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContract, address)
	}
	funds, err := funds.Normalize()
	if err != nil {
		return nil, err
	}

	frame, err := e.push(kindExecute, address, sender, funds)
	if err != nil {
		return nil, err
	}
	frame.open(rec.store)

	return e.run(frame, func() (*Response, error) {
		if err := e.bank.TransferCoins(sender, address, funds); err != nil {
			return nil, fmt.Errorf("funds for %s: %w", address, err)
		}
		res, err := rec.code.Handle(e.deps(rec), frame.env, msg)
		if err != nil {
			return nil, &ContractError{Kind: HandleFailed, Address: address, Err: err}
		}
		return res, nil
	})
}

func (e *Ensemble) query(address common.Address, msg []byte) ([]byte, error) {
	rec, found := e.records[address]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContract, address)
	}
	if e.queryDepth >= e.config.MaxCallDepth {
		return nil, fmt.Errorf("%w: query of %s at depth %d", ErrCallDepthExceeded, address, e.queryDepth)
	}
	e.queryDepth++
	defer func() { e.queryDepth-- }()

	deps := QueryDeps{
		Storage: storage.ReadOnly(rec.store),
		Querier: querier{ensemble: e},
		Api:     e.config.Api,
	}
	res, err := rec.code.Query(deps, msg)
	if err != nil {
		return nil, &ContractError{Kind: QueryFailed, Address: address, Err: err}
	}
	return res, nil
}

// run executes the given call in the given frame, dispatches the messages
// of its response and closes the frame. The frame is also closed, and its
// changes reverted, if the call panics.
func (e *Ensemble) run(frame *callFrame, call func() (*Response, error)) (res *Response, err error) {
	completed := false
	defer func() {
		if !completed {
			e.pop(frame, true)
		}
	}()

	res, err = call()
	if err == nil {
		err = e.dispatch(frame.env.Contract, res)
	}
	completed = true
	if err != nil {
		e.log.Debug().
			Int("depth", len(e.stack)).
			Str("contract", string(frame.env.Contract)).
			Err(err).
			Msg("reverting call")
	}
	e.pop(frame, err != nil)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// dispatch processes the messages of a response in order. The first failing
// message aborts the processing; its error is returned unchanged.
func (e *Ensemble) dispatch(sender common.Address, res *Response) error {
	if res == nil {
		return nil
	}
	for _, attr := range res.Attributes {
		e.log.Debug().Str("contract", string(sender)).Str(attr.Key, attr.Value).Msg("attribute")
	}
	for _, msg := range res.Messages {
		var err error
		switch msg := msg.(type) {
		case ExecuteMsg:
			_, err = e.execute(sender, msg.Contract, msg.Msg, msg.Funds)
		case InstantiateMsg:
			_, err = e.instantiate(sender, msg.CodeTag, msg.Msg, msg.Funds)
		case BankSendMsg:
			err = e.bank.TransferCoins(sender, msg.To, msg.Amount)
			if err != nil {
				err = fmt.Errorf("bank send from %s to %s: %w", sender, msg.To, err)
			}
		default:
			err = fmt.Errorf("%w: %T emitted by %s", ErrUnsupportedMessage, msg, sender)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Ensemble) deps(rec *record) Deps {
	return Deps{
		Storage: rec.store,
		Querier: querier{ensemble: e},
		Api:     e.config.Api,
	}
}

// --- Inspection and Test Setup ---

// Contracts returns the addresses of all instances in ascending order.
func (e *Ensemble) Contracts() []common.Address {
	res := maps.Keys(e.records)
	slices.Sort(res)
	return res
}

// Exists reports whether a contract instance with the given address exists.
func (e *Ensemble) Exists(address common.Address) bool {
	_, found := e.records[address]
	return found
}

// CodeTag returns the tag of the code the given instance was created from.
func (e *Ensemble) CodeTag(address common.Address) (string, error) {
	rec, found := e.records[address]
	if !found {
		return "", fmt.Errorf("%w: %s", ErrUnknownContract, address)
	}
	return rec.codeTag, nil
}

// Storage provides read access to the storage of a contract instance.
func (e *Ensemble) Storage(address common.Address) (storage.Reader, error) {
	rec, found := e.records[address]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContract, address)
	}
	return storage.ReadOnly(rec.store), nil
}

func (e *Ensemble) Balance(address common.Address, denom string) amount.Amount {
	return e.bank.Balance(address, denom)
}

func (e *Ensemble) AllBalances(address common.Address) common.Coins {
	return e.bank.AllBalances(address)
}

func (e *Ensemble) Supply(denom string) amount.Amount {
	return e.bank.Supply(denom)
}

// SetBalance overrides a balance without affecting any other. It is meant
// for seeding scenarios.
func (e *Ensemble) SetBalance(address common.Address, denom string, value amount.Amount) {
	defer e.enter()()
	e.bank.SetBalance(address, denom, value)
}

// Mint creates the given coins on the given address.
func (e *Ensemble) Mint(address common.Address, coins common.Coins) error {
	defer e.enter()()
	return e.bank.Mint(address, coins)
}

// Block returns the current position of the chain clock.
func (e *Ensemble) Block() env.Block {
	return e.clock.Block()
}

// AdvanceBlocks moves the chain clock forward by the given number of blocks.
func (e *Ensemble) AdvanceBlocks(blocks uint64) {
	defer e.enter()()
	e.clock.Advance(blocks)
}

// AdvanceTime moves the block time forward without producing blocks.
func (e *Ensemble) AdvanceTime(d time.Duration) error {
	defer e.enter()()
	return e.clock.AdvanceTime(d)
}

// SetBlock positions the chain clock at the given height and time. Neither
// may move backwards.
func (e *Ensemble) SetBlock(height uint64, at time.Time) error {
	defer e.enter()()
	return e.clock.Set(height, at)
}
