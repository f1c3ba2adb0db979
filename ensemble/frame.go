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

	"github.com/0xsoniclabs/ensemble/common"
	"github.com/0xsoniclabs/ensemble/common/journal"
	"github.com/0xsoniclabs/ensemble/env"
)

type callKind int

const (
	kindInstantiate callKind = iota
	kindExecute
)

func (k callKind) String() string {
	switch k {
	case kindInstantiate:
		return "instantiate"
	case kindExecute:
		return "execute"
	}
	return fmt.Sprintf("callKind(%d)", int(k))
}

// revertible is implemented by all state components supporting nested
// snapshot scopes, i.e. the bank and the contract stores.
type revertible interface {
	Begin() journal.Scope
	Commit(journal.Scope)
	Rollback(journal.Scope)
}

type snapshot struct {
	target revertible
	scope  journal.Scope
}

// callFrame is the bookkeeping of a single instantiate or execute call on
// the call stack.
type callFrame struct {
	kind      callKind
	env       env.Env
	snapshots []snapshot       // < in order of opening
	sequence  uint64           // < instance sequence when the frame was opened
	created   []common.Address // < instances created in this frame or committed children
}

// open begins a scope on the given component that gets closed with the
// frame.
func (f *callFrame) open(target revertible) {
	f.snapshots = append(f.snapshots, snapshot{target: target, scope: target.Begin()})
}

// push opens a new frame on the call stack. It opens a scope on the bank;
// scopes on contract stores are added by the caller.
func (e *Ensemble) push(kind callKind, address, sender common.Address, funds common.Coins) (*callFrame, error) {
	if len(e.stack) >= e.config.MaxCallDepth {
		return nil, fmt.Errorf("%w: %v of %s at depth %d", ErrCallDepthExceeded, kind, address, len(e.stack))
	}
	frame := &callFrame{
		kind:     kind,
		env:      env.New(e.clock.Block(), address, sender, funds),
		sequence: e.sequence,
	}
	frame.open(e.bank)
	e.stack = append(e.stack, frame)
	e.log.Debug().
		Int("depth", len(e.stack)).
		Stringer("kind", kind).
		Str("contract", string(address)).
		Str("sender", string(sender)).
		Stringer("funds", funds).
		Msg("dispatching call")
	return frame, nil
}

// pop closes the innermost frame, which must be the given one. A successful
// frame merges its changes into the enclosing frame; a failed one reverts
// all changes made since it was opened, including instances it created.
func (e *Ensemble) pop(frame *callFrame, failed bool) {
	if len(e.stack) == 0 || e.stack[len(e.stack)-1] != frame {
		panic("call frames closed out of order")
	}
	e.stack[len(e.stack)-1] = nil
	e.stack = e.stack[:len(e.stack)-1]

	for i := len(frame.snapshots) - 1; i >= 0; i-- {
		snapshot := frame.snapshots[i]
		if failed {
			snapshot.target.Rollback(snapshot.scope)
		} else {
			snapshot.target.Commit(snapshot.scope)
		}
	}

	if failed {
		for _, address := range frame.created {
			delete(e.records, address)
		}
		e.sequence = frame.sequence
		return
	}
	if len(e.stack) > 0 {
		parent := e.stack[len(e.stack)-1]
		parent.created = append(parent.created, frame.created...)
	}
}
