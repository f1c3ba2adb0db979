// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package revertable

import (
	"bytes"

	"github.com/0xsoniclabs/ensemble/common/journal"
	"github.com/0xsoniclabs/ensemble/storage"
)

// Store wraps a storage with nested snapshot scopes. Writes always go to the
// wrapped storage; the prior value of a key is recorded the first time the
// key is written within the innermost open scope. Rolling a scope back
// restores the wrapped storage to its state at the time the scope was
// opened. Writes performed without an open scope are final.
type Store struct {
	inner   storage.Storage
	journal journal.Journal[string, []byte]
}

func NewStore(inner storage.Storage) *Store {
	return &Store{inner: inner}
}

// Begin opens a new scope nested in the currently open one.
func (s *Store) Begin() journal.Scope {
	return s.journal.Begin()
}

// Commit closes the innermost scope and keeps its modifications. The scope
// must be the most recently opened one still open, otherwise Commit panics.
func (s *Store) Commit(scope journal.Scope) {
	s.journal.Commit(scope)
}

// Rollback closes the innermost scope and reverts all modifications made
// since it was opened, including those of committed nested scopes. The
// scope must be the most recently opened one still open, otherwise Rollback
// panics.
func (s *Store) Rollback(scope journal.Scope) {
	s.journal.Rollback(scope, func(e journal.Entry[string, []byte]) {
		if e.Existed {
			s.inner.Set([]byte(e.Key), e.Prev)
		} else {
			s.inner.Remove([]byte(e.Key))
		}
	})
}

// Depth returns the number of open scopes.
func (s *Store) Depth() int {
	return s.journal.Depth()
}

func (s *Store) Get(key []byte) []byte {
	return s.inner.Get(key)
}

func (s *Store) Has(key []byte) bool {
	return s.inner.Has(key)
}

func (s *Store) Iterator(start, end []byte) storage.Iterator {
	return s.inner.Iterator(start, end)
}

func (s *Store) ReverseIterator(start, end []byte) storage.Iterator {
	return s.inner.ReverseIterator(start, end)
}

func (s *Store) Set(key, value []byte) {
	s.record(key)
	s.inner.Set(key, bytes.Clone(value))
}

func (s *Store) Remove(key []byte) {
	s.record(key)
	s.inner.Remove(key)
}

func (s *Store) record(key []byte) {
	if s.journal.Depth() == 0 {
		return
	}
	prev := s.inner.Get(key)
	s.journal.Record(string(key), prev, prev != nil)
}
