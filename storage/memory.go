// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package storage

import (
	"bytes"

	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/memdb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const defaultCapacity = 4 * 1024

// MemoryStore is an in-memory Storage keeping its entries in a LevelDB
// memtable, which provides ordered iteration over byte keys.
type MemoryStore struct {
	db *memdb.DB
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{db: memdb.New(comparer.DefaultComparer, defaultCapacity)}
}

func (s *MemoryStore) Get(key []byte) []byte {
	value, err := s.db.Get(key)
	if err != nil {
		// the only possible error is memdb.ErrNotFound
		return nil
	}
	return bytes.Clone(nonNil(value))
}

func (s *MemoryStore) Has(key []byte) bool {
	return s.db.Contains(key)
}

func (s *MemoryStore) Set(key, value []byte) {
	// memdb copies key and value into its own buffer and never fails on Put
	_ = s.db.Put(key, value)
}

func (s *MemoryStore) Remove(key []byte) {
	// deleting a missing key reports memdb.ErrNotFound, which is fine here
	_ = s.db.Delete(key)
}

// Len returns the number of entries in the store.
func (s *MemoryStore) Len() int {
	return s.db.Len()
}

func (s *MemoryStore) Iterator(start, end []byte) Iterator {
	return newIterator(s.db.NewIterator(&util.Range{Start: start, Limit: end}), false)
}

func (s *MemoryStore) ReverseIterator(start, end []byte) Iterator {
	return newIterator(s.db.NewIterator(&util.Range{Start: start, Limit: end}), true)
}

type memIterator struct {
	iter    iterator.Iterator
	reverse bool
	valid   bool
}

func newIterator(iter iterator.Iterator, reverse bool) *memIterator {
	res := &memIterator{iter: iter, reverse: reverse}
	if reverse {
		res.valid = iter.Last()
	} else {
		res.valid = iter.First()
	}
	return res
}

func (i *memIterator) Valid() bool {
	return i.valid
}

func (i *memIterator) Next() {
	if !i.valid {
		panic("iterator is exhausted")
	}
	if i.reverse {
		i.valid = i.iter.Prev()
	} else {
		i.valid = i.iter.Next()
	}
}

func (i *memIterator) Key() []byte {
	return bytes.Clone(nonNil(i.iter.Key()))
}

func (i *memIterator) Value() []byte {
	return bytes.Clone(nonNil(i.iter.Value()))
}

func (i *memIterator) Close() error {
	err := i.iter.Error()
	i.iter.Release()
	i.valid = false
	return err
}

func nonNil(data []byte) []byte {
	if data == nil {
		return []byte{}
	}
	return data
}
