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

//go:generate mockgen -source storage.go -destination storage_mocks.go -package storage

// Reader is the read-only part of a contract's key-value store.
type Reader interface {
	// Get returns the value stored for the key or nil if there is none. A
	// present key with an empty value yields a non-nil empty slice.
	Get(key []byte) []byte
	Has(key []byte) bool
	// Iterator visits all entries with start <= key < end in ascending key
	// order. A nil bound is unbounded. The store must not be modified while
	// an iterator is open.
	Iterator(start, end []byte) Iterator
	// ReverseIterator is like Iterator but visits the keys in descending order.
	ReverseIterator(start, end []byte) Iterator
}

// Storage is a contract's mutable key-value store.
type Storage interface {
	Reader
	Set(key, value []byte)
	Remove(key []byte)
}

// Iterator is a cursor over a range of a store. Returned keys and values are
// copies owned by the caller.
type Iterator interface {
	Valid() bool
	Next()
	Key() []byte
	Value() []byte
	Close() error
}

// ReadOnly wraps a reader such that the result can not be converted back
// into a mutable store by a type assertion.
func ReadOnly(reader Reader) Reader {
	if ro, ok := reader.(readOnly); ok {
		return ro
	}
	return readOnly{reader: reader}
}

type readOnly struct {
	reader Reader
}

func (r readOnly) Get(key []byte) []byte {
	return r.reader.Get(key)
}

func (r readOnly) Has(key []byte) bool {
	return r.reader.Has(key)
}

func (r readOnly) Iterator(start, end []byte) Iterator {
	return r.reader.Iterator(start, end)
}

func (r readOnly) ReverseIterator(start, end []byte) Iterator {
	return r.reader.ReverseIterator(start, end)
}

// Entry is a single key/value pair of a store.
type Entry struct {
	Key   []byte
	Value []byte
}

// Entries collects all entries of the given store in ascending key order.
func Entries(reader Reader) ([]Entry, error) {
	var res []Entry
	iter := reader.Iterator(nil, nil)
	for ; iter.Valid(); iter.Next() {
		res = append(res, Entry{Key: iter.Key(), Value: iter.Value()})
	}
	return res, iter.Close()
}
