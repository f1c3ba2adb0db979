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
	"testing"

	"github.com/0xsoniclabs/ensemble/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var _ storage.Storage = (*Store)(nil)

func dump(t *testing.T, s storage.Reader) []storage.Entry {
	t.Helper()
	entries, err := storage.Entries(s)
	require.NoError(t, err)
	return entries
}

func TestStore_WritesWithoutScopeAreFinal(t *testing.T) {
	require := require.New(t)
	store := NewStore(storage.NewMemoryStore())

	store.Set([]byte("k"), []byte("v"))
	require.Equal([]byte("v"), store.Get([]byte("k")))
	require.Equal(0, store.Depth())
}

func TestStore_RollbackRestoresStateAtBegin(t *testing.T) {
	require := require.New(t)
	store := NewStore(storage.NewMemoryStore())
	store.Set([]byte("a"), []byte("1"))
	store.Set([]byte("b"), []byte("2"))
	before := dump(t, store)

	scope := store.Begin()
	store.Set([]byte("a"), []byte("10"))
	store.Set([]byte("a"), []byte("11"))
	store.Remove([]byte("b"))
	store.Set([]byte("c"), []byte("3"))
	store.Remove([]byte("c"))
	store.Set([]byte("d"), nil)
	store.Rollback(scope)

	require.Equal(before, dump(t, store))
	require.Equal(0, store.Depth())
}

func TestStore_CommitKeepsModifications(t *testing.T) {
	require := require.New(t)
	store := NewStore(storage.NewMemoryStore())

	scope := store.Begin()
	store.Set([]byte("k"), []byte("v1"))
	store.Commit(scope)

	require.Equal([]byte("v1"), store.Get([]byte("k")))
}

func TestStore_CommitWithoutWritesLeavesStorageUnchanged(t *testing.T) {
	store := NewStore(storage.NewMemoryStore())
	store.Set([]byte("k"), []byte("v"))
	before := dump(t, store)

	scope := store.Begin()
	_ = store.Get([]byte("k"))
	store.Commit(scope)

	require.Equal(t, before, dump(t, store))
}

func TestStore_RollbackWithoutWritesIsNoOp(t *testing.T) {
	store := NewStore(storage.NewMemoryStore())
	store.Set([]byte("k"), []byte("v"))
	before := dump(t, store)

	scope := store.Begin()
	store.Rollback(scope)

	require.Equal(t, before, dump(t, store))
}

func TestStore_FailingInnerScopeRestoresOuterState(t *testing.T) {
	require := require.New(t)
	store := NewStore(storage.NewMemoryStore())

	outer := store.Begin()
	store.Set([]byte("k"), []byte("outer"))

	inner := store.Begin()
	store.Set([]byte("k"), []byte("inner"))
	store.Set([]byte("other"), []byte("x"))
	store.Rollback(inner)

	require.Equal([]byte("outer"), store.Get([]byte("k")))
	require.False(store.Has([]byte("other")))

	store.Commit(outer)
	require.Equal([]byte("outer"), store.Get([]byte("k")))
}

func TestStore_SucceedingInnerScopeIsVisibleToOuterScope(t *testing.T) {
	require := require.New(t)
	store := NewStore(storage.NewMemoryStore())

	outer := store.Begin()
	inner := store.Begin()
	store.Set([]byte("k"), []byte("inner"))
	store.Commit(inner)

	require.Equal([]byte("inner"), store.Get([]byte("k")))

	// an outer rollback still undoes the committed inner writes
	store.Rollback(outer)
	require.False(store.Has([]byte("k")))
}

func TestStore_SiblingScopesAreUndoneByEnclosingRollback(t *testing.T) {
	require := require.New(t)
	store := NewStore(storage.NewMemoryStore())
	store.Set([]byte("k"), []byte("0"))

	outer := store.Begin()
	for _, value := range []string{"1", "2", "3"} {
		inner := store.Begin()
		store.Set([]byte("k"), []byte(value))
		store.Commit(inner)
	}
	require.Equal([]byte("3"), store.Get([]byte("k")))

	store.Rollback(outer)
	require.Equal([]byte("0"), store.Get([]byte("k")))
}

func TestStore_ClosingScopesOutOfOrderPanics(t *testing.T) {
	store := NewStore(storage.NewMemoryStore())
	outer := store.Begin()
	store.Begin()
	require.Panics(t, func() { store.Commit(outer) })
	require.Panics(t, func() { store.Rollback(outer) })
}

func TestStore_IterationSeesLiveKeySpace(t *testing.T) {
	require := require.New(t)
	store := NewStore(storage.NewMemoryStore())
	store.Set([]byte("a"), []byte("1"))

	store.Begin()
	store.Set([]byte("b"), []byte("2"))

	var keys []string
	iter := store.Iterator(nil, nil)
	for ; iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(iter.Close())
	require.Equal([]string{"a", "b"}, keys)

	keys = keys[:0]
	iter = store.ReverseIterator(nil, nil)
	for ; iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(iter.Close())
	require.Equal([]string{"b", "a"}, keys)
}

func TestStore_RollbackRestoresThroughWrappedStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := storage.NewMockStorage(ctrl)

	key := []byte("k")
	missing := []byte("m")

	gomock.InOrder(
		inner.EXPECT().Get(key).Return([]byte("old")),
		inner.EXPECT().Set(key, []byte("new")),
		inner.EXPECT().Get(missing).Return(nil),
		inner.EXPECT().Set(missing, []byte("x")),
		// reverse order of recording
		inner.EXPECT().Remove(missing),
		inner.EXPECT().Set(key, []byte("old")),
	)

	store := NewStore(inner)
	scope := store.Begin()
	store.Set(key, []byte("new"))
	store.Set(missing, []byte("x"))
	store.Rollback(scope)
}

func TestStore_WritesOutsideScopeDoNotReadPriorValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := storage.NewMockStorage(ctrl)
	inner.EXPECT().Set([]byte("k"), []byte("v"))

	NewStore(inner).Set([]byte("k"), []byte("v"))
}
