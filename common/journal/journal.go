// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package journal provides a scoped undo log. Scopes nest and must be closed
// in LIFO order. Within a scope, only the first modification of a key is
// recorded, so rolling back a scope restores the values the keys had when
// the scope was opened.
package journal

import "fmt"

// Scope identifies an open scope of a journal. It is the nesting depth at
// which the scope was opened, starting with 1 for the outermost scope.
type Scope int

// Entry is the recorded state of a key before its first modification within
// a scope.
type Entry[K comparable, V any] struct {
	Key     K
	Prev    V
	Existed bool
}

type scope[K comparable, V any] struct {
	entries []Entry[K, V]
	touched map[K]struct{}
}

// Journal records undo information for values of type V addressed by keys
// of type K. The zero value is an empty journal without open scopes.
type Journal[K comparable, V any] struct {
	scopes []*scope[K, V]
}

// Begin opens a new scope nested in the currently open one.
func (j *Journal[K, V]) Begin() Scope {
	j.scopes = append(j.scopes, &scope[K, V]{})
	return Scope(len(j.scopes))
}

// Depth returns the number of currently open scopes.
func (j *Journal[K, V]) Depth() int {
	return len(j.scopes)
}

// Record registers the state of a key before it gets modified. The call is
// ignored if no scope is open or if the key was already recorded in the
// innermost scope.
func (j *Journal[K, V]) Record(key K, prev V, existed bool) {
	if len(j.scopes) == 0 {
		return
	}
	current := j.scopes[len(j.scopes)-1]
	if _, found := current.touched[key]; found {
		return
	}
	if current.touched == nil {
		current.touched = map[K]struct{}{}
	}
	current.touched[key] = struct{}{}
	current.entries = append(current.entries, Entry[K, V]{Key: key, Prev: prev, Existed: existed})
}

// Commit closes the given scope and keeps its modifications. If the scope is
// nested, its entries are merged into the enclosing scope for all keys the
// enclosing scope has not recorded yet, so a later rollback of the enclosing
// scope also undoes them.
func (j *Journal[K, V]) Commit(s Scope) {
	current := j.pop(s, "commit")
	if len(j.scopes) == 0 {
		return
	}
	parent := j.scopes[len(j.scopes)-1]
	for _, entry := range current.entries {
		if _, found := parent.touched[entry.Key]; found {
			continue
		}
		if parent.touched == nil {
			parent.touched = map[K]struct{}{}
		}
		parent.touched[entry.Key] = struct{}{}
		parent.entries = append(parent.entries, entry)
	}
}

// Rollback closes the given scope and passes its entries to the restore
// function in reverse order of recording.
func (j *Journal[K, V]) Rollback(s Scope, restore func(Entry[K, V])) {
	current := j.pop(s, "rollback")
	for i := len(current.entries) - 1; i >= 0; i-- {
		restore(current.entries[i])
	}
}

func (j *Journal[K, V]) pop(s Scope, op string) *scope[K, V] {
	if int(s) != len(j.scopes) || s <= 0 {
		panic(fmt.Sprintf("%s of scope %d out of order, innermost open scope is %d", op, s, len(j.scopes)))
	}
	current := j.scopes[len(j.scopes)-1]
	j.scopes[len(j.scopes)-1] = nil
	j.scopes = j.scopes[:len(j.scopes)-1]
	return current
}
