// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package result

// Result encapsulates a value along with an error. It is used where a single
// type is needed to record the outcome of an operation that either produced
// a value of type T or failed, e.g. when collecting the outcomes of the steps
// of a scenario.
type Result[T any] struct {
	Value T
	Error error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

func Err[T any](err error) Result[T] {
	return Result[T]{Error: err}
}

// Of wraps the two return values of a fallible call.
func Of[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Error: err}
}

// Get returns the value and error contained in the Result.
func (r Result[T]) Get() (T, error) {
	return r.Value, r.Error
}

func (r Result[T]) IsOk() bool {
	return r.Error == nil
}
