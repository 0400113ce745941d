// Copyright 2025 The promist Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package deferred

import "fmt"

// Result is an immutable container holding either a success value of type T
// or an error value of type E, never both.
// State is the discriminator: it returns Succeeded or Failed, and the
// accessor for the absent variant returns the zero value of its type.
type Result[T any, E error] interface {
	Val() T
	Err() E
	State() State
}

// Empty returns a succeeded Result holding the zero value of T.
func Empty[T any, E error]() Result[T, E] {
	return emptyResult[T, E]{}
}

// Val returns a succeeded Result holding val.
func Val[T any, E error](val T) Result[T, E] {
	return valResult[T, E]{val: val}
}

// Err returns a failed Result holding err.
func Err[T any, E error](err E) Result[T, E] {
	return errResult[T, E]{err: err}
}

// ValErr builds a Result from the common Go (value, error) return pair.
// A non-nil error selects the failed variant, keeping the value alongside
// it, since returning both a value and an error is valid in Go (io.EOF).
func ValErr[T any](val T, err error) Result[T, error] {
	if err != nil {
		return valErrResult[T]{val: val, err: err}
	}
	return valResult[T, error]{val: val}
}

type emptyResult[T any, E error] struct{}
type valResult[T any, E error] struct{ val T }
type errResult[T any, E error] struct{ err E }
type valErrResult[T any] struct {
	val T
	err error
}

func (r emptyResult[T, E]) Val() (v T) { return v }
func (r valResult[T, E]) Val() (v T)   { return r.val }
func (r errResult[T, E]) Val() (v T)   { return v }
func (r valErrResult[T]) Val() (v T)   { return r.val }

func (r emptyResult[T, E]) Err() (e E) { return e }
func (r valResult[T, E]) Err() (e E)   { return e }
func (r errResult[T, E]) Err() E       { return r.err }
func (r valErrResult[T]) Err() error   { return r.err }

func (r emptyResult[T, E]) State() State { return Succeeded }
func (r valResult[T, E]) State() State   { return Succeeded }
func (r errResult[T, E]) State() State   { return Failed }
func (r valErrResult[T]) State() State   { return Failed }

func (r emptyResult[T, E]) String() string {
	return "succeeded: <zero>"
}
func (r valResult[T, E]) String() string {
	return fmt.Sprintf("succeeded: %v", r.val)
}
func (r errResult[T, E]) String() string {
	return fmt.Sprintf("failed: %s", r.err.Error())
}
func (r valErrResult[T]) String() string {
	return fmt.Sprintf("failed: (%v, %s)", r.val, r.err.Error())
}
