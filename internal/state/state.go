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

// Package state implements the resolve-once state machine of a promise.
//
// A promise starts Pending and moves, exactly once, to either Succeeded
// or Failed. The transition is an atomic compare-and-swap, so concurrent
// resolve attempts from different goroutines elect a single winner without
// any lock.
package state

import "sync/atomic"

// State is the lifecycle state of a promise.
type State uint32

const (
	// the order here matters, Pending must be the zero value.
	Pending State = iota
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "<unknown>"
	}
}

// Cell holds the state of a single promise.
// The zero value is a Cell in the Pending state, ready for use.
type Cell struct {
	v uint32
}

// Load returns the current state.
func (c *Cell) Load() State {
	return State(atomic.LoadUint32(&c.v))
}

// TryResolve attempts the Pending -> to transition.
// It returns true only for the single winning call; every later call,
// with any target state, returns false and leaves the Cell untouched.
func (c *Cell) TryResolve(to State) bool {
	if to != Succeeded && to != Failed {
		return false
	}
	return atomic.CompareAndSwapUint32(&c.v, uint32(Pending), uint32(to))
}

// Resolved reports whether the Cell has left the Pending state.
func (c *Cell) Resolved() bool {
	return c.Load() != Pending
}
