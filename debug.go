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

type debugEvent int

const (
	_ debugEvent = iota

	resolveSucceeded
	resolveFailed

	// duplicateResolve is reported when a Resolve or Reject call finds the
	// promise already resolved. The call itself is a silent no-op.
	duplicateResolve

	// handlerPanicked is reported when a dispatched handler panics on a
	// completion context; the panic value is dropped and the worker
	// continues.
	handlerPanicked
)

func (e debugEvent) String() string {
	switch e {
	case resolveSucceeded:
		return "resolve succeeded"
	case resolveFailed:
		return "resolve failed"
	case duplicateResolve:
		return "duplicate resolve ignored"
	case handlerPanicked:
		return "handler panicked"
	default:
		return "<unknown event>"
	}
}
