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

// Package deferred provides a single-assignment deferred value, the Promise,
// with typed success and error outcomes, chained handler composition, and
// completion contexts.
//
// A Promise[T, E] holds the eventual outcome of some work: either a success
// value of type T or an error value of type E. It's created Pending by a
// producer, handed to any number of consumers, and later resolved exactly
// once, through Resolve or Reject.
//
// A Promise has three states, and it can be in only one of them at any time:
// Pending: the outcome is not known yet.
// Succeeded: the promise was resolved with a success value.
// Failed: the promise was resolved with an error value.
// The only transitions are Pending to Succeeded and Pending to Failed; both
// are terminal. Any resolve call after the first is a silent no-op, in any
// combination, so racing producers don't need their own coordination.
//
// # Observing the outcome
//
// Consumers register handlers with OnSuccess, OnError, and OnResult, or
// block with Wait. Registration follows two regimes:
//
// Handlers registered while the promise is Pending are queued and, upon
// resolution, run on the promise's completion Context, in registration
// order.
//
// Handlers registered after resolution run inline, on the registering
// goroutine, before the registration call returns. This one invocation
// bypasses the completion context; consumers relying on a specific
// execution context for their side effects must account for it.
//
// Handlers for the variant that didn't happen never run: after a failure,
// success handlers, present or future, are dropped.
//
// # Chains
//
// OnSuccess and OnError return chain builders. A chain composes sequential
// stages with Then, which installs the whole pipeline as a single handler
// on the promise:
//
//	c := deferred.OnSuccess(p, func(v int) int { return v * 2 })
//	deferred.Then(c, func(v int) int { return v + 1 })
//	p.Resolve(10) // the composed handler observes 21
//
// And registers an independent sibling handler of the same kind, and the
// cross methods, SuccessChain.OnError and ErrorChain.OnSuccess, attach a
// handler of the other kind to the same promise. When a handler itself
// produces a promise, Future (and FutureErr) flattens the nesting into a
// single-level promise, mirroring FlatMap.
//
// # Transformation
//
// Map, FlatMap, and Nest derive promises from promises. Generalize erases a
// typed error into the plain error interface, wrapped in *UniformError, so
// that differently-typed chains can meet; the combinators All, Any, and
// Race are defined on that uniform shape. NoError is the error type of
// promises that can never fail.
//
// # Completion contexts
//
// A Context is a named serial executor owning one worker goroutine.
// Promises created with a nil Context use the shared Background() context.
// Inline() runs handlers directly on the dispatching goroutine, which makes
// tests deterministic. Contexts are passed explicitly; the package keeps no
// mutable global configuration beyond the lazily-created Background
// context.
//
// # Lifetime
//
// A Promise is garbage collected once no producer or consumer holds it;
// handlers still queued at that point are discarded without being invoked.
// There is no cancellation and no retry: the package's whole job is
// in-process, single-resolution value propagation.
package deferred
