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

// chain.go: the transient builder types returned by handler registration.
// A chain composes sequential stages on top of one installed handler, so a
// whole Then pipeline occupies a single handler slot on the promise.
//
// The chain-building entry points are package-level functions, not methods,
// because each stage introduces a new output type parameter, which Go
// methods cannot do.

package deferred

import "github.com/promist-io/deferred/internal/state"

// SuccessChain wraps one success handler of a Promise, composed of every
// Then stage applied so far. O is the output type of the composed handler.
//
// A SuccessChain is transient: it's created by OnSuccess (or Then), used to
// compose, and discarded. It does not keep the promise alive on its own
// behalf in any way beyond the single handler it installs.
type SuccessChain[O any, T any, E error] struct {
	p  *Promise[T, E]
	fn func(T) O

	// sl is the installed handler slot, nil if the handler was never
	// queued (the promise was already resolved at registration).
	sl *slot[T]

	// fired and out record the handler's invocation; guarded by p.mu
	// once the chain is installed.
	fired bool
	out   O
}

// ErrorChain is the failure counterpart of SuccessChain, wrapping one
// composed error handler of type func(E) O.
type ErrorChain[O any, T any, E error] struct {
	p  *Promise[T, E]
	fn func(E) O

	sl    *slot[E]
	fired bool
	out   O
}

// OnSuccess registers h as a success handler of p and returns a chain
// wrapping it.
//
// If p is Pending, h is queued and will run on p's completion context when
// p succeeds. If p already succeeded, h runs inline, on the calling
// goroutine, before OnSuccess returns; that one invocation deliberately
// bypasses the completion context. If p already failed, h never runs and
// the returned chain is inert, but can still be composed.
func OnSuccess[T any, O any, E error](p *Promise[T, E], h func(T) O) *SuccessChain[O, T, E] {
	if h == nil {
		panic(nilHandlerPanicMsg)
	}
	c := &SuccessChain[O, T, E]{p: p, fn: h}

	p.mu.Lock()
	if p.st.Load() == state.Pending {
		c.sl = &slot[T]{fn: c.invoke}
		p.successHandlers = append(p.successHandlers, c.sl)
		p.mu.Unlock()
		return c
	}
	res := p.res
	p.mu.Unlock()

	if res.State() == Succeeded {
		c.out = h(res.Val())
		c.fired = true
	}
	return c
}

// OnError registers h as an error handler of p and returns a chain wrapping
// it. The registration semantics mirror OnSuccess, with the variants
// swapped.
func OnError[T any, O any, E error](p *Promise[T, E], h func(E) O) *ErrorChain[O, T, E] {
	if h == nil {
		panic(nilHandlerPanicMsg)
	}
	c := &ErrorChain[O, T, E]{p: p, fn: h}

	p.mu.Lock()
	if p.st.Load() == state.Pending {
		c.sl = &slot[E]{fn: c.invoke}
		p.errorHandlers = append(p.errorHandlers, c.sl)
		p.mu.Unlock()
		return c
	}
	res := p.res
	p.mu.Unlock()

	if res.State() == Failed {
		c.out = h(res.Err())
		c.fired = true
	}
	return c
}

// invoke runs the composed handler on the completion context and records
// its output for later Then stages.
func (c *SuccessChain[O, T, E]) invoke(v T) {
	out := c.fn(v)
	c.p.mu.Lock()
	c.out = out
	c.fired = true
	c.p.mu.Unlock()
}

func (c *ErrorChain[O, T, E]) invoke(e E) {
	out := c.fn(e)
	c.p.mu.Lock()
	c.out = out
	c.fired = true
	c.p.mu.Unlock()
}

// Then replaces the chain's installed handler with the composition of next
// after it, returning a chain of the composed type. The promise still holds
// a single handler for the whole pipeline.
//
// If the chain's handler already ran, next receives its recorded output
// inline, before Then returns. If the chain is inert, the composition is
// inert as well.
func Then[O any, T any, E error, O2 any](c *SuccessChain[O, T, E], next func(O) O2) *SuccessChain[O2, T, E] {
	if next == nil {
		panic(nilHandlerPanicMsg)
	}
	p := c.p
	composed := func(v T) O2 { return next(c.fn(v)) }

	p.mu.Lock()
	if c.fired {
		out := c.out
		p.mu.Unlock()
		c2 := &SuccessChain[O2, T, E]{p: p, fn: composed}
		c2.out = next(out)
		c2.fired = true
		return c2
	}
	c2 := &SuccessChain[O2, T, E]{p: p, fn: composed}
	if c.sl != nil {
		c2.sl = c.sl
		c2.sl.fn = c2.invoke
	}
	p.mu.Unlock()
	return c2
}

// ThenErr is Then for error chains.
func ThenErr[O any, T any, E error, O2 any](c *ErrorChain[O, T, E], next func(O) O2) *ErrorChain[O2, T, E] {
	if next == nil {
		panic(nilHandlerPanicMsg)
	}
	p := c.p
	composed := func(e E) O2 { return next(c.fn(e)) }

	p.mu.Lock()
	if c.fired {
		out := c.out
		p.mu.Unlock()
		c2 := &ErrorChain[O2, T, E]{p: p, fn: composed}
		c2.out = next(out)
		c2.fired = true
		return c2
	}
	c2 := &ErrorChain[O2, T, E]{p: p, fn: composed}
	if c.sl != nil {
		c2.sl = c.sl
		c2.sl.fn = c2.invoke
	}
	p.mu.Unlock()
	return c2
}

// And registers h as an independent, sibling success handler on the same
// promise. Unlike Then, it does not compose with the chain's handler.
func (c *SuccessChain[O, T, E]) And(h func(T) O) *SuccessChain[O, T, E] {
	return OnSuccess(c.p, h)
}

// And registers h as an independent, sibling error handler on the same
// promise.
func (c *ErrorChain[O, T, E]) And(h func(E) O) *ErrorChain[O, T, E] {
	return OnError(c.p, h)
}

// OnError attaches an error handler to the chain's underlying promise,
// enabling the fluent success-then-error composition style.
func (c *SuccessChain[O, T, E]) OnError(h func(E) O) *ErrorChain[O, T, E] {
	return OnError(c.p, h)
}

// OnSuccess attaches a success handler to the chain's underlying promise.
func (c *ErrorChain[O, T, E]) OnSuccess(h func(T) O) *SuccessChain[O, T, E] {
	return OnSuccess(c.p, h)
}

// Future flattens a chain whose handler itself produces a promise: it
// returns a new promise that adopts the outcome of the handler's promise.
// The source promise's error rejects the returned promise directly.
//
// It mirrors FlatMap, entered through the chain syntax.
func Future[T any, V any, E error](c *SuccessChain[*Promise[V, E], T, E]) *Promise[V, E] {
	p := c.p
	out := New[V, E](p.cc)
	p.onErrorFn(out.Reject)

	p.mu.Lock()
	switch {
	case c.fired:
		inner := c.out
		p.mu.Unlock()
		adopt(inner, out)
	case c.sl != nil:
		c.sl.fn = func(v T) {
			inner := c.fn(v)
			p.mu.Lock()
			c.out = inner
			c.fired = true
			p.mu.Unlock()
			adopt(inner, out)
		}
		p.mu.Unlock()
	default:
		// inert chain: the error wiring above already covers the only
		// outcome that can reach out.
		p.mu.Unlock()
	}
	return out
}

// FutureErr flattens an error chain whose handler produces a recovery
// promise of the same value type: the source's success resolves the
// returned promise directly, and the source's error is replaced by the
// outcome of the handler's promise.
func FutureErr[T any, E error](c *ErrorChain[*Promise[T, E], T, E]) *Promise[T, E] {
	p := c.p
	out := New[T, E](p.cc)
	p.onSuccessFn(out.Resolve)

	p.mu.Lock()
	switch {
	case c.fired:
		inner := c.out
		p.mu.Unlock()
		adopt(inner, out)
	case c.sl != nil:
		c.sl.fn = func(e E) {
			inner := c.fn(e)
			p.mu.Lock()
			c.out = inner
			c.fired = true
			p.mu.Unlock()
			adopt(inner, out)
		}
		p.mu.Unlock()
	default:
		p.mu.Unlock()
	}
	return out
}
