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

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/promist-io/deferred/internal/state"
)

// Promise is a single-assignment container for an eventual success-or-error
// outcome.
//
// A Promise is created Pending, is resolved at most once by its producer,
// via Resolve or Reject, and notifies every registered handler of the
// outcome. Handlers registered while the Promise is Pending run on the
// Promise's completion Context, in registration order. Handlers registered
// after resolution run inline on the registering goroutine (see OnSuccess).
//
// A Promise is shared by its producer and all consumers; it lives as long as
// its longest holder. Dropping every reference to a Pending promise
// discards its handlers without invoking them.
//
// The zero value is not usable; use New, Resolved, or one of the producer
// constructors (Go, Chan, Delay).
type Promise[T any, E error] struct {
	id        uuid.UUID
	createdAt time.Time
	cc        *Context

	// st owns the resolve-once transition; the winning settle call is the
	// only writer of res.
	st state.Cell

	// closed by the winning settle call, after res is written.
	// readers of res must first observe done as closed.
	done chan struct{}

	// mu guards the three handler collections and the replaceable fn of
	// every queued slot.
	mu              sync.Mutex
	res             Result[T, E]
	successHandlers []*slot[T]
	errorHandlers   []*slot[E]
	resultHandlers  []func(Result[T, E])
}

// slot holds one queued handler. Chain builders replace fn in place when
// composing, so that a whole pipeline is installed as a single handler.
type slot[V any] struct {
	fn func(V)
}

// New returns a new Promise in the Pending state, whose handlers will be
// invoked on the provided completion context.
// A nil cc selects Background().
func New[T any, E error](cc *Context) *Promise[T, E] {
	if cc == nil {
		cc = Background()
	}
	return &Promise[T, E]{
		id:        uuid.New(),
		createdAt: time.Now(),
		cc:        cc,
		done:      make(chan struct{}),
	}
}

// Resolved returns a Promise that's already resolved to res, for outcomes
// known at construction time.
// A nil res resolves to Empty.
func Resolved[T any, E error](res Result[T, E], cc *Context) *Promise[T, E] {
	p := New[T, E](cc)
	p.settle(res)
	return p
}

// ID returns the promise's unique identity, as stamped at creation.
func (p *Promise[T, E]) ID() uuid.UUID {
	return p.id
}

// CreatedAt returns the promise's creation time.
func (p *Promise[T, E]) CreatedAt() time.Time {
	return p.createdAt
}

// Context returns the promise's completion context.
func (p *Promise[T, E]) Context() *Context {
	return p.cc
}

// State returns the promise's current state, without blocking.
func (p *Promise[T, E]) State() State {
	return stateOf(p.st.Load())
}

func (p *Promise[T, E]) String() string {
	return fmt.Sprintf("promise(%s): %s", p.id, p.State())
}

// Resolve resolves the promise to success with val.
// If the promise is already resolved, by any previous Resolve or Reject
// call, it's a no-op.
func (p *Promise[T, E]) Resolve(val T) {
	p.settle(Val[T, E](val))
}

// Reject resolves the promise to failure with err.
// If the promise is already resolved, by any previous Resolve or Reject
// call, it's a no-op.
func (p *Promise[T, E]) Reject(err E) {
	p.settle(Err[T, E](err))
}

// settle performs the single state transition and hands the captured
// handlers to the completion context.
// It's safe to call from any goroutine, any number of times; only the
// first call has an effect.
func (p *Promise[T, E]) settle(res Result[T, E]) {
	if res == nil {
		res = Empty[T, E]()
	}
	to := state.Succeeded
	if res.State() == Failed {
		to = state.Failed
	}

	p.mu.Lock()
	if !p.st.TryResolve(to) {
		p.mu.Unlock()
		debugLog(p.id, duplicateResolve)
		return
	}
	p.res = res

	// capture the handlers and clear the collections before dispatching,
	// so that a registration racing with this resolution either lands in
	// the captured set or sees the promise as resolved, never both.
	ss := p.successHandlers
	es := p.errorHandlers
	rs := p.resultHandlers
	p.successHandlers, p.errorHandlers, p.resultHandlers = nil, nil, nil
	p.mu.Unlock()

	close(p.done)

	if to == state.Succeeded {
		debugLog(p.id, resolveSucceeded)
		if len(ss) == 0 && len(rs) == 0 {
			return
		}
		val := res.Val()
		p.cc.Dispatch(func() {
			for _, s := range ss {
				callSlot(p, s, val)
			}
			for _, h := range rs {
				h(res)
			}
		})
		return
	}

	debugLog(p.id, resolveFailed)
	if len(es) == 0 && len(rs) == 0 {
		return
	}
	errVal := res.Err()
	p.cc.Dispatch(func() {
		for _, s := range es {
			callSlot(p, s, errVal)
		}
		for _, h := range rs {
			h(res)
		}
	})
}

// callSlot invokes a captured slot with the resolved value.
// The fn is re-read under the lock right before the call, so a Then
// composition installed between resolution and dispatch still takes effect.
func callSlot[T any, E error, V any](p *Promise[T, E], s *slot[V], v V) {
	p.mu.Lock()
	fn := s.fn
	p.mu.Unlock()
	if fn != nil {
		fn(v)
	}
}

// OnResult registers a handler receiving the promise's terminal Result,
// whichever variant it is. It fires exactly once: on the completion context
// if the promise is Pending, or inline before OnResult returns if the
// promise is already resolved.
func (p *Promise[T, E]) OnResult(h func(Result[T, E])) {
	if h == nil {
		panic(nilHandlerPanicMsg)
	}
	p.mu.Lock()
	if p.st.Load() == state.Pending {
		p.resultHandlers = append(p.resultHandlers, h)
		p.mu.Unlock()
		return
	}
	res := p.res
	p.mu.Unlock()
	h(res)
}

// onSuccessFn registers fn as a bare success observer: queued when Pending,
// invoked inline when already succeeded, dropped when already failed.
func (p *Promise[T, E]) onSuccessFn(fn func(T)) {
	p.mu.Lock()
	if p.st.Load() == state.Pending {
		p.successHandlers = append(p.successHandlers, &slot[T]{fn: fn})
		p.mu.Unlock()
		return
	}
	res := p.res
	p.mu.Unlock()
	if res.State() == Succeeded {
		fn(res.Val())
	}
}

// onErrorFn is the failure counterpart of onSuccessFn.
func (p *Promise[T, E]) onErrorFn(fn func(E)) {
	p.mu.Lock()
	if p.st.Load() == state.Pending {
		p.errorHandlers = append(p.errorHandlers, &slot[E]{fn: fn})
		p.mu.Unlock()
		return
	}
	res := p.res
	p.mu.Unlock()
	if res.State() == Failed {
		fn(res.Err())
	}
}

// Wait blocks the calling goroutine until the promise is resolved, then
// returns its Result.
//
// Wait must not be called from a handler whose own resolution it would
// block: waiting, on the completion context, for a promise that can only be
// resolved by a job queued behind the running handler deadlocks. Waiting
// for an already-resolved promise, including the one that triggered the
// running handler, is always safe.
func (p *Promise[T, E]) Wait() Result[T, E] {
	<-p.done
	return p.res
}

// WaitContext is like Wait, but gives up when ctx is done, returning a nil
// Result and the ctx error. The promise itself is unaffected; there is no
// cancellation propagation.
func (p *Promise[T, E]) WaitContext(ctx context.Context) (Result[T, E], error) {
	select {
	case <-p.done:
		return p.res, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel that's closed when the promise is resolved.
func (p *Promise[T, E]) Done() <-chan struct{} {
	return p.done
}

// Nest wires p into another promise: p's success resolves into through
// mapper, and p's error rejects into directly.
// It's the primitive behind Map and flattening; using it directly lets a
// producer forward an outcome into an already-published promise.
func Nest[T any, V any, E error](p *Promise[T, E], into *Promise[V, E], mapper func(T) V) {
	if into == nil {
		panic(nilPromisePanicMsg)
	}
	if mapper == nil {
		panic(nilMapperPanicMsg)
	}
	p.onSuccessFn(func(v T) { into.Resolve(mapper(v)) })
	p.onErrorFn(into.Reject)
}

// adopt resolves out with inner's eventual outcome, flattening one level
// of promise nesting.
func adopt[V any, E error](inner *Promise[V, E], out *Promise[V, E]) {
	if inner == nil {
		panic(nilPromisePanicMsg)
	}
	inner.onSuccessFn(out.Resolve)
	inner.onErrorFn(out.Reject)
}
