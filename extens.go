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

// extens.go: combinators over multiple promises.
// They are defined for E = error; promises with typed errors compose into
// them through Generalize.

package deferred

import (
	"sync"
	"sync/atomic"
)

// All returns a promise that resolves to the success values of all the
// provided promises, in input order, once every one of them has succeeded.
// If any promise fails, the returned promise fails with the first error in
// completion order; the remaining promises keep running, as there is no
// cancellation propagation.
//
// With no promises, the returned promise is already resolved to an empty
// slice. It panics if any provided promise is nil.
func All[T any](cc *Context, ps ...*Promise[T, error]) *Promise[[]T, error] {
	if len(ps) == 0 {
		return Resolved[[]T, error](Val[[]T, error]([]T{}), cc)
	}

	out := New[[]T, error](cc)
	vals := make([]T, len(ps))
	remaining := int32(len(ps))

	for i, p := range ps {
		if p == nil {
			panic(nilPromisePanicMsg)
		}
		go func(i int, p *Promise[T, error]) {
			res := p.Wait()
			if res.State() == Failed {
				out.Reject(res.Err())
				return
			}
			vals[i] = res.Val()
			if atomic.AddInt32(&remaining, -1) == 0 {
				out.Resolve(vals)
			}
		}(i, p)
	}
	return out
}

// Any returns a promise that resolves to the value of the first provided
// promise to succeed. If all of them fail, it fails with their errors
// joined, in input order.
//
// With no promises, the returned promise is already failed with
// ErrNoPromises. It panics if any provided promise is nil.
func Any[T any](cc *Context, ps ...*Promise[T, error]) *Promise[T, error] {
	if len(ps) == 0 {
		return Resolved[T, error](Err[T, error](ErrNoPromises), cc)
	}

	out := New[T, error](cc)
	errs := make([]error, len(ps))
	var wg sync.WaitGroup

	for i, p := range ps {
		if p == nil {
			panic(nilPromisePanicMsg)
		}
		wg.Add(1)
		go func(i int, p *Promise[T, error]) {
			defer wg.Done()
			res := p.Wait()
			if res.State() == Succeeded {
				out.Resolve(res.Val())
				return
			}
			errs[i] = res.Err()
		}(i, p)
	}

	go func() {
		wg.Wait()
		// a no-op if some promise already resolved out with its success.
		out.settle(Err[T, error](joinErrors(errs...)))
	}()
	return out
}

// Race returns a promise that adopts the outcome of the first provided
// promise to resolve, whichever variant that is.
//
// With no promises, the returned promise is already failed with
// ErrNoPromises. It panics if any provided promise is nil.
func Race[T any](cc *Context, ps ...*Promise[T, error]) *Promise[T, error] {
	if len(ps) == 0 {
		return Resolved[T, error](Err[T, error](ErrNoPromises), cc)
	}

	out := New[T, error](cc)
	for _, p := range ps {
		if p == nil {
			panic(nilPromisePanicMsg)
		}
		go func(p *Promise[T, error]) {
			out.settle(p.Wait())
		}(p)
	}
	return out
}
