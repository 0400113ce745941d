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

// Map returns a new promise that resolves to mapper applied to p's success
// value, and fails with p's error unchanged.
// The returned promise shares p's completion context.
func Map[T any, V any, E error](p *Promise[T, E], mapper func(T) V) *Promise[V, E] {
	if mapper == nil {
		panic(nilMapperPanicMsg)
	}
	out := New[V, E](p.cc)
	Nest(p, out, mapper)
	return out
}

// FlatMap returns a new promise that, on p's success, adopts the outcome of
// the promise produced by mapper, flattening one level of nesting. On p's
// failure, the returned promise fails with p's error directly and mapper is
// never called.
//
// The returned promise's final result equals the inner promise's eventual
// result, regardless of which of the two resolves first.
func FlatMap[T any, V any, E error](p *Promise[T, E], mapper func(T) *Promise[V, E]) *Promise[V, E] {
	if mapper == nil {
		panic(nilMapperPanicMsg)
	}
	out := New[V, E](p.cc)
	p.onSuccessFn(func(v T) { adopt(mapper(v), out) })
	p.onErrorFn(out.Reject)
	return out
}

// Generalize returns a new promise that mirrors p's success and wraps p's
// typed error in a *UniformError behind the plain error interface.
// It's the bridge for composing promises with heterogeneous error types,
// including the combinators All, Any and Race.
func Generalize[T any, E error](p *Promise[T, E]) *Promise[T, error] {
	out := New[T, error](p.cc)
	p.onSuccessFn(out.Resolve)
	p.onErrorFn(func(e E) { out.Reject(newUniformError(e)) })
	return out
}
