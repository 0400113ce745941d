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

// calls.go: producer-side constructors that run the production of a value
// and resolve the returned promise with it.

package deferred

import "time"

// Go runs fn on a new goroutine and returns a promise that resolves to the
// Result fn returns. A nil returned Result resolves to Empty.
//
// A panic in fn is not converted into a failure; it propagates on the
// producer goroutine, and the returned promise stays Pending forever.
//
// It panics if fn is nil.
func Go[T any, E error](cc *Context, fn func() Result[T, E]) *Promise[T, E] {
	if fn == nil {
		panic(nilFuncPanicMsg)
	}
	p := New[T, E](cc)
	go func() {
		p.settle(fn())
	}()
	return p
}

// Chan returns a promise that resolves to the first Result received on
// resChan. Closing resChan without sending resolves the promise to Empty.
//
// It panics if resChan is nil.
func Chan[T any, E error](cc *Context, resChan <-chan Result[T, E]) *Promise[T, E] {
	if resChan == nil {
		panic(nilChanPanicMsg)
	}
	p := New[T, E](cc)
	go func() {
		res, ok := <-resChan
		if !ok {
			res = Empty[T, E]()
		}
		p.settle(res)
	}()
	return p
}

// Delay returns a promise that resolves to res after at least duration d.
// A nil res resolves to Empty.
func Delay[T any, E error](cc *Context, res Result[T, E], d time.Duration) *Promise[T, E] {
	p := New[T, E](cc)
	go func() {
		time.Sleep(d)
		p.settle(res)
	}()
	return p
}
