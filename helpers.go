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

// Must returns the success value of res, or panics with res's error if it's
// a failed Result.
//
// By name convention, it should be used only on results which are known to
// be successful, like those of a Promise[T, NoError].
func Must[T any, E error](res Result[T, E]) T {
	if res.State() == Failed {
		panic(res.Err())
	}
	return res.Val()
}

// WaitAll waits for all the provided promises to resolve, then returns
// true, or returns false if no promises are provided.
func WaitAll[T any, E error](ps ...*Promise[T, E]) (waited bool) {
	if len(ps) == 0 {
		return false
	}
	for _, p := range ps {
		p.Wait()
	}
	return true
}
