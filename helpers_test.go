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
	"testing"
	"time"
)

func TestMust(t *testing.T) {
	t.Run("returns the success value", func(t *testing.T) {
		if got := Must(Val[int, error](5)); got != 5 {
			t.Fatalf("Must() = %d, want: 5", got)
		}
	})

	t.Run("empty result", func(t *testing.T) {
		if got := Must(Empty[string, error]()); got != "" {
			t.Fatalf("Must() = %q, want: empty", got)
		}
	})

	t.Run("panics with the error on failure", func(t *testing.T) {
		defer func() {
			v := recover()
			if v == nil {
				t.Fatal("Must() on a failed result didn't panic")
			}
			if err, ok := v.(testStrError); !ok || err != "fatal" {
				t.Fatalf("panic value = %v, want: fatal", v)
			}
		}()
		Must(Err[int, testStrError](testStrError("fatal")))
	})
}

func TestWaitAll(t *testing.T) {
	t.Run("waits for every promise", func(t *testing.T) {
		p1 := New[int, error](nil)
		p2 := New[int, error](nil)
		go func() {
			p1.Resolve(1)
			time.Sleep(5 * time.Millisecond)
			p2.Resolve(2)
		}()

		if !WaitAll(p1, p2) {
			t.Fatal("WaitAll() = false, want: true")
		}
		if p1.State() != Succeeded || p2.State() != Succeeded {
			t.Fatal("WaitAll returned before all promises resolved")
		}
	})

	t.Run("no promises", func(t *testing.T) {
		if WaitAll[int, error]() {
			t.Fatal("WaitAll() = true with no promises, want: false")
		}
	})
}
