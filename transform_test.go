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
	"errors"
	"strconv"
	"testing"
)

func TestMap(t *testing.T) {
	t.Run("maps the success value", func(t *testing.T) {
		p := New[int, error](Inline())
		m := Map(p, strconv.Itoa)

		p.Resolve(42)
		if got := m.Wait().Val(); got != "42" {
			t.Fatalf("Val() = %q, want: %q", got, "42")
		}
	})

	t.Run("identity mapper preserves the result", func(t *testing.T) {
		p := New[int, error](Inline())
		m := Map(p, func(v int) int { return v })

		p.Resolve(7)
		if got := m.Wait().Val(); got != 7 {
			t.Fatalf("Val() = %d, want: 7", got)
		}
	})

	t.Run("mapping composes", func(t *testing.T) {
		double := func(v int) int { return v * 2 }
		inc := func(v int) int { return v + 1 }

		p1 := New[int, error](Inline())
		composed := Map(p1, func(v int) int { return inc(double(v)) })

		p2 := New[int, error](Inline())
		sequential := Map(Map(p2, double), inc)

		p1.Resolve(10)
		p2.Resolve(10)
		if a, b := composed.Wait().Val(), sequential.Wait().Val(); a != b || a != 21 {
			t.Fatalf("composed = %d, sequential = %d, want: both 21", a, b)
		}
	})

	t.Run("error passes through unchanged", func(t *testing.T) {
		p := New[int, error](Inline())
		m := Map(p, func(v int) string {
			t.Error("mapper called on a failed promise")
			return ""
		})

		p.Reject(testStrError("down"))
		res := m.Wait()
		if res.State() != Failed || res.Err().Error() != "down" {
			t.Fatalf("mapped result = %v, want: failed down", res)
		}
	})
}

func TestFlatMap(t *testing.T) {
	t.Run("outer first, inner second", func(t *testing.T) {
		p := New[int, error](Inline())
		inner := New[string, error](Inline())
		out := FlatMap(p, func(v int) *Promise[string, error] { return inner })

		p.Resolve(1)
		if s := out.State(); s != Pending {
			t.Fatalf("out.State() = %v before the inner resolved, want: %v", s, Pending)
		}
		inner.Resolve("flat")
		if got := out.Wait().Val(); got != "flat" {
			t.Fatalf("Val() = %q, want: %q", got, "flat")
		}
	})

	t.Run("inner already resolved", func(t *testing.T) {
		p := New[int, error](Inline())
		inner := Resolved[string, error](Val[string, error]("ready"), Inline())
		out := FlatMap(p, func(v int) *Promise[string, error] { return inner })

		p.Resolve(1)
		if got := out.Wait().Val(); got != "ready" {
			t.Fatalf("Val() = %q, want: %q", got, "ready")
		}
	})

	t.Run("outer failure skips the mapper", func(t *testing.T) {
		p := New[int, error](Inline())
		out := FlatMap(p, func(v int) *Promise[string, error] {
			t.Error("mapper called on a failed promise")
			return nil
		})

		p.Reject(errors.New("outer"))
		res := out.Wait()
		if res.State() != Failed || res.Err().Error() != "outer" {
			t.Fatalf("result = %v, want: failed outer", res)
		}
	})

	t.Run("inner failure propagates", func(t *testing.T) {
		p := New[int, error](Inline())
		inner := New[string, error](Inline())
		out := FlatMap(p, func(v int) *Promise[string, error] { return inner })

		p.Resolve(1)
		inner.Reject(errors.New("inner"))
		res := out.Wait()
		if res.State() != Failed || res.Err().Error() != "inner" {
			t.Fatalf("result = %v, want: failed inner", res)
		}
	})
}

func TestGeneralize(t *testing.T) {
	t.Run("success mirrors", func(t *testing.T) {
		p := New[int, testStrError](Inline())
		g := Generalize(p)

		p.Resolve(5)
		if got := g.Wait().Val(); got != 5 {
			t.Fatalf("Val() = %d, want: 5", got)
		}
	})

	t.Run("error wraps in UniformError", func(t *testing.T) {
		p := New[int, testStrError](Inline())
		g := Generalize(p)

		p.Reject(testStrError("typed"))
		err := g.Wait().Err()

		var uerr *UniformError
		if !errors.As(err, &uerr) {
			t.Fatalf("Err() = %T, want: *UniformError", err)
		}
		if !errors.Is(err, testStrError("typed")) {
			t.Fatalf("Err() doesn't unwrap to the original error, got: %v", err)
		}
	})

	t.Run("generalized promises compose with All", func(t *testing.T) {
		p1 := New[int, testStrError](Inline())
		p2 := New[int, testStrError](Inline())
		all := All(Inline(), Generalize(p1), Generalize(p2))

		p1.Resolve(1)
		p2.Resolve(2)
		res := all.Wait()
		if res.State() != Succeeded {
			t.Fatalf("State() = %v, want: %v", res.State(), Succeeded)
		}
		if vals := res.Val(); len(vals) != 2 || vals[0] != 1 || vals[1] != 2 {
			t.Fatalf("Val() = %v, want: [1 2]", vals)
		}
	})
}
