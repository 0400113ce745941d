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
)

func TestContextName(t *testing.T) {
	tests := []struct {
		cc   *Context
		want string
	}{
		{NewContext("worker-1"), "worker-1"},
		{NewContext(""), ""},
		{Background(), "background"},
		{Inline(), "inline"},
		{nil, "<nil>"},
	}
	for _, tt := range tests {
		if got := tt.cc.Name(); got != tt.want {
			t.Errorf("Name() = %q, want: %q", got, tt.want)
		}
	}
}

func TestBackgroundIsShared(t *testing.T) {
	if Background() != Background() {
		t.Fatal("Background() returned two distinct contexts")
	}
	if Inline() != Inline() {
		t.Fatal("Inline() returned two distinct contexts")
	}
}

func TestInlineDispatch(t *testing.T) {
	ran := false
	Inline().Dispatch(func() { ran = true })
	// an inline dispatch must complete before returning.
	if !ran {
		t.Fatal("inline job didn't run before Dispatch returned")
	}
}

func TestNilContextDispatch(t *testing.T) {
	var cc *Context
	ran := false
	cc.Dispatch(func() { ran = true })
	if !ran {
		t.Fatal("nil-context job didn't run before Dispatch returned")
	}
}

func TestDispatchOrder(t *testing.T) {
	cc := NewContext("test-fifo")

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		cc.Dispatch(func() {
			got = append(got, i)
		})
	}
	cc.Join()

	if len(got) != 100 {
		t.Fatalf("ran %d jobs, want: 100", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("job at position %d was %d, want: %d", i, v, i)
		}
	}
}

func TestJoinWaitsForDispatched(t *testing.T) {
	cc := NewContext("test-join")

	done := false
	release := make(chan struct{})
	cc.Dispatch(func() {
		<-release
		done = true
	})

	go close(release)
	cc.Join()
	if !done {
		t.Fatal("Join returned before the dispatched job finished")
	}
}

func TestJoinOnIdleContext(t *testing.T) {
	// must not block, even before the worker was ever started.
	NewContext("test-idle").Join()
	Inline().Join()
	(*Context)(nil).Join()
}

func TestQueueSizeConfig(t *testing.T) {
	cc := NewContext("test-queue", &ContextConfig{QueueSize: 1})

	// with capacity 1, a full queue makes Dispatch block until the worker
	// drains it; all jobs must still run, in order.
	var got []int
	for i := 0; i < 10; i++ {
		i := i
		cc.Dispatch(func() {
			got = append(got, i)
		})
	}
	cc.Join()

	if len(got) != 10 {
		t.Fatalf("ran %d jobs, want: 10", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("job at position %d was %d, want: %d", i, v, i)
		}
	}
}

func TestDispatchNilFuncPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Dispatch(nil) didn't panic")
		}
	}()
	NewContext("test-nil").Dispatch(nil)
}

func TestWorkerSurvivesPanickingJob(t *testing.T) {
	cc := NewContext("test-panic")

	cc.Dispatch(func() { panic("bad handler") })

	ran := false
	cc.Dispatch(func() { ran = true })
	cc.Join()

	if !ran {
		t.Fatal("worker didn't run jobs after a panicking one")
	}
}
