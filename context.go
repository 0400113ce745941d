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
	"sync"

	"github.com/google/uuid"
)

// defQueueSize is the queue capacity of a Context created without an
// explicit ContextConfig.
const defQueueSize = 128

// ContextConfig configures a completion Context.
type ContextConfig struct {
	// QueueSize is the capacity of the Context's job queue.
	// Dispatch blocks while the queue is full, which bounds how far
	// producers can run ahead of handler execution.
	// If it's 0 or less, the default capacity is used.
	QueueSize int
}

// Context is a completion context: a named, serial execution context on
// which promise handlers are invoked.
//
// Jobs dispatched on a Context run one at a time, in dispatch order, on a
// single worker goroutine owned by the Context. The worker is started
// lazily on the first Dispatch call and lives for the rest of the program.
//
// The zero value is not usable; use NewContext, Background, or Inline.
type Context struct {
	name      string
	queueSize int

	// inline marks a Context whose jobs run directly on the dispatching
	// goroutine, instead of a worker. Used by Inline.
	inline bool

	once sync.Once
	jobs chan func()
	wg   sync.WaitGroup
}

// NewContext returns a new Context with the provided name.
// The name carries no semantics; it only identifies the context in
// diagnostics.
func NewContext(name string, c ...*ContextConfig) *Context {
	cc := &Context{name: name, queueSize: defQueueSize}
	if len(c) != 0 && c[0] != nil {
		if size := c[0].QueueSize; size > 0 {
			cc.queueSize = size
		}
	}
	return cc
}

var (
	backgroundOnce sync.Once
	backgroundCtx  *Context

	inlineCtx = &Context{name: "inline", inline: true}
)

// Background returns the default completion context, shared by all promises
// created without an explicit Context.
// It's a serial context named "background", created on first use with the
// default queue capacity.
func Background() *Context {
	backgroundOnce.Do(func() {
		backgroundCtx = NewContext("background")
	})
	return backgroundCtx
}

// Inline returns a Context that runs every job directly on the goroutine
// that dispatched it, with no queue and no worker.
// It trades the serial-execution guarantee for determinism, which makes it
// the context of choice in tests and in strictly synchronous code.
func Inline() *Context {
	return inlineCtx
}

// Name returns the context's name.
func (c *Context) Name() string {
	if c == nil {
		return "<nil>"
	}
	return c.name
}

// Dispatch queues fn for execution on the context.
// On an inline Context, fn runs before Dispatch returns.
// Dispatch blocks while the job queue is full.
func (c *Context) Dispatch(fn func()) {
	if fn == nil {
		panic(nilFuncPanicMsg)
	}
	if c == nil || c.inline {
		fn()
		return
	}

	c.start()

	// add to the wait group before sending, so that this job is accounted
	// for by Join even before the worker picks it up.
	c.wg.Add(1)
	c.jobs <- fn
}

// Join blocks until every job dispatched so far has finished.
// It does not stop the context; jobs dispatched afterwards run normally.
func (c *Context) Join() {
	if c == nil || c.inline {
		return
	}
	c.wg.Wait()
}

func (c *Context) start() {
	c.once.Do(func() {
		c.jobs = make(chan func(), c.queueSize)
		go c.run()
	})
}

func (c *Context) run() {
	for fn := range c.jobs {
		c.call(fn)
	}
}

// call runs one job, keeping the worker alive across panicking handlers.
// The panic value is dropped; the deferred_debug build reports it.
func (c *Context) call(fn func()) {
	defer c.wg.Done()
	defer func() {
		if v := recover(); v != nil {
			debugLog(uuid.Nil, handlerPanicked)
		}
	}()
	fn()
}
