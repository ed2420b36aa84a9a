// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package itc

// DefaultCap is the capacity used when none is specified.
const DefaultCap = 30

// Options configures channel creation and flavor selection.
type Options struct {
	// Producer/Consumer constraints (determines flavor)
	singleProducer bool
	singleConsumer bool

	// Allocation routing
	cache *Cache

	// Capacity; 0 means rendezvous
	capacity int
}

// Builder creates channels with fluent configuration.
//
// The builder selects the flavor from producer/consumer constraints and
// optionally routes allocation through a Cache.
//
// Example:
//
//	// SPSC channel for a pipeline stage
//	c := itc.Build[Event](itc.New(1024).SingleProducer().SingleConsumer())
//
//	// MPSC aggregation channel recycled through a worker-local cache
//	cc := itc.NewCache()
//	c := itc.Build[Sample](itc.New(64).SingleConsumer().WithCache(cc))
type Builder struct {
	opts Options
}

// New creates a channel builder with the given capacity.
// capacity = 0 selects the rendezvous variant. Panics if capacity < 0.
func New(capacity int) *Builder {
	if capacity < 0 {
		panic("itc: capacity must be >= 0")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will send.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will receive.
// Enables the lock-free receive path (MPSC or SPSC).
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// WithCache routes allocation and Free through cc. The cache is confined
// to the constructing goroutine; Free must be called from that goroutine.
func (b *Builder) WithCache(cc *Cache) *Builder {
	b.opts.cache = cc
	return b
}

// flavor maps the constraints to a protocol.
//
//	SingleProducer + SingleConsumer → SPSC
//	SingleConsumer only             → MPSC
//	otherwise                       → MPMC
//
// SingleProducer alone has no dedicated flavor and selects MPMC.
func (b *Builder) flavor() Flavor {
	switch {
	case b.opts.singleProducer && b.opts.singleConsumer:
		return SPSC
	case b.opts.singleConsumer:
		return MPSC
	default:
		return MPMC
	}
}

// Build creates a Chan[T] with automatic flavor selection.
func Build[T any](b *Builder) *Chan[T] {
	return newChan[T](b.opts.capacity, b.flavor(), b.opts.cache)
}

// BuildIndirect creates a ChanIndirect with automatic flavor selection.
func (b *Builder) BuildIndirect() *ChanIndirect {
	return newChanIndirect(b.opts.capacity, b.flavor(), b.opts.cache)
}

// NewMPMC creates a multi-producer multi-consumer channel.
func NewMPMC[T any](capacity int) *Chan[T] {
	return NewChan[T](capacity, MPMC)
}

// NewMPSC creates a multi-producer single-consumer channel.
func NewMPSC[T any](capacity int) *Chan[T] {
	return NewChan[T](capacity, MPSC)
}

// NewSPSC creates a single-producer single-consumer channel.
func NewSPSC[T any](capacity int) *Chan[T] {
	return NewChan[T](capacity, SPSC)
}

// NewDefault creates an MPMC channel of DefaultCap capacity.
func NewDefault[T any]() *Chan[T] {
	return NewChan[T](DefaultCap, MPMC)
}
