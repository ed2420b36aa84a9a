// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package itc

import (
	"reflect"
	"unsafe"
)

// noCopy may be added to structs which must not be copied
// after the first use. See golang.org/issues/8005.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Chan is a typed channel handle over the raw engine.
//
// A Chan moves values of T between goroutines by raw byte copy. The send
// operations consume their argument: after the bytes are copied into the
// ring, the source is overwritten with the zero value, so the value has
// exactly one live representation at any time. The receive operations
// adopt the copied bytes as the destination's owning representation.
//
// T must not contain Go pointers (strings, slices, maps, channels, funcs,
// interfaces, pointers): the ring buffer is untyped memory the garbage
// collector does not scan. NewChan rejects pointer-bearing types. For
// reference-typed payloads, pass pool indices or handles through a
// ChanIndirect instead.
//
// A Chan must not be copied. Ownership of the underlying channel moves
// with the handle; call Free exactly once when done (Free is idempotent
// on the same handle).
type Chan[T any] struct {
	noCopy noCopy
	raw    *rawChannel
}

// NewChan creates a channel of the given capacity and flavor.
// capacity = 0 creates a rendezvous channel.
func NewChan[T any](capacity int, flavor Flavor) *Chan[T] {
	return newChan[T](capacity, flavor, nil)
}

// NewChanCached creates a channel like NewChan, routing allocation
// through cc: a recycled channel of matching shape is reused when one is
// cached, and Free returns the channel to cc. The cache is confined to
// the constructing goroutine; Free must be called from that goroutine.
func NewChanCached[T any](capacity int, flavor Flavor, cc *Cache) *Chan[T] {
	return newChan[T](capacity, flavor, cc)
}

func newChan[T any](capacity int, flavor Flavor, cache *Cache) *Chan[T] {
	if payloadHasPointers(reflect.TypeFor[T]()) {
		panic("itc: payload type must not contain pointers; use ChanIndirect for handles")
	}
	var v T
	itemsize := unsafe.Sizeof(v)
	var raw *rawChannel
	if cache != nil {
		raw = cache.get(itemsize, capacity, flavor)
	} else {
		raw = newRawChannel(itemsize, capacity, flavor)
	}
	return &Chan[T]{raw: raw}
}

// payloadHasPointers reports whether t contains any Go pointer the
// garbage collector would need to scan.
func payloadHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return payloadHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if payloadHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Ptr, UnsafePointer, String, Slice, Map, Chan, Func, Interface.
		return true
	}
}

// TrySend enqueues *v without blocking, reporting success. The source is
// consumed (zeroed) only on success; on a full channel it is untouched.
func (c *Chan[T]) TrySend(v *T) bool {
	if !c.raw.send(unsafe.Pointer(v), unsafe.Sizeof(*v), false) {
		return false
	}
	var zero T
	*v = zero
	return true
}

// Send enqueues *v, blocking while the channel is full. The source is
// always consumed.
func (c *Chan[T]) Send(v *T) {
	c.raw.send(unsafe.Pointer(v), unsafe.Sizeof(*v), true)
	var zero T
	*v = zero
}

// SendIsolated enqueues a value the caller has proven no other goroutine
// references, blocking while the channel is full.
func (c *Chan[T]) SendIsolated(iso Isolated[T]) {
	c.raw.send(unsafe.Pointer(&iso.value), unsafe.Sizeof(iso.value), true)
}

// TryRecv dequeues into *out without blocking, reporting success. On an
// empty channel *out is untouched.
func (c *Chan[T]) TryRecv(out *T) bool {
	return c.raw.recv(unsafe.Pointer(out), unsafe.Sizeof(*out), false)
}

// Recv dequeues into *out, blocking while the channel is empty.
func (c *Chan[T]) Recv(out *T) {
	c.raw.recv(unsafe.Pointer(out), unsafe.Sizeof(*out), true)
}

// RecvIsolated dequeues a value, blocking while the channel is empty, and
// returns it in the transfer-safe wrapper.
func (c *Chan[T]) RecvIsolated() Isolated[T] {
	var iso Isolated[T]
	c.raw.recv(unsafe.Pointer(&iso.value), unsafe.Sizeof(iso.value), true)
	return iso
}

// Peek returns an approximate count of buffered items. The snapshot is
// racy: concurrent operations may have changed it before Peek returns.
func (c *Chan[T]) Peek() int {
	return c.raw.length()
}

// Cap returns the channel capacity. 0 means rendezvous.
func (c *Chan[T]) Cap() int {
	return c.raw.capacity
}

// Flavor returns the channel's protocol flavor.
func (c *Chan[T]) Flavor() Flavor {
	return c.raw.flavor
}

// Closed reports the advisory closed flag. The flag is not consulted by
// send or receive; it is a signal between application goroutines and
// establishes no happens-before with in-flight operations.
func (c *Chan[T]) Closed() bool {
	return c.raw.closed.LoadRelaxed()
}

// Close sets the advisory closed flag. Returns false if already closed.
// Close does not wake goroutines blocked in Send or Recv; close only
// channels known to be drained.
func (c *Chan[T]) Close() bool {
	if c.raw.closed.LoadRelaxed() {
		return false
	}
	c.raw.closed.StoreRelaxed(true)
	return true
}

// Open clears the advisory closed flag. Returns false if already open.
func (c *Chan[T]) Open() bool {
	if !c.raw.closed.LoadRelaxed() {
		return false
	}
	c.raw.closed.StoreRelaxed(false)
	return true
}

// Free releases the underlying channel, returning it to its origin cache
// when one has room. Free is idempotent; a freed handle must not be used
// for any other operation. The channel must be drained if it came from a
// cache.
func (c *Chan[T]) Free() {
	if c.raw == nil {
		return
	}
	freeChannel(c.raw)
	c.raw = nil
}

// Isolated wraps a value the holder has sole ownership of, making the
// transfer contract explicit: the wrapped value has no live aliases, so
// moving its bytes across a goroutine boundary is safe.
type Isolated[T any] struct {
	value T
}

// Isolate moves *v into an Isolated wrapper, zeroing the source. The
// caller asserts that no other goroutine holds a reference to the value.
func Isolate[T any](v *T) Isolated[T] {
	iso := Isolated[T]{value: *v}
	var zero T
	*v = zero
	return iso
}

// Extract returns the wrapped value, ending the isolation.
func (iso Isolated[T]) Extract() T {
	return iso.value
}
