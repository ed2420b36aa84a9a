// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package itc

import "unsafe"

// ChanIndirect is a channel for uintptr values — pool indices, handles,
// or any index-based representation of a shared object.
//
// This is the sanctioned way to move reference-typed payloads: keep the
// objects in a structure the garbage collector scans (a slice, a pool)
// and transfer indices into it. The channel itself never holds a Go
// pointer.
//
// The non-blocking operations follow the semantic-error convention:
// Enqueue and Dequeue return ErrWouldBlock when the channel is full or
// empty. Send and Recv are the blocking forms.
//
// Example (buffer pool):
//
//	pool := make([][]byte, 64)
//	free := itc.NewChanIndirect(64, itc.SPSC)
//
//	for i := range pool {
//	    pool[i] = make([]byte, 4096)
//	    free.Enqueue(uintptr(i))
//	}
//
//	// Allocate
//	idx, _ := free.Dequeue()
//	buf := pool[idx]
//
//	// Release
//	free.Enqueue(idx)
type ChanIndirect struct {
	noCopy noCopy
	raw    *rawChannel
}

// NewChanIndirect creates a uintptr channel of the given capacity and
// flavor. capacity = 0 creates a rendezvous channel.
func NewChanIndirect(capacity int, flavor Flavor) *ChanIndirect {
	return &ChanIndirect{raw: newRawChannel(ptrSize, capacity, flavor)}
}

func newChanIndirect(capacity int, flavor Flavor, cache *Cache) *ChanIndirect {
	if cache == nil {
		return NewChanIndirect(capacity, flavor)
	}
	return &ChanIndirect{raw: cache.get(ptrSize, capacity, flavor)}
}

// Enqueue adds a value without blocking.
// Returns ErrWouldBlock if the channel is full.
func (c *ChanIndirect) Enqueue(elem uintptr) error {
	if !c.raw.send(unsafe.Pointer(&elem), ptrSize, false) {
		return ErrWouldBlock
	}
	return nil
}

// Dequeue removes and returns a value without blocking.
// Returns (0, ErrWouldBlock) if the channel is empty.
func (c *ChanIndirect) Dequeue() (uintptr, error) {
	var elem uintptr
	if !c.raw.recv(unsafe.Pointer(&elem), ptrSize, false) {
		return 0, ErrWouldBlock
	}
	return elem, nil
}

// Send adds a value, blocking while the channel is full.
func (c *ChanIndirect) Send(elem uintptr) {
	c.raw.send(unsafe.Pointer(&elem), ptrSize, true)
}

// Recv removes and returns a value, blocking while the channel is empty.
func (c *ChanIndirect) Recv() uintptr {
	var elem uintptr
	c.raw.recv(unsafe.Pointer(&elem), ptrSize, true)
	return elem
}

// Peek returns an approximate count of buffered items (racy).
func (c *ChanIndirect) Peek() int {
	return c.raw.length()
}

// Cap returns the channel capacity. 0 means rendezvous.
func (c *ChanIndirect) Cap() int {
	return c.raw.capacity
}

// Flavor returns the channel's protocol flavor.
func (c *ChanIndirect) Flavor() Flavor {
	return c.raw.flavor
}

// Closed reports the advisory closed flag.
func (c *ChanIndirect) Closed() bool {
	return c.raw.closed.LoadRelaxed()
}

// Close sets the advisory closed flag. Returns false if already closed.
func (c *ChanIndirect) Close() bool {
	if c.raw.closed.LoadRelaxed() {
		return false
	}
	c.raw.closed.StoreRelaxed(true)
	return true
}

// Open clears the advisory closed flag. Returns false if already open.
func (c *ChanIndirect) Open() bool {
	if !c.raw.closed.LoadRelaxed() {
		return false
	}
	c.raw.closed.StoreRelaxed(false)
	return true
}

// Free releases the underlying channel. Idempotent.
func (c *ChanIndirect) Free() {
	if c.raw == nil {
		return
	}
	freeChannel(c.raw)
	c.raw = nil
}
