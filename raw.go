// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package itc

import (
	"sync"
	"unsafe"

	"code.hybscloud.com/atomix"
)

// CacheLineSize is the assumed cache line size in bytes. Hot indices are
// padded apart by this amount so producer and consumer writes never share
// a cache line.
const CacheLineSize = 64

// pad is cache line padding to prevent false sharing.
type pad [CacheLineSize]byte

// ptrSize is the size of a pointer in bytes.
const ptrSize = unsafe.Sizeof(uintptr(0))

// rawChannel is the type-erased channel engine shared by all goroutines
// holding a handle to the same channel.
//
// Layout: a ring of size slots of itemsize bytes each. For a buffered
// channel of capacity n, size = n+1 and one slot is sacrificed so that
// head == tail unambiguously means empty. For an unbuffered (rendezvous)
// channel, size = 1 and head alone encodes slot occupancy (0 vacant,
// 1 occupied); tail is unused.
//
// Producers serialize on tailLock, consumers on headLock. Unbuffered
// channels rendezvous through headLock on both sides. notEmpty is bound
// to headLock; notFull is bound to tailLock for buffered channels and to
// headLock for unbuffered ones.
//
// Index publication is a sequentially consistent store: payload bytes are
// written first, then the index advance makes the item (or the free slot)
// visible. The lock-free MPSC/SPSC paths observe indices with seq-cst
// loads, so publication and observation are totally ordered with the
// waiter counters (see wakeSend/wakeRecv).
type rawChannel struct {
	_           pad
	head        atomix.Uint64 // consumer index, 0 <= head < size
	_           pad
	tail        atomix.Uint64 // producer index, 0 <= tail < size
	_           pad
	sendWaiters atomix.Int32 // producers parked on notFull
	_           pad
	recvWaiters atomix.Int32 // consumers parked on notEmpty
	_           pad
	closed      atomix.Bool
	_           pad

	headLock sync.Mutex
	notEmpty *sync.Cond
	_        pad
	tailLock sync.Mutex
	notFull  *sync.Cond
	_        pad

	buf      []byte // size * itemsize bytes
	itemsize uintptr
	capacity int    // user-visible capacity n; 0 = rendezvous
	size     uint64 // n + 1
	flavor   Flavor
	owner    int64 // informational only, never consulted
	cache    *Cache
}

// newRawChannel allocates and initializes a fresh channel object.
func newRawChannel(itemsize uintptr, capacity int, flavor Flavor) *rawChannel {
	if capacity < 0 {
		panic("itc: capacity must be >= 0")
	}
	size := uint64(capacity) + 1
	c := &rawChannel{
		buf:      make([]byte, size*uint64(itemsize)),
		itemsize: itemsize,
		capacity: capacity,
		size:     size,
		flavor:   flavor,
		owner:    -1,
	}
	c.notEmpty = sync.NewCond(&c.headLock)
	if capacity == 0 {
		// Rendezvous: both sides synchronize through headLock.
		c.notFull = sync.NewCond(&c.headLock)
	} else {
		c.notFull = sync.NewCond(&c.tailLock)
	}
	return c
}

// destroy releases the channel's memory. Locks and condition variables
// need no teardown in Go; dropping the buffer is the whole of it.
func (c *rawChannel) destroy() {
	c.buf = nil
}

// unbuffered reports whether this is a rendezvous channel.
func (c *rawChannel) unbuffered() bool {
	return c.capacity == 0
}

// slot returns the byte region of ring slot i.
func (c *rawChannel) slot(i uint64) []byte {
	off := uintptr(i) * c.itemsize
	return c.buf[off : off+c.itemsize]
}

// copyIn stores n payload bytes from data into slot i.
func (c *rawChannel) copyIn(i uint64, data unsafe.Pointer, n uintptr) {
	copy(c.slot(i), unsafe.Slice((*byte)(data), n))
}

// copyOut loads n payload bytes from slot i into data.
func (c *rawChannel) copyOut(i uint64, data unsafe.Pointer, n uintptr) {
	copy(unsafe.Slice((*byte)(data), n), c.slot(i))
}

// next advances a ring index by one slot.
func (c *rawChannel) next(i uint64) uint64 {
	return (i + 1) % c.size
}

// full reports whether the buffered ring is full (seq-cst observation).
func (c *rawChannel) full() bool {
	head := c.head.Load()
	tail := c.tail.Load()
	return (c.size+tail-head)%c.size == c.size-1
}

// empty reports whether the buffered ring is empty (seq-cst observation).
func (c *rawChannel) empty() bool {
	return c.head.Load() == c.tail.Load()
}

// occupied reports whether the rendezvous slot holds an item.
func (c *rawChannel) occupied() bool {
	return c.head.Load() == 1
}

// length returns a racy snapshot of the current item count.
func (c *rawChannel) length() int {
	head := c.head.LoadRelaxed()
	if c.unbuffered() {
		return int(head)
	}
	tail := c.tail.LoadRelaxed()
	return int((c.size + tail - head) % c.size)
}

// drained reports whether the channel holds no items. Used by the cache
// to assert the recycling invariant.
func (c *rawChannel) drained() bool {
	if c.unbuffered() {
		return c.head.LoadRelaxed() == 0
	}
	return c.head.LoadRelaxed() == c.tail.LoadRelaxed()
}

// wakeRecv wakes one parked consumer, if any. The waiter counter keeps
// the uncontended path down to a single atomic load; when a waiter is
// registered, the signal is issued under the condition variable's mutex
// so it cannot slip into the window between the waiter's predicate check
// and its wait.
//
// The counter protocol is sound under seq-cst ordering: a waiter
// increments its counter (while holding the condvar's mutex) before
// re-checking the predicate, and the signaling side publishes the index
// before loading the counter. Either the waiter observes the new index,
// or the signaler observes the waiter.
func (c *rawChannel) wakeRecv() {
	if c.recvWaiters.Load() == 0 {
		return
	}
	c.notEmpty.L.Lock()
	c.notEmpty.Signal()
	c.notEmpty.L.Unlock()
}

// wakeSend wakes one parked producer, if any. See wakeRecv.
func (c *rawChannel) wakeSend() {
	if c.sendWaiters.Load() == 0 {
		return
	}
	c.notFull.L.Lock()
	c.notFull.Signal()
	c.notFull.L.Unlock()
}

// parkSend parks the caller on notFull while wait() holds. The caller
// holds notFull's mutex. The predicate is re-checked after the waiter
// registers: a peer that publishes its index before loading the counter
// either sees the registration or has already changed the predicate.
func (c *rawChannel) parkSend(wait func() bool) {
	for wait() {
		c.sendWaiters.Add(1)
		if wait() {
			c.notFull.Wait()
		}
		c.sendWaiters.Add(-1)
	}
}

// parkRecv parks the caller on notEmpty while wait() holds. The caller
// holds headLock. See parkSend for the registration discipline.
func (c *rawChannel) parkRecv(wait func() bool) {
	for wait() {
		c.recvWaiters.Add(1)
		if wait() {
			c.notEmpty.Wait()
		}
		c.recvWaiters.Add(-1)
	}
}
