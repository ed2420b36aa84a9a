// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package itc

import "unsafe"

// MPMC protocol.
//
// Producers serialize on tailLock, consumers on headLock, so an enqueue
// and a dequeue can proceed simultaneously. Blocking waiters park on the
// condition variable bound to their own lock and re-check the predicate
// on every wake.
//
// Unbuffered channels rendezvous through a single slot guarded by
// headLock on both sides; head doubles as the occupancy flag.

// mpmcSend copies n bytes into the channel.
func mpmcSend(c *rawChannel, data unsafe.Pointer, n uintptr, blocking bool) bool {
	if c.unbuffered() {
		return rendezvousSend(c, data, n, blocking)
	}

	// Racy hint: bail out before touching the lock.
	if !blocking && c.full() {
		return false
	}

	c.tailLock.Lock()
	if !blocking && c.full() {
		c.tailLock.Unlock()
		return false
	}
	c.parkSend(c.full)

	tail := c.tail.LoadRelaxed()
	c.copyIn(tail, data, n)
	c.tail.Store(c.next(tail))
	c.tailLock.Unlock()

	c.wakeRecv()
	return true
}

// mpmcRecv copies n bytes out of the channel.
func mpmcRecv(c *rawChannel, data unsafe.Pointer, n uintptr, blocking bool) bool {
	if c.unbuffered() {
		return rendezvousRecv(c, data, n, blocking)
	}

	if !blocking && c.empty() {
		return false
	}

	c.headLock.Lock()
	if !blocking && c.empty() {
		c.headLock.Unlock()
		return false
	}
	c.parkRecv(c.empty)

	head := c.head.LoadRelaxed()
	c.copyOut(head, data, n)
	c.head.Store(c.next(head))
	c.headLock.Unlock()

	c.wakeSend()
	return true
}

// rendezvousSend transfers one item through the single rendezvous slot.
// Both conds are bound to headLock for unbuffered channels.
func rendezvousSend(c *rawChannel, data unsafe.Pointer, n uintptr, blocking bool) bool {
	if !blocking && c.occupied() {
		return false
	}

	c.headLock.Lock()
	if !blocking && c.occupied() {
		c.headLock.Unlock()
		return false
	}
	c.parkSend(c.occupied)

	c.copyIn(0, data, n)
	c.head.Store(1)
	c.headLock.Unlock()

	c.wakeRecv()
	return true
}

// rendezvousRecv takes the item out of the rendezvous slot.
func rendezvousRecv(c *rawChannel, data unsafe.Pointer, n uintptr, blocking bool) bool {
	if !blocking && !c.occupied() {
		return false
	}

	c.headLock.Lock()
	if !blocking && !c.occupied() {
		c.headLock.Unlock()
		return false
	}
	c.parkRecv(func() bool { return !c.occupied() })

	c.copyOut(0, data, n)
	c.head.Store(0)
	c.headLock.Unlock()

	c.wakeSend()
	return true
}
