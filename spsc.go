// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package itc

import (
	"unsafe"

	"code.hybscloud.com/spin"
)

// SPSC protocol.
//
// Both sides are unique, so neither hot path acquires a lock: each side
// busy-waits on its predicate with a CPU relaxation hint, copies, and
// publishes its index with a sequentially consistent store. The condition
// variables survive only as a parking lot for a producer facing a slow
// consumer: a blocking send spins a bounded number of rounds on a full
// channel and then parks on notFull instead of burning the core.
//
// Once the producer observes the channel not full it can write without
// re-checking: only the producer itself can make the channel full again.

// spscSpinRounds bounds the pre-park spin of a blocking send.
const spscSpinRounds = 256

// spscSend copies n bytes into the channel (single producer only).
func spscSend(c *rawChannel, data unsafe.Pointer, n uintptr, blocking bool) bool {
	if c.unbuffered() {
		if !spscAwait(c, blocking, func() bool { return !c.occupied() }) {
			return false
		}

		c.copyIn(0, data, n)
		c.head.Store(1)
		c.wakeRecv()
		return true
	}

	if !spscAwait(c, blocking, func() bool { return !c.full() }) {
		return false
	}

	tail := c.tail.LoadRelaxed()
	c.copyIn(tail, data, n)
	c.tail.Store(c.next(tail))
	c.wakeRecv()
	return true
}

// spscRecv copies n bytes out of the channel (single consumer only).
func spscRecv(c *rawChannel, data unsafe.Pointer, n uintptr, blocking bool) bool {
	if c.unbuffered() {
		sw := spin.Wait{}
		for !c.occupied() {
			if !blocking {
				return false
			}
			sw.Once()
		}

		c.copyOut(0, data, n)
		c.head.Store(0)
		c.wakeSend()
		return true
	}

	sw := spin.Wait{}
	for c.empty() {
		if !blocking {
			return false
		}
		sw.Once()
	}

	head := c.head.LoadRelaxed()
	c.copyOut(head, data, n)
	c.head.Store(c.next(head))
	c.wakeSend()
	return true
}

// spscAwait waits until ready() holds. Non-blocking callers get a single
// check. Blocking callers spin spscSpinRounds with relaxation, then park
// on notFull until the consumer's conditional wake.
func spscAwait(c *rawChannel, blocking bool, ready func() bool) bool {
	if ready() {
		return true
	}
	if !blocking {
		return false
	}

	sw := spin.Wait{}
	for i := 0; i < spscSpinRounds; i++ {
		sw.Once()
		if ready() {
			return true
		}
	}

	c.notFull.L.Lock()
	c.parkSend(func() bool { return !ready() })
	c.notFull.L.Unlock()
	return true
}
