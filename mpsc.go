// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package itc

import (
	"unsafe"

	"code.hybscloud.com/spin"
)

// MPSC protocol.
//
// The consumer is unique, so the receive path takes no lock at all: it
// busy-waits on the emptiness predicate with a CPU relaxation hint, reads
// the slot, and publishes the new head with a sequentially consistent
// store. This removes a lock acquisition from the hot receive path; the
// send path is the MPMC one, since producers still serialize on tailLock.
//
// Blocking receives spin rather than park. The expected contention window
// is micro-scale; spin.Wait escalates its relaxation as the wait grows.

// mpscSend copies n bytes into the channel. Identical to MPMC.
func mpscSend(c *rawChannel, data unsafe.Pointer, n uintptr, blocking bool) bool {
	return mpmcSend(c, data, n, blocking)
}

// mpscRecv copies n bytes out of the channel (single consumer only).
func mpscRecv(c *rawChannel, data unsafe.Pointer, n uintptr, blocking bool) bool {
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
