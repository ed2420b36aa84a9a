// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package itc

import "unsafe"

// Flavor selects the producer/consumer cardinality protocol of a channel.
// The flavor is fixed at construction and never changes.
type Flavor uint8

const (
	// MPMC allows any number of producers and consumers.
	MPMC Flavor = iota
	// MPSC allows any number of producers and exactly one consumer.
	MPSC
	// SPSC allows exactly one producer and one consumer.
	SPSC
)

// String returns the flavor name.
func (f Flavor) String() string {
	switch f {
	case MPMC:
		return "MPMC"
	case MPSC:
		return "MPSC"
	case SPSC:
		return "SPSC"
	}
	return "unknown"
}

// channelOps is one row of the protocol dispatch table.
//
// send copies n bytes from data into the channel; recv copies n bytes out.
// With blocking=false both return immediately, reporting success. With
// blocking=true both wait until the operation completes and return true.
type channelOps struct {
	send func(c *rawChannel, data unsafe.Pointer, n uintptr, blocking bool) bool
	recv func(c *rawChannel, data unsafe.Pointer, n uintptr, blocking bool) bool
}

// protocols maps a flavor to its send/recv implementations.
var protocols = [3]channelOps{
	MPMC: {send: mpmcSend, recv: mpmcRecv},
	MPSC: {send: mpscSend, recv: mpscRecv},
	SPSC: {send: spscSend, recv: spscRecv},
}

// send dispatches to the flavor's send protocol.
func (c *rawChannel) send(data unsafe.Pointer, n uintptr, blocking bool) bool {
	if c == nil {
		panic("itc: send on nil channel")
	}
	if data == nil {
		panic("itc: send with nil data")
	}
	if n > c.itemsize {
		panic("itc: payload exceeds channel item size")
	}
	return protocols[c.flavor].send(c, data, n, blocking)
}

// recv dispatches to the flavor's recv protocol.
func (c *rawChannel) recv(data unsafe.Pointer, n uintptr, blocking bool) bool {
	if c == nil {
		panic("itc: recv on nil channel")
	}
	if data == nil {
		panic("itc: recv with nil data")
	}
	if n > c.itemsize {
		panic("itc: payload exceeds channel item size")
	}
	return protocols[c.flavor].recv(c, data, n, blocking)
}
