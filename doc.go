// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package itc provides fixed-capacity, blocking-capable typed channels
// for moving values between goroutines by ownership transfer.
//
// The package is a building block for higher-level concurrent runtimes —
// task schedulers, worker pools, producer/consumer pipelines. Three
// flavors cover the producer/consumer cardinalities:
//
//   - MPMC: Multi-Producer Multi-Consumer
//   - MPSC: Multi-Producer Single-Consumer
//   - SPSC: Single-Producer Single-Consumer
//
// plus a rendezvous variant (capacity 0) where each send meets exactly
// one receive through a single slot.
//
// # Quick Start
//
// Direct constructors:
//
//	c := itc.NewSPSC[Event](1024)
//	c := itc.NewMPMC[Request](64)
//	c := itc.NewChan[Sample](0, itc.MPMC) // rendezvous
//
// Builder API selects the flavor from constraints:
//
//	c := itc.Build[Event](itc.New(1024).SingleProducer().SingleConsumer()) // → SPSC
//	c := itc.Build[Event](itc.New(1024).SingleConsumer())                  // → MPSC
//	c := itc.Build[Event](itc.New(1024))                                   // → MPMC
//
// # Basic Usage
//
// Send consumes its argument: the bytes are copied into the channel and
// the source is zeroed, so the value has one owner at any time. Receive
// adopts the bytes into the destination.
//
//	c := itc.NewMPMC[int](8)
//
//	v := 42
//	c.Send(&v)        // blocks while full; v is zeroed
//
//	var out int
//	c.Recv(&out)      // blocks while empty
//
//	w := 43
//	if !c.TrySend(&w) {
//	    // channel full — w untouched, handle backpressure
//	}
//
// # Blocking Model
//
// Send and Recv wait indefinitely; TrySend and TryRecv never wait. There
// are no timeouts and no cancellation: a caller needing shutdown closes
// the channel (an advisory flag) and arranges its receive loop to observe
// Closed between operations. Close does not wake blocked goroutines —
// close only channels known to be drained.
//
// Blocking MPMC operations park on condition variables. The MPSC and
// SPSC receive paths instead busy-wait with a CPU relaxation hint
// ([code.hybscloud.com/spin]), trading power for latency on the paths
// the unique consumer owns; a blocking SPSC send spins a bounded number
// of rounds on a full channel before parking.
//
// # Payload Types
//
// The ring buffer is untyped memory, so payload types must not contain
// Go pointers; NewChan rejects them at construction. Move reference-typed
// payloads as indices or handles through a ChanIndirect:
//
//	pool := make([][]byte, 64)
//	free := itc.NewChanIndirect(64, itc.SPSC)
//	free.Enqueue(uintptr(3)) // hand slot 3 to the other side
//
// The Isolated wrapper makes the ownership contract explicit when the
// payload embeds state whose aliasing the compiler cannot see:
//
//	iso := itc.Isolate(&v)   // v has no other references; v is zeroed
//	c.SendIsolated(iso)
//	got := c.RecvIsolated().Extract()
//
// # Channel Recycling
//
// Channel construction (buffer, locks, condition variables) is expensive
// relative to typical throughput. A Cache recycles freed channels by
// exact shape (itemsize, capacity, flavor), up to DefaultCacheCap per
// shape:
//
//	cc := itc.NewCache()
//	c := itc.Build[Job](itc.New(8).WithCache(cc))
//	...
//	c.Free()    // back into cc, fully initialized
//	cc.Flush()  // before the owning goroutine exits
//
// A Cache is confined to one goroutine and performs no synchronization.
//
// # Error Handling
//
// TrySend and TryRecv report full/empty as a false return. The
// ChanIndirect API uses the semantic-error convention instead, returning
// [ErrWouldBlock] (sourced from [code.hybscloud.com/iox]); classify with
// IsWouldBlock, IsSemantic, IsNonFailure. Contract violations — negative
// capacity, pointer-bearing payload type, operations on a nil or freed
// channel — panic.
//
// # Ordering Guarantees
//
// Items dequeue in the FIFO order they were enqueued within each
// (producer, consumer) pair. With multiple producers, interleaving is
// fixed by the order producers acquired the send lock; likewise for
// consumers on the receive side. Payload bytes are always published
// before the index advance that makes the item visible, through either
// the enclosing lock release or a sequentially consistent store
// ([code.hybscloud.com/atomix]).
//
// # Race Detection
//
// The MPSC and SPSC paths protect payload bytes with atomic index
// publication rather than locks, a discipline the race detector cannot
// always attribute happens-before edges to. Concurrent tests for those
// flavors are excluded via //go:build !race; see RaceEnabled.
package itc
