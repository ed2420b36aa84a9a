// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package itc

import "testing"

// =============================================================================
// Channel Cache (white box)
//
// Recycling is observable only through raw pointer identity, so these
// tests live inside the package.
// =============================================================================

// TestCacheRecycleSamePointer frees and reallocates the same shape and
// expects the identical raw channel back every time.
func TestCacheRecycleSamePointer(t *testing.T) {
	cc := NewCache()

	c := NewChanCached[int32](8, MPMC, cc)
	first := c.raw
	c.Free()

	for i := range 4 {
		c = NewChanCached[int32](8, MPMC, cc)
		if c.raw != first {
			t.Fatalf("allocation %d: got a fresh channel, want the recycled one", i+2)
		}
		if c.Peek() != 0 {
			t.Fatalf("recycled channel not empty: %d items", c.Peek())
		}
		c.Free()
	}
}

// TestCacheKeyedByShape verifies (itemsize, capacity, flavor) all
// partition the free lists.
func TestCacheKeyedByShape(t *testing.T) {
	cc := NewCache()

	a := newChan[int32](8, MPMC, cc)
	rawA := a.raw
	a.Free()

	// Different capacity misses
	b := newChan[int32](4, MPMC, cc)
	if b.raw == rawA {
		t.Fatal("capacity 4 allocation reused a capacity 8 channel")
	}
	b.Free()

	// Different flavor misses
	d := newChan[int32](8, MPSC, cc)
	if d.raw == rawA {
		t.Fatal("MPSC allocation reused an MPMC channel")
	}
	d.Free()

	// Different itemsize misses
	e := newChan[int64](8, MPMC, cc)
	if e.raw == rawA {
		t.Fatal("8-byte allocation reused a 4-byte channel")
	}
	e.Free()

	// Exact shape hits
	f := newChan[int32](8, MPMC, cc)
	if f.raw != rawA {
		t.Fatal("matching allocation did not reuse the cached channel")
	}
	f.Free()
}

// TestCacheBucketSaturation verifies a full bucket destroys instead of
// caching.
func TestCacheBucketSaturation(t *testing.T) {
	cc := NewCacheCap(1)

	a := newChan[int32](8, MPMC, cc)
	b := newChan[int32](8, MPMC, cc)
	rawA, rawB := a.raw, b.raw
	a.Free() // cached
	b.Free() // bucket full, destroyed

	d := newChan[int32](8, MPMC, cc)
	if d.raw != rawA {
		t.Fatal("allocation did not pop the cached channel")
	}
	e := newChan[int32](8, MPMC, cc)
	if e.raw == rawA || e.raw == rawB {
		t.Fatal("second allocation reused a channel that should be gone")
	}
	d.Free()
	e.Free()
}

// TestCacheDisabled verifies perBucket = 0 never recycles.
func TestCacheDisabled(t *testing.T) {
	cc := NewCacheCap(0)

	a := newChan[int32](8, MPMC, cc)
	rawA := a.raw
	a.Free()

	b := newChan[int32](8, MPMC, cc)
	if b.raw == rawA {
		t.Fatal("disabled cache recycled a channel")
	}
	b.Free()
}

// TestCacheFlush verifies teardown releases every cached channel.
func TestCacheFlush(t *testing.T) {
	cc := NewCache()

	a := newChan[int32](8, MPMC, cc)
	rawA := a.raw
	a.Free()
	cc.Flush()

	b := newChan[int32](8, MPMC, cc)
	if b.raw == rawA {
		t.Fatal("allocation reused a flushed channel")
	}
	b.Free()
	cc.Flush()
}

// TestCacheResetsClosed verifies a recycled channel comes back open.
func TestCacheResetsClosed(t *testing.T) {
	cc := NewCache()

	a := newChan[int32](8, MPMC, cc)
	rawA := a.raw
	v := int32(1)
	a.Send(&v)
	var out int32
	a.Recv(&out)
	a.Close()
	a.Free()

	b := newChan[int32](8, MPMC, cc)
	if b.raw != rawA {
		t.Fatal("allocation did not reuse the cached channel")
	}
	if b.Closed() {
		t.Fatal("recycled channel is closed")
	}
	if b.Peek() != 0 {
		t.Fatalf("recycled channel not empty: %d items", b.Peek())
	}
	b.Free()
}

// TestCacheRejectsNonEmpty verifies the recycling invariant is asserted.
func TestCacheRejectsNonEmpty(t *testing.T) {
	cc := NewCache()

	a := newChan[int32](8, MPMC, cc)
	v := int32(1)
	a.Send(&v)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when caching a non-empty channel")
		}
	}()
	a.Free()
}

// TestRawChannelShape checks the documented ring layout.
func TestRawChannelShape(t *testing.T) {
	c := newRawChannel(4, 8, MPMC)
	if c.size != 9 {
		t.Fatalf("size: got %d, want capacity+1 = 9", c.size)
	}
	if len(c.buf) != 9*4 {
		t.Fatalf("buffer: got %d bytes, want %d", len(c.buf), 9*4)
	}
	if c.owner != -1 {
		t.Fatalf("owner: got %d, want -1", c.owner)
	}

	u := newRawChannel(4, 0, MPMC)
	if u.size != 1 {
		t.Fatalf("rendezvous size: got %d, want 1", u.size)
	}
	if u.notFull.L != &u.headLock {
		t.Fatal("rendezvous notFull must be bound to headLock")
	}
	if c.notFull.L != &c.tailLock {
		t.Fatal("buffered notFull must be bound to tailLock")
	}
}

// TestIndexBounds drives a ring through several wraparounds and checks
// the index invariant at each quiescent point.
func TestIndexBounds(t *testing.T) {
	c := newChan[uint16](3, MPMC, nil)
	defer c.Free()

	for i := range 50 {
		v := uint16(i)
		c.Send(&v)
		head := c.raw.head.LoadRelaxed()
		tail := c.raw.tail.LoadRelaxed()
		if head >= c.raw.size || tail >= c.raw.size {
			t.Fatalf("iteration %d: indices out of range: head=%d tail=%d size=%d",
				i, head, tail, c.raw.size)
		}
		var out uint16
		c.Recv(&out)
		if out != uint16(i) {
			t.Fatalf("iteration %d: got %d", i, out)
		}
	}
}
