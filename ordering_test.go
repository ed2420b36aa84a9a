// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package itc_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/itc"
)

// =============================================================================
// Ordering Laws
//
// FIFO holds within each (producer, consumer) pair; with multiple
// producers the interleaving is fixed by send-lock acquisition order.
// =============================================================================

// TestSPSCRoundTrip sends a short sequence through a small ring and
// expects it back in order on the other side.
func TestSPSCRoundTrip(t *testing.T) {
	if itc.RaceEnabled {
		t.Skip("skip: SPSC payload publication is fence-based")
	}

	c := itc.NewSPSC[int32](4)
	defer c.Free()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := int32(1); i <= 10; i++ {
			v := i
			c.Send(&v)
		}
	}()

	for i := int32(1); i <= 10; i++ {
		var out int32
		c.Recv(&out)
		if out != i {
			t.Errorf("Recv %d: got %d", i, out)
			break
		}
	}
	wg.Wait()
}

// TestMPMCPerProducerOrder runs two producers and two consumers over a
// small ring. Each consumer's stream, projected onto one producer's
// values, must preserve that producer's send order; the union must be the
// exact multiset sent.
func TestMPMCPerProducerOrder(t *testing.T) {
	c := itc.NewMPMC[int](8)
	defer c.Free()

	send := func(vals []int) {
		for _, v := range vals {
			x := v
			c.Send(&x)
		}
	}

	var prodWg sync.WaitGroup
	prodWg.Add(2)
	go func() { defer prodWg.Done(); send([]int{10, 11, 12}) }()
	go func() { defer prodWg.Done(); send([]int{20, 21, 22}) }()

	const total = 6
	var consumed atomix.Int64
	streams := make([][]int, 2)
	var consWg sync.WaitGroup
	for id := range 2 {
		consWg.Add(1)
		go func(id int) {
			defer consWg.Done()
			for consumed.Load() < total {
				var out int
				if !c.TryRecv(&out) {
					time.Sleep(time.Microsecond)
					continue
				}
				streams[id] = append(streams[id], out)
				consumed.Add(1)
			}
		}(id)
	}

	prodWg.Wait()
	consWg.Wait()

	seen := map[int]int{}
	for id, stream := range streams {
		lastTen, lastTwenty := 9, 19
		for _, v := range stream {
			seen[v]++
			switch {
			case v >= 10 && v < 20:
				if v <= lastTen {
					t.Errorf("consumer %d: producer 1 order violated: %v", id, stream)
				}
				lastTen = v
			case v >= 20:
				if v <= lastTwenty {
					t.Errorf("consumer %d: producer 2 order violated: %v", id, stream)
				}
				lastTwenty = v
			}
		}
	}
	for _, v := range []int{10, 11, 12, 20, 21, 22} {
		if seen[v] != 1 {
			t.Errorf("value %d received %d times, want 1", v, seen[v])
		}
	}
}

// TestMPSCPerProducerOrder checks the single consumer observes each
// producer's values in that producer's send order.
func TestMPSCPerProducerOrder(t *testing.T) {
	if itc.RaceEnabled {
		t.Skip("skip: MPSC receive path is fence-based")
	}

	const (
		producers = 4
		perProd   = 250
	)

	c := itc.NewMPSC[int](16)
	defer c.Free()

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range perProd {
				v := id*perProd + i
				c.Send(&v)
			}
		}(p)
	}

	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}
	for range producers * perProd {
		var out int
		c.Recv(&out)
		id, seq := out/perProd, out%perProd
		if seq <= last[id] {
			t.Fatalf("producer %d order violated: seq %d after %d", id, seq, last[id])
		}
		last[id] = seq
	}
	wg.Wait()
}

// TestBackPressure fills a capacity-2 channel with three blocking sends;
// the third must not complete before the consumer drains a slot.
func TestBackPressure(t *testing.T) {
	c := itc.NewMPMC[int](2)
	defer c.Free()

	var sent atomix.Int32
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 3; i++ {
			v := i
			c.Send(&v)
			sent.Add(1)
		}
	}()

	deadline := time.Now().Add(5 * time.Second)
	for sent.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("producer did not fill the channel")
		}
		time.Sleep(time.Millisecond)
	}

	// The third send must stay blocked while the channel is full.
	time.Sleep(20 * time.Millisecond)
	if got := sent.Load(); got != 2 {
		t.Fatalf("producer ran past capacity: sent %d, want 2", got)
	}

	for i := 1; i <= 3; i++ {
		var out int
		c.Recv(&out)
		if out != i {
			t.Fatalf("Recv %d: got %d", i, out)
		}
	}
	wg.Wait()

	if got := sent.Load(); got != 3 {
		t.Fatalf("sent: got %d, want 3", got)
	}
}
