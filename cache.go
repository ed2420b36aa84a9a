// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package itc

// DefaultCacheCap is the default number of recycled channels kept per
// cache bucket. A per-bucket capacity of 0 disables recycling.
const DefaultCacheCap = 100

// cacheBucket is one free list of recycled channels sharing a shape.
type cacheBucket struct {
	itemsize uintptr
	capacity int
	flavor   Flavor
	next     *cacheBucket
	chans    []*rawChannel
}

// Cache is a free list of recycled channel objects, keyed by
// (itemsize, capacity, flavor).
//
// Channel construction is expensive relative to typical throughput
// (buffer allocation, lock and condvar initialization); a cache amortizes
// it for workloads that create and free channels of the same shape
// repeatedly. Caching by exact shape avoids fragmentation and
// re-initialization.
//
// A Cache is confined to a single goroutine — the usual arrangement is
// one cache per worker. It performs no synchronization of its own. Call
// Flush before the owning goroutine exits; cached channels are otherwise
// retained until the cache itself becomes unreachable.
type Cache struct {
	buckets   *cacheBucket
	perBucket int
}

// NewCache creates a channel cache holding up to DefaultCacheCap
// recycled channels per (itemsize, capacity, flavor) shape.
func NewCache() *Cache {
	return NewCacheCap(DefaultCacheCap)
}

// NewCacheCap creates a channel cache holding up to perBucket recycled
// channels per shape. perBucket = 0 disables recycling: every get
// allocates and every put destroys.
func NewCacheCap(perBucket int) *Cache {
	if perBucket < 0 {
		panic("itc: cache capacity must be >= 0")
	}
	return &Cache{perBucket: perBucket}
}

// get satisfies an allocation from the cache if a matching bucket holds a
// recycled channel, and allocates fresh otherwise. On a miss with no
// matching bucket, an empty bucket is created so future frees can cache.
func (cc *Cache) get(itemsize uintptr, capacity int, flavor Flavor) *rawChannel {
	for b := cc.buckets; b != nil; b = b.next {
		if b.itemsize != itemsize || b.capacity != capacity || b.flavor != flavor {
			continue
		}
		if n := len(b.chans); n > 0 {
			c := b.chans[n-1]
			b.chans[n-1] = nil
			b.chans = b.chans[:n-1]
			if !c.drained() {
				panic("itc: cached channel is not empty")
			}
			return c
		}
		c := newRawChannel(itemsize, capacity, flavor)
		c.cache = cc
		return c
	}

	c := newRawChannel(itemsize, capacity, flavor)
	if cc.perBucket > 0 {
		cc.buckets = &cacheBucket{
			itemsize: itemsize,
			capacity: capacity,
			flavor:   flavor,
			next:     cc.buckets,
			chans:    make([]*rawChannel, 0, cc.perBucket),
		}
		c.cache = cc
	}
	return c
}

// put recycles a channel into its bucket, reporting whether it was kept.
// A recycled channel must be drained; it is stored open so the next get
// observes an empty, non-closed channel.
func (cc *Cache) put(c *rawChannel) bool {
	for b := cc.buckets; b != nil; b = b.next {
		if b.itemsize != c.itemsize || b.capacity != c.capacity || b.flavor != c.flavor {
			continue
		}
		if len(b.chans) >= cc.perBucket {
			return false
		}
		if !c.drained() {
			panic("itc: freeing non-empty channel into cache")
		}
		c.closed.StoreRelaxed(false)
		b.chans = append(b.chans, c)
		return true
	}
	return false
}

// Flush destroys every cached channel and empties the cache. The cache
// remains usable afterwards.
func (cc *Cache) Flush() {
	for b := cc.buckets; b != nil; b = b.next {
		for i, c := range b.chans {
			c.destroy()
			b.chans[i] = nil
		}
		b.chans = b.chans[:0]
	}
	cc.buckets = nil
}

// freeChannel returns a channel to its origin cache, or destroys it when
// it has none or the bucket is saturated.
func freeChannel(c *rawChannel) {
	if c.cache != nil && c.cache.put(c) {
		return
	}
	c.destroy()
}
