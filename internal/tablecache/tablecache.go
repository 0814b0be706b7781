// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package tablecache keeps recently used decode tables, so that many blobs
// sharing one code table only pay for rebuilding it once.
package tablecache

import (
	"bytes"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-tinylfu"
	"github.com/elliotnunn/canonhuff/internal/huffman"
)

// A Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	mu     sync.Mutex
	tables *tinylfu.T[uint64, entry]
	hits   int
	misses int
}

type entry struct {
	meta  []byte // guards against hash collisions
	table *huffman.Table
}

// New returns a cache holding at most n tables.
func New(n int) *Cache {
	n = max(n, 1)
	return &Cache{tables: tinylfu.New[uint64, entry](n, n*10, identity)}
}

// The key is already an xxhash digest.
func identity(k uint64) uint64 { return k }

// Table returns the decode table for a metadata prefix,
// building and remembering it on a miss.
func (c *Cache) Table(meta []byte) (t *huffman.Table, hit bool, err error) {
	key := xxhash.Sum64(meta)

	c.mu.Lock()
	e, ok := c.tables.Get(key)
	c.mu.Unlock()
	if ok && bytes.Equal(e.meta, meta) {
		c.count(true)
		return e.table, true, nil
	}

	lt, err := huffman.ParseMetadata(meta)
	if err != nil {
		return nil, false, err
	}
	t, err = huffman.NewTable(lt)
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	c.tables.Add(key, entry{meta: bytes.Clone(meta), table: t})
	c.mu.Unlock()
	c.count(false)
	return t, false, nil
}

// Decode is [huffman.Decode] with table reuse.
// It also reports whether the blob's table was already cached.
func (c *Cache) Decode(blob []byte) (text string, hit bool, err error) {
	meta, payload, err := huffman.SplitMetadata(blob)
	if err != nil {
		return "", false, err
	}
	t, hit, err := c.Table(meta)
	if err != nil {
		return "", false, err
	}
	text, err = t.Unpack(payload)
	return text, hit, err
}

func (c *Cache) count(hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}

// Stats returns the number of lookups that reused a table and that built one.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
