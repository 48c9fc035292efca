// Copyright 2026 The rasterly Authors
// SPDX-License-Identifier: BSD-3-Clause

package resources

import (
	"hash/fnv"
	"image"
	"sync"
	"sync/atomic"
)

const (
	// storeShards is a power of 2 so shard selection is a bitwise AND.
	storeShards = 8
	storeMask   = storeShards - 1

	// DefaultStoreCapacity is the default decoded-image capacity per shard.
	DefaultStoreCapacity = 64
)

// Store is a thread-safe LRU cache of decoded images keyed by source URL.
// It outlives individual renders: a host keeps one Store per session and
// snapshots the URLs a render needs into a Map before rendering, so the
// render itself never touches shared state.
type Store struct {
	shards   [storeShards]*storeShard
	capacity int

	hits   atomic.Uint64
	misses atomic.Uint64
}

type storeShard struct {
	mu      sync.Mutex
	entries map[string]*storeEntry
	lru     *lruList
}

type storeEntry struct {
	img  image.Image
	node *lruNode
}

// NewStore creates a store evicting least-recently-used images beyond
// capacity entries per shard. Non-positive capacity uses the default.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultStoreCapacity
	}
	s := &Store{capacity: capacity}
	for i := range s.shards {
		s.shards[i] = &storeShard{
			entries: make(map[string]*storeEntry),
			lru:     &lruList{},
		}
	}
	return s
}

func (s *Store) shard(url string) *storeShard {
	h := fnv.New64a()
	h.Write([]byte(url))
	return s.shards[h.Sum64()&storeMask]
}

// Get returns the cached image for url, if present.
func (s *Store) Get(url string) (image.Image, bool) {
	sh := s.shard(url)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[url]
	if !ok {
		s.misses.Add(1)
		return nil, false
	}
	sh.lru.moveToFront(e.node)
	s.hits.Add(1)
	return e.img, true
}

// GetOrLoad returns the cached image for url, calling load on a miss. A
// load error is returned to the caller and nothing is cached, so transient
// fetch failures can be retried. The load function runs with the shard lock
// held: concurrent callers of the same URL load once.
func (s *Store) GetOrLoad(url string, load func() (image.Image, error)) (image.Image, error) {
	sh := s.shard(url)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if e, ok := sh.entries[url]; ok {
		sh.lru.moveToFront(e.node)
		s.hits.Add(1)
		return e.img, nil
	}
	s.misses.Add(1)

	img, err := load()
	if err != nil {
		return nil, err
	}
	sh.insert(url, img, s.capacity)
	return img, nil
}

// Set stores an image, evicting the oldest entries past capacity.
func (s *Store) Set(url string, img image.Image) {
	sh := s.shard(url)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if e, ok := sh.entries[url]; ok {
		e.img = img
		sh.lru.moveToFront(e.node)
		return
	}
	sh.insert(url, img, s.capacity)
}

func (sh *storeShard) insert(url string, img image.Image, capacity int) {
	for sh.lru.len >= capacity {
		oldest, ok := sh.lru.removeOldest()
		if !ok {
			break
		}
		delete(sh.entries, oldest)
	}
	sh.entries[url] = &storeEntry{img: img, node: sh.lru.pushFront(url)}
}

// Delete removes an entry; it reports whether the URL was cached.
func (s *Store) Delete(url string) bool {
	sh := s.shard(url)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[url]
	if !ok {
		return false
	}
	sh.lru.remove(e.node)
	delete(sh.entries, url)
	return true
}

// Len returns the number of cached images.
func (s *Store) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		total += len(sh.entries)
		sh.mu.Unlock()
	}
	return total
}

// Snapshot builds the per-render resource map for the given URLs from
// cached entries; URLs not in the store are omitted.
func (s *Store) Snapshot(urls []string) Map {
	m := make(Map, len(urls))
	for _, url := range urls {
		if img, ok := s.Get(url); ok {
			m[url] = img
		}
	}
	return m
}

// Stats reports cache effectiveness counters.
func (s *Store) Stats() (hits, misses uint64) {
	return s.hits.Load(), s.misses.Load()
}

// lruList is a doubly-linked recency list; head is most recently used.
// Not thread-safe: each shard guards its own list.
type lruList struct {
	head *lruNode
	tail *lruNode
	len  int
}

type lruNode struct {
	url  string
	prev *lruNode
	next *lruNode
}

func (l *lruList) pushFront(url string) *lruNode {
	node := &lruNode{url: url}
	if l.head == nil {
		l.head, l.tail = node, node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}
	l.len++
	return node
}

func (l *lruList) moveToFront(node *lruNode) {
	if node == nil || node == l.head {
		return
	}
	l.unlink(node)
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

func (l *lruList) remove(node *lruNode) {
	if node != nil {
		l.unlink(node)
	}
}

func (l *lruList) removeOldest() (string, bool) {
	if l.tail == nil {
		return "", false
	}
	node := l.tail
	l.unlink(node)
	return node.url, true
}

func (l *lruList) unlink(node *lruNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev, node.next = nil, nil
	l.len--
}
