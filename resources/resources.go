// Package resources tracks the external images a node tree needs: a
// collector that gathers fetch tasks before rendering, and a map handing the
// fetched pixels to the paint pass. Fetching itself stays outside the
// pipeline.
package resources

import "image"

// Map holds fetched images keyed by their source URL.
type Map map[string]image.Image

// Image returns the fetched image for src, or nil when it was not provided.
func (m Map) Image(src string) image.Image {
	if m == nil {
		return nil
	}
	return m[src]
}

// Tasks collects the distinct resource URLs a render will need, preserving
// first-seen order so hosts can fetch deterministically.
type Tasks struct {
	seen  map[string]struct{}
	order []string
}

// NewTasks creates an empty task collection.
func NewTasks() *Tasks {
	return &Tasks{seen: make(map[string]struct{})}
}

// Add records a URL. Duplicates and empty strings are ignored; the return
// value reports whether the URL was newly added.
func (t *Tasks) Add(src string) bool {
	if src == "" {
		return false
	}
	if _, ok := t.seen[src]; ok {
		return false
	}
	t.seen[src] = struct{}{}
	t.order = append(t.order, src)
	return true
}

// URLs returns the collected URLs in first-seen order.
func (t *Tasks) URLs() []string { return t.order }

// Len returns the number of distinct URLs collected.
func (t *Tasks) Len() int { return len(t.order) }
