// Package assets maps mesh data blocks to the assets scene objects that own
// their exported geometry.
package assets

import (
	"sort"
	"sync"

	"github.com/Faultbox/gp3d-export/pkg/document"
)

// Catalog resolves mesh data block names to asset entries. It is filled
// before an export and only read during one.
type Catalog struct {
	entries map[string]document.Asset
	mu      sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		entries: make(map[string]document.Asset),
	}
}

// Populate rebuilds the catalog from doc. Every mesh of an assets scene that
// sits at the root or directly under a skeleton is registered under its data
// block. Explicit document entries are applied last and override scanned ones.
// It returns the number of entries.
func (c *Catalog) Populate(doc *document.Document) int {
	c.Clear()

	for _, s := range doc.Scenes {
		if s.Type != document.SceneAssets {
			continue
		}
		s.Walk(func(n, parent *document.Node) bool {
			if n.Kind == document.KindMesh && n.Data != "" && document.SkeletonParentOrNone(parent) {
				c.Add(document.Asset{Data: n.Data, Scene: s.Name, Object: n.Name})
			}
			return true
		})
	}
	for _, a := range doc.Assets {
		c.Add(a)
	}
	return c.Len()
}

// Add registers an entry, replacing any previous entry for the same data block.
func (c *Catalog) Add(a document.Asset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[a.Data] = a
}

// Lookup returns the entry for a mesh data block.
func (c *Catalog) Lookup(data string) (document.Asset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.entries[data]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return a, ok
}

// Entries returns all entries sorted by data block name.
func (c *Catalog) Entries() []document.Asset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]document.Asset, 0, len(c.entries))
	for _, a := range c.entries {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Data < out[j].Data })
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries and resets the stats.
func (c *Catalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]document.Asset)
	c.hits = 0
	c.misses = 0
}

// Stats returns lookup statistics.
func (c *Catalog) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
