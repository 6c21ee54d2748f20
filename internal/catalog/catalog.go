// Package catalog exposes the salon's flat price list to the email templates.
// The list is read lazily on first lookup and memoized for the process
// lifetime; it only decorates human-readable text and a miss never blocks the
// confirmation protocol.
package catalog

import (
	"encoding/json"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/lumiere-atelier/salon-bookings/pkg/logger"
)

type ServiceDescriptor struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Package  string `json:"package"`
	Price    string `json:"price"`
	Duration int    `json:"duration_minutes"`
}

type Catalog struct {
	path string

	group  singleflight.Group
	mu     sync.RWMutex
	byID   map[string]ServiceDescriptor
	loaded bool
}

func New(path string) *Catalog {
	return &Catalog{path: path}
}

// Lookup returns the descriptor for id, loading the backing file on first
// call. Concurrent first lookups collapse into a single read.
func (c *Catalog) Lookup(id string) (ServiceDescriptor, bool) {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()

	if !loaded {
		c.group.Do("load", func() (any, error) {
			c.load()
			return nil, nil
		})
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.byID[id]
	return d, ok
}

func (c *Catalog) load() {
	byID := make(map[string]ServiceDescriptor)

	data, err := os.ReadFile(c.path)
	if err != nil {
		logger.Warn("catalog unavailable; emails will use raw service ids", "path", c.path, "error", err)
	} else {
		var entries []ServiceDescriptor
		if err := json.Unmarshal(data, &entries); err != nil {
			logger.Error("catalog file is malformed", "path", c.path, "error", err)
		} else {
			for _, e := range entries {
				byID[e.ID] = e
			}
		}
	}

	c.mu.Lock()
	c.byID = byID
	c.loaded = true
	c.mu.Unlock()
}
