package store

import (
	"context"
	"sync"
)

// MemoryCollection is an in-process Collection. It backs the tests and the
// "memory" store driver for running the API without Postgres.
type MemoryCollection struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryCollection creates an empty in-memory collection.
func NewMemoryCollection() *MemoryCollection {
	return &MemoryCollection{
		docs: make(map[string]Document),
	}
}

// Scan returns a snapshot of every stored document.
func (c *MemoryCollection) Scan(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Document, 0, len(c.docs))
	for _, doc := range c.docs {
		out = append(out, doc.Clone())
	}
	return out, nil
}

// Read returns the document stored under id.
func (c *MemoryCollection) Read(ctx context.Context, id string) (Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.docs[id]
	if !ok {
		return nil, false, nil
	}
	return doc.Clone(), true, nil
}

// Put stores doc under id, replacing any existing document.
func (c *MemoryCollection) Put(ctx context.Context, id string, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.docs[id] = doc.Clone()
	return nil
}

// Delete removes the document stored under id.
func (c *MemoryCollection) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return false, nil
	}
	delete(c.docs, id)
	return true, nil
}

// Ping always succeeds for the in-memory collection.
func (c *MemoryCollection) Ping(ctx context.Context) error {
	return ctx.Err()
}
