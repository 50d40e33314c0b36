// Package store provides access to the durable keyed document collection that
// holds the student directory. The collection contract is deliberately small:
// point read, upsert, delete and full scan, with the document id doubling as
// the partition key. Anything smarter (ordering, matching, merging) belongs to
// the layers above.
package store

import "context"

// Document is a single schemaless record as stored in the collection.
type Document map[string]interface{}

// ID returns the document's id field, or "" when it has none.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Clone returns a shallow copy of the document. Collections hand out clones so
// callers can mutate results freely.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Collection is a keyed document collection. Implementations must be safe for
// concurrent use; per-document writes are atomic with last-write-wins
// semantics and no cross-document coordination.
type Collection interface {
	// Scan returns every document in the collection, in no particular order.
	Scan(ctx context.Context) ([]Document, error)

	// Read returns the document stored under id. Absence is reported through
	// the second return value, not an error.
	Read(ctx context.Context, id string) (Document, bool, error)

	// Put stores doc under id, replacing any existing document.
	Put(ctx context.Context, id string, doc Document) error

	// Delete removes the document stored under id and reports whether one was
	// there to remove.
	Delete(ctx context.Context, id string) (bool, error)

	// Ping reports whether the collection is reachable.
	Ping(ctx context.Context) error
}
