package store

import (
	"context"
	"testing"
)

func TestMemoryCollection_PutReadDelete(t *testing.T) {
	c := NewMemoryCollection()
	ctx := context.Background()

	doc := Document{"id": "s-1", "firstName": "Marie"}
	if err := c.Put(ctx, "s-1", doc); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, found, err := c.Read(ctx, "s-1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !found {
		t.Fatal("expected document to be found")
	}
	if got["firstName"] != "Marie" {
		t.Fatalf("unexpected firstName: %v", got["firstName"])
	}

	removed, err := c.Delete(ctx, "s-1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Fatal("expected delete to report removal")
	}

	_, found, err = c.Read(ctx, "s-1")
	if err != nil {
		t.Fatalf("read after delete: %v", err)
	}
	if found {
		t.Fatal("expected document to be gone")
	}
}

func TestMemoryCollection_ReadMissing(t *testing.T) {
	c := NewMemoryCollection()

	doc, found, err := c.Read(context.Background(), "nope")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if found || doc != nil {
		t.Fatalf("expected absence, got %v", doc)
	}
}

func TestMemoryCollection_DeleteMissing(t *testing.T) {
	c := NewMemoryCollection()

	removed, err := c.Delete(context.Background(), "nope")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed {
		t.Fatal("expected delete of missing id to report false")
	}
}

func TestMemoryCollection_ScanSnapshot(t *testing.T) {
	c := NewMemoryCollection()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := c.Put(ctx, id, Document{"id": id}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}

	docs, err := c.Scan(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}

	// Mutating a scanned document must not leak back into the collection.
	docs[0]["firstName"] = "mutated"
	again, err := c.Scan(ctx)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	for _, doc := range again {
		if doc["firstName"] == "mutated" {
			t.Fatal("scan result aliased the stored document")
		}
	}
}

func TestMemoryCollection_PutReplaces(t *testing.T) {
	c := NewMemoryCollection()
	ctx := context.Background()

	if err := c.Put(ctx, "s-1", Document{"id": "s-1", "year": 1}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := c.Put(ctx, "s-1", Document{"id": "s-1", "year": 2}); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, _, err := c.Read(ctx, "s-1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got["year"] != 2 {
		t.Fatalf("expected replacement, got year=%v", got["year"])
	}

	docs, err := c.Scan(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected a single document, got %d", len(docs))
	}
}
