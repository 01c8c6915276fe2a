package db

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "data", "bins.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestBinLifecycle(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	created, err := database.CreateBin(ctx, []byte(`{"notes":[]}`))
	if err != nil {
		t.Fatalf("CreateBin failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Expected generated id")
	}

	got, err := database.GetBin(ctx, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetBin failed: %v", err)
	}
	if string(got.Record) != `{"notes":[]}` {
		t.Errorf("Expected verbatim record, got %s", got.Record)
	}

	updated, err := database.PutBin(ctx, created.ID, []byte(`{"tasks":[]}`))
	if err != nil || updated == nil {
		t.Fatalf("PutBin failed: %v", err)
	}
	if string(updated.Record) != `{"tasks":[]}` {
		t.Errorf("Expected overwritten record, got %s", updated.Record)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Errorf("Expected updated_at >= created_at")
	}

	n, err := database.CountBins(ctx)
	if err != nil || n != 1 {
		t.Errorf("Expected 1 bin, got %d (%v)", n, err)
	}

	removed, err := database.DeleteBin(ctx, created.ID)
	if err != nil || !removed {
		t.Fatalf("DeleteBin failed: %v", err)
	}
	if got, _ := database.GetBin(ctx, created.ID); got != nil {
		t.Error("Expected bin to be gone")
	}
}

func TestMissingBin(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	got, err := database.GetBin(ctx, "nope")
	if err != nil || got != nil {
		t.Errorf("Expected nil, nil for a missing bin, got %v, %v", got, err)
	}
	put, err := database.PutBin(ctx, "nope", []byte(`{}`))
	if err != nil || put != nil {
		t.Errorf("Expected nil, nil when overwriting a missing bin, got %v, %v", put, err)
	}
	removed, err := database.DeleteBin(ctx, "nope")
	if err != nil || removed {
		t.Errorf("Expected nothing removed, got %v, %v", removed, err)
	}
}
