package mealpress

import (
	"errors"
	"path/filepath"
	"testing"
)

func setupDataStore(t *testing.T) *DataStore {
	t.Helper()
	s, err := NewDataStore(filepath.Join(t.TempDir(), "data", "site.db"))
	if err != nil {
		t.Fatalf("NewDataStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSubscribers(t *testing.T) {
	s := setupDataStore(t)

	if err := s.AddSubscriber("elena@example.com", "2026-09-01T10:00:00Z"); err != nil {
		t.Fatalf("AddSubscriber failed: %v", err)
	}
	if err := s.AddSubscriber("chef@example.com", "2026-09-01T11:00:00Z"); err != nil {
		t.Fatalf("AddSubscriber failed: %v", err)
	}

	n, err := s.SubscriberCount()
	if err != nil {
		t.Fatalf("SubscriberCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("SubscriberCount = %d, want 2", n)
	}
}

func TestSubscriberDuplicate(t *testing.T) {
	s := setupDataStore(t)

	if err := s.AddSubscriber("elena@example.com", "2026-09-01T10:00:00Z"); err != nil {
		t.Fatalf("AddSubscriber failed: %v", err)
	}
	// Addresses are normalized, so case and whitespace variants collide.
	err := s.AddSubscriber("  Elena@Example.com ", "2026-09-01T11:00:00Z")
	if !errors.Is(err, ErrExists) {
		t.Errorf("duplicate AddSubscriber = %v, want ErrExists", err)
	}

	n, err := s.SubscriberCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("SubscriberCount = %d, want 1", n)
	}
}

func TestImageMetadata(t *testing.T) {
	s := setupDataStore(t)

	imgs := []Image{
		{Filename: "older.jpg", OriginalName: "Older.png", Width: 800, Height: 600, Size: 1000, UploadedAt: "2026-09-01T10:00:00Z"},
		{Filename: "newer.jpg", OriginalName: "Newer.png", Width: 1200, Height: 900, Size: 2000, UploadedAt: "2026-09-01T12:00:00Z"},
	}
	for _, img := range imgs {
		if err := s.SaveImage(img); err != nil {
			t.Fatalf("SaveImage failed: %v", err)
		}
	}

	got, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListImages count = %d, want 2", len(got))
	}
	if got[0].Filename != "newer.jpg" {
		t.Errorf("ListImages[0] = %q, want newest first", got[0].Filename)
	}
	if got[1].Width != 800 || got[1].OriginalName != "Older.png" {
		t.Errorf("ListImages[1] = %+v", got[1])
	}

	if err := s.DeleteImage("older.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	got, err = s.ListImages()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Filename != "newer.jpg" {
		t.Errorf("after delete ListImages = %+v", got)
	}
}
