package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupStore(t *testing.T) *AvatarStore {
	t.Helper()
	store, err := NewAvatarStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewAvatarStore() error: %v", err)
	}
	return store
}

func TestSave_PNG(t *testing.T) {
	store := setupStore(t)

	rel, err := store.Save("user-1", "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if rel != "user-1/avatar.png" {
		t.Errorf("relative path = %q, want %q", rel, "user-1/avatar.png")
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), "user-1", "avatar.png"))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored content = %q, want %q", data, "png-bytes")
	}
}

func TestSave_Overwrites(t *testing.T) {
	store := setupStore(t)

	if _, err := store.Save("user-1", "image/jpeg", strings.NewReader("first")); err != nil {
		t.Fatalf("first Save() error: %v", err)
	}
	if _, err := store.Save("user-1", "image/jpeg", strings.NewReader("second")); err != nil {
		t.Fatalf("second Save() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), "user-1", "avatar.jpg"))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("stored content = %q, want the last write", data)
	}
}

func TestSave_ExtensionChangeRemovesOldFile(t *testing.T) {
	store := setupStore(t)

	if _, err := store.Save("user-1", "image/png", strings.NewReader("png")); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := store.Save("user-1", "image/jpeg", strings.NewReader("jpg")); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(store.Root(), "user-1", "avatar.png")); !os.IsNotExist(err) {
		t.Error("expected old avatar.png to be removed")
	}
	if _, err := os.Stat(filepath.Join(store.Root(), "user-1", "avatar.jpg")); err != nil {
		t.Errorf("expected avatar.jpg to exist: %v", err)
	}
}

func TestSave_RejectsOtherTypes(t *testing.T) {
	store := setupStore(t)

	for _, contentType := range []string{"image/gif", "text/html", ""} {
		_, err := store.Save("user-1", contentType, strings.NewReader("x"))
		if !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("Save(%q) error = %v, want ErrUnsupportedType", contentType, err)
		}
	}
}
