package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalSaveSanitizesName(t *testing.T) {
	store := NewLocal(t.TempDir())
	ctx := context.Background()

	name, err := store.Save(ctx, "รูป ถ่าย (1).jpg", strings.NewReader("img"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	parts := strings.SplitN(name, "-", 2)
	if len(parts) != 2 {
		t.Fatalf("no timestamp prefix in %q", name)
	}
	for _, r := range parts[1] {
		ok := r == '.' || r == '-' || r == '_' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !ok {
			t.Fatalf("unsafe rune %q survived in %q", r, name)
		}
	}
}

func TestLocalSaveNamesAreDistinct(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		name, err := store.Save(ctx, "same.jpg", strings.NewReader("x"))
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if seen[name] {
			t.Fatalf("duplicate name %q", name)
		}
		seen[name] = true

		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("file missing on disk: %v", err)
		}
	}
}

func TestLocalRemoveMissingFile(t *testing.T) {
	store := NewLocal(t.TempDir())

	if err := store.Remove(context.Background(), "does-not-exist.jpg"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLocalRemoveStripsPath(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir)
	ctx := context.Background()

	name, err := store.Save(ctx, "a.jpg", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Remove(ctx, "../"+name); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
}
