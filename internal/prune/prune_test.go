package prune_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sorter/internal/failure"
	"sorter/internal/logging"
	"sorter/internal/prune"
	"sorter/internal/testsupport"
)

func TestEmptyRemovesTransitivelyEmptiedParents(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := prune.Empty(context.Background(), root, logging.NewNop())
	if err != nil {
		t.Fatalf("Empty: %v", err)
	}

	want := []string{deep, filepath.Join(root, "a", "b"), filepath.Join(root, "a")}
	if len(result.Removed) != len(want) {
		t.Fatalf("expected %d removals, got %v", len(want), result.Removed)
	}
	for i, path := range want {
		if result.Removed[i] != path {
			t.Fatalf("removal %d: expected %s, got %s", i, path, result.Removed[i])
		}
	}
	testsupport.RequireMissing(t, filepath.Join(root, "a"))
	testsupport.RequireExists(t, root)
}

func TestEmptyKeepsDirectoriesWithFiles(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "Videos", "video.mp4"), 4)
	if err := os.MkdirAll(filepath.Join(root, "tmp"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "Videos", "empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := prune.Empty(context.Background(), root, logging.NewNop())
	if err != nil {
		t.Fatalf("Empty: %v", err)
	}

	testsupport.RequireMissing(t, filepath.Join(root, "tmp"))
	testsupport.RequireMissing(t, filepath.Join(root, "Videos", "empty"))
	testsupport.RequireExists(t, filepath.Join(root, "Videos", "video.mp4"))
	if len(result.Kept) != 1 || result.Kept[0] != filepath.Join(root, "Videos") {
		t.Fatalf("unexpected kept list %v", result.Kept)
	}
	if len(result.Decisions) != 3 {
		t.Fatalf("expected a decision per directory, got %v", result.Decisions)
	}
}

func TestEmptyLeavesNoEmptyDirectories(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"x/y", "x/z/w", "keep/inner", ".hidden/empty"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	testsupport.WriteFile(t, filepath.Join(root, "keep", "inner", "file.txt"), 1)

	if _, err := prune.Empty(context.Background(), root, logging.NewNop()); err != nil {
		t.Fatalf("Empty: %v", err)
	}

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}
		entries, readErr := os.ReadDir(path)
		if readErr != nil {
			return readErr
		}
		if len(entries) == 0 {
			t.Errorf("directory %s left empty", path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
}

func TestEmptyNeverRemovesRoot(t *testing.T) {
	root := t.TempDir()

	result, err := prune.Empty(context.Background(), root, logging.NewNop())
	if err != nil {
		t.Fatalf("Empty: %v", err)
	}
	if len(result.Removed) != 0 || len(result.Kept) != 0 {
		t.Fatalf("expected no decisions for bare root, got %+v", result)
	}
	testsupport.RequireExists(t, root)
}

func TestEmptyMissingRootIsFilesystemError(t *testing.T) {
	_, err := prune.Empty(context.Background(), filepath.Join(t.TempDir(), "missing"), logging.NewNop())
	if !errors.Is(err, failure.ErrFilesystem) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}
