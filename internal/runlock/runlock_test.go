package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"sorter/internal/failure"
	"sorter/internal/runlock"
	"sorter/internal/testsupport"
)

func TestAcquireRejectsSecondHolder(t *testing.T) {
	lockDir := filepath.Join(t.TempDir(), "locks")
	root := t.TempDir()

	first, err := runlock.Acquire(lockDir, root)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	t.Cleanup(func() { _ = first.Release() })
	testsupport.RequireExists(t, first.Path())

	if _, err := runlock.Acquire(lockDir, root); !errors.Is(err, failure.ErrLocked) {
		t.Fatalf("expected locked error, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	second, err := runlock.Acquire(lockDir, root)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if err := second.Release(); err != nil {
		t.Fatalf("Release second: %v", err)
	}
}

func TestAcquireIndependentRoots(t *testing.T) {
	lockDir := t.TempDir()

	a, err := runlock.Acquire(lockDir, filepath.Join(t.TempDir(), "a"))
	if err != nil {
		t.Fatalf("Acquire a: %v", err)
	}
	defer a.Release()
	b, err := runlock.Acquire(lockDir, filepath.Join(t.TempDir(), "b"))
	if err != nil {
		t.Fatalf("Acquire b: %v", err)
	}
	defer b.Release()

	if a.Path() == b.Path() {
		t.Fatalf("expected distinct lock files, both %s", a.Path())
	}
}

func TestPathForCleansRoot(t *testing.T) {
	if runlock.PathFor("/locks", "/data/x/") != runlock.PathFor("/locks", "/data/x") {
		t.Fatal("expected trailing slash to map to the same lock")
	}
}
