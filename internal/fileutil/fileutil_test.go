package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMoveReplacesDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Move(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("content mismatch: got %q", got)
	}
	if _, err := os.Stat(src); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected source removed, stat err=%v", err)
	}
}

func TestMoveMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Move(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if IsCrossDevice(err) {
		t.Fatalf("did not expect cross-device error: %v", err)
	}
}

func TestMoveCrossDevice(t *testing.T) {
	old := renameFunc
	renameFunc = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: exdevErrno()}
	}
	t.Cleanup(func() { renameFunc = old })

	err := Move("/a", "/b")
	if err == nil {
		t.Fatal("expected error")
	}
	if exdevErrno() != nil && !IsCrossDevice(err) {
		t.Fatalf("expected CrossDeviceError, got %T %v", err, err)
	}
	if IsCrossDevice(err) && !strings.Contains(err.Error(), "cross-device") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Videos")

	created, err := EnsureDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("expected directory to be created")
	}

	created, err = EnsureDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("expected existing directory to be reused")
	}
}

func TestEnsureDirRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Videos")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureDir(path); err == nil {
		t.Fatal("expected error when a file occupies the directory path")
	}
}

func TestWriteStream(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.bin")
	n, err := WriteStream(dst, strings.NewReader("payload"), 0o600)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len("payload")) {
		t.Fatalf("unexpected byte count %d", n)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload" {
		t.Fatalf("content mismatch: got %q", got)
	}
}
