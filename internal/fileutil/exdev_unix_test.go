//go:build unix

package fileutil

import "golang.org/x/sys/unix"

func exdevErrno() error { return unix.EXDEV }
