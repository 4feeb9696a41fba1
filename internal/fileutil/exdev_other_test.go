//go:build !unix

package fileutil

func exdevErrno() error { return nil }
