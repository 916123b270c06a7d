//go:build unix

package main

import (
	"os"
	"syscall"
)

func chown(name string, stat os.FileInfo) error {
	if sys, ok := stat.Sys().(*syscall.Stat_t); ok {
		return os.Chown(name, int(sys.Uid), int(sys.Gid))
	}
	return nil
}
