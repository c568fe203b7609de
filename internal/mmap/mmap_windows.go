//go:build windows

package mmap

import (
	"io"
	"os"
)

// Windows keeps file handles open under active mappings, which gets in
// the way of the temp+rename write path. Fall back to a plain read.
func mapFile(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return data, nil
}

func unmapFile([]byte) error { return nil }
