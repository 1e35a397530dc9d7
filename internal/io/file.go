// Package ioutils provides file system utilities for apng-to-png.
//
// All functions that accept a context.Context respect cancellation,
// though file operations themselves may not be interruptible.
package ioutils

import (
	"context"
	"os"
)

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing, so a rerun replaces earlier output.
//
// Example:
//
//	err := WriteFile(ctx, "/out/clip1/frame_000.png", pngData)
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned and its contents
// are left untouched.
//
// Example:
//
//	err := EnsureDir("/out/clip1")
//	// Creates /out and /out/clip1 if needed
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
