// Package fsutil provides the file reading and writing primitives used by
// formulint: bounded reads with content digests and atomic writes.
package fsutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// DefaultMaxFileSize bounds how much of a formula file is read.
const DefaultMaxFileSize int64 = 16 << 20

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the file exceeds the read limit.
	ErrTooLarge = errors.New("file too large")

	// ErrExists indicates a file that must not be overwritten already exists.
	ErrExists = errors.New("file already exists")
)

// FileInfo captures the state of a file at the time it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// SHA256 is the hex-encoded SHA-256 digest of the content.
	SHA256 string
}

// ReadFile reads a file of at most maxSize bytes and returns its content
// along with metadata. A maxSize of zero or less uses DefaultMaxFileSize.
func ReadFile(ctx context.Context, path string, maxSize int64) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if stat.Size() > maxSize {
		return nil, nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, stat.Size(), maxSize)
	}

	content, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if int64(len(content)) > maxSize {
		return nil, nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, path, maxSize)
	}

	sum := sha256.Sum256(content)
	info := &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    int64(len(content)),
		SHA256:  hex.EncodeToString(sum[:]),
	}

	return content, info, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
