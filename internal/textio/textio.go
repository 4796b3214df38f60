// Package textio handles line-oriented corpus file IO, transparently
// decompressing brotli-packed inputs (*.br).
package textio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/brotli"
)

// maxLineSize bounds the scanner buffer. Ngram corpus lines carry one field
// per year and stay well under this.
const maxLineSize = 1 << 20

// ReadLines opens path and calls fn for every line, in file order.
// Files ending in .br are decompressed on the fly. A non-nil error from fn
// stops iteration and is returned as-is.
func ReadLines(path string, fn func(line string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".br") {
		reader = brotli.NewReader(file)
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// FileExists simply checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// EnsureDir creates directory if it doesn't exist
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// EnsureEmptyDir creates dirPath, refusing to proceed when it already holds
// files. Output directories are operator-owned; clobbering them mid-batch is
// never recoverable.
func EnsureEmptyDir(dirPath string) error {
	entries, err := os.ReadDir(dirPath)
	if err == nil && len(entries) > 0 {
		return fmt.Errorf("output directory %s already exists and is not empty", dirPath)
	}
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dirPath, 0755)
}
