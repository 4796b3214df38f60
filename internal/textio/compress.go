package textio

import (
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/brotli"
	"github.com/charmbracelet/log"
)

// Compress brotli-packs path into path.br at best quality.
// Refuses to overwrite an existing archive.
func Compress(path string) (string, error) {
	if !IsFile(path) {
		return "", fmt.Errorf("could not read %s - not a file", path)
	}
	outPath := path + ".br"
	if FileExists(outPath) {
		return "", fmt.Errorf("could not write to %s - file already exists", outPath)
	}

	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}

	writer := brotli.NewWriterLevel(out, brotli.BestCompression)
	if _, err := io.Copy(writer, in); err != nil {
		out.Close()
		os.Remove(outPath)
		return "", fmt.Errorf("compressing %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		out.Close()
		os.Remove(outPath)
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	log.Debugf("Compressed %s -> %s", path, outPath)
	return outPath, nil
}
