package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// saveUpload copies an uploaded file to a scoped temporary location and
// returns its path together with a cleanup function. Callers must defer
// the cleanup so the file is removed on every exit path, including panics
// during parsing.
func saveUpload(file io.Reader, filename string) (string, func(), error) {
	// Keep the original extension so the extractor can route on it. The
	// base name strips any path separators a hostile client could send.
	ext := filepath.Ext(filepath.Base(filename))
	ext = strings.ReplaceAll(ext, "*", "")

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to close temporary file: %w", err)
	}

	cleanup := func() {
		os.Remove(tmp.Name())
	}

	return tmp.Name(), cleanup, nil
}
