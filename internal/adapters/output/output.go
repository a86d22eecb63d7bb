// Package output writes leaderboard JSON files for the web frontend.
package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/vlaboard/internal/domain/board"
)

// Published file names.
const (
	LiberoFile     = "libero.json"
	LiberoPlusFile = "liberoPlus.json"
	MetaWorldFile  = "metaworld.json"
	CalvinFile     = "calvin.json"
	SummaryFile    = "data.json"
)

const (
	defaultDirPerm  = 0o755
	defaultFilePerm = 0o644
	indent          = "  "
)

// Writer publishes a build result into a directory.
type Writer struct {
	dir string
}

// New creates a writer targeting dir. The directory is created on first write.
func New(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Write stores every leaderboard of r and its summary. It returns the paths
// written, in order.
func (w *Writer) Write(ctx context.Context, r *board.Result) ([]string, error) {
	if err := os.MkdirAll(w.dir, defaultDirPerm); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	files := []struct {
		name string
		v    any
	}{
		{LiberoFile, r.Libero},
		{LiberoPlusFile, r.LiberoPlus},
		{MetaWorldFile, r.MetaWorld},
		{CalvinFile, r.Calvin},
		{SummaryFile, r.Summary},
	}
	written := make([]string, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		path := filepath.Join(w.dir, f.name)
		if err := WriteFile(path, f.v); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// Encode writes v as two-space indented JSON. Non-ASCII text and HTML
// characters are written as-is.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteFile encodes v into path through a temporary file in the same
// directory, so readers never see a partial file.
func WriteFile(path string, v any) error {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrWrite, filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tmp.Chmod(defaultFilePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
