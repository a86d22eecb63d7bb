// Package source reads the submission spreadsheet from CSV or Excel files.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/okian/vlaboard/internal/domain/model"
)

// DefaultHeaderRows is the number of rows above the data: a banner row and
// the column header.
const DefaultHeaderRows = 2

// Reader loads spreadsheet rows.
type Reader interface {
	Load(ctx context.Context, path string) ([]model.Row, error)
}

// Loader reads .csv, .xlsx and .xlsm files.
type Loader struct {
	sheet      string
	headerRows int
}

// New creates a loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{headerRows: DefaultHeaderRows}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every data row of the file at path. The format is chosen by
// extension.
func (l *Loader) Load(ctx context.Context, path string) ([]model.Row, error) {
	var (
		records [][]string
		lines   []int
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		records, lines, err = readCSV(ctx, path)
	case ".xlsx", ".xlsm":
		records, err = readXLSX(path, l.sheet)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	rows, err := Decode(records, lines, l.headerRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
