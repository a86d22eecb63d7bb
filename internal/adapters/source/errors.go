package source

import "errors"

// Source errors.
var (
	ErrOpen   = errors.New("cannot read input")
	ErrFormat = errors.New("unsupported input format")
	ErrLayout = errors.New("unexpected spreadsheet layout")
	ErrSheet  = errors.New("sheet not found")
	ErrWrite  = errors.New("cannot write sheet")
)
