package output

import "errors"

// ErrWrite is returned when an output file cannot be written.
var ErrWrite = errors.New("cannot write output")
