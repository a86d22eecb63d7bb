package category

import "errors"

// ErrUnknownCategory is returned by Parse for an unrecognized category name.
var ErrUnknownCategory = errors.New("unknown category")
