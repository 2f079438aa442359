package report

import "errors"

// ErrInvalidLine indicates a transcript line that is not a valid entry.
var ErrInvalidLine = errors.New("invalid transcript line")
