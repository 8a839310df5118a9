package simlab

import "errors"

// ErrEmptyInput indicates a comparison was requested with a blank text.
var ErrEmptyInput = errors.New("both texts are required")
