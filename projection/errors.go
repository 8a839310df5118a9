package projection

import "errors"

// ErrUnavailable indicates the history does not yet contain at least two
// distinct vectors, so no 2-D map can be fitted.
var ErrUnavailable = errors.New("projection unavailable: need at least two distinct vectors")
