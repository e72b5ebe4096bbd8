package explorer

import "errors"

// ErrInvalidSelection indicates a view request referencing an unknown team,
// category or display mode. It is recoverable: the caller keeps its current
// view and surfaces a message. It is distinct from an empty result.
var ErrInvalidSelection = errors.New("invalid selection")
