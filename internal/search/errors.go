package search

import "errors"

// ErrQueryRequired is returned for an empty query. It is a client error,
// distinct from a search with no matches.
var ErrQueryRequired = errors.New("query is required")
