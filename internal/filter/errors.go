package filter

import "errors"

// ErrTypeMismatch indicates a rule list entry that is not plain text.
// It is returned during configuration decoding and pattern compilation,
// before any traversal begins.
var ErrTypeMismatch = errors.New("type mismatch")
