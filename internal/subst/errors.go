package subst

import "errors"

// ErrNotFound indicates the substitution target file is absent.
var ErrNotFound = errors.New("subst: file not found")
