package statestore

import "errors"

var ErrEmptyKey = errors.New("state key must be non-empty")
