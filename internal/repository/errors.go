package repository

import "errors"

// ErrNotFound indicates the requested record is absent from its collection.
var ErrNotFound = errors.New("record not found")
