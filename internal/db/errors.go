package db

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound signals a cache miss.
var ErrKeyNotFound = errors.New("key not found")

// Op identifies the store operation that failed.
type Op string

const (
	// OpGet is a read operation.
	OpGet Op = "get"
	// OpSet is a write operation.
	OpSet Op = "set"
	// OpPing is a connectivity check.
	OpPing Op = "ping"
)

// Error wraps a driver error with the failing operation.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("db %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
