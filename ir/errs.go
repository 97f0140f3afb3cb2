package ir

import "errors"

var (
	ErrPointer    = errors.New("invalid json pointer")
	ErrNoSuchPath = errors.New("no such path")
	ErrNotNumber  = errors.New("not a number")
)
