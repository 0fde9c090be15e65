package showcase

import "errors"

var (
	ErrNotFound     = errors.New("showcase: not found")
	ErrInvalidInput = errors.New("showcase: invalid input")
	ErrEmailTaken   = errors.New("showcase: email already in use")
)
