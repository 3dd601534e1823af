package model

import "errors"

// Request validation errors. Callers match them with errors.Is.
var (
	ErrInvalidPath          = errors.New("invalid path")
	ErrUnsupportedFrequency = errors.New("unsupported frequency")
	ErrUnsupportedExtension = errors.New("unsupported extension")
)
