package types

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidMapping    = errors.New("invalid table mapping")
	ErrMalformedJSON     = errors.New("malformed JSON")
	ErrMappingNotFound   = errors.New("table mapping not found")
)

func NewMappingError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidMapping, fmt.Sprintf(format, args...))
}

func NewNotFoundError(tableName string) error {
	return fmt.Errorf("%w: %s", ErrMappingNotFound, tableName)
}
