package translator

import "errors"

var (
	ErrEmptyLocale    = errors.New("translator: locale cannot be empty")
	ErrInvalidCatalog = errors.New("translator: invalid catalog")
)
