package services

import "errors"

// Common service-level errors
var (
	// Import errors
	ErrImportTooLarge     = errors.New("import exceeds the record limit")
	ErrUnsupportedFormat  = errors.New("unsupported import format")
	ErrInvalidImportInput = errors.New("invalid import payload")
)
