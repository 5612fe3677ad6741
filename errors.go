package doct

import "errors"

var (
	// Document errors.
	ErrDocumentReadOnly  = errors.New("doct: document is read-only")
	ErrKeyNotFound       = errors.New("doct: key not found")
	ErrAttributeNotFound = errors.New("doct: attribute not found")
	ErrInvalidDocument   = errors.New("doct: invalid document")

	// Archive errors.
	ErrInvalidMagic       = errors.New("doct: invalid magic")
	ErrUnsupportedVersion = errors.New("doct: unsupported version")
	ErrInvalidHeader      = errors.New("doct: invalid fixed header")
	ErrInvalidSection     = errors.New("doct: invalid section header")
	ErrInvalidPayload     = errors.New("doct: invalid payload")
	ErrLimitExceeded      = errors.New("doct: limit exceeded")
)
