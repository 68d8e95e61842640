package content

import "errors"

// Sentinel errors for item load failures. All are item-level: callers isolate the
// failing item and continue the run.
var (
	ErrMetadataMissing = errors.New("metadata record not found")
	ErrMetadataInvalid = errors.New("metadata record invalid")
	ErrBodyMissing     = errors.New("markdown body not found")
)
