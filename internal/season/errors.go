package season

import "errors"

// Sentinel kinds for manifest errors.
var (
	ErrInvalidManifest = errors.New("invalid season manifest")
	ErrUnknownEvent    = errors.New("event not in season manifest")
)
