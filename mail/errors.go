package mail

import "errors"

var (
	// ErrUnsupportedExtension is returned for files that are neither .eml nor .txt.
	ErrUnsupportedExtension = errors.New("unsupported email file extension")
)
