package script

import "errors"

var (
	ErrNilCaller        = errors.New("script caller is nil")
	ErrInvalidSignature = errors.New("invalid function signature")
	ErrInvalidManifest  = errors.New("invalid script manifest")
)
