package preference

import "errors"

var (
	ErrCorruptPayload     = errors.New("corrupt preference payload")
	ErrUnsupportedVersion = errors.New("unsupported preference version")
	ErrFailedLoad         = errors.New("failed to load preferences")
	ErrFailedSave         = errors.New("failed to save preferences")
)
