package domain

import "errors"

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrInvalidImageName = errors.New("invalid image name")
	ErrTextDetection    = errors.New("text detection failed")
)
