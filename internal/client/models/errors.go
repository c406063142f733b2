package models

import "errors"

var (
	ErrUnknownStatus = errors.New("unknown task status")
	ErrNotAnImage    = errors.New("file is not an image")
)
