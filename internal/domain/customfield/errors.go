package customfield

import "errors"

var (
	ErrUnknownType           = errors.New("unknown custom field type")
	ErrInvalidValue          = errors.New("invalid custom field value")
	ErrFieldIndexOutOfRange  = errors.New("custom field index out of range")
	ErrOptionIndexOutOfRange = errors.New("option index out of range")
	ErrNotSelectField        = errors.New("custom field has no options")
)
