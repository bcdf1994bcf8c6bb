package rangepick

import "errors"

var (
	ErrTimeModes          = errors.New("time picker cannot take two different panel modes")
	ErrUnknownMode        = errors.New("unknown picker mode")
	ErrModeShape          = errors.New("modes must hold exactly two entries")
	ErrDisabledShape      = errors.New("disabled must be a bool or a pair of bools")
	ErrControlledConflict = errors.New("value and default value are mutually exclusive")
	ErrShortcutIndex      = errors.New("shortcut index out of range")
)
