package attach

import "errors"

var (
	ErrNotFound       = errors.New("attach: not found")
	ErrInvalidVersion = errors.New("attach: invalid version")
	ErrCorrupt        = errors.New("attach: corrupt payload")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
