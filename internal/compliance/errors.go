package compliance

import "errors"

// ErrUnknownFrequency indicates a label outside the closed frequency enum
var ErrUnknownFrequency = errors.New("unknown compliance frequency")
