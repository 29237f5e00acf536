package turf

import "errors"

var ErrTurfNotFound = errors.New("turf not found")
