package common

import "errors"

// ErrorNotFound is returned when a ticket id is not present in a local
// mirror.
var ErrorNotFound = errors.New("not found")
