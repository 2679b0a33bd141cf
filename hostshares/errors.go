package hostshares

import "errors"

// ErrHostIO covers any failure creating the host share directory or
// reading/writing a share file.
var ErrHostIO = errors.New("hostshares: host share I/O failed")
