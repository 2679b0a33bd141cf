package vaultfile

import "errors"

var (
	// ErrWrongPinOrCorrupt covers both a wrong vault key and a tampered
	// container. The two are never distinguished: surfacing which one
	// occurred would leak whether a guessed PIN was close to correct.
	ErrWrongPinOrCorrupt = errors.New("vaultfile: wrong pin or corrupt vault")
	// ErrMetadataCorrupt is returned when meta.json fails to parse or is
	// missing a required field.
	ErrMetadataCorrupt = errors.New("vaultfile: metadata corrupt")
	// ErrMediumIO wraps any failure reading or writing the container or
	// metadata file on the removable medium.
	ErrMediumIO = errors.New("vaultfile: medium I/O failed")
)
