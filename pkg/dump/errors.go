package dump

import "errors"

var (
	// ErrInvalidHeader is returned when the first line of a dump is not a
	// recognised capture header.
	ErrInvalidHeader = errors.New("dump: invalid header")
	// ErrUnknownSection is returned for section names missing from the catalog.
	ErrUnknownSection = errors.New("dump: unknown section")
	// ErrSectionMismatch is returned when a collection receives a dump of
	// another section.
	ErrSectionMismatch = errors.New("dump: mismatching sections")
	// ErrSizeMismatch is returned when a collection receives a dump with a
	// different byte count.
	ErrSizeMismatch = errors.New("dump: mismatching byte count")
	// ErrEmptyCollection is returned when comparing without any dump.
	ErrEmptyCollection = errors.New("dump: need at least one register dump")
	// ErrMissingAddress is returned when a dump has no value for an address.
	ErrMissingAddress = errors.New("dump: no value at address")
)
