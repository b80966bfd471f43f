package regdiff

import "errors"

var (
	// ErrSectionMismatch is returned when dumps and register map describe
	// different sections.
	ErrSectionMismatch = errors.New("regdiff: section mismatch between dumps and map")
	// ErrUnknownFormat is returned for output formats other than table and json.
	ErrUnknownFormat = errors.New("regdiff: unknown output format")
	// ErrUnknownSection is returned when the configuration names a section
	// missing from the catalog.
	ErrUnknownSection = errors.New("regdiff: unknown section")
)
