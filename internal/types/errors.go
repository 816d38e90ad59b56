package types

import "errors"

var (
	// ErrUnrecognizedQuery means the input matched no supported location pattern.
	ErrUnrecognizedQuery = errors.New("unrecognized location query")
	// ErrLocationNotFound means the geocoder returned a non-OK status or no results.
	ErrLocationNotFound = errors.New("location not found")
	// ErrProviderStatus wraps a non-OK status string returned by a Google API.
	ErrProviderStatus = errors.New("provider returned non-OK status")
	// ErrNoStations means every query resolved but no station was found.
	ErrNoStations = errors.New("no gas stations found")
)
