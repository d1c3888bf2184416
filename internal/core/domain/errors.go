package domain

import "errors"

var (
	// ErrNotFound indicates no record exists for the requested BSSID.
	ErrNotFound = errors.New("access point not found")

	// ErrInvalidStatus indicates a manual status change used an unknown value.
	ErrInvalidStatus = errors.New("invalid status: must be one of trusted, unknown, suspicious")
)
