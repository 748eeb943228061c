package domain

import "errors"

var (
	// ErrMalformedDocument is returned when an imported document does not
	// have the shape produced by Export.
	ErrMalformedDocument = errors.New("malformed timeline document")

	// ErrInvalidAsset is returned when an asset cannot be registered,
	// typically because its duration could not be resolved.
	ErrInvalidAsset = errors.New("invalid asset")
)
