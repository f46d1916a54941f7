package factory

import "errors"

var (
	// ErrUnrecognizedScheme is returned when a share link's scheme is not a dialect
	// the configuration family can decode.
	ErrUnrecognizedScheme = errors.New("unrecognized scheme")

	// ErrUnsupportedProtocol is returned when a configuration cannot be expressed
	// as (or built from) a share link.
	ErrUnsupportedProtocol = errors.New("unsupported protocol")

	// ErrMalformedURI reports a structural decode failure. The configuration the
	// decode was attempted on is left untouched.
	ErrMalformedURI = errors.New("malformed share link")
)
