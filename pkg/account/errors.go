package account

import "errors"

// Parsing failures form a closed taxonomy; callers match with errors.Is
// and reject the input. None of them are fatal.
var (
	// ErrInvalidAddressLength is returned for address text of the wrong length.
	ErrInvalidAddressLength = errors.New("invalid address length")
	// ErrInvalidAddressPrefix is returned for address text without the
	// expected prefix.
	ErrInvalidAddressPrefix = errors.New("invalid address prefix")
	// ErrInvalidAddressChecksum is returned when the embedded checksum does
	// not match the payload.
	ErrInvalidAddressChecksum = errors.New("invalid address checksum")
	// ErrInvalidBase32 is returned for text outside the base-32 alphabet.
	ErrInvalidBase32 = errors.New("invalid base32 encoding")
	// ErrInvalidCurvePoint is returned when a 32-byte payload does not
	// decompress to a usable curve point, including small-order points.
	ErrInvalidCurvePoint = errors.New("invalid ed25519 point")
)
