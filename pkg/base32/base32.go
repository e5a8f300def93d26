// Package base32 implements the ledger's base-32 text codec.
//
// The alphabet excludes 0, 2, l, and v to reduce visual ambiguity.
// Encoding operates on 5-bit groups, most significant bit first; both
// protocol payloads (40-byte account blobs, 70-byte camo blobs) are
// exact multiples of 5 bytes, so no padding is ever produced.
package base32

import (
	b32 "encoding/base32"
	"errors"
)

// Alphabet is the 32-character protocol alphabet.
const Alphabet = "13456789abcdefghijkmnopqrstuwxyz"

// ErrInvalidBase32 is returned by Decode for input containing characters
// outside the alphabet or of invalid length.
var ErrInvalidBase32 = errors.New("invalid base32 encoding")

var encoding = b32.NewEncoding(Alphabet).WithPadding(b32.NoPadding)

// Encode encodes bytes to the protocol alphabet.
func Encode(src []byte) string {
	return encoding.EncodeToString(src)
}

// Decode decodes a string in the protocol alphabet.
func Decode(s string) ([]byte, error) {
	out, err := encoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidBase32
	}
	return out, nil
}
