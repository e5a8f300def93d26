package secret

import (
	"errors"

	"filippo.io/edwards25519"
)

// ErrNonCanonicalScalar is returned when a 32-byte encoding is not the
// canonical form of a scalar. Rejecting, rather than silently reducing,
// prevents malleable encodings of the same scalar.
var ErrNonCanonicalScalar = errors.New("non-canonical scalar encoding")

// Scalar is a secret integer modulo the ed25519 group order.
//
// The invariant that the value is always reduced is maintained by the
// underlying edwards25519 library; every constructor and operation
// produces a reduced scalar.
type Scalar struct {
	s *edwards25519.Scalar
}

// ScalarFrom32 derives a scalar from 32 bytes using RFC 8032 clamping.
//
// Note that this is clamping, not plain reduction: the low cofactor bits
// are cleared and the high bit is set before interpreting the bytes.
// Private key derivation depends on this exact construction.
func ScalarFrom32(b *Bytes32) *Scalar {
	s, err := edwards25519.NewScalar().SetBytesWithClamping(b[:])
	if err != nil {
		// SetBytesWithClamping only fails on wrong input length.
		panic("secret: invalid clamped scalar input: " + err.Error())
	}
	return &Scalar{s: s}
}

// ScalarFrom64 derives a scalar from 64 bytes by wide reduction.
func ScalarFrom64(b *Bytes64) *Scalar {
	s, err := edwards25519.NewScalar().SetUniformBytes(b[:])
	if err != nil {
		panic("secret: invalid wide scalar input: " + err.Error())
	}
	return &Scalar{s: s}
}

// ScalarFromCanonical interprets 32 bytes as a canonical little-endian
// scalar, returning ErrNonCanonicalScalar for any other encoding. The
// input array is wiped.
func ScalarFromCanonical(b *[32]byte) (*Scalar, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		return nil, ErrNonCanonicalScalar
	}
	wipe(b[:])
	return &Scalar{s: s}, nil
}

// Bytes returns the canonical 32-byte little-endian encoding.
func (s *Scalar) Bytes() [32]byte {
	var out [32]byte
	copy(out[:], s.s.Bytes())
	return out
}

// Raw returns a copy of the underlying scalar for use in public outputs
// such as signatures. The copy is not tracked for wiping.
func (s *Scalar) Raw() *edwards25519.Scalar {
	return edwards25519.NewScalar().Set(s.s)
}

// Add returns s + o.
func (s *Scalar) Add(o *Scalar) *Scalar {
	return &Scalar{s: edwards25519.NewScalar().Add(s.s, o.s)}
}

// Subtract returns s - o.
func (s *Scalar) Subtract(o *Scalar) *Scalar {
	return &Scalar{s: edwards25519.NewScalar().Subtract(s.s, o.s)}
}

// Multiply returns s * o.
func (s *Scalar) Multiply(o *Scalar) *Scalar {
	return &Scalar{s: edwards25519.NewScalar().Multiply(s.s, o.s)}
}

// Negate returns -s.
func (s *Scalar) Negate() *Scalar {
	return &Scalar{s: edwards25519.NewScalar().Negate(s.s)}
}

// Equal reports whether two scalars are equal, in constant time.
func (s *Scalar) Equal(o *Scalar) bool {
	return s.s.Equal(o.s) == 1
}

// Clone makes an explicit copy. The caller is responsible for wiping it.
func (s *Scalar) Clone() *Scalar {
	return &Scalar{s: edwards25519.NewScalar().Set(s.s)}
}

// MulBase returns s·G, the public point for this scalar.
func (s *Scalar) MulBase() *edwards25519.Point {
	return edwards25519.NewIdentityPoint().ScalarBaseMult(s.s)
}

// MulPoint returns s·p, the Diffie-Hellman half for this scalar.
func (s *Scalar) MulPoint(p *edwards25519.Point) *edwards25519.Point {
	return edwards25519.NewIdentityPoint().ScalarMult(s.s, p)
}

// Wipe resets the scalar to zero.
func (s *Scalar) Wipe() {
	s.s.Set(edwards25519.NewScalar())
}
