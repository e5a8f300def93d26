package account

import (
	"filippo.io/edwards25519"

	"github.com/suffix-labs/camo-nano/pkg/hashes"
	"github.com/suffix-labs/camo-nano/pkg/secret"
)

// Signature is a deterministic-nonce EdDSA-style signature: a curve
// point R and a scalar s satisfying
//
//	s·G == R + H(R, pubkey, message)·pubkey
//
// The zero value is an empty placeholder that never verifies.
type Signature struct {
	r *edwards25519.Point
	s *edwards25519.Scalar
}

// SignatureLength is the wire length: compressed R (32) then s (32),
// little-endian.
const SignatureLength = 64

// Sign signs message with key.
//
// The nonce is derived deterministically from the private scalar and
// the message: r = H512(key ‖ message) clamped. Distinct messages yield
// distinct nonces per key, but unlike RFC 8032 there is no secret
// prefix separate from the key itself. This deviation is part of the
// protocol; signatures are not interchangeable with standard Ed25519.
func Sign(message []byte, key *Key) Signature {
	kb := key.private.Bytes()
	r := hashes.ScalarFromHash(kb[:], message)
	defer r.Wipe()
	for i := range kb {
		kb[i] = 0
	}
	return SignWithNonce(message, key, r)
}

// SignWithNonce signs message with key using an explicit nonce scalar.
//
// Dangerous: reusing a nonce for two different messages under the same
// key reveals the private key algebraically. Only for protocol-internal
// uses where nonce uniqueness is guaranteed independently.
func SignWithNonce(message []byte, key *Key, nonce *secret.Scalar) Signature {
	R := nonce.MulBase()
	pub := key.Account().Compressed()

	h := challengeScalar(R.Bytes(), pub[:], message)
	// s = r + h·a
	s := edwards25519.NewScalar().MultiplyAdd(h, key.private.Raw(), nonce.Raw())

	return Signature{r: R, s: s}
}

// Verify reports whether sig is pub's signature over message.
func Verify(message []byte, sig Signature, pub Account) bool {
	if sig.r == nil || sig.s == nil {
		return false
	}
	compressed := pub.Compressed()
	h := challengeScalar(sig.r.Bytes(), compressed[:], message)

	// s·G == R + h·A
	lhs := edwards25519.NewIdentityPoint().ScalarBaseMult(sig.s)
	rhs := edwards25519.NewIdentityPoint().ScalarMult(h, pub.point)
	rhs.Add(rhs, sig.r)
	return lhs.Equal(rhs) == 1
}

// challengeScalar computes H(R, pubkey, message) wide-reduced.
func challengeScalar(rBytes, pubBytes, message []byte) *edwards25519.Scalar {
	digest := hashes.Sum512(rBytes, pubBytes, message)
	h, err := edwards25519.NewScalar().SetUniformBytes(digest.Slice())
	if err != nil {
		panic("account: invalid challenge digest: " + err.Error())
	}
	return h
}

// Bytes returns the 64-byte wire encoding.
func (sig Signature) Bytes() [64]byte {
	var out [64]byte
	if sig.r == nil || sig.s == nil {
		return out
	}
	copy(out[:32], sig.r.Bytes())
	copy(out[32:], sig.s.Bytes())
	return out
}

// SignatureFromBytes parses the 64-byte wire encoding. The R point must
// decompress to a valid, non-small-order point; the scalar half is
// reduced rather than rejected, matching the curve library's decoder.
func SignatureFromBytes(b [64]byte) (Signature, error) {
	r, err := ParsePoint(b[:32])
	if err != nil {
		return Signature{}, err
	}

	// Reduce the 32-byte value mod the group order via wide reduction
	// against a zero upper half.
	var wide [64]byte
	copy(wide[:32], b[32:])
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		return Signature{}, ErrInvalidCurvePoint
	}

	return Signature{r: r, s: s}, nil
}

// Equal reports whether two signatures are identical.
func (sig Signature) Equal(o Signature) bool {
	return sig.Bytes() == o.Bytes()
}

// R returns the compressed nonce point, or zeroes for the empty signature.
func (sig Signature) R() [32]byte {
	var out [32]byte
	if sig.r != nil {
		copy(out[:], sig.r.Bytes())
	}
	return out
}
