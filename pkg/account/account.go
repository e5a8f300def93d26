// Package account implements the ledger's key and identity model.
//
// A Key is a private ed25519 scalar derived deterministically from a
// 32-byte wallet seed and an account index. An Account is its public
// counterpart: a curve point, its compressed encoding, and the
// checksummed "nano_" text form. Keys and accounts are additive, and
// key addition mirrors point addition; the camo stealth protocol is
// built on that homomorphism.
//
// The signature scheme is a deterministic-nonce EdDSA variant specific
// to this protocol. It intentionally does not match RFC 8032: the nonce
// binds the private scalar and the message only. See signature.go.
package account

import (
	"filippo.io/edwards25519"

	"github.com/suffix-labs/camo-nano/pkg/base32"
	"github.com/suffix-labs/camo-nano/pkg/hashes"
	"github.com/suffix-labs/camo-nano/pkg/secret"
)

// Key is a private account key. It exclusively owns its scalar; call
// Wipe when the key is no longer needed.
type Key struct {
	private *secret.Scalar
}

// KeyFromSeed derives the key at index i of a 32-byte wallet seed.
// The derivation is deterministic: the same seed and index always
// produce the same key.
func KeyFromSeed(seed *secret.Bytes32, i uint32) *Key {
	return &Key{private: hashes.AccountScalar(seed, i)}
}

// KeyFromScalar wraps an explicit scalar as a key, taking ownership.
func KeyFromScalar(s *secret.Scalar) *Key {
	return &Key{private: s}
}

// Scalar exposes the private scalar. The scalar is still owned by the
// key; it must not outlive it.
func (k *Key) Scalar() *secret.Scalar {
	return k.private
}

// Account returns the public account for this key.
func (k *Key) Account() Account {
	return AccountFromPoint(k.private.MulBase())
}

// Add returns the key whose scalar is the sum of both keys' scalars.
// Key addition mirrors account addition:
//
//	k1.Add(k2).Account() == k1.Account().Add(k2.Account())
func (k *Key) Add(o *Key) *Key {
	return &Key{private: k.private.Add(o.private)}
}

// Subtract returns the key whose scalar is the difference of both keys'
// scalars.
func (k *Key) Subtract(o *Key) *Key {
	return &Key{private: k.private.Subtract(o.private)}
}

// Sign signs the message with this key.
func (k *Key) Sign(message []byte) Signature {
	return Sign(message, k)
}

// Wipe zeroes the private scalar.
func (k *Key) Wipe() {
	k.private.Wipe()
}

// Account is a public ledger identity: a curve point, its compressed
// encoding, and its checksummed text form. Accounts are freely copyable
// value types.
type Account struct {
	text       string
	compressed [32]byte
	point      *edwards25519.Point
}

// AccountFromPoint builds an account from a curve point.
func AccountFromPoint(p *edwards25519.Point) Account {
	var compressed [32]byte
	copy(compressed[:], p.Bytes())
	return Account{
		text:       encodeAccount(compressed),
		compressed: compressed,
		point:      edwards25519.NewIdentityPoint().Set(p),
	}
}

// AccountFromBytes builds an account from a compressed point encoding.
func AccountFromBytes(b [32]byte) (Account, error) {
	p, err := ParsePoint(b[:])
	if err != nil {
		return Account{}, err
	}
	return Account{text: encodeAccount(b), compressed: b, point: p}, nil
}

// ParseAccount parses the checksummed text form of an account.
//
// The text must be exactly 65 characters: the "nano_" prefix followed
// by 52 base-32 characters covering the compressed point and a 5-byte
// checksum. Small-order points are rejected.
func ParseAccount(text string) (Account, error) {
	compressed, err := decodeAccount(text)
	if err != nil {
		return Account{}, err
	}
	p, err := ParsePoint(compressed[:])
	if err != nil {
		return Account{}, err
	}
	return Account{text: text, compressed: compressed, point: p}, nil
}

// IsValidAccount reports whether text parses as an account.
func IsValidAccount(text string) bool {
	_, err := ParseAccount(text)
	return err == nil
}

// String returns the checksummed text form.
func (a Account) String() string { return a.text }

// Compressed returns the compressed point encoding.
func (a Account) Compressed() [32]byte { return a.compressed }

// Point returns the account's curve point. The point must be treated as
// immutable.
func (a Account) Point() *edwards25519.Point { return a.point }

// Equal reports whether two accounts are the same identity.
func (a Account) Equal(o Account) bool {
	return a.compressed == o.compressed
}

// Add returns the account whose point is the sum of both accounts' points.
func (a Account) Add(o Account) Account {
	return AccountFromPoint(edwards25519.NewIdentityPoint().Add(a.point, o.point))
}

// Subtract returns the account whose point is the difference of both
// accounts' points.
func (a Account) Subtract(o Account) Account {
	return AccountFromPoint(edwards25519.NewIdentityPoint().Subtract(a.point, o.point))
}

// Verify reports whether sig is this account's signature over message.
func (a Account) Verify(message []byte, sig Signature) bool {
	return Verify(message, sig, a)
}

// ParsePoint decompresses a 32-byte point encoding, rejecting encodings
// that fail to decompress and points of small order (which would make
// Diffie-Hellman outputs predictable).
func ParsePoint(b []byte) (*edwards25519.Point, error) {
	p, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return nil, ErrInvalidCurvePoint
	}
	cofactorCleared := edwards25519.NewIdentityPoint().MultByCofactor(p)
	if cofactorCleared.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return nil, ErrInvalidCurvePoint
	}
	return p, nil
}

func encodeAccount(compressed [32]byte) string {
	checksum := hashes.SumChecksum(compressed[:])
	reverseBytes(checksum[:])

	data := make([]byte, 0, 40)
	data = append(data, 0, 0, 0)
	data = append(data, compressed[:]...)
	data = append(data, checksum[:]...)
	// The 3 zero pad bytes encode to 4 leading alphabet characters,
	// stripped so the payload starts right after the prefix.
	return AddressPrefix + base32.Encode(data)[4:]
}

func decodeAccount(text string) ([32]byte, error) {
	var compressed [32]byte
	if len(text) != AddressLength {
		return compressed, ErrInvalidAddressLength
	}
	if text[:len(AddressPrefix)] != AddressPrefix {
		return compressed, ErrInvalidAddressPrefix
	}

	data, err := base32.Decode("1111" + text[len(AddressPrefix):])
	if err != nil {
		return compressed, ErrInvalidBase32
	}

	checksum := hashes.SumChecksum(data[3:35])
	reverseBytes(checksum[:])
	for i := 0; i < 5; i++ {
		if data[35+i] != checksum[i] {
			return compressed, ErrInvalidAddressChecksum
		}
	}

	copy(compressed[:], data[3:35])
	return compressed, nil
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
