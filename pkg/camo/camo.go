// Package camo implements the stealth-address layer built on top of the
// account model.
//
// A camo address bundles two public keys, a spend key and a view key,
// plus a one-byte set of signaled protocol versions. A sender derives a
// shared secret against the view key and announces it through an
// on-chain notification block whose representative field carries the
// ephemeral public key. Both sides then derive the same one-time
// destination accounts from the shared secret, while a third party can
// link none of them to the camo address.
//
// Keys, ViewKeys and Account are closed interfaces: each versioned
// sub-protocol provides one implementation, and the constructors in
// this package pick the implementation from the highest protocol
// version that is both signaled and implemented here. Unknown versions
// fail closed with ErrIncompatibleVersions.
package camo

import (
	"errors"

	"filippo.io/edwards25519"

	"github.com/suffix-labs/camo-nano/pkg/account"
	"github.com/suffix-labs/camo-nano/pkg/base32"
	"github.com/suffix-labs/camo-nano/pkg/block"
	"github.com/suffix-labs/camo-nano/pkg/secret"
)

const (
	// AddressPrefix starts every camo address.
	AddressPrefix = "camo_"
	// AddressLength is the length of a camo address in characters.
	AddressLength = 117
)

// addressSampleEnd bounds the address prefix whose base-32 decoding
// contains the version byte. Eight characters decode to five bytes, so
// the version byte is available before the full address is parsed.
const addressSampleEnd = len(AddressPrefix) + 8

// ErrIncompatibleVersions is returned when an address, key blob, or
// version set signals no protocol version implemented by this software.
var ErrIncompatibleVersions = errors.New("no compatible camo protocol version")

// Keys is the full private key set of a camo address.
type Keys interface {
	// Versions returns the protocol versions this address signals.
	Versions() Versions
	// ViewKeys strips the private spend key, leaving keys that can
	// detect and view incoming payments but not spend them.
	ViewKeys() ViewKeys
	// Account returns the public camo address.
	Account() Account
	// SignerKey returns the private spend key. Its account is the
	// destination for notification transactions.
	SignerKey() *account.Key
	// SignMessage signs a message with the spend key.
	SignMessage(message []byte) account.Signature
	// SignBlock signs a block with the spend key.
	SignBlock(b *block.Block) account.Signature
	// ReceiverECDH recovers the shared secret announced by a
	// notification.
	ReceiverECDH(n Notification) *secret.Bytes32
	// DeriveKey derives the one-time private key at the given index
	// from a shared secret obtained via ReceiverECDH.
	DeriveKey(sharedSecret *secret.Bytes32, i uint32) *account.Key
	// Wipe zeroes the private key material.
	Wipe()
}

// ViewKeys can detect incoming camo payments and derive their one-time
// accounts, but cannot spend from them.
type ViewKeys interface {
	// Versions returns the protocol versions this address signals.
	Versions() Versions
	// Account returns the public camo address.
	Account() Account
	// Bytes serializes the view keys. The blob still contains the
	// private view key and must be handled as a secret.
	Bytes() *secret.Bytes65
	// SignerAccount returns the public spend key as an account, the
	// destination for notification transactions.
	SignerAccount() account.Account
	// VerifySignature reports whether sig was made by the spend key.
	VerifySignature(message []byte, sig account.Signature) bool
	// ReceiverECDH recovers the shared secret announced by a
	// notification.
	ReceiverECDH(n Notification) *secret.Bytes32
	// DeriveAccount derives the one-time account at the given index
	// from a shared secret obtained via ReceiverECDH.
	DeriveAccount(sharedSecret *secret.Bytes32, i uint32) account.Account
	// Wipe zeroes the private view key.
	Wipe()
}

// Account is the public form of a camo address.
type Account interface {
	// String returns the camo_ text form.
	String() string
	// Versions returns the protocol versions this address signals.
	Versions() Versions
	// SignerAccount returns the public spend key as an account, the
	// destination for notification transactions.
	SignerAccount() account.Account
	// VerifySignature reports whether sig was made by the spend key.
	VerifySignature(message []byte, sig account.Signature) bool
	// SenderECDH computes a fresh shared secret against this address
	// and the notification announcing it. The sender's frontier makes
	// the secret unique per payment even under key reuse.
	SenderECDH(senderKey *account.Key, senderFrontier [32]byte) (*secret.Bytes32, Notification)
	// DeriveAccount derives the one-time account at the given index
	// from a shared secret obtained via SenderECDH.
	DeriveAccount(sharedSecret *secret.Bytes32, i uint32) account.Account
	// Equal reports whether two camo accounts are the same address.
	Equal(o Account) bool
}

// KeysFromSeed derives the camo keys at index i of a 32-byte wallet
// seed, signaling the given versions. It fails if no signaled version
// is implemented by this software.
func KeysFromSeed(masterSeed *secret.Bytes32, i uint32, versions Versions) (Keys, error) {
	switch v, _ := versions.HighestSupported(); v {
	case Version1:
		return newKeysV1(masterSeed, i, versions), nil
	default:
		return nil, ErrIncompatibleVersions
	}
}

// ViewKeysFromSeed rebuilds view keys from the wallet's view seed and
// the master spend point. This allows a view-only wallet to be set up
// without ever holding the spend seed.
func ViewKeysFromSeed(viewSeed *secret.Bytes32, masterSpend *edwards25519.Point, i uint32, versions Versions) (ViewKeys, error) {
	switch v, _ := versions.HighestSupported(); v {
	case Version1:
		return newViewKeysV1(viewSeed, masterSpend, i, versions), nil
	default:
		return nil, ErrIncompatibleVersions
	}
}

// ViewKeysFromBytes deserializes view keys produced by ViewKeys.Bytes.
func ViewKeysFromBytes(b *secret.Bytes65) (ViewKeys, error) {
	versions := DecodeFromBits(b[0])
	switch v, _ := versions.HighestSupported(); v {
	case Version1:
		return viewKeysV1FromBytes(b)
	default:
		return nil, ErrIncompatibleVersions
	}
}

// ParseAccount parses the text form of a camo address.
//
// The version byte is decoded from the first characters before the
// rest of the address is touched, so unknown future formats fail with
// ErrIncompatibleVersions rather than a parse error.
func ParseAccount(text string) (Account, error) {
	if len(text) < addressSampleEnd {
		return nil, account.ErrInvalidAddressLength
	}
	if text[:len(AddressPrefix)] != AddressPrefix {
		return nil, account.ErrInvalidAddressPrefix
	}
	sample, err := base32.Decode(text[len(AddressPrefix):addressSampleEnd])
	if err != nil {
		return nil, account.ErrInvalidBase32
	}

	switch v, _ := DecodeFromBits(sample[0]).HighestSupported(); v {
	case Version1:
		return parseAccountV1(text)
	default:
		return nil, ErrIncompatibleVersions
	}
}

// IsValidAccount reports whether text parses as a camo address.
func IsValidAccount(text string) bool {
	_, err := ParseAccount(text)
	return err == nil
}
