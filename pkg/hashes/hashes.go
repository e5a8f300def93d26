// Package hashes implements the BLAKE2b constructions used throughout
// the protocol.
//
// Every hash in the protocol is BLAKE2b with a selectable output width:
//   - 64 bytes for key-image and signature challenge derivation
//   - 32 bytes for block hashes and sub-seeds
//   - 8 bytes for proof-of-work digests
//   - 5 bytes for address checksums
//
// Scalar derivation ("blake2b_scalar") clamps the first 32 bytes of a
// 64-byte digest per RFC 8032 and reduces modulo the group order. This
// exact construction is load-bearing: changing it changes every derived
// account.
//
// See: https://docs.nano.org/protocol-design/
package hashes

import (
	"encoding/binary"
	"hash"

	blake2b "github.com/minio/blake2b-simd"

	"github.com/suffix-labs/camo-nano/pkg/secret"
)

func newBlake2b(size uint8) hash.Hash {
	h, err := blake2b.New(&blake2b.Config{Size: size})
	if err != nil {
		panic("hashes: blake2b config rejected: " + err.Error())
	}
	return h
}

func sum(size uint8, data ...[]byte) []byte {
	h := newBlake2b(size)
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// Sum512 computes a 64-byte BLAKE2b digest over the concatenated inputs.
// The digest is returned as a secret since it commonly contains key material.
func Sum512(data ...[]byte) *secret.Bytes64 {
	var out [64]byte
	copy(out[:], sum(64, data...))
	return secret.NewBytes64(&out)
}

// Sum256 computes a 32-byte BLAKE2b digest over the concatenated inputs.
func Sum256(data ...[]byte) *secret.Bytes32 {
	var out [32]byte
	copy(out[:], sum(32, data...))
	return secret.NewBytes32(&out)
}

// SumWork computes the 8-byte proof-of-work digest.
func SumWork(data ...[]byte) [8]byte {
	var out [8]byte
	copy(out[:], sum(8, data...))
	return out
}

// SumChecksum computes the 5-byte address checksum digest.
func SumChecksum(data ...[]byte) [5]byte {
	var out [5]byte
	copy(out[:], sum(5, data...))
	return out
}

// ScalarFromHash derives a scalar by clamping the first 32 bytes of the
// 64-byte digest of the inputs.
func ScalarFromHash(data ...[]byte) *secret.Scalar {
	wide := Sum512(data...)
	defer wide.Wipe()
	var narrow [32]byte
	copy(narrow[:], wide[:32])
	b := secret.NewBytes32(&narrow)
	defer b.Wipe()
	return secret.ScalarFrom32(b)
}

func be32(i uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], i)
	return b[:]
}
