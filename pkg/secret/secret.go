// Package secret provides wipeable containers for secret key material.
//
// Seeds, private scalars, and shared secrets are held in fixed-length
// buffers that are zeroed explicitly when no longer needed. Go has no
// destructors, so wiping is best-effort: callers own their secrets
// exclusively, call Wipe when done, and avoid making implicit copies.
// Copying is only available through the explicit Clone methods.
package secret

import "crypto/subtle"

// Bytes32 is a 32-byte secret buffer (seeds, shared secrets).
type Bytes32 [32]byte

// Bytes64 is a 64-byte secret buffer (wide hash outputs).
type Bytes64 [64]byte

// Bytes65 is a 65-byte secret buffer (serialized view keys).
type Bytes65 [65]byte

// NewBytes32 takes ownership of src, wiping the original.
func NewBytes32(src *[32]byte) *Bytes32 {
	b := Bytes32(*src)
	wipe(src[:])
	return &b
}

// NewBytes64 takes ownership of src, wiping the original.
func NewBytes64(src *[64]byte) *Bytes64 {
	b := Bytes64(*src)
	wipe(src[:])
	return &b
}

// NewBytes65 takes ownership of src, wiping the original.
func NewBytes65(src *[65]byte) *Bytes65 {
	b := Bytes65(*src)
	wipe(src[:])
	return &b
}

// Slice exposes the underlying bytes. The returned slice aliases the
// secret; it must not outlive the buffer.
func (b *Bytes32) Slice() []byte { return b[:] }

// Wipe zeroes the buffer.
func (b *Bytes32) Wipe() { wipe(b[:]) }

// Equal reports whether two buffers hold the same bytes, in constant time.
func (b *Bytes32) Equal(o *Bytes32) bool {
	return subtle.ConstantTimeCompare(b[:], o[:]) == 1
}

// Clone makes an explicit copy. The caller is responsible for wiping it.
func (b *Bytes32) Clone() *Bytes32 {
	c := *b
	return &c
}

// Slice exposes the underlying bytes. The returned slice aliases the
// secret; it must not outlive the buffer.
func (b *Bytes64) Slice() []byte { return b[:] }

// Wipe zeroes the buffer.
func (b *Bytes64) Wipe() { wipe(b[:]) }

// Equal reports whether two buffers hold the same bytes, in constant time.
func (b *Bytes64) Equal(o *Bytes64) bool {
	return subtle.ConstantTimeCompare(b[:], o[:]) == 1
}

// Slice exposes the underlying bytes. The returned slice aliases the
// secret; it must not outlive the buffer.
func (b *Bytes65) Slice() []byte { return b[:] }

// Wipe zeroes the buffer.
func (b *Bytes65) Wipe() { wipe(b[:]) }

// Equal reports whether two buffers hold the same bytes, in constant time.
func (b *Bytes65) Equal(o *Bytes65) bool {
	return subtle.ConstantTimeCompare(b[:], o[:]) == 1
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
