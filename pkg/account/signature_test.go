package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureValid(t *testing.T) {
	key := KeyFromSeed(testSeed(0), 0)
	sig := key.Sign([]byte("test"))
	assert.True(t, key.Account().Verify([]byte("test"), sig))
}

func TestSignatureInvalidKey(t *testing.T) {
	key := KeyFromSeed(testSeed(0), 0)
	other := KeyFromSeed(testSeed(0), 1).Account()
	sig := key.Sign([]byte("test"))
	assert.False(t, other.Verify([]byte("test"), sig))
}

func TestSignatureInvalidMessage(t *testing.T) {
	key := KeyFromSeed(testSeed(0), 0)
	sig := key.Sign([]byte("test 1"))
	assert.False(t, key.Account().Verify([]byte("test 2"), sig))
}

func TestSignatureDeterministic(t *testing.T) {
	key := KeyFromSeed(testSeed(0), 0)
	assert.True(t, key.Sign([]byte("test")).Equal(key.Sign([]byte("test"))))
}

func TestNonceUniquePerMessage(t *testing.T) {
	key := KeyFromSeed(testSeed(0), 0)
	sig1 := key.Sign([]byte("test 1"))
	sig2 := key.Sign([]byte("test 2"))

	assert.False(t, sig1.Equal(sig2))
	assert.NotEqual(t, sig1.R(), sig2.R())
}

func TestZeroSignatureNeverVerifies(t *testing.T) {
	key := KeyFromSeed(testSeed(0), 0)
	var empty Signature
	assert.False(t, key.Account().Verify([]byte("test"), empty))
	assert.Equal(t, [64]byte{}, empty.Bytes())
}

func TestSignatureWireRoundTrip(t *testing.T) {
	key := KeyFromSeed(testSeed(5), 3)
	sig := key.Sign([]byte("payload"))

	parsed, err := SignatureFromBytes(sig.Bytes())
	require.NoError(t, err)
	assert.True(t, parsed.Equal(sig))
	assert.True(t, key.Account().Verify([]byte("payload"), parsed))
}

func TestSignatureFromBytesRejectsBadR(t *testing.T) {
	// All zeroes decompresses to a small-order point for R.
	_, err := SignatureFromBytes([64]byte{})
	assert.ErrorIs(t, err, ErrInvalidCurvePoint)
}
