package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBytes32WipesSource(t *testing.T) {
	src := [32]byte{1, 2, 3}
	b := NewBytes32(&src)
	assert.Equal(t, [32]byte{}, src)
	assert.Equal(t, byte(1), b[0])
}

func TestBytes32Equal(t *testing.T) {
	a := [32]byte{9}
	b := [32]byte{9}
	c := [32]byte{10}
	assert.True(t, NewBytes32(&a).Equal(NewBytes32(&b)))
	b = [32]byte{9}
	assert.False(t, NewBytes32(&b).Equal(NewBytes32(&c)))
}

func TestBytes32Wipe(t *testing.T) {
	src := [32]byte{1, 2, 3}
	b := NewBytes32(&src)
	b.Wipe()
	assert.Equal(t, Bytes32{}, *b)
}

func TestCloneIsIndependent(t *testing.T) {
	src := [32]byte{5}
	b := NewBytes32(&src)
	c := b.Clone()
	b.Wipe()
	assert.Equal(t, byte(5), c[0])
}

func TestScalarFromCanonical(t *testing.T) {
	// The group order minus anything small is fine; 2^252-ish values
	// with the top bits set are not canonical.
	var low [32]byte
	low[0] = 42
	s, err := ScalarFromCanonical(&low)
	require.NoError(t, err)
	assert.Equal(t, [32]byte{}, low, "input must be wiped on success")

	out := s.Bytes()
	assert.Equal(t, byte(42), out[0])

	var high [32]byte
	for i := range high {
		high[i] = 0xff
	}
	_, err = ScalarFromCanonical(&high)
	assert.ErrorIs(t, err, ErrNonCanonicalScalar)
}

func TestScalarRoundTripCanonical(t *testing.T) {
	var raw [32]byte
	raw[0] = 7
	s, err := ScalarFromCanonical(&raw)
	require.NoError(t, err)

	bytes := s.Bytes()
	s2, err := ScalarFromCanonical(&bytes)
	require.NoError(t, err)
	assert.True(t, s.Equal(s2))
}

func TestScalarAlgebra(t *testing.T) {
	a := [32]byte{3}
	b := [32]byte{4}
	sum := [32]byte{7}
	product := [32]byte{12}

	sa, err := ScalarFromCanonical(&a)
	require.NoError(t, err)
	sb, err := ScalarFromCanonical(&b)
	require.NoError(t, err)
	sSum, err := ScalarFromCanonical(&sum)
	require.NoError(t, err)
	sProduct, err := ScalarFromCanonical(&product)
	require.NoError(t, err)

	assert.True(t, sa.Add(sb).Equal(sSum))
	assert.True(t, sSum.Subtract(sb).Equal(sa))
	assert.True(t, sa.Multiply(sb).Equal(sProduct))
	assert.True(t, sa.Negate().Add(sa).Equal(sa.Subtract(sa)))
}

func TestScalarBaseMulDistributes(t *testing.T) {
	a := [32]byte{11}
	b := [32]byte{13}
	sa, err := ScalarFromCanonical(&a)
	require.NoError(t, err)
	sb, err := ScalarFromCanonical(&b)
	require.NoError(t, err)

	left := sa.Add(sb).MulBase()
	right := sa.MulBase().Add(sa.MulBase(), sb.MulBase())
	assert.Equal(t, 1, left.Equal(right))
}

func TestScalarWipe(t *testing.T) {
	var raw [32]byte
	raw[0] = 1
	s, err := ScalarFromCanonical(&raw)
	require.NoError(t, err)
	s.Wipe()

	zero := [32]byte{}
	z, err := ScalarFromCanonical(&zero)
	require.NoError(t, err)
	assert.True(t, s.Equal(z))
}

func TestScalarClampedDerivation(t *testing.T) {
	// Clamping clears the low cofactor bits and sets bit 254, so two
	// inputs differing only in those bits derive the same scalar.
	a := [32]byte{0x01}
	b := [32]byte{0x06}
	sa := ScalarFrom32(NewBytes32(&a))
	sb := ScalarFrom32(NewBytes32(&b))
	assert.True(t, sa.Equal(sb))
}
