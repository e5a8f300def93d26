package block

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suffix-labs/camo-nano/pkg/account"
	"github.com/suffix-labs/camo-nano/pkg/secret"
)

var (
	testWorkDifficulty     = [8]byte{0xff, 0xf8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	infiniteWorkDifficulty = [8]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
)

func testKey(t *testing.T, i uint32) *account.Key {
	t.Helper()
	var raw [32]byte
	return account.KeyFromSeed(secret.NewBytes32(&raw), i)
}

func createTestBlock(t *testing.T) *Block {
	t.Helper()
	var previous, link [32]byte
	for i := range previous {
		previous[i] = 127
		link[i] = 128
	}
	return &Block{
		Type:           TypeSend,
		Account:        testKey(t, 0).Account(),
		Previous:       previous,
		Representative: testKey(t, 1).Account(),
		Balance:        account.OneNano,
		Link:           link,
	}
}

func mustAccount(t *testing.T, text string) account.Account {
	t.Helper()
	a, err := account.ParseAccount(text)
	require.NoError(t, err)
	return a
}

func mustSignature(t *testing.T, b [64]byte) account.Signature {
	t.Helper()
	sig, err := account.SignatureFromBytes(b)
	require.NoError(t, err)
	return sig
}

func TestCreateWork(t *testing.T) {
	b := createTestBlock(t)

	assert.False(t, b.HasValidWork([8]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}))
	b.LocalWork(testWorkDifficulty)
	assert.True(t, b.HasValidWork(testWorkDifficulty))
}

func TestCreateSignature(t *testing.T) {
	key := testKey(t, 0)
	b := createTestBlock(t)

	assert.False(t, b.HasValidSignature())
	b.Sign(key)
	assert.True(t, b.HasValidSignature())
	assert.True(t, b.Signature.Equal(b.GetSignature(key)))
}

// Real mainnet blocks exercising hash, signature, and work checks
// against the live network's data.

func mainnetReceiveBlock(t *testing.T) *Block {
	t.Helper()
	return &Block{
		Type:    TypeReceive,
		Account: mustAccount(t, "nano_3cpz7oh9qr5b7obbcb5867omqf8esix4sdd5w6mh8kkknamjgbnwrimxsaaf"),
		Previous: [32]byte{
			129, 149, 239, 153, 243, 86, 55, 9, 146, 47, 120, 27, 208, 150, 213, 51,
			143, 223, 27, 91, 132, 108, 97, 183, 154, 231, 115, 156, 215, 69, 70, 191,
		},
		Representative: mustAccount(t, "nano_37imps4zk1dfahkqweqa91xpysacb7scqxf3jqhktepeofcxqnpx531b3mnt"),
		Balance:        uint256.MustFromDecimal("12603866388773874271376430197004955478"),
		Link: [32]byte{
			193, 250, 200, 172, 202, 201, 47, 111, 83, 111, 26, 144, 241, 161, 185, 32,
			122, 213, 135, 172, 79, 45, 4, 159, 94, 138, 37, 188, 78, 58, 33, 165,
		},
		Signature: mustSignature(t, [64]byte{
			26, 22, 203, 145, 161, 117, 150, 35, 205, 5, 230, 39, 56, 46, 120, 162,
			109, 124, 117, 80, 239, 18, 102, 1, 221, 148, 13, 79, 185, 74, 136, 50,
			120, 216, 236, 159, 181, 147, 184, 247, 25, 54, 51, 130, 242, 12, 58, 52,
			182, 38, 180, 138, 157, 195, 109, 244, 41, 5, 7, 40, 92, 87, 158, 6,
		}),
		Work: [8]byte{55, 16, 153, 165, 103, 12, 179, 237},
	}
}

func TestMainnetReceiveBlock(t *testing.T) {
	b := mainnetReceiveBlock(t)
	assert.True(t, b.HasValidWork(SendWorkDifficulty))
	assert.True(t, b.HasValidSignature())
}

func TestMainnetSendBlock(t *testing.T) {
	b := &Block{
		Type:    TypeSend,
		Account: mustAccount(t, "nano_3cpz7oh9qr5b7obbcb5867omqf8esix4sdd5w6mh8kkknamjgbnwrimxsaaf"),
		Previous: [32]byte{
			51, 190, 253, 128, 226, 21, 179, 253, 60, 46, 69, 62, 113, 112, 141, 197,
			34, 189, 51, 236, 38, 152, 45, 3, 139, 137, 116, 69, 182, 168, 248, 216,
		},
		Representative: mustAccount(t, "nano_37imps4zk1dfahkqweqa91xpysacb7scqxf3jqhktepeofcxqnpx531b3mnt"),
		Balance:        uint256.MustFromDecimal("12603714974808874271376430197004955478"),
		Link: [32]byte{
			143, 164, 224, 238, 131, 161, 166, 194, 112, 31, 106, 114, 154, 181, 0, 254,
			225, 165, 19, 125, 57, 54, 49, 25, 11, 249, 132, 155, 203, 219, 197, 162,
		},
		Signature: mustSignature(t, [64]byte{
			231, 93, 74, 12, 164, 163, 118, 237, 82, 31, 44, 126, 192, 173, 115, 218,
			185, 6, 59, 18, 168, 143, 202, 222, 231, 162, 27, 192, 186, 117, 165, 3,
			83, 254, 199, 11, 204, 25, 25, 162, 248, 234, 125, 30, 174, 248, 143, 13,
			196, 210, 136, 200, 7, 193, 239, 62, 51, 131, 230, 67, 137, 89, 150, 7,
		}),
		Work: [8]byte{13, 162, 2, 90, 186, 82, 152, 241},
	}
	assert.True(t, b.HasValidWork(SendWorkDifficulty))
	assert.True(t, b.HasValidSignature())
}

func TestMainnetEpochV1Block(t *testing.T) {
	b := &Block{
		Type:    TypeEpoch,
		Account: mustAccount(t, "nano_35jjmmmh81kydepzeuf9oec8hzkay7msr6yxagzxpcht7thwa5bus5tomgz9"),
		Previous: [32]byte{
			197, 41, 171, 147, 162, 137, 248, 248, 155, 150, 79, 76, 151, 13, 151, 82,
			8, 154, 65, 86, 228, 196, 79, 112, 118, 20, 73, 181, 151, 153, 123, 223,
		},
		Representative: mustAccount(t, "nano_3arg3asgtigae3xckabaaewkx3bzsh7nwz7jkmjos79ihyaxwphhm6qgjps4"),
		Balance:        uint256.MustFromDecimal("795055344175165130955846320127"),
		Link: [32]byte{
			101, 112, 111, 99, 104, 32, 118, 49, 32, 98, 108, 111, 99, 107, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		},
		Signature: mustSignature(t, [64]byte{
			52, 10, 149, 153, 90, 136, 154, 249, 218, 117, 203, 27, 150, 230, 130, 245,
			72, 66, 102, 174, 174, 72, 56, 20, 52, 67, 230, 176, 167, 160, 140, 135,
			105, 137, 83, 44, 117, 7, 96, 241, 31, 213, 191, 12, 82, 173, 120, 237,
			118, 22, 139, 159, 153, 184, 216, 4, 50, 101, 206, 107, 55, 165, 79, 6,
		}),
		Work: [8]byte{133, 203, 130, 102, 22, 143, 154, 3},
	}
	// Epoch blocks pass any difficulty without work.
	assert.True(t, b.HasValidWork(infiniteWorkDifficulty))
	assert.True(t, b.HasValidSignature())
}

func TestMainnetEpochV2Block(t *testing.T) {
	b := &Block{
		Type:    TypeEpoch,
		Account: mustAccount(t, "nano_35jjmmmh81kydepzeuf9oec8hzkay7msr6yxagzxpcht7thwa5bus5tomgz9"),
		Previous: [32]byte{
			95, 36, 90, 242, 101, 15, 47, 82, 125, 66, 179, 207, 122, 91, 39, 142,
			2, 82, 218, 93, 89, 147, 120, 8, 194, 142, 100, 112, 195, 173, 251, 41,
		},
		Representative: mustAccount(t, "nano_3arg3asgtigae3xckabaaewkx3bzsh7nwz7jkmjos79ihyaxwphhm6qgjps4"),
		Balance:        uint256.MustFromDecimal("795055344175165130955846320127"),
		Link: [32]byte{
			101, 112, 111, 99, 104, 32, 118, 50, 32, 98, 108, 111, 99, 107, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		},
		Signature: mustSignature(t, [64]byte{
			245, 214, 91, 76, 153, 189, 130, 100, 140, 166, 131, 115, 32, 218, 225, 204,
			49, 222, 162, 246, 59, 194, 18, 139, 98, 240, 1, 1, 133, 84, 221, 168,
			26, 177, 21, 118, 213, 138, 29, 191, 105, 72, 109, 16, 225, 29, 45, 67,
			241, 49, 197, 181, 71, 70, 70, 2, 100, 196, 90, 52, 22, 71, 158, 4,
		}),
		Work: [8]byte{178, 49, 190, 86, 245, 226, 43, 160},
	}
	assert.True(t, b.HasValidWork(infiniteWorkDifficulty))
	assert.True(t, b.HasValidSignature())
}

func TestWorkHash(t *testing.T) {
	b := createTestBlock(t)
	assert.Equal(t, b.Previous, b.WorkHash())

	b.Previous = [32]byte{}
	assert.Equal(t, b.Account.Compressed(), b.WorkHash())
}

func TestLinkAsAccount(t *testing.T) {
	b := createTestBlock(t)
	dest := testKey(t, 2).Account()
	b.Link = dest.Compressed()

	got, err := b.LinkAsAccount()
	require.NoError(t, err)
	assert.True(t, got.Equal(dest))
}

func TestFollowsEpochRules(t *testing.T) {
	prev := createTestBlock(t)
	epoch := &Block{
		Type:           TypeEpoch,
		Account:        prev.Account,
		Previous:       prev.Hash(),
		Representative: prev.Representative,
		Balance:        prev.Balance.Clone(),
	}
	assert.True(t, epoch.FollowsEpochRules(prev))

	changed := *epoch
	changed.Balance = uint256.NewInt(1)
	assert.False(t, changed.FollowsEpochRules(prev))

	changed = *epoch
	changed.Representative = testKey(t, 3).Account()
	assert.False(t, changed.FollowsEpochRules(prev))

	changed = *epoch
	changed.Type = TypeSend
	assert.False(t, changed.FollowsEpochRules(prev))
}

func TestTypeClassification(t *testing.T) {
	for _, typ := range []Type{TypeChange, TypeSend, TypeReceive, TypeEpoch} {
		assert.True(t, typ.IsState())
		assert.False(t, typ.IsLegacy())
		got, ok := TypeFromSubtype(string(typ))
		require.True(t, ok)
		assert.Equal(t, typ, got)
	}

	legacy := LegacyType("open")
	assert.False(t, legacy.IsState())
	assert.True(t, legacy.IsLegacy())
	_, ok := TypeFromSubtype("open")
	assert.False(t, ok)
}

func TestWireRoundTrip(t *testing.T) {
	b := mainnetReceiveBlock(t)

	wire := b.Wire()
	assert.Equal(t, "state", wire.Type)
	assert.Equal(t, "receive", wire.Subtype)
	assert.Equal(t, "12603866388773874271376430197004955478", wire.Balance)

	rebuilt, err := FromWire(wire)
	require.NoError(t, err)
	assert.Equal(t, b.Hash(), rebuilt.Hash())
	assert.Equal(t, b.Work, rebuilt.Work)
	assert.True(t, rebuilt.HasValidSignature())
}

func TestWireJSONRoundTrip(t *testing.T) {
	b := mainnetReceiveBlock(t)

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var rebuilt Block
	require.NoError(t, json.Unmarshal(data, &rebuilt))
	assert.Equal(t, b.Hash(), rebuilt.Hash())
	assert.True(t, rebuilt.HasValidSignature())
}

func TestFromWireRejectsOversizedBalance(t *testing.T) {
	wire := mainnetReceiveBlock(t).Wire()
	wire.Balance = "340282366920938463463374607431768211456" // 2^128
	_, err := FromWire(wire)
	assert.Error(t, err)
}

func TestCheckWorkRejectsBelowDifficulty(t *testing.T) {
	b := mainnetReceiveBlock(t)
	assert.False(t, CheckWork(b.WorkHash(), infiniteWorkDifficulty, b.Work))
}
