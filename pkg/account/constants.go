package account

import "github.com/holiman/uint256"

// AddressPrefix is the text prefix of ordinary accounts.
const AddressPrefix = "nano_"

// AddressLength is the exact text length of an ordinary account:
// the prefix plus 52 base-32 characters.
const AddressLength = 65

// Amounts are expressed in raw, the smallest unit: 1 Nano = 10^30 raw.
var (
	OneRaw       = uint256.NewInt(1)
	OneNanoNano  = uint256.MustFromDecimal("1000000000000000000000")
	OneMicroNano = uint256.MustFromDecimal("1000000000000000000000000")
	OneMilliNano = uint256.MustFromDecimal("1000000000000000000000000000")
	OneNano      = uint256.MustFromDecimal("1000000000000000000000000000000")
)

var (
	genesisAccount = mustParse("nano_3t6k35gi95xu6tergt6p69ck76ogmitsa8mnijtpxm9fkcm736xtoncuohr3")
	epochV2Signer  = mustParse("nano_3qb6o6i1tkzr6jwr5s7eehfxwg9x6eemitdinbpi7u8bjjwsgqfj4wzser3x")
)

// GenesisAccount returns the well-known genesis account.
func GenesisAccount() Account { return genesisAccount }

// EpochV1Signer returns the well-known signer of epoch v1 blocks.
// This happens to be the genesis account.
func EpochV1Signer() Account { return genesisAccount }

// EpochV2Signer returns the well-known signer of epoch v2 blocks.
func EpochV2Signer() Account { return epochV2Signer }

func mustParse(text string) Account {
	a, err := ParseAccount(text)
	if err != nil {
		panic("account: bad built-in account " + text + ": " + err.Error())
	}
	return a
}
