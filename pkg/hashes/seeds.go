package hashes

import "github.com/suffix-labs/camo-nano/pkg/secret"

// Fixed category indexes for the camo key hierarchy. Category seeds are
// salted with the index in front of the seed, the opposite order from
// per-account sub-seeds, so the two derivation trees never collide.
const (
	SpendCategoryIndex uint32 = 0
	ViewCategoryIndex  uint32 = 1
)

// AccountSeed returns the 32-byte sub-seed for account index i of a wallet seed.
func AccountSeed(seed *secret.Bytes32, i uint32) *secret.Bytes32 {
	return Sum256(seed.Slice(), be32(i))
}

// AccountScalar returns the private key scalar for account index i of a
// wallet seed.
func AccountScalar(seed *secret.Bytes32, i uint32) *secret.Scalar {
	sub := AccountSeed(seed, i)
	defer sub.Wipe()
	return ScalarFromHash(sub.Slice())
}

// CategorySeed derives a per-category master seed.
func CategorySeed(seed *secret.Bytes32, i uint32) *secret.Bytes32 {
	return Sum256(be32(i), seed.Slice())
}

// CamoSpendSeed returns the wallet's master spend seed.
func CamoSpendSeed(masterSeed *secret.Bytes32) *secret.Bytes32 {
	return CategorySeed(masterSeed, SpendCategoryIndex)
}

// CamoViewSeed returns the wallet's master view seed.
func CamoViewSeed(masterSeed *secret.Bytes32) *secret.Bytes32 {
	return CategorySeed(masterSeed, ViewCategoryIndex)
}
