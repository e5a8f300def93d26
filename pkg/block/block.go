// Package block implements the ledger transaction record.
//
// A block is one entry in an account's chain: it names the account, the
// previous block's hash, a representative, the resulting balance, and a
// link whose meaning depends on the block type (a source block hash for
// receives, a destination account for sends, a literal marker for
// epochs). Blocks carry their own signature and an 8-byte proof-of-work
// nonce checked against a caller-supplied difficulty.
//
// See: https://docs.nano.org/protocol-design/blocks/
package block

import (
	"github.com/holiman/uint256"

	"github.com/suffix-labs/camo-nano/pkg/account"
	"github.com/suffix-labs/camo-nano/pkg/hashes"
)

// Type identifies the kind of a block. On the wire every modern block
// has type "state" and one of the subtypes below; historical block
// types (open, send, receive, change) appear as legacy types carrying
// their original name.
type Type string

const (
	TypeChange  Type = "change"
	TypeSend    Type = "send"
	TypeReceive Type = "receive"
	TypeEpoch   Type = "epoch"
)

// LegacyType wraps a historical block type name.
func LegacyType(name string) Type { return Type(name) }

// TypeFromSubtype maps a wire subtype string to a state block type.
func TypeFromSubtype(s string) (Type, bool) {
	switch Type(s) {
	case TypeChange, TypeSend, TypeReceive, TypeEpoch:
		return Type(s), true
	}
	return "", false
}

// IsState reports whether t is one of the state subtypes.
func (t Type) IsState() bool {
	switch t {
	case TypeChange, TypeSend, TypeReceive, TypeEpoch:
		return true
	}
	return false
}

// IsLegacy reports whether t is a historical block type.
func (t Type) IsLegacy() bool { return !t.IsState() }

// IsEpoch reports whether t is the epoch subtype.
func (t Type) IsEpoch() bool { return t == TypeEpoch }

// IsSend reports whether t is the send subtype.
func (t Type) IsSend() bool { return t == TypeSend }

// IsReceive reports whether t is the receive subtype.
func (t Type) IsReceive() bool { return t == TypeReceive }

// IsChange reports whether t is the change subtype.
func (t Type) IsChange() bool { return t == TypeChange }

// Block is a single ledger transaction record.
//
// Balance is a 128-bit unsigned amount in raw; a nil Balance is treated
// as zero.
type Block struct {
	Type           Type
	Account        account.Account
	Previous       [32]byte
	Representative account.Account
	Balance        *uint256.Int
	Link           [32]byte
	Signature      account.Signature
	Work           [8]byte
}

// blockHashPreamble is the fixed domain-separation prefix of the block
// hash: 31 zero bytes followed by the tag byte 6.
var blockHashPreamble = [32]byte{31: 6}

// Hash computes the canonical block hash. It is a pure function of the
// type-independent fields; signature and work are not included.
func (b *Block) Hash() [32]byte {
	acct := b.Account.Compressed()
	rep := b.Representative.Compressed()
	balance := b.balanceBytes()

	digest := hashes.Sum256(
		blockHashPreamble[:],
		acct[:],
		b.Previous[:],
		rep[:],
		balance[:],
		b.Link[:],
	)
	var out [32]byte
	copy(out[:], digest.Slice())
	return out
}

// balanceBytes returns the balance as 16 big-endian bytes.
func (b *Block) balanceBytes() [16]byte {
	var out [16]byte
	if b.Balance != nil {
		copy(out[:], b.Balance.PaddedBytes(16))
	}
	return out
}

// WorkHash returns the hash the proof of work must cover: the account's
// own compressed point for the first block of a chain, otherwise the
// previous block's hash.
func (b *Block) WorkHash() [32]byte {
	if b.Previous == ([32]byte{}) {
		return b.Account.Compressed()
	}
	return b.Previous
}

// LinkAsAccount interprets the link field as a destination account.
func (b *Block) LinkAsAccount() (account.Account, error) {
	return account.AccountFromBytes(b.Link)
}

// GetSignature signs this block's hash with key without mutating the block.
func (b *Block) GetSignature(key *account.Key) account.Signature {
	h := b.Hash()
	return key.Sign(h[:])
}

// Sign signs this block's hash with key and stores the signature.
func (b *Block) Sign(key *account.Key) {
	b.Signature = b.GetSignature(key)
}

// epoch v1 and v2 blocks embed an ASCII marker in the link; byte 7
// holds the version digit.
const (
	epochV1Marker = '1'
	epochV2Marker = '2'
)

// HasValidSignature reports whether the block's signature is valid.
//
// Ordinary blocks are signed by their own account. Epoch blocks are
// signed by a well-known epoch signer selected from the version digit
// in the link; an unrecognized digit falls back to the genesis account.
// The fallback is best-effort compatibility behavior, not a protocol
// guarantee.
func (b *Block) HasValidSignature() bool {
	signer := b.Account
	if b.Type.IsEpoch() {
		switch b.Link[7] {
		case epochV1Marker:
			signer = account.EpochV1Signer()
		case epochV2Marker:
			signer = account.EpochV2Signer()
		default:
			signer = account.GenesisAccount()
		}
	}
	h := b.Hash()
	return signer.Verify(h[:], b.Signature)
}

// HasValidWork reports whether the work field satisfies the difficulty
// target. Epoch blocks never require work.
func (b *Block) HasValidWork(difficulty [8]byte) bool {
	if b.Type.IsEpoch() {
		return true
	}
	return CheckWork(b.WorkHash(), difficulty, b.Work)
}

// LocalWork solves the proof of work on the local CPU and stores the
// result. See the package-level LocalWork for the search behavior.
func (b *Block) LocalWork(difficulty [8]byte) {
	b.Work = LocalWork(b.WorkHash(), difficulty)
}

// FollowsEpochRules reports whether this block is a valid epoch
// successor to previous: an epoch block that changes neither balance
// nor representative.
func (b *Block) FollowsEpochRules(previous *Block) bool {
	return b.Type.IsEpoch() &&
		b.balanceBytes() == previous.balanceBytes() &&
		b.Representative.Equal(previous.Representative) &&
		b.Previous == previous.Hash()
}
