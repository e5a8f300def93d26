package block

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/suffix-labs/camo-nano/pkg/account"
)

// WireBlock is the node RPC representation of a block: text accounts,
// hex hashes and signature, decimal balance. Modern blocks carry type
// "state" and their subtype separately; legacy blocks carry their
// historical name as the type.
type WireBlock struct {
	Type           string `json:"type"`
	Subtype        string `json:"subtype,omitempty"`
	Account        string `json:"account"`
	Previous       string `json:"previous"`
	Representative string `json:"representative"`
	Balance        string `json:"balance"`
	Link           string `json:"link"`
	Signature      string `json:"signature"`
	Work           string `json:"work"`
}

// Wire converts the block to its RPC representation.
func (b *Block) Wire() WireBlock {
	w := WireBlock{
		Type:           "state",
		Account:        b.Account.String(),
		Previous:       upperHex(b.Previous[:]),
		Representative: b.Representative.String(),
		Balance:        "0",
		Link:           upperHex(b.Link[:]),
		Work:           hex.EncodeToString(b.Work[:]),
	}
	sig := b.Signature.Bytes()
	w.Signature = upperHex(sig[:])
	if b.Balance != nil {
		w.Balance = b.Balance.Dec()
	}
	if b.Type.IsState() {
		w.Subtype = string(b.Type)
	} else {
		w.Type = string(b.Type)
	}
	return w
}

// FromWire converts the RPC representation back to a block.
func FromWire(w WireBlock) (*Block, error) {
	var blockType Type
	if w.Type == "state" {
		t, ok := TypeFromSubtype(w.Subtype)
		if !ok {
			return nil, fmt.Errorf("unknown state block subtype %q", w.Subtype)
		}
		blockType = t
	} else {
		blockType = LegacyType(w.Type)
	}

	acct, err := account.ParseAccount(w.Account)
	if err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}
	rep, err := account.ParseAccount(w.Representative)
	if err != nil {
		return nil, fmt.Errorf("representative: %w", err)
	}

	balance, err := uint256.FromDecimal(w.Balance)
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}
	if balance.BitLen() > 128 {
		return nil, fmt.Errorf("balance %s overflows 128 bits", w.Balance)
	}

	b := &Block{
		Type:           blockType,
		Account:        acct,
		Representative: rep,
		Balance:        balance,
	}
	if err := hexInto(b.Previous[:], w.Previous); err != nil {
		return nil, fmt.Errorf("previous: %w", err)
	}
	if err := hexInto(b.Link[:], w.Link); err != nil {
		return nil, fmt.Errorf("link: %w", err)
	}
	if err := hexInto(b.Work[:], w.Work); err != nil {
		return nil, fmt.Errorf("work: %w", err)
	}

	var sig [64]byte
	if err := hexInto(sig[:], w.Signature); err != nil {
		return nil, fmt.Errorf("signature: %w", err)
	}
	b.Signature, err = account.SignatureFromBytes(sig)
	if err != nil {
		return nil, fmt.Errorf("signature: %w", err)
	}
	return b, nil
}

// MarshalJSON encodes the block in its RPC representation.
func (b *Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Wire())
}

// UnmarshalJSON decodes the block from its RPC representation.
func (b *Block) UnmarshalJSON(data []byte) error {
	var w WireBlock
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	parsed, err := FromWire(w)
	if err != nil {
		return err
	}
	*b = *parsed
	return nil
}

func upperHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

func hexInto(dst []byte, s string) error {
	raw, err := hex.DecodeString(strings.ToLower(s))
	if err != nil {
		return err
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("expected %d hex bytes, got %d", len(dst), len(raw))
	}
	copy(dst, raw)
	return nil
}
