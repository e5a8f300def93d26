package rpc

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"

	"github.com/suffix-labs/camo-nano/pkg/account"
	"github.com/suffix-labs/camo-nano/pkg/block"
)

// AccountInfo is the node's general information about an account.
type AccountInfo struct {
	Frontier            [32]byte
	OpenBlock           [32]byte
	RepresentativeBlock [32]byte
	Balance             *uint256.Int
	ModifiedTimestamp   uint64
	BlockCount          uint64
	Version             uint64
	Representative      account.Account
	Weight              *uint256.Int
	Receivable          *uint256.Int
}

// Receivable is a pending incoming transaction.
type Receivable struct {
	// Recipient is the account the funds are waiting for.
	Recipient account.Account
	// BlockHash is the hash of the send block on the sender's chain.
	BlockHash [32]byte
	// Amount is the amount being transferred, in raw.
	Amount *uint256.Int
}

// AccountBalance returns the confirmed balance of an account in raw.
func (c *Client) AccountBalance(ctx context.Context, acct account.Account) (*uint256.Int, error) {
	raw, err := c.Command(ctx, "account_balance", map[string]any{
		"account": acct.String(),
	})
	if err != nil {
		return nil, err
	}
	var resp struct {
		Balance string `json:"balance"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("rpc: account_balance: %w: %v", ErrInvalidResponse, err)
	}
	return parseAmount(resp.Balance)
}

// AccountHistory lists the account's blocks newest first, starting at
// head (or the frontier if head is nil) and going back at most count
// blocks. It stops at the first legacy block.
//
// The returned chain is verified: each block's previous field must be
// the hash of the block after it, and the newest block must carry a
// valid signature. The node-reported account field is ignored in favor
// of the requested account.
func (c *Client) AccountHistory(ctx context.Context, acct account.Account, count int, head *[32]byte) ([]*block.Block, error) {
	arguments := map[string]any{
		"raw":     "true",
		"account": acct.String(),
		"count":   strconv.Itoa(count),
	}
	if head != nil {
		arguments["head"] = hex.EncodeToString(head[:])
	}
	raw, err := c.Command(ctx, "account_history", arguments)
	if err != nil {
		return nil, err
	}

	var resp struct {
		History []json.RawMessage `json:"history"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("rpc: account_history: %w: %v", ErrInvalidResponse, err)
	}

	var blocks []*block.Block
	for _, entry := range resp.History {
		var wire block.WireBlock
		if err := json.Unmarshal(entry, &wire); err != nil {
			return nil, fmt.Errorf("rpc: account_history: %w: %v", ErrInvalidResponse, err)
		}
		if wire.Type != "state" {
			break
		}
		// The account field in history entries is the sender for
		// receives, a node RPC compatibility quirk.
		wire.Account = acct.String()

		b, err := block.FromWire(wire)
		if err != nil {
			return nil, fmt.Errorf("rpc: account_history: %w: %v", ErrInvalidResponse, err)
		}
		if len(blocks) > 0 {
			successor := blocks[len(blocks)-1]
			if successor.Previous != b.Hash() {
				return nil, fmt.Errorf("rpc: account_history: %w: broken hash chain", ErrInvalidData)
			}
		}
		blocks = append(blocks, b)
	}

	if len(blocks) > 0 {
		if !blocks[0].HasValidSignature() {
			return nil, fmt.Errorf("rpc: account_history: %w: bad frontier signature", ErrInvalidData)
		}
	} else if len(resp.History) > 0 {
		return nil, fmt.Errorf("rpc: account_history: %w: no state blocks", ErrInvalidData)
	}
	return blocks, nil
}

// AccountRepresentative returns the account's current representative,
// read from its verified frontier block.
func (c *Client) AccountRepresentative(ctx context.Context, acct account.Account) (account.Account, error) {
	history, err := c.AccountHistory(ctx, acct, 1, nil)
	if err != nil {
		return account.Account{}, err
	}
	if len(history) == 0 {
		return account.Account{}, fmt.Errorf("rpc: account_representative: %w: account not opened", ErrInvalidData)
	}
	return history[0].Representative, nil
}

// AccountInfo returns general information about an account.
func (c *Client) AccountInfo(ctx context.Context, acct account.Account) (*AccountInfo, error) {
	raw, err := c.Command(ctx, "account_info", map[string]any{
		"account":        acct.String(),
		"representative": "true",
		"weight":         "true",
		"receivable":     "true",
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Frontier            string `json:"frontier"`
		OpenBlock           string `json:"open_block"`
		RepresentativeBlock string `json:"representative_block"`
		Balance             string `json:"balance"`
		ModifiedTimestamp   string `json:"modified_timestamp"`
		BlockCount          string `json:"block_count"`
		Version             string `json:"account_version"`
		Representative      string `json:"representative"`
		Weight              string `json:"weight"`
		Receivable          string `json:"receivable"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("rpc: account_info: %w: %v", ErrInvalidResponse, err)
	}

	info := &AccountInfo{}
	if err := hashInto(info.Frontier[:], resp.Frontier); err != nil {
		return nil, fmt.Errorf("rpc: account_info: frontier: %w", err)
	}
	if err := hashInto(info.OpenBlock[:], resp.OpenBlock); err != nil {
		return nil, fmt.Errorf("rpc: account_info: open_block: %w", err)
	}
	if err := hashInto(info.RepresentativeBlock[:], resp.RepresentativeBlock); err != nil {
		return nil, fmt.Errorf("rpc: account_info: representative_block: %w", err)
	}
	if info.Balance, err = parseAmount(resp.Balance); err != nil {
		return nil, err
	}
	if info.ModifiedTimestamp, err = parseUint(resp.ModifiedTimestamp); err != nil {
		return nil, err
	}
	if info.BlockCount, err = parseUint(resp.BlockCount); err != nil {
		return nil, err
	}
	if info.Version, err = parseUint(resp.Version); err != nil {
		return nil, err
	}
	if info.Representative, err = account.ParseAccount(resp.Representative); err != nil {
		return nil, fmt.Errorf("rpc: account_info: representative: %w: %v", ErrInvalidResponse, err)
	}
	if info.Weight, err = parseAmount(resp.Weight); err != nil {
		return nil, err
	}
	if info.Receivable, err = parseAmount(resp.Receivable); err != nil {
		return nil, err
	}
	return info, nil
}

// AccountsFrontiers returns the frontier block hash of each account,
// aligned with the input. Unopened accounts get a nil entry.
func (c *Client) AccountsFrontiers(ctx context.Context, accounts []account.Account) ([]*[32]byte, error) {
	raw, err := c.Command(ctx, "accounts_frontiers", map[string]any{
		"accounts": accountStrings(accounts),
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Frontiers map[string]string `json:"frontiers"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("rpc: accounts_frontiers: %w: %v", ErrInvalidResponse, err)
	}

	frontiers := make([]*[32]byte, len(accounts))
	for i, acct := range accounts {
		text, ok := resp.Frontiers[acct.String()]
		if !ok {
			continue
		}
		var frontier [32]byte
		if err := hashInto(frontier[:], text); err != nil {
			return nil, fmt.Errorf("rpc: accounts_frontiers: %w", err)
		}
		frontiers[i] = &frontier
	}
	return frontiers, nil
}

// AccountsReceivable returns the pending transactions of each account,
// aligned with the input: at most count per account, largest first,
// ignoring amounts below threshold.
func (c *Client) AccountsReceivable(ctx context.Context, accounts []account.Account, count int, threshold *uint256.Int) ([][]Receivable, error) {
	raw, err := c.Command(ctx, "accounts_receivable", map[string]any{
		"accounts":  accountStrings(accounts),
		"count":     count,
		"sorting":   "true",
		"threshold": threshold.Dec(),
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Blocks map[string]json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("rpc: accounts_receivable: %w: %v", ErrInvalidResponse, err)
	}

	all := make([][]Receivable, len(accounts))
	for i, acct := range accounts {
		entry, ok := resp.Blocks[acct.String()]
		if !ok {
			continue
		}
		// Accounts with nothing pending come back as "" or null.
		var pending map[string]string
		if err := json.Unmarshal(entry, &pending); err != nil {
			continue
		}
		for hashText, amountText := range pending {
			var r Receivable
			r.Recipient = acct
			if err := hashInto(r.BlockHash[:], hashText); err != nil {
				return nil, fmt.Errorf("rpc: accounts_receivable: %w", err)
			}
			if r.Amount, err = parseAmount(amountText); err != nil {
				return nil, err
			}
			all[i] = append(all[i], r)
		}
	}
	return all, nil
}

// BlockInfo retrieves a block by hash. Legacy blocks return nil. The
// block's signature is verified before it is returned.
func (c *Client) BlockInfo(ctx context.Context, hash [32]byte) (*block.Block, error) {
	raw, err := c.Command(ctx, "block_info", map[string]any{
		"hash":       hex.EncodeToString(hash[:]),
		"json_block": "true",
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Subtype  string          `json:"subtype"`
		Contents json.RawMessage `json:"contents"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("rpc: block_info: %w: %v", ErrInvalidResponse, err)
	}

	var wire block.WireBlock
	if err := json.Unmarshal(resp.Contents, &wire); err != nil {
		return nil, fmt.Errorf("rpc: block_info: %w: %v", ErrInvalidResponse, err)
	}
	if wire.Type != "state" {
		return nil, nil
	}
	// The subtype lives outside the block contents in this command.
	wire.Subtype = resp.Subtype

	b, err := block.FromWire(wire)
	if err != nil {
		return nil, fmt.Errorf("rpc: block_info: %w: %v", ErrInvalidResponse, err)
	}
	if !b.HasValidSignature() {
		return nil, fmt.Errorf("rpc: block_info: %w: bad signature", ErrInvalidData)
	}
	return b, nil
}

// Process publishes a state block and returns its hash. The node's
// reported hash must match the locally computed one.
func (c *Client) Process(ctx context.Context, b *block.Block) ([32]byte, error) {
	var hash [32]byte
	if !b.Type.IsState() {
		return hash, fmt.Errorf("rpc: process: %w", ErrLegacyBlock)
	}

	raw, err := c.Command(ctx, "process", map[string]any{
		"subtype":    string(b.Type),
		"block":      b.Wire(),
		"json_block": "true",
	})
	if err != nil {
		return hash, err
	}

	var resp struct {
		Hash string `json:"hash"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return hash, fmt.Errorf("rpc: process: %w: %v", ErrInvalidResponse, err)
	}
	if err := hashInto(hash[:], resp.Hash); err != nil {
		return hash, fmt.Errorf("rpc: process: %w", err)
	}
	if hash != b.Hash() {
		return hash, fmt.Errorf("rpc: process: %w: node returned foreign hash", ErrInvalidData)
	}
	return hash, nil
}

// WorkGenerate asks the node (and its peers) for work over workHash.
// With a nil difficulty the node's base difficulty applies. The
// returned work is verified locally before being accepted.
func (c *Client) WorkGenerate(ctx context.Context, workHash [32]byte, difficulty *[8]byte) ([8]byte, error) {
	var work [8]byte
	arguments := map[string]any{
		"hash":      hex.EncodeToString(workHash[:]),
		"use_peers": "true",
	}
	if difficulty != nil {
		arguments["difficulty"] = hex.EncodeToString(difficulty[:])
	}
	raw, err := c.Command(ctx, "work_generate", arguments)
	if err != nil {
		return work, err
	}

	var resp struct {
		Work       string `json:"work"`
		Difficulty string `json:"difficulty"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return work, fmt.Errorf("rpc: work_generate: %w: %v", ErrInvalidResponse, err)
	}
	if err := hashInto(work[:], resp.Work); err != nil {
		return work, fmt.Errorf("rpc: work_generate: work: %w", err)
	}

	var target [8]byte
	if difficulty != nil {
		target = *difficulty
	} else if err := hashInto(target[:], resp.Difficulty); err != nil {
		return work, fmt.Errorf("rpc: work_generate: difficulty: %w", err)
	}
	if !block.CheckWork(workHash, target, work) {
		return work, fmt.Errorf("rpc: work_generate: %w: work below difficulty", ErrInvalidData)
	}
	return work, nil
}

func accountStrings(accounts []account.Account) []string {
	out := make([]string, len(accounts))
	for i, a := range accounts {
		out[i] = a.String()
	}
	return out
}

func parseAmount(s string) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("rpc: amount %q: %w: %v", s, ErrInvalidResponse, err)
	}
	if amount.BitLen() > 128 {
		return nil, fmt.Errorf("rpc: amount %q: %w: overflows 128 bits", s, ErrInvalidData)
	}
	return amount, nil
}

func parseUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("rpc: integer %q: %w: %v", s, ErrInvalidResponse, err)
	}
	return v, nil
}

func hashInto(dst []byte, s string) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("hex %q: %w: %v", s, ErrInvalidResponse, err)
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("hex %q: %w: expected %d bytes", s, ErrInvalidResponse, len(dst))
	}
	copy(dst, raw)
	return nil
}
