// camo-nano CLI - key derivation and stealth addressing for Nano
//
// Example usage:
//
//	# Derive the account at index 0 of a seed
//	camo-nano account <seed-hex> 0
//
//	# Derive a camo address and its view keys
//	camo-nano camo <seed-hex> 0
//
//	# Solve proof-of-work for a block hash
//	camo-nano work <hash-hex>
//
//	# Classify and validate an address
//	camo-nano parse nano_3t6k35...
//
//	# Query a node for an account balance
//	camo-nano balance http://localhost:7076 nano_3t6k35...
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/suffix-labs/camo-nano/pkg/account"
	"github.com/suffix-labs/camo-nano/pkg/block"
	"github.com/suffix-labs/camo-nano/pkg/camo"
	"github.com/suffix-labs/camo-nano/pkg/rpc"
	"github.com/suffix-labs/camo-nano/pkg/secret"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "account":
		cmdAccount()
	case "camo":
		cmdCamo()
	case "work":
		cmdWork()
	case "parse":
		cmdParse()
	case "balance":
		cmdBalance()
	case "version":
		cmdVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`camo-nano - key derivation and stealth addressing for Nano

Usage:
  camo-nano <command> [options]

Commands:
  account <seed-hex> <index>        Derive the account at an index of a seed
  camo <seed-hex> <index>           Derive a camo address and its view keys
  work <hash-hex> [difficulty-hex]  Solve proof-of-work for a block hash
  parse <address>                   Classify and validate an address
  balance <url> <address>           Query a node for an account balance
  version                           Show version information
  help                              Show this help message

Examples:
  # Derive the first account of a seed
  camo-nano account 0000000000000000000000000000000000000000000000000000000000000000 0

  # Solve work at the default send difficulty
  camo-nano work 718CC2121C3E641059BC1C2CFC45666C99E8AE922F7A807B7D07B62C995D79E2

For more information, see: https://github.com/suffix-labs/camo-nano`)
}

func cmdVersion() {
	fmt.Println("camo-nano v0.1.0")
	fmt.Println("Nano key derivation, blocks, and camo stealth addresses")
}

func cmdAccount() {
	seed, index := seedIndexArgs("account")
	defer seed.Wipe()

	key := account.KeyFromSeed(seed, index)
	defer key.Wipe()

	fmt.Printf("Account: %s\n", key.Account())
}

func cmdCamo() {
	seed, index := seedIndexArgs("camo")
	defer seed.Wipe()

	keys, err := camo.KeysFromSeed(seed, index, camo.NewVersions(camo.HighestKnownVersion))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to derive camo keys: %v\n", err)
		os.Exit(1)
	}
	defer keys.Wipe()

	viewKeys := keys.ViewKeys()
	defer viewKeys.Wipe()
	blob := viewKeys.Bytes()
	defer blob.Wipe()

	fmt.Printf("Camo address:  %s\n", keys.Account())
	fmt.Printf("Signer:        %s\n", keys.SignerKey().Account())
	fmt.Printf("View keys:     %s\n", hex.EncodeToString(blob.Slice()))
}

func cmdWork() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Error: hash argument required")
		fmt.Fprintln(os.Stderr, "Usage: camo-nano work <hash-hex> [difficulty-hex]")
		os.Exit(1)
	}

	var workHash [32]byte
	if err := hexArg(workHash[:], os.Args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid hash: %v\n", err)
		os.Exit(1)
	}

	difficulty := block.SendWorkDifficulty
	if len(os.Args) > 3 {
		if err := hexArg(difficulty[:], os.Args[3]); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid difficulty: %v\n", err)
			os.Exit(1)
		}
	}

	start := time.Now()
	work := block.LocalWork(workHash, difficulty)
	fmt.Printf("Work:    %s\n", hex.EncodeToString(work[:]))
	fmt.Printf("Elapsed: %s\n", time.Since(start).Round(time.Millisecond))
}

func cmdParse() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Error: address argument required")
		fmt.Fprintln(os.Stderr, "Usage: camo-nano parse <address>")
		os.Exit(1)
	}
	text := os.Args[2]

	if acct, err := account.ParseAccount(text); err == nil {
		compressed := acct.Compressed()
		fmt.Println("Type:       account")
		fmt.Printf("Public key: %s\n", hex.EncodeToString(compressed[:]))
		return
	}

	camoAccount, err := camo.ParseAccount(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Not a valid address: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Type:     camo account")
	fmt.Printf("Signer:   %s\n", camoAccount.SignerAccount())
	fmt.Printf("Versions: %v\n", camoAccount.Versions().AllSignaled())
}

func cmdBalance() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "Error: url and address arguments required")
		fmt.Fprintln(os.Stderr, "Usage: camo-nano balance <url> <address>")
		os.Exit(1)
	}

	acct, err := account.ParseAccount(os.Args[3])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid address: %v\n", err)
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	client := rpc.NewClient(os.Args[2], rpc.WithLogger(log))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	balance, err := client.AccountBalance(ctx, acct)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch balance: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Balance: %s raw\n", balance.Dec())
}

func seedIndexArgs(command string) (*secret.Bytes32, uint32) {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "Error: seed and index arguments required")
		fmt.Fprintf(os.Stderr, "Usage: camo-nano %s <seed-hex> <index>\n", command)
		os.Exit(1)
	}

	var raw [32]byte
	if err := hexArg(raw[:], os.Args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid seed: %v\n", err)
		os.Exit(1)
	}
	seed := secret.NewBytes32(&raw)

	index, err := strconv.ParseUint(os.Args[3], 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid index: %v\n", err)
		os.Exit(1)
	}
	return seed, uint32(index)
}

func hexArg(dst []byte, s string) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("expected %d hex bytes, got %d", len(dst), len(raw))
	}
	copy(dst, raw)
	return nil
}
