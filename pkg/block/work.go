package block

import (
	"bytes"

	"github.com/suffix-labs/camo-nano/pkg/hashes"
)

// Mainnet difficulty thresholds since the v21 epoch. Receives are
// allowed cheaper work than sends and changes.
var (
	SendWorkDifficulty    = [8]byte{0xff, 0xff, 0xff, 0xf8, 0x00, 0x00, 0x00, 0x00}
	ReceiveWorkDifficulty = [8]byte{0xff, 0xff, 0xfe, 0x00, 0x00, 0x00, 0x00, 0x00}
)

// CheckWork reports whether work satisfies the difficulty target for
// workHash. The 8-byte work value is hashed byte-reversed in front of
// the work hash; the reversed digest must be numerically >= difficulty
// as a big-endian integer.
func CheckWork(workHash [32]byte, difficulty, work [8]byte) bool {
	reverse8(&work)
	digest := hashes.SumWork(work[:], workHash[:])
	reverse8(&digest)
	return bytes.Compare(digest[:], difficulty[:]) >= 0
}

// LocalWork brute-forces a work value for workHash on the local CPU.
//
// The search runs a little-endian counter in the 8 bytes preceding the
// work hash and returns the first (byte-reversed) counter whose digest
// meets the difficulty. The loop is unbounded and has no cancellation
// hook; callers needing bounded or parallel search partition the
// counter space externally, each worker with its own buffer.
func LocalWork(workHash [32]byte, difficulty [8]byte) [8]byte {
	var data [40]byte
	copy(data[8:], workHash[:])

	for {
		digest := hashes.SumWork(data[:])
		reverse8(&digest)
		if bytes.Compare(digest[:], difficulty[:]) >= 0 {
			var work [8]byte
			copy(work[:], data[:8])
			reverse8(&work)
			return work
		}
		for i := 0; i < 8; i++ {
			data[i]++
			if data[i] != 0 {
				break
			}
		}
	}
}

func reverse8(b *[8]byte) {
	for i, j := 0, 7; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
