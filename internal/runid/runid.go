// Package runid generates sortable identifiers for simulation runs. An ID is
// a UUIDv7 (48-bit millisecond timestamp, version, variant and random bits)
// written as 26 characters of Crockford base32, so IDs sort by start time.
package runid

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
	"time"
)

const (
	alphabet = "0123456789abcdefghjkmnpqrstvwxyz"
	length   = 26
)

// New returns the ID of a run started at t. The random bits come from rng,
// so a seeded source and a fixed clock reproduce the same ID.
func New(t time.Time, rng *rand.Rand) string {
	var id [16]byte

	ms := uint64(t.UnixMilli())
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	hi, lo := rng.Uint64(), rng.Uint64()
	for i := 6; i < 16; i++ {
		if i < 8 {
			id[i] = byte(hi >> (8 * (i - 6)))
		} else {
			id[i] = byte(lo >> (8 * (i - 8)))
		}
	}

	id[6] = id[6]&0x0f | 0x70 // version 7
	id[8] = id[8]&0x3f | 0x80 // RFC 4122 variant

	return encode(id)
}

// encode writes the 128 bits behind two zero bits of padding, five bits per
// character.
func encode(id [16]byte) string {
	out := make([]byte, length)
	for i := range out {
		var v byte
		for j := 0; j < 5; j++ {
			v <<= 1
			bit := i*5 + j - 2
			if bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Validate checks that id is 26 base32 characters encoding at most 128 bits
func Validate(id string) error {
	if len(id) != length {
		return fmt.Errorf("run ID must be exactly %d characters, got %d", length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("run ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}

// Time extracts the start time encoded in a valid ID
func Time(id string) (time.Time, error) {
	if err := Validate(id); err != nil {
		return time.Time{}, err
	}

	// The first ten characters carry the 2 padding bits and 48 timestamp bits.
	var ms uint64
	for _, c := range id[:10] {
		ms = ms<<5 | uint64(strings.IndexRune(alphabet, c))
	}
	return time.UnixMilli(int64(ms)), nil
}
