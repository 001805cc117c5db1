// Package hash40 implements the 40-bit name hash used to address param
// fields and to identify files.
//
// A hash is the CRC-32 (IEEE) checksum of a name in the low 32 bits and the
// name's byte length in the next 8 bits.
package hash40

import (
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"
)

// Hash40 is a 40-bit name hash.
type Hash40 uint64

// Mask selects the 40 significant bits of a Hash40.
const Mask Hash40 = 1<<40 - 1

// FromString returns the hash of name.
func FromString(name string) Hash40 {
	return New(uint64(crc32.ChecksumIEEE([]byte(name))) | uint64(len(name))<<32)
}

// New returns v truncated to 40 bits.
func New(v uint64) Hash40 { return Hash40(v) & Mask }

// CRC returns the checksum part of h.
func (h Hash40) CRC() uint32 { return uint32(h) }

// Len returns the name length part of h.
func (h Hash40) Len() uint8 { return uint8(h >> 32) }

// String formats h as "0x" followed by ten hex digits.
func (h Hash40) String() string { return fmt.Sprintf("0x%010x", uint64(h)) }

// Parse interprets s as a hash. A "0x" prefix denotes a hex literal; any
// other text is hashed as a name.
func Parse(s string) (Hash40, error) {
	hex, ok := strings.CutPrefix(s, "0x")
	if !ok {
		return FromString(s), nil
	}

	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse hash40 %q: %w", s, err)
	}

	if v > uint64(Mask) {
		return 0, fmt.Errorf("parse hash40 %q: %w", s, strconv.ErrRange)
	}

	return Hash40(v), nil
}
