package solution

import (
	"encoding/hex"
	"fmt"
)

// Checksum is an opaque, equality-comparable content hash identifying a
// logical solution snapshot. It is a fixed-size array (rather than a slice)
// so that it can be used directly as a map key, mirroring the corpus's
// convention for fixed-size content-hash types (e.g. go-ethereum's
// common.Hash), and matching the 20-byte width of the checksums this
// subsystem was distilled from.
type Checksum [20]byte

// ParseChecksum decodes a hex-encoded checksum, as produced by Checksum.String.
func ParseChecksum(s string) (Checksum, error) {
	var c Checksum
	b, err := hex.DecodeString(s)
	if err != nil {
		return c, fmt.Errorf("solution: invalid checksum %q: %w", s, err)
	}
	if len(b) != len(c) {
		return c, fmt.Errorf("solution: invalid checksum %q: want %d bytes, got %d", s, len(c), len(b))
	}
	copy(c[:], b)
	return c, nil
}

// String returns the lowercase hex encoding of the checksum.
func (c Checksum) String() string {
	return hex.EncodeToString(c[:])
}

// IsZero reports whether c is the zero Checksum, used as the sentinel value
// for "no primary checksum yet".
func (c Checksum) IsZero() bool {
	return c == Checksum{}
}
