// Package gameid generates sortable run identifiers: a UUIDv7 rendered as 26
// characters of Crockford base32.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32, lower case.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID. 26 characters carry 130 bits; the top two are zero.
const Length = 26

// Generate returns a new ID backed by crypto/rand.
func Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("gameid: failed to generate UUIDv7: " + err.Error())
	}
	return Encode(id)
}

// GenerateFrom returns a new ID whose random bits are read from r. Tests use
// it with a seeded reader; the timestamp still comes from the wall clock.
func GenerateFrom(r io.Reader) (string, error) {
	id, err := uuid.NewV7FromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return Encode(id), nil
}

// Encode renders a UUID as a 26-character base32 string, most significant
// bits first.
func Encode(id uuid.UUID) string {
	out := make([]byte, Length)
	// Prepend two zero bits so the 128-bit value splits into 26 groups of 5.
	for i := 0; i < Length; i++ {
		bit := i*5 - 2
		var v uint8
		for j := 0; j < 5; j++ {
			v <<= 1
			if b := bit + j; b >= 0 && id[b/8]&(0x80>>(b%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Decode parses an ID produced by Encode.
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := 0; i < Length; i++ {
		v := strings.IndexByte(alphabet, s[i])
		for j := 0; j < 5; j++ {
			b := i*5 - 2 + j
			if b < 0 || v&(0x10>>j) == 0 {
				continue
			}
			id[b/8] |= 0x80 >> (b % 8)
		}
	}
	return id, nil
}

// Validate checks that s is 26 characters of the base32 alphabet whose value
// fits in 128 bits.
func Validate(s string) error {
	if len(s) != Length {
		return fmt.Errorf("run id must be exactly %d characters, got %d", Length, len(s))
	}
	if s[0] > '7' {
		return fmt.Errorf("run id first character must be 0-7, got %c", s[0])
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(alphabet, s[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", s[i], i)
		}
	}
	return nil
}
