// Package playerid validates and normalizes the player identifier used
// throughout the engine as both the external account key and the creature
// identity's Player variant.
package playerid

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxLength is the maximum encoded length, in bytes, of a PlayerId (§6).
const MaxLength = 14

// PlayerId is a validated, NFC-normalized player name, unique per world.
type PlayerId string

// New validates and normalizes raw into a PlayerId. raw is first run through
// Unicode NFC normalization so that visually-identical names built from
// different combining-character sequences collide on validation rather than
// silently being admitted as distinct ids (§8 invariant 12).
func New(raw string) (PlayerId, error) {
	normalized := norm.NFC.String(raw)
	if len(normalized) == 0 {
		return "", fmt.Errorf("playerid: empty name")
	}
	if len(normalized) > MaxLength {
		return "", fmt.Errorf("playerid: %q exceeds %d bytes", raw, MaxLength)
	}
	for _, r := range normalized {
		if !validRune(r) {
			return "", fmt.Errorf("playerid: %q contains invalid character %q", raw, r)
		}
	}
	return PlayerId(normalized), nil
}

func validRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Pc, r)
}

// String implements fmt.Stringer.
func (id PlayerId) String() string {
	return string(id)
}
