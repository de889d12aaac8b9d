// Package cards provides the card and hand primitives shared by the bidding
// game engine and its tooling.
//
// A game is played with a single suit of N cards. Each card is identified by
// its index (0 to N-1) and is worth index+1 points when it is revealed as a
// point card. Hands are fixed-size bitsets, so copying a Hand copies the
// whole collection.
package cards

import "strconv"

// MaxCards is the largest deck a Hand can represent.
const MaxCards = 64

// Card identifies a card by index. Card 0 is worth 1 point.
type Card uint8

// Value returns the point value of the card.
func (c Card) Value() int {
	return int(c) + 1
}

// String returns the 1-based card value.
func (c Card) String() string {
	return strconv.Itoa(c.Value())
}

// FromValue converts a 1-based card value back into a Card.
func FromValue(value int) (Card, bool) {
	if value < 1 || value > MaxCards {
		return 0, false
	}
	return Card(value - 1), true
}
