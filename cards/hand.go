package cards

import (
	"fmt"
	"math/bits"
	"strings"
)

// Hand is a bitset of up to MaxCards cards. Bit i is set when card i is held.
type Hand uint64

// FullHand returns a hand holding cards 0 to n-1.
func FullHand(n int) Hand {
	if n < 0 || n > MaxCards {
		panic(fmt.Sprintf("cards: hand size %d out of range [0, %d]", n, MaxCards))
	}
	if n == MaxCards {
		return Hand(^uint64(0))
	}
	return Hand(uint64(1)<<n - 1)
}

// NewHand creates a hand from the given cards.
func NewHand(cs ...Card) Hand {
	var h Hand
	for _, c := range cs {
		h.Add(c)
	}
	return h
}

// Has reports whether the card is in the hand.
func (h Hand) Has(c Card) bool {
	return c < MaxCards && h&(1<<c) != 0
}

// Add puts a card in the hand.
func (h *Hand) Add(c Card) {
	*h |= 1 << c
}

// Remove takes a card out of the hand.
func (h *Hand) Remove(c Card) {
	*h &^= 1 << c
}

// Count returns the number of cards held.
func (h Hand) Count() int {
	return bits.OnesCount64(uint64(h))
}

// IsEmpty reports whether no cards are held.
func (h Hand) IsEmpty() bool {
	return h == 0
}

// Lowest returns the lowest card held.
func (h Hand) Lowest() (Card, bool) {
	if h == 0 {
		return 0, false
	}
	return Card(bits.TrailingZeros64(uint64(h))), true
}

// Highest returns the highest card held.
func (h Hand) Highest() (Card, bool) {
	if h == 0 {
		return 0, false
	}
	return Card(63 - bits.LeadingZeros64(uint64(h))), true
}

// Nth returns the i-th lowest card held (0-based).
func (h Hand) Nth(i int) (Card, bool) {
	if i < 0 {
		return 0, false
	}
	rest := uint64(h)
	for ; rest != 0; i-- {
		c := bits.TrailingZeros64(rest)
		if i == 0 {
			return Card(c), true
		}
		rest &= rest - 1
	}
	return 0, false
}

// Cards returns the held cards in ascending order.
func (h Hand) Cards() []Card {
	out := make([]Card, 0, h.Count())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		out = append(out, Card(bits.TrailingZeros64(rest)))
	}
	return out
}

// Values returns the point values of the held cards in ascending order.
func (h Hand) Values() []int {
	out := make([]int, 0, h.Count())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		out = append(out, bits.TrailingZeros64(rest)+1)
	}
	return out
}

// String lists the held card values, e.g. "1 3 4".
func (h Hand) String() string {
	var sb strings.Builder
	for i, c := range h.Cards() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
