package cards

import (
	"encoding/json"
	"math/bits"
	"strings"
)

// Hand is a set of cards, stored as a 32-bit bitmask indexed by the
// card encoding.
type Hand uint32

// NewHand builds a hand holding the given cards.
func NewHand(cs ...Card) Hand {
	var h Hand
	for _, c := range cs {
		h.Add(c)
	}
	return h
}

// Add inserts a card into the hand.
func (h *Hand) Add(c Card) {
	*h |= 1 << c
}

// Remove takes a card out of the hand.
func (h *Hand) Remove(c Card) {
	*h &^= 1 << c
}

// Has checks if the hand contains a card.
func (h Hand) Has(c Card) bool {
	return h&(1<<c) != 0
}

// HasAny checks if the hand contains any card of the given suit.
func (h Hand) HasAny(s Suit) bool {
	return h&(0xFF<<(8*uint32(s))) != 0
}

// Size returns the number of cards in the hand.
func (h Hand) Size() int {
	return bits.OnesCount32(uint32(h))
}

// IsEmpty checks if the hand holds no card.
func (h Hand) IsEmpty() bool {
	return h == 0
}

// List returns the cards in encoding order (clubs first, then
// diamonds, hearts, spades; rank 7 to ace within a suit).
func (h Hand) List() []Card {
	cs := make([]Card, 0, h.Size())
	for c := Card(0); c < 32; c++ {
		if h.Has(c) {
			cs = append(cs, c)
		}
	}
	return cs
}

// String returns the hand's cards separated by spaces.
func (h Hand) String() string {
	var b strings.Builder
	for i, c := range h.List() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// MarshalJSON encodes the hand as an ordered array of card strings.
func (h Hand) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.List())
}

// UnmarshalJSON decodes a hand from an array of card strings.
func (h *Hand) UnmarshalJSON(data []byte) error {
	var cs []Card
	if err := json.Unmarshal(data, &cs); err != nil {
		return err
	}
	*h = NewHand(cs...)
	return nil
}
