package cards

// Card point values, totalling 152 over the deck.
var (
	trumpPoints = [8]int{0, 0, 14, 10, 20, 3, 4, 11}
	plainPoints = [8]int{0, 0, 0, 10, 2, 3, 4, 11}
)

// Strength orders within a suit. Trump order is J>9>A>10>K>Q>8>7,
// plain order is A>10>K>Q>J>9>8>7.
var (
	trumpStrength = [8]int{1, 2, 7, 5, 8, 3, 4, 6}
	plainStrength = [8]int{1, 2, 3, 7, 4, 5, 6, 8}
)

// TrumpStrength returns the rank's position in the trump ordering.
func (r Rank) TrumpStrength() int {
	return trumpStrength[r]
}

// PlainStrength returns the rank's position in the non-trump ordering.
func (r Rank) PlainStrength() int {
	return plainStrength[r]
}

// Points returns the point value of the card given the trump suit.
func (c Card) Points(trump Suit) int {
	if c == NoCard {
		return 0
	}
	if c.Suit() == trump {
		return trumpPoints[c.Rank()]
	}
	return plainPoints[c.Rank()]
}

// Strength returns the card's strength within its own suit under the
// given trump. Comparing strengths across suits is only meaningful when
// both cards share a suit; the caller decides whether a trump beats a
// plain card.
func (c Card) Strength(trump Suit) int {
	if c == NoCard {
		return 0
	}
	if c.Suit() == trump {
		return c.Rank().TrumpStrength()
	}
	return c.Rank().PlainStrength()
}

// Beats reports whether c wins over other in a trick, other being the
// currently winning card. A card wins by outranking within the same
// suit, or by being a trump when the winning card is not.
func (c Card) Beats(other Card, trump Suit) bool {
	if c == NoCard {
		return false
	}
	if other == NoCard {
		return true
	}
	if c.Suit() == other.Suit() {
		return c.Strength(trump) > other.Strength(trump)
	}
	return c.Suit() == trump
}
