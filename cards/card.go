package cards

import "fmt"

// Suit represents one of the four card suits.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// String returns the canonical one-letter form used on the wire.
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	}
	return "?"
}

// Symbol returns the unicode symbol, for display.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	}
	return "?"
}

// SuitFromString parses a suit from its canonical letter.
// e.g., "H" or "h" or "♥" -> Hearts
func SuitFromString(s string) (Suit, error) {
	switch s {
	case "♣", "c", "C":
		return Clubs, nil
	case "♦", "d", "D":
		return Diamonds, nil
	case "♥", "h", "H":
		return Hearts, nil
	case "♠", "s", "S":
		return Spades, nil
	}
	return 0, fmt.Errorf("invalid suit: %s", s)
}

// Suits lists the four suits in encoding order.
func Suits() [4]Suit {
	return [4]Suit{Clubs, Diamonds, Hearts, Spades}
}

// Rank represents a card rank in the 32-card deck.
type Rank uint8

const (
	Rank7 Rank = iota
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
)

// String returns the rank's display form ("7".."10", "J", "Q", "K", "A").
func (r Rank) String() string {
	switch r {
	case Rank7:
		return "7"
	case Rank8:
		return "8"
	case Rank9:
		return "9"
	case Rank10:
		return "10"
	case RankJ:
		return "J"
	case RankQ:
		return "Q"
	case RankK:
		return "K"
	case RankA:
		return "A"
	}
	return "?"
}

// RankFromString parses a rank from its display form.
func RankFromString(s string) (Rank, error) {
	switch s {
	case "7":
		return Rank7, nil
	case "8":
		return Rank8, nil
	case "9":
		return Rank9, nil
	case "10", "X", "x":
		return Rank10, nil
	case "J", "j":
		return RankJ, nil
	case "Q", "q":
		return RankQ, nil
	case "K", "k":
		return RankK, nil
	case "A", "a":
		return RankA, nil
	}
	return 0, fmt.Errorf("invalid rank: %s", s)
}

// Card represents one of the 32 cards, encoded as suit*8 + rank.
type Card uint8

// NoCard marks an empty slot in a trick.
const NoCard Card = 0xFF

// NewCard builds a card from a suit and a rank.
func NewCard(s Suit, r Rank) Card {
	return Card(uint8(s)*8 + uint8(r))
}

// Suit returns the card's suit.
func (c Card) Suit() Suit {
	return Suit(c / 8)
}

// Rank returns the card's rank.
func (c Card) Rank() Rank {
	return Rank(c % 8)
}

// String returns the canonical wire form, rank then suit: "8C", "10H", ...
func (c Card) String() string {
	if c == NoCard {
		return "--"
	}
	return c.Rank().String() + c.Suit().String()
}

// CardFromString parses a card from its canonical form.
// e.g., "8C" or "10♥" -> the corresponding card.
func CardFromString(s string) (Card, error) {
	runes := []rune(s)
	if len(runes) < 2 {
		return 0, fmt.Errorf("invalid card: %s", s)
	}

	// The suit is always the last rune; "10" makes the rank variable-width.
	suit, err := SuitFromString(string(runes[len(runes)-1]))
	if err != nil {
		return 0, fmt.Errorf("invalid card %q: %w", s, err)
	}
	rank, err := RankFromString(string(runes[:len(runes)-1]))
	if err != nil {
		return 0, fmt.Errorf("invalid card %q: %w", s, err)
	}

	return NewCard(suit, rank), nil
}

// MarshalJSON encodes the card as its canonical string, or null for NoCard.
func (c Card) MarshalJSON() ([]byte, error) {
	if c == NoCard {
		return []byte("null"), nil
	}
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON decodes a card from its canonical string, or null for NoCard.
func (c *Card) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = NoCard
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid card literal: %s", data)
	}
	card, err := CardFromString(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// MarshalJSON encodes the suit as its canonical letter.
func (s Suit) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a suit from its canonical letter.
func (s *Suit) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid suit literal: %s", data)
	}
	suit, err := SuitFromString(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*s = suit
	return nil
}
