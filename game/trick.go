package game

import (
	"github.com/gyscos/coinched/cards"
	"github.com/gyscos/coinched/pos"
)

// Trick is one round of four cards. Slots hold cards.NoCard until the
// seat has played; the winner is recomputed after each play and is
// authoritative once the trick is complete.
type Trick struct {
	Cards  [4]cards.Card `json:"cards"`
	First  pos.PlayerPos `json:"first"`
	Winner pos.PlayerPos `json:"winner"`
}

// NewTrick starts an empty trick led by the given seat.
func NewTrick(first pos.PlayerPos) Trick {
	return Trick{
		Cards:  [4]cards.Card{cards.NoCard, cards.NoCard, cards.NoCard, cards.NoCard},
		First:  first,
		Winner: first,
	}
}

// Play records a card for a seat and updates the running winner.
// It returns true when the trick is complete.
func (t *Trick) Play(p pos.PlayerPos, c cards.Card, trump cards.Suit) bool {
	t.Cards[p] = c
	if p != t.First && c.Beats(t.Cards[t.Winner], trump) {
		t.Winner = p
	}
	return t.Complete()
}

// Complete checks if all four seats have played.
func (t Trick) Complete() bool {
	for _, c := range t.Cards {
		if c == cards.NoCard {
			return false
		}
	}
	return true
}

// Score sums the point values of the played cards under the trump.
func (t Trick) Score(trump cards.Suit) int {
	score := 0
	for _, c := range t.Cards {
		score += c.Points(trump)
	}
	return score
}

// LeadSuit returns the suit of the first card played. It must not be
// called on an empty trick.
func (t Trick) LeadSuit() cards.Suit {
	return t.Cards[t.First].Suit()
}

// HighestTrump returns the strength of the strongest trump played
// between the leader and the given seat excluded, or -1 if none.
func (t Trick) HighestTrump(trump cards.Suit, until pos.PlayerPos) int {
	highest := -1
	for _, p := range t.First.Until(until) {
		c := t.Cards[p]
		if c != cards.NoCard && c.Suit() == trump && c.Strength(trump) > highest {
			highest = c.Strength(trump)
		}
	}
	return highest
}
