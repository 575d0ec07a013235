// Package game implements coinche card play, after the auction settled
// a contract.
package game

import (
	"errors"

	"github.com/gyscos/coinched/bid"
	"github.com/gyscos/coinched/cards"
	"github.com/gyscos/coinched/pos"
)

var (
	ErrTurn              = errors.New("not your turn to play")
	ErrCardMissing       = errors.New("card is not in your hand")
	ErrIncorrectSuit     = errors.New("must follow the lead suit")
	ErrInvalidPiss       = errors.New("must trump when unable to follow")
	ErrNonRaisedTrump    = errors.New("must play a higher trump")
	ErrNoLastTrick       = errors.New("no trick completed yet")
	ErrAuctionIncomplete = errors.New("auction is not over")
)

// Dix-de-der rewards the winner of the last trick; a capot rewards a
// team taking all eight.
const (
	lastTrickBonus = 10
	capotBonus     = 100
	defendersScore = 160
)

// Outcome summarizes a finished deal: final trick points per team, the
// winning team, and the values banked towards the party scores.
type Outcome struct {
	Points [2]int   `json:"points"`
	Winner pos.Team `json:"winner"`
	Scores [2]int   `json:"scores"`
}

// PlayResult reports what a card play triggered. Winner is only
// meaningful when TrickOver is set; Outcome is non-nil on the deal's
// final play.
type PlayResult struct {
	TrickOver bool
	Winner    pos.PlayerPos
	Outcome   *Outcome
}

// GameState holds one deal's card play. It mutates as cards are
// played; the caller serializes access.
type GameState struct {
	hands       [4]cards.Hand
	current     pos.PlayerPos
	contract    bid.Contract
	tricks      []Trick
	trickScores [2]int
}

// NewGameState starts card play with the given hands and contract; the
// given seat leads the first trick.
func NewGameState(first pos.PlayerPos, hands [4]cards.Hand, contract bid.Contract) *GameState {
	return &GameState{
		hands:    hands,
		current:  first,
		contract: contract,
		tricks:   []Trick{NewTrick(first)},
	}
}

// FromAuction freezes a settled auction into a playable deal.
func FromAuction(a *bid.Auction) (*GameState, error) {
	if a.State() != bid.Over || a.CurrentContract() == nil {
		return nil, ErrAuctionIncomplete
	}
	return NewGameState(a.First(), a.Hands(), *a.CurrentContract()), nil
}

// Hands returns the four current hands.
func (g *GameState) Hands() [4]cards.Hand {
	return g.hands
}

// NextPlayer returns the seat expected to play.
func (g *GameState) NextPlayer() pos.PlayerPos {
	return g.current
}

// Contract returns the contract being played.
func (g *GameState) Contract() bid.Contract {
	return g.contract
}

// CurrentTrick returns the trick being played.
func (g *GameState) CurrentTrick() Trick {
	return g.tricks[len(g.tricks)-1]
}

// LastTrick returns the last completed trick.
func (g *GameState) LastTrick() (Trick, error) {
	if n := len(g.tricks); n > 1 {
		return g.tricks[n-2], nil
	}
	return Trick{}, ErrNoLastTrick
}

// TrickScores returns the trick points taken by each team so far.
func (g *GameState) TrickScores() [2]int {
	return g.trickScores
}

// PlayCard plays a card for the given seat. On an illegal move the
// state is left untouched and an error is returned.
func (g *GameState) PlayCard(p pos.PlayerPos, c cards.Card) (PlayResult, error) {
	if p != g.current {
		return PlayResult{}, ErrTurn
	}
	if err := g.canPlay(p, c); err != nil {
		return PlayResult{}, err
	}

	trump := g.contract.Trump
	g.hands[p].Remove(c)
	trick := &g.tricks[len(g.tricks)-1]
	if !trick.Play(p, c, trump) {
		g.current = g.current.Next()
		return PlayResult{}, nil
	}

	winner := trick.Winner
	g.trickScores[winner.Team()] += trick.Score(trump)

	// A completed trick with the hands exhausted ends the deal.
	if g.hands[winner].IsEmpty() {
		return PlayResult{TrickOver: true, Winner: winner, Outcome: g.outcome()}, nil
	}

	// The winner leads the next trick.
	g.tricks = append(g.tricks, NewTrick(winner))
	g.current = winner
	return PlayResult{TrickOver: true, Winner: winner}, nil
}

// canPlay validates a move without applying it.
func (g *GameState) canPlay(p pos.PlayerPos, c cards.Card) error {
	hand := g.hands[p]
	if !hand.Has(c) {
		return ErrCardMissing
	}

	trick := g.CurrentTrick()
	if p == trick.First {
		return nil
	}

	trump := g.contract.Trump
	lead := trick.LeadSuit()
	if c.Suit() != lead {
		if hand.HasAny(lead) {
			return ErrIncorrectSuit
		}
		if c.Suit() != trump {
			// Out of the lead suit: one must cut, unless the
			// partner is currently winning the trick.
			if !p.IsPartner(trick.Winner) && hand.HasAny(trump) {
				return ErrInvalidPiss
			}
		}
	}

	if c.Suit() == trump {
		highest := trick.HighestTrump(trump, p)
		if c.Strength(trump) < highest && hasHigherTrump(hand, trump, highest) {
			return ErrNonRaisedTrump
		}
	}

	return nil
}

func hasHigherTrump(hand cards.Hand, trump cards.Suit, strength int) bool {
	for r := cards.Rank7; r <= cards.RankA; r++ {
		c := cards.NewCard(trump, r)
		if c.Strength(trump) > strength && hand.Has(c) {
			return true
		}
	}
	return false
}

// outcome settles the deal once the eighth trick is complete.
func (g *GameState) outcome() *Outcome {
	points := g.trickScores
	last := g.tricks[len(g.tricks)-1]
	points[last.Winner.Team()] += lastTrickBonus

	capot := [2]bool{true, true}
	for _, t := range g.tricks {
		capot[t.Winner.Team().Other()] = false
	}
	for team := 0; team < 2; team++ {
		if capot[team] {
			points[team] += capotBonus
		}
	}

	taking := g.contract.Author.Team()
	victory := g.contract.Target.Victory(points[taking], capot[taking])

	winner := taking
	value := g.contract.Target.Score()
	if !victory {
		winner = taking.Other()
		value = defendersScore
	}

	var scores [2]int
	scores[winner] = value * g.contract.Multiplier()

	return &Outcome{
		Points: points,
		Winner: winner,
		Scores: scores,
	}
}
