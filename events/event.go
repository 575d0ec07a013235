// Package events defines the party event log entries and their wire
// encoding.
package events

import (
	"github.com/gyscos/coinched/bid"
	"github.com/gyscos/coinched/cards"
	"github.com/gyscos/coinched/game"
	"github.com/gyscos/coinched/pos"
)

// EventType is one entry of a party's event log. Relativize projects
// the event to what a given seat is allowed to see; most events pass
// through unchanged.
type EventType interface {
	Type() string
	Relativize(from pos.PlayerPos) EventType
}

// PlayerEvent is an action taken by a seat, wrapped in FromPlayer.
type PlayerEvent interface {
	Name() string
}

// Bidded is a contract offer during the auction.
type Bidded struct {
	Suit   cards.Suit `json:"suit"`
	Target bid.Target `json:"target"`
}

func (Bidded) Name() string { return "Bidded" }

// Passed is a pass during the auction.
type Passed struct{}

func (Passed) Name() string { return "Passed" }

// Coinched is a double or redouble of the running contract.
type Coinched struct{}

func (Coinched) Name() string { return "Coinched" }

// CardPlayed is a card played during the card play phase.
type CardPlayed struct {
	Card cards.Card `json:"card"`
}

func (CardPlayed) Name() string { return "CardPlayed" }

// FromPlayer attributes a player action to its seat.
type FromPlayer struct {
	Pos   pos.PlayerPos
	Event PlayerEvent
}

func (FromPlayer) Type() string { return "FromPlayer" }

func (e FromPlayer) Relativize(pos.PlayerPos) EventType { return e }

// NewGame opens a deal with all four hands. It is internal to the
// party log and is always relativized before leaving the server.
type NewGame struct {
	First pos.PlayerPos `json:"first"`
	Hands [4]cards.Hand `json:"hands"`
}

func (NewGame) Type() string { return "NewGame" }

func (e NewGame) Relativize(from pos.PlayerPos) EventType {
	return NewGameRelative{First: e.First, Hand: e.Hands[from]}
}

// NewGameRelative is the per-seat projection of NewGame: the viewer
// only sees its own hand.
type NewGameRelative struct {
	First pos.PlayerPos `json:"first"`
	Hand  cards.Hand    `json:"hand"`
}

func (NewGameRelative) Type() string { return "NewGameRelative" }

func (e NewGameRelative) Relativize(pos.PlayerPos) EventType { return e }

// BidOver closes the auction on a settled contract.
type BidOver struct {
	Contract bid.Contract `json:"contract"`
}

func (BidOver) Type() string { return "BidOver" }

func (e BidOver) Relativize(pos.PlayerPos) EventType { return e }

// BidCancelled throws the deal away after four opening passes.
type BidCancelled struct{}

func (BidCancelled) Type() string { return "BidCancelled" }

func (e BidCancelled) Relativize(pos.PlayerPos) EventType { return e }

// TrickOver announces a completed trick and its winner.
type TrickOver struct {
	Winner pos.PlayerPos `json:"winner"`
}

func (TrickOver) Type() string { return "TrickOver" }

func (e TrickOver) Relativize(pos.PlayerPos) EventType { return e }

// GameOver closes a deal with its points and banked scores.
type GameOver struct {
	Points [2]int   `json:"points"`
	Winner pos.Team `json:"winner"`
	Scores [2]int   `json:"scores"`
}

func (GameOver) Type() string { return "GameOver" }

func (e GameOver) Relativize(pos.PlayerPos) EventType { return e }

// GameOverFromOutcome lifts a finished deal's outcome into an event.
func GameOverFromOutcome(out game.Outcome) GameOver {
	return GameOver{Points: out.Points, Winner: out.Winner, Scores: out.Scores}
}

// PartyCancelled terminates a party; no event follows it.
type PartyCancelled struct {
	Msg string `json:"msg"`
}

func (PartyCancelled) Type() string { return "PartyCancelled" }

func (e PartyCancelled) Relativize(pos.PlayerPos) EventType { return e }

// YourTurn is synthesized by the wait path when the caller is already
// expected to act. It is never stored in the log.
type YourTurn struct{}

func (YourTurn) Type() string { return "YourTurn" }

func (e YourTurn) Relativize(pos.PlayerPos) EventType { return e }

// Event is a log entry paired with its position in the party log.
type Event struct {
	Event EventType
	ID    int
}
