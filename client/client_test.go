package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gyscos/coinched/bid"
	"github.com/gyscos/coinched/cards"
	"github.com/gyscos/coinched/events"
	"github.com/gyscos/coinched/pos"
	"github.com/stretchr/testify/assert"
)

// scriptBackend feeds a fixed event sequence and records actions.
type scriptBackend struct {
	waits   []events.EventType
	actions []string

	bidErr  error
	playErr error
	left    bool
}

func (b *scriptBackend) Wait() (events.EventType, error) {
	if len(b.waits) == 0 {
		return nil, errors.New("out of events")
	}
	e := b.waits[0]
	b.waits = b.waits[1:]
	return e, nil
}

func (b *scriptBackend) Bid(suit cards.Suit, target bid.Target) (events.EventType, error) {
	b.actions = append(b.actions, fmt.Sprintf("bid %s%s", target, suit))
	if b.bidErr != nil {
		err := b.bidErr
		b.bidErr = nil
		return nil, err
	}
	return events.FromPlayer{Pos: pos.P0, Event: events.Bidded{Suit: suit, Target: target}}, nil
}

func (b *scriptBackend) Pass() (events.EventType, error) {
	b.actions = append(b.actions, "pass")
	return events.FromPlayer{Pos: pos.P0, Event: events.Passed{}}, nil
}

func (b *scriptBackend) Coinche() (events.EventType, error) {
	b.actions = append(b.actions, "coinche")
	return events.FromPlayer{Pos: pos.P0, Event: events.Coinched{}}, nil
}

func (b *scriptBackend) PlayCard(c cards.Card) (events.EventType, error) {
	b.actions = append(b.actions, "play "+c.String())
	if b.playErr != nil {
		err := b.playErr
		b.playErr = nil
		return nil, err
	}
	return events.FromPlayer{Pos: pos.P0, Event: events.CardPlayed{Card: c}}, nil
}

func (b *scriptBackend) Leave() error {
	b.left = true
	return nil
}

// scriptFrontend answers prompts from fixed scripts and logs calls.
type scriptFrontend struct {
	bids  []AuctionAction
	plays []GameAction
	calls []string
}

func (f *scriptFrontend) note(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *scriptFrontend) ShowError(err error)              { f.note("error %v", err) }
func (f *scriptFrontend) UnexpectedEvent(e events.EventType) { f.note("unexpected %s", e.Type()) }
func (f *scriptFrontend) PartyCancelled(msg string)        { f.note("cancelled %s", msg) }
func (f *scriptFrontend) NewGame(first pos.PlayerPos, hand cards.Hand) {
	f.note("newgame %s %d", first, hand.Size())
}
func (f *scriptFrontend) ShowBid(p pos.PlayerPos, suit cards.Suit, target bid.Target) {
	f.note("bid %s %s%s", p, target, suit)
}
func (f *scriptFrontend) ShowPass(p pos.PlayerPos)    { f.note("pass %s", p) }
func (f *scriptFrontend) ShowCoinche(p pos.PlayerPos) { f.note("coinche %s", p) }
func (f *scriptFrontend) ShowCardPlayed(p pos.PlayerPos, c cards.Card) {
	f.note("played %s %s", p, c)
}
func (f *scriptFrontend) AuctionCancelled()               { f.note("auction cancelled") }
func (f *scriptFrontend) AuctionOver(c bid.Contract)      { f.note("contract %s", c) }
func (f *scriptFrontend) TrickOver(winner pos.PlayerPos)  { f.note("trick %s", winner) }
func (f *scriptFrontend) GameOver(points [2]int, winner pos.Team, scores [2]int) {
	f.note("gameover %v %s %v", points, winner, scores)
}

func (f *scriptFrontend) AskBid() AuctionAction {
	a := f.bids[0]
	f.bids = f.bids[1:]
	return a
}

func (f *scriptFrontend) AskCard() GameAction {
	a := f.plays[0]
	f.plays = f.plays[1:]
	return a
}

func TestClientDrivesFullDeal(t *testing.T) {
	hand := cards.NewHand(cards.NewCard(cards.Hearts, cards.RankJ))
	contract := bid.Contract{Trump: cards.Hearts, Author: pos.P0, Target: bid.Target80}
	backend := &scriptBackend{
		waits: []events.EventType{
			events.NewGameRelative{First: pos.P0, Hand: hand},
			events.YourTurn{},
			events.FromPlayer{Pos: pos.P1, Event: events.Passed{}},
			events.BidOver{Contract: contract},
			events.YourTurn{},
			events.TrickOver{Winner: pos.P2},
			events.GameOver{Points: [2]int{100, 62}, Winner: pos.Team(0), Scores: [2]int{80, 0}},
			events.PartyCancelled{Msg: "done"},
		},
	}
	frontend := &scriptFrontend{
		bids:  []AuctionAction{{Type: AuctionBid, Suit: cards.Hearts, Target: bid.Target80}},
		plays: []GameAction{{Type: GamePlayCard, Card: cards.NewCard(cards.Hearts, cards.RankJ)}},
	}

	c := NewClient(backend, frontend)
	c.Run()

	assert.Equal(t, []string{"bid 80H", "play JH"}, backend.actions)
	assert.Equal(t, [2]int{80, 0}, c.Scores)
	assert.Equal(t, []string{
		"newgame P0 1",
		"bid P0 80H",
		"pass P1",
		"contract 80H by P0",
		"played P0 JH",
		"trick P2",
		"gameover [100 62] Team0 [80 0]",
		"cancelled done",
	}, frontend.calls)
}

func TestClientLeaveEndsSession(t *testing.T) {
	backend := &scriptBackend{
		waits: []events.EventType{
			events.NewGameRelative{First: pos.P0},
			events.YourTurn{},
		},
	}
	frontend := &scriptFrontend{
		bids: []AuctionAction{{Type: AuctionLeave}},
	}

	NewClient(backend, frontend).Run()

	assert.True(t, backend.left)
	assert.Empty(t, backend.actions)
}

func TestClientRetriesAfterRefusedMove(t *testing.T) {
	backend := &scriptBackend{
		waits: []events.EventType{
			events.NewGameRelative{First: pos.P0},
			events.YourTurn{},
			events.YourTurn{},
			events.PartyCancelled{Msg: "over"},
		},
		bidErr: errors.New("bid must raise the current target"),
	}
	frontend := &scriptFrontend{
		bids: []AuctionAction{
			{Type: AuctionBid, Suit: cards.Spades, Target: bid.Target80},
			{Type: AuctionPass},
		},
	}

	c := NewClient(backend, frontend)
	c.Run()

	// The refused bid surfaces as an error, then the retry passes
	assert.Equal(t, []string{"bid 80S", "pass"}, backend.actions)
	assert.Contains(t, frontend.calls, "error bid must raise the current target")
	assert.Contains(t, frontend.calls, "pass P0")
	assert.Contains(t, frontend.calls, "cancelled over")
}
