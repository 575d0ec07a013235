// Package client drives a coinche session against a server, keeping
// the transport and the user interface behind small interfaces.
package client

import (
	"github.com/gyscos/coinched/bid"
	"github.com/gyscos/coinched/cards"
	"github.com/gyscos/coinched/events"
	"github.com/gyscos/coinched/pos"
)

// Backend is the transport side: every action returns the resulting
// event, and Wait blocks until the next one.
type Backend interface {
	Wait() (events.EventType, error)
	Bid(suit cards.Suit, target bid.Target) (events.EventType, error)
	Pass() (events.EventType, error)
	Coinche() (events.EventType, error)
	PlayCard(c cards.Card) (events.EventType, error)
	Leave() error
}

// AuctionActionType enumerates the choices during the auction.
type AuctionActionType int

const (
	AuctionLeave AuctionActionType = iota
	AuctionPass
	AuctionCoinche
	AuctionBid
)

// AuctionAction is the user's answer to AskBid. Suit and Target are
// only read for AuctionBid.
type AuctionAction struct {
	Type   AuctionActionType
	Suit   cards.Suit
	Target bid.Target
}

// GameActionType enumerates the choices during card play.
type GameActionType int

const (
	GameLeave GameActionType = iota
	GamePlayCard
)

// GameAction is the user's answer to AskCard.
type GameAction struct {
	Type GameActionType
	Card cards.Card
}

// Frontend is the user interface side of the driver.
type Frontend interface {
	ShowError(err error)
	UnexpectedEvent(e events.EventType)
	PartyCancelled(msg string)

	NewGame(first pos.PlayerPos, hand cards.Hand)
	AskBid() AuctionAction
	AskCard() GameAction

	ShowBid(p pos.PlayerPos, suit cards.Suit, target bid.Target)
	ShowPass(p pos.PlayerPos)
	ShowCoinche(p pos.PlayerPos)
	ShowCardPlayed(p pos.PlayerPos, c cards.Card)

	AuctionCancelled()
	AuctionOver(contract bid.Contract)
	TrickOver(winner pos.PlayerPos)
	GameOver(points [2]int, winner pos.Team, scores [2]int)
}

// Client runs the event loop between a backend and a frontend,
// accumulating the table scores across deals.
type Client struct {
	Scores [2]int

	backend   Backend
	frontend  Frontend
	inAuction bool
}

// NewClient wires a backend to a frontend.
func NewClient(b Backend, f Frontend) *Client {
	return &Client{backend: b, frontend: f}
}

// Run processes events until the party ends or the user leaves.
func (c *Client) Run() {
	for {
		e, err := c.backend.Wait()
		if err != nil {
			c.frontend.ShowError(err)
			return
		}
		if !c.handle(e) {
			return
		}
	}
}

// handle reacts to one event. It returns false when the session is
// over.
func (c *Client) handle(e events.EventType) bool {
	switch ev := e.(type) {
	case events.NewGameRelative:
		c.inAuction = true
		c.frontend.NewGame(ev.First, ev.Hand)
	case events.YourTurn:
		return c.act()
	case events.FromPlayer:
		switch pe := ev.Event.(type) {
		case events.Bidded:
			c.frontend.ShowBid(ev.Pos, pe.Suit, pe.Target)
		case events.Passed:
			c.frontend.ShowPass(ev.Pos)
		case events.Coinched:
			c.frontend.ShowCoinche(ev.Pos)
		case events.CardPlayed:
			c.frontend.ShowCardPlayed(ev.Pos, pe.Card)
		}
	case events.BidOver:
		c.inAuction = false
		c.frontend.AuctionOver(ev.Contract)
	case events.BidCancelled:
		c.frontend.AuctionCancelled()
	case events.TrickOver:
		c.frontend.TrickOver(ev.Winner)
	case events.GameOver:
		c.Scores[0] += ev.Scores[0]
		c.Scores[1] += ev.Scores[1]
		c.frontend.GameOver(ev.Points, ev.Winner, ev.Scores)
	case events.PartyCancelled:
		c.frontend.PartyCancelled(ev.Msg)
		return false
	default:
		c.frontend.UnexpectedEvent(e)
	}
	return true
}

// act prompts the user for their move. A refused move shows the error
// and keeps the session going; the next wait re-synthesizes the turn.
func (c *Client) act() bool {
	if c.inAuction {
		a := c.frontend.AskBid()
		switch a.Type {
		case AuctionLeave:
			return c.leave()
		case AuctionPass:
			return c.submit(c.backend.Pass())
		case AuctionCoinche:
			return c.submit(c.backend.Coinche())
		case AuctionBid:
			return c.submit(c.backend.Bid(a.Suit, a.Target))
		}
		return true
	}

	a := c.frontend.AskCard()
	switch a.Type {
	case GameLeave:
		return c.leave()
	case GamePlayCard:
		return c.submit(c.backend.PlayCard(a.Card))
	}
	return true
}

func (c *Client) submit(e events.EventType, err error) bool {
	if err != nil {
		c.frontend.ShowError(err)
		return true
	}
	return c.handle(e)
}

func (c *Client) leave() bool {
	if err := c.backend.Leave(); err != nil {
		c.frontend.ShowError(err)
	}
	return false
}
