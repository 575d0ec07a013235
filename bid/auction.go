// Package bid implements the auction phase of a coinche deal.
package bid

import (
	"errors"
	"fmt"

	"github.com/gyscos/coinched/cards"
	"github.com/gyscos/coinched/pos"
)

var (
	ErrAuctionClosed       = errors.New("auctions are closed")
	ErrTurn                = errors.New("not your turn to bid")
	ErrNonRaisedTarget     = errors.New("bid must raise the current target")
	ErrNoContractToCoinche = errors.New("no contract to coinche")
	ErrAlreadyCoinched     = errors.New("contract is already sur-coinched")
	ErrWrongPlayerOrder    = errors.New("wrong team for this coinche")
)

// Contract is the result of a successful auction: a trump suit and a
// target, authored by a seat, possibly doubled or redoubled.
type Contract struct {
	Trump        cards.Suit    `json:"trump"`
	Author       pos.PlayerPos `json:"author"`
	Target       Target        `json:"target"`
	CoincheLevel int           `json:"coinche_level"`
}

// Multiplier returns the scoring multiplier: 1, 2 or 4 for a normal,
// coinched or sur-coinched contract.
func (c Contract) Multiplier() int {
	return 1 << c.CoincheLevel
}

// String returns a display form like "100H by P2 (x2)".
func (c Contract) String() string {
	s := fmt.Sprintf("%s%s by %s", c.Target, c.Trump, c.Author)
	if c.CoincheLevel > 0 {
		s += fmt.Sprintf(" (x%d)", c.Multiplier())
	}
	return s
}

// AuctionState tells whether an auction still accepts actions.
type AuctionState uint8

const (
	// Bidding means the auction is still running.
	Bidding AuctionState = iota
	// Over means a contract was settled; the deal moves to card play.
	Over
	// Cancelled means everyone passed; the deal is thrown away.
	Cancelled
)

// Auction runs the bidding phase over four freshly dealt hands.
//
// Auction is not safe for concurrent use; the caller serializes access.
type Auction struct {
	first     pos.PlayerPos
	current   pos.PlayerPos
	hands     [4]cards.Hand
	history   []Contract
	passCount int
	state     AuctionState
}

// NewAuction deals four random hands and opens the auction with the
// given seat.
func NewAuction(first pos.PlayerPos) *Auction {
	return NewAuctionWithHands(first, cards.DealRandom())
}

// NewAuctionWithHands opens an auction over pre-dealt hands.
func NewAuctionWithHands(first pos.PlayerPos, hands [4]cards.Hand) *Auction {
	return &Auction{
		first:   first,
		current: first,
		hands:   hands,
	}
}

// First returns the seat that opened the auction.
func (a *Auction) First() pos.PlayerPos {
	return a.first
}

// Hands returns the four dealt hands.
func (a *Auction) Hands() [4]cards.Hand {
	return a.hands
}

// NextPlayer returns the seat expected to act.
func (a *Auction) NextPlayer() pos.PlayerPos {
	return a.current
}

// State returns the auction's current state.
func (a *Auction) State() AuctionState {
	return a.state
}

// History returns the contracts bid so far, in order.
func (a *Auction) History() []Contract {
	return a.history
}

// CurrentContract returns the highest contract so far, or nil.
func (a *Auction) CurrentContract() *Contract {
	if len(a.history) == 0 {
		return nil
	}
	return &a.history[len(a.history)-1]
}

// Bid places a new contract offer. Bidding a capot closes the auction
// immediately.
func (a *Auction) Bid(p pos.PlayerPos, trump cards.Suit, target Target) (AuctionState, error) {
	if a.state != Bidding {
		return a.state, ErrAuctionClosed
	}
	if p != a.current {
		return a.state, ErrTurn
	}
	if c := a.CurrentContract(); c != nil {
		if target <= c.Target || c.CoincheLevel != 0 {
			return a.state, ErrNonRaisedTarget
		}
	}

	a.history = append(a.history, Contract{
		Trump:  trump,
		Author: p,
		Target: target,
	})
	a.passCount = 0

	if target == Capot {
		a.state = Over
	} else {
		a.current = a.current.Next()
	}
	return a.state, nil
}

// Pass declines to bid. Four passes with no contract cancel the deal;
// three passes after a contract settle it.
func (a *Auction) Pass(p pos.PlayerPos) (AuctionState, error) {
	if a.state != Bidding {
		return a.state, ErrAuctionClosed
	}
	if p != a.current {
		return a.state, ErrTurn
	}

	a.passCount++
	if a.CurrentContract() == nil {
		if a.passCount == 4 {
			a.state = Cancelled
		}
	} else if a.passCount == 3 {
		a.state = Over
	}

	a.current = a.current.Next()
	return a.state, nil
}

// Coinche doubles the running contract. Only the author's opponents may
// coinche; only the author's team may then sur-coinche, which closes
// the auction. Coinche is not bound to turn order.
func (a *Auction) Coinche(p pos.PlayerPos) (AuctionState, error) {
	if a.state != Bidding {
		return a.state, ErrAuctionClosed
	}
	c := a.CurrentContract()
	if c == nil {
		return a.state, ErrNoContractToCoinche
	}

	switch c.CoincheLevel {
	case 0:
		if p.Team() == c.Author.Team() {
			return a.state, ErrWrongPlayerOrder
		}
		c.CoincheLevel = 1
		a.passCount = 0
	case 1:
		if p.Team() != c.Author.Team() {
			return a.state, ErrWrongPlayerOrder
		}
		c.CoincheLevel = 2
		a.state = Over
	default:
		return a.state, ErrAlreadyCoinched
	}

	return a.state, nil
}
