// Package domain ties the coinche rules to tables, players and the
// event log served to clients.
package domain

import (
	"errors"
	"sync"

	"github.com/decred/slog"
	"github.com/google/uuid"
	"github.com/sanity-io/litter"

	"github.com/gyscos/coinched/bid"
	"github.com/gyscos/coinched/cards"
	"github.com/gyscos/coinched/events"
	"github.com/gyscos/coinched/game"
	"github.com/gyscos/coinched/pos"
)

var (
	ErrBidInGame     = errors.New("cannot bid during card play")
	ErrPlayInAuction = errors.New("cannot play during the auction")
	ErrBadEventID    = errors.New("event id is ahead of the log")
)

// eventWaiter is a one-shot handle blocked on the next appended event.
// Completion and cancellation race safely; whichever runs first wins.
type eventWaiter struct {
	pos  pos.PlayerPos
	ch   chan events.Event
	once sync.Once
}

func newEventWaiter(p pos.PlayerPos) *eventWaiter {
	return &eventWaiter{pos: p, ch: make(chan events.Event, 1)}
}

func (w *eventWaiter) complete(ev events.Event) {
	w.once.Do(func() { w.ch <- ev })
}

func (w *eventWaiter) cancel() {
	w.once.Do(func() {})
}

// Party is one table of four seats. It alternates between an auction
// and card play, appending every action to an ordered event log.
//
// mu guards the phase state and the log; obsMu guards the observer
// list so waiters can register under a read lock.
type Party struct {
	id        string
	playerIDs [4]uint32

	mu        sync.RWMutex
	auction   *bid.Auction
	game      *game.GameState
	first     pos.PlayerPos
	scores    [2]int
	events    []events.EventType
	cancelled bool

	obsMu     sync.Mutex
	observers []*eventWaiter
}

// newParty opens a table on a fresh deal. The log always starts with
// the opening NewGame event.
func newParty(first pos.PlayerPos, playerIDs [4]uint32) *Party {
	p := &Party{
		id:        uuid.NewString(),
		playerIDs: playerIDs,
		first:     first,
		auction:   bid.NewAuction(first),
	}
	p.events = append(p.events, events.NewGame{First: first, Hands: p.auction.Hands()})
	return p
}

// ID returns the party's identifier.
func (p *Party) ID() string {
	return p.id
}

// addEvent appends an event and wakes every registered observer with
// its per-seat projection. The caller holds the write lock; draining
// under it guarantees a waiter registered at id N receives event N.
func (p *Party) addEvent(e events.EventType) events.Event {
	id := len(p.events)
	p.events = append(p.events, e)
	if log.Level() <= slog.LevelTrace {
		log.Tracef("party %s event %d: %s", p.id, id, litter.Sdump(e))
	}

	p.obsMu.Lock()
	obs := p.observers
	p.observers = nil
	p.obsMu.Unlock()
	for _, w := range obs {
		w.complete(events.Event{Event: e.Relativize(w.pos), ID: id})
	}

	return events.Event{Event: e, ID: id}
}

// nextGame rotates the dealer and opens the next deal.
func (p *Party) nextGame() {
	p.first = p.first.Next()
	p.auction = bid.NewAuction(p.first)
	p.game = nil
	p.addEvent(events.NewGame{First: p.first, Hands: p.auction.Hands()})
}

// completeAuction moves the table from the settled auction to card
// play.
func (p *Party) completeAuction() {
	g, err := game.FromAuction(p.auction)
	if err != nil {
		// The auction just reported Over; this cannot happen.
		panic(err)
	}
	p.addEvent(events.BidOver{Contract: *p.auction.CurrentContract()})
	p.auction = nil
	p.game = g
}

func (p *Party) bid(seat pos.PlayerPos, trump cards.Suit, target bid.Target) (events.Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.auction == nil {
		return events.Event{}, ErrBidInGame
	}
	state, err := p.auction.Bid(seat, trump, target)
	if err != nil {
		return events.Event{}, err
	}

	ev := p.addEvent(events.FromPlayer{Pos: seat, Event: events.Bidded{Suit: trump, Target: target}})
	if state == bid.Over {
		p.completeAuction()
	}
	return ev, nil
}

func (p *Party) pass(seat pos.PlayerPos) (events.Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.auction == nil {
		return events.Event{}, ErrBidInGame
	}
	state, err := p.auction.Pass(seat)
	if err != nil {
		return events.Event{}, err
	}

	ev := p.addEvent(events.FromPlayer{Pos: seat, Event: events.Passed{}})
	switch state {
	case bid.Over:
		p.completeAuction()
	case bid.Cancelled:
		p.addEvent(events.BidCancelled{})
		p.nextGame()
	}
	return ev, nil
}

func (p *Party) coinche(seat pos.PlayerPos) (events.Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.auction == nil {
		return events.Event{}, ErrBidInGame
	}
	state, err := p.auction.Coinche(seat)
	if err != nil {
		return events.Event{}, err
	}

	ev := p.addEvent(events.FromPlayer{Pos: seat, Event: events.Coinched{}})
	if state == bid.Over {
		p.completeAuction()
	}
	return ev, nil
}

func (p *Party) playCard(seat pos.PlayerPos, c cards.Card) (events.Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.game == nil {
		return events.Event{}, ErrPlayInAuction
	}
	res, err := p.game.PlayCard(seat, c)
	if err != nil {
		return events.Event{}, err
	}

	ev := p.addEvent(events.FromPlayer{Pos: seat, Event: events.CardPlayed{Card: c}})
	if res.TrickOver {
		p.addEvent(events.TrickOver{Winner: res.Winner})
	}
	if res.Outcome != nil {
		out := *res.Outcome
		p.scores[0] += out.Scores[0]
		p.scores[1] += out.Scores[1]
		p.addEvent(events.GameOverFromOutcome(out))
		p.nextGame()
	}
	return ev, nil
}

// cancel terminates the party. Only the first cancellation appends the
// terminal event.
func (p *Party) cancel(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancelled {
		return
	}
	p.cancelled = true
	p.addEvent(events.PartyCancelled{Msg: msg})
}

func (p *Party) nextPlayer() pos.PlayerPos {
	if p.auction != nil {
		return p.auction.NextPlayer()
	}
	return p.game.NextPlayer()
}

// hand returns the seat's current hand.
func (p *Party) hand(seat pos.PlayerPos) cards.Hand {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.auction != nil {
		return p.auction.Hands()[seat]
	}
	return p.game.Hands()[seat]
}

// trick returns the trick being played.
func (p *Party) trick() (game.Trick, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.game == nil {
		return game.Trick{}, ErrPlayInAuction
	}
	return p.game.CurrentTrick(), nil
}

// lastTrick returns the last completed trick of the current deal.
func (p *Party) lastTrick() (game.Trick, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.game == nil {
		return game.Trick{}, ErrPlayInAuction
	}
	return p.game.LastTrick()
}

// partyScores returns the scores accumulated across deals.
func (p *Party) partyScores() [2]int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.scores
}

// waitFor resolves a wait request. It returns either a ready event, or
// a registered waiter to block on. Registration happens under the read
// lock that checked the log length, so no event can slip in between.
func (p *Party) waitFor(seat pos.PlayerPos, eventID int) (events.Event, *eventWaiter, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n := len(p.events)
	switch {
	case eventID > n:
		return events.Event{}, nil, ErrBadEventID
	case eventID == n:
		if !p.cancelled && p.nextPlayer() == seat {
			// The caller is expected to act; tell it so without
			// consuming a log slot.
			return events.Event{Event: events.YourTurn{}, ID: eventID - 1}, nil, nil
		}
		w := newEventWaiter(seat)
		p.obsMu.Lock()
		p.observers = append(p.observers, w)
		p.obsMu.Unlock()
		return events.Event{}, w, nil
	default:
		e := p.events[eventID]
		return events.Event{Event: e.Relativize(seat), ID: eventID}, nil, nil
	}
}
