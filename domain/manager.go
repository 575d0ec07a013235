package domain

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gyscos/coinched/bid"
	"github.com/gyscos/coinched/cards"
	"github.com/gyscos/coinched/events"
	"github.com/gyscos/coinched/game"
	"github.com/gyscos/coinched/pos"
)

var (
	ErrBadPlayerID = errors.New("unknown player id")
	ErrJoinTimeout = errors.New("no table formed before the join deadline")
	ErrWaitTimeout = errors.New("no event before the wait deadline")
)

// Options tunes the manager's timeouts. An IdleTimeout of zero
// disables the eviction reaper.
type Options struct {
	JoinTimeout  time.Duration
	WaitTimeout  time.Duration
	IdleTimeout  time.Duration
	ReapInterval time.Duration
}

// DefaultOptions returns the timeouts used by the server binary.
func DefaultOptions() Options {
	return Options{
		JoinTimeout:  20 * time.Second,
		WaitTimeout:  15 * time.Second,
		IdleTimeout:  5 * time.Minute,
		ReapInterval: 30 * time.Second,
	}
}

// NewPartyInfo is handed to a player whose table just formed.
type NewPartyInfo struct {
	PlayerID  uint32        `json:"player_id"`
	PlayerPos pos.PlayerPos `json:"player_pos"`
}

// joinWaiter blocks a joining player until three others show up.
type joinWaiter struct {
	ch   chan NewPartyInfo
	once sync.Once
}

func (w *joinWaiter) complete(info NewPartyInfo) {
	w.once.Do(func() { w.ch <- info })
}

// playerInfo is the registry entry binding a player id to its seat.
type playerInfo struct {
	party      *Party
	pos        pos.PlayerPos
	lastActive atomic.Int64
}

func (pi *playerInfo) touch() {
	pi.lastActive.Store(time.Now().UnixNano())
}

// GameManager matches players into parties and routes their actions.
//
// Lock order: queueMu, then mu, then a party's lock. The queue mutex
// is never taken while holding a party lock.
type GameManager struct {
	opts  Options
	newID func() uint32

	mu      sync.RWMutex
	players map[uint32]*playerInfo

	queueMu sync.Mutex
	queue   []*joinWaiter

	quit chan struct{}
	wg   sync.WaitGroup
}

// NewGameManager starts a manager, including its eviction reaper when
// an idle timeout is configured.
func NewGameManager(opts Options) *GameManager {
	gm := &GameManager{
		opts:    opts,
		newID:   rand.Uint32,
		players: make(map[uint32]*playerInfo),
		quit:    make(chan struct{}),
	}
	if opts.IdleTimeout > 0 && opts.ReapInterval > 0 {
		gm.wg.Add(1)
		go gm.reap()
	}
	return gm
}

// Stop terminates the background reaper.
func (gm *GameManager) Stop() {
	close(gm.quit)
	gm.wg.Wait()
}

// Join enters the matchmaking queue and blocks until a table forms.
// The fourth player to arrive pops the other three and creates the
// party; everyone gets back an id and a seat.
func (gm *GameManager) Join() (NewPartyInfo, error) {
	gm.queueMu.Lock()
	if len(gm.queue) >= 3 {
		info := gm.makeParty()
		gm.queueMu.Unlock()
		return info, nil
	}
	w := &joinWaiter{ch: make(chan NewPartyInfo, 1)}
	gm.queue = append(gm.queue, w)
	gm.queueMu.Unlock()

	select {
	case info := <-w.ch:
		return info, nil
	case <-time.After(gm.opts.JoinTimeout):
	}

	// Timed out: leave the queue, unless a forming party already
	// popped this waiter, in which case delivery is guaranteed.
	gm.queueMu.Lock()
	for i, q := range gm.queue {
		if q == w {
			gm.queue = append(gm.queue[:i], gm.queue[i+1:]...)
			gm.queueMu.Unlock()
			return NewPartyInfo{}, ErrJoinTimeout
		}
	}
	gm.queueMu.Unlock()
	return <-w.ch, nil
}

// makeParty pops three queued waiters and registers a new four-seat
// party. The caller holds queueMu and becomes the fourth seat.
func (gm *GameManager) makeParty() NewPartyInfo {
	n := len(gm.queue)
	popped := make([]*joinWaiter, 3)
	copy(popped, gm.queue[n-3:])
	gm.queue = gm.queue[:n-3]

	gm.mu.Lock()
	var ids [4]uint32
	for i := range ids {
		ids[i] = gm.newPlayerID(ids[:i])
	}
	party := newParty(pos.P0, ids)
	for i, id := range ids {
		info := &playerInfo{party: party, pos: pos.FromN(i)}
		info.touch()
		gm.players[id] = info
	}
	gm.mu.Unlock()

	log.Debugf("formed party %s for players %v", party.ID(), ids)
	for i, w := range popped {
		w.complete(NewPartyInfo{PlayerID: ids[i], PlayerPos: pos.FromN(i)})
	}
	return NewPartyInfo{PlayerID: ids[3], PlayerPos: pos.P3}
}

// newPlayerID mints a non-zero id absent from both the registry and
// the party batch being minted. The caller holds mu.
func (gm *GameManager) newPlayerID(minted []uint32) uint32 {
	for {
		id := gm.newID()
		if id == 0 {
			continue
		}
		if _, taken := gm.players[id]; taken {
			continue
		}
		if slices.Contains(minted, id) {
			continue
		}
		return id
	}
}

// lookup resolves a player id. The caller holds mu in read mode.
func (gm *GameManager) lookup(playerID uint32) (*playerInfo, error) {
	info, ok := gm.players[playerID]
	if !ok {
		return nil, ErrBadPlayerID
	}
	info.touch()
	return info, nil
}

// Bid places a contract offer for the player.
func (gm *GameManager) Bid(playerID uint32, trump cards.Suit, target bid.Target) (events.Event, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	info, err := gm.lookup(playerID)
	if err != nil {
		return events.Event{}, err
	}
	return info.party.bid(info.pos, trump, target)
}

// Pass declines to bid for the player.
func (gm *GameManager) Pass(playerID uint32) (events.Event, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	info, err := gm.lookup(playerID)
	if err != nil {
		return events.Event{}, err
	}
	return info.party.pass(info.pos)
}

// Coinche doubles the running contract for the player.
func (gm *GameManager) Coinche(playerID uint32) (events.Event, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	info, err := gm.lookup(playerID)
	if err != nil {
		return events.Event{}, err
	}
	return info.party.coinche(info.pos)
}

// PlayCard plays a card for the player.
func (gm *GameManager) PlayCard(playerID uint32, c cards.Card) (events.Event, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	info, err := gm.lookup(playerID)
	if err != nil {
		return events.Event{}, err
	}
	return info.party.playCard(info.pos, c)
}

// SeeHand returns the player's current hand.
func (gm *GameManager) SeeHand(playerID uint32) (cards.Hand, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	info, err := gm.lookup(playerID)
	if err != nil {
		return 0, err
	}
	return info.party.hand(info.pos), nil
}

// SeeTrick returns the trick being played at the player's table.
func (gm *GameManager) SeeTrick(playerID uint32) (game.Trick, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	info, err := gm.lookup(playerID)
	if err != nil {
		return game.Trick{}, err
	}
	return info.party.trick()
}

// SeeLastTrick returns the last completed trick of the current deal.
func (gm *GameManager) SeeLastTrick(playerID uint32) (game.Trick, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	info, err := gm.lookup(playerID)
	if err != nil {
		return game.Trick{}, err
	}
	return info.party.lastTrick()
}

// SeeScores returns the table scores accumulated across deals.
func (gm *GameManager) SeeScores(playerID uint32) ([2]int, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	info, err := gm.lookup(playerID)
	if err != nil {
		return [2]int{}, err
	}
	return info.party.partyScores(), nil
}

// SeePos returns the player's seat.
func (gm *GameManager) SeePos(playerID uint32) (pos.PlayerPos, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	info, err := gm.lookup(playerID)
	if err != nil {
		return 0, err
	}
	return info.pos, nil
}

// Wait returns the event at eventID, blocking up to the configured
// timeout when the log has not reached it yet. When the caller sits at
// the log tip and is expected to act, a synthetic YourTurn is returned
// immediately.
func (gm *GameManager) Wait(playerID uint32, eventID int) (events.Event, error) {
	gm.mu.RLock()
	info, err := gm.lookup(playerID)
	if err != nil {
		gm.mu.RUnlock()
		return events.Event{}, err
	}
	ev, waiter, err := info.party.waitFor(info.pos, eventID)
	gm.mu.RUnlock()
	if err != nil {
		return events.Event{}, err
	}
	if waiter == nil {
		return ev, nil
	}

	select {
	case ev := <-waiter.ch:
		return ev, nil
	case <-time.After(gm.opts.WaitTimeout):
		waiter.cancel()
		// A broadcast may have slipped in before the cancel took.
		select {
		case ev := <-waiter.ch:
			return ev, nil
		default:
			return events.Event{}, ErrWaitTimeout
		}
	}
}

// Leave cancels the player's party and de-registers all four seats.
// The cancellation event reaches any blocked waiter; later operations
// from the table's players fail with ErrBadPlayerID.
func (gm *GameManager) Leave(playerID uint32) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.leaveLocked(playerID)
}

func (gm *GameManager) leaveLocked(playerID uint32) error {
	info, ok := gm.players[playerID]
	if !ok {
		return ErrBadPlayerID
	}

	log.Debugf("player %d (%s) leaves party %s", playerID, info.pos, info.party.ID())
	info.party.cancel(fmt.Sprintf("player %s left the table", info.pos))
	for _, id := range info.party.playerIDs {
		delete(gm.players, id)
	}
	return nil
}

// PlayerCount returns the number of registered players.
func (gm *GameManager) PlayerCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.players)
}

// reap periodically evicts players idle beyond the configured timeout,
// cancelling their tables.
func (gm *GameManager) reap() {
	defer gm.wg.Done()

	ticker := time.NewTicker(gm.opts.ReapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-gm.quit:
			return
		case <-ticker.C:
			gm.evictIdle()
		}
	}
}

func (gm *GameManager) evictIdle() {
	cutoff := time.Now().Add(-gm.opts.IdleTimeout).UnixNano()

	gm.mu.Lock()
	defer gm.mu.Unlock()
	for id, info := range gm.players {
		if info.lastActive.Load() < cutoff {
			log.Infof("evicting idle player %d (%s)", id, info.pos)
			gm.leaveLocked(id)
		}
	}
}
