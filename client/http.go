package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gyscos/coinched/bid"
	"github.com/gyscos/coinched/cards"
	"github.com/gyscos/coinched/domain"
	"github.com/gyscos/coinched/events"
	"github.com/gyscos/coinched/pos"
)

// HTTPBackend talks to a coinched server over its HTTP+JSON API. It
// tracks the next event id so actions and waits interleave without
// replaying events.
type HTTPBackend struct {
	base     string
	hc       *http.Client
	playerID uint32
	pos      pos.PlayerPos
	eventID  int
	pending  []events.Event
}

// Join blocks on the server's matchmaking queue until a table forms.
// The base URL has no trailing slash, e.g. "http://localhost:3000".
func Join(base string) (*HTTPBackend, error) {
	// Join and wait can legitimately hang for the server's timeouts,
	// so the client itself sets none.
	hc := &http.Client{}
	resp, err := hc.Post(base+"/join", "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("joining %s: %w", base, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var info domain.NewPartyInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding join response: %w", err)
	}
	return &HTTPBackend{
		base:     base,
		hc:       hc,
		playerID: info.PlayerID,
		pos:      info.PlayerPos,
	}, nil
}

// PlayerID returns the id minted by the server.
func (b *HTTPBackend) PlayerID() uint32 {
	return b.playerID
}

// Pos returns the seat assigned by the server.
func (b *HTTPBackend) Pos() pos.PlayerPos {
	return b.pos
}

func decodeError(resp *http.Response) error {
	var fail struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&fail); err != nil || fail.Error == "" {
		return fmt.Errorf("server answered %s", resp.Status)
	}
	return errors.New(fail.Error)
}

// decodeEvent reads an event envelope and advances the cursor past it.
// An action's answer can sit ahead of the cursor when another player
// acted in between (a coinche needs no turn); the stored events in the
// gap are fetched first so none is skipped.
func (b *HTTPBackend) decodeEvent(resp *http.Response) (events.EventType, error) {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var ev events.Event
	if err := json.NewDecoder(resp.Body).Decode(&ev); err != nil {
		return nil, fmt.Errorf("decoding event: %w", err)
	}

	for b.eventID < ev.ID {
		stored, err := b.fetch(b.eventID)
		if err != nil {
			return nil, err
		}
		b.pending = append(b.pending, stored)
		b.eventID = stored.ID + 1
	}
	b.eventID = ev.ID + 1

	if len(b.pending) > 0 {
		b.pending = append(b.pending, ev)
		return b.nextPending(), nil
	}
	return ev.Event, nil
}

func (b *HTTPBackend) nextPending() events.EventType {
	ev := b.pending[0]
	b.pending = b.pending[1:]
	return ev.Event
}

// fetch returns the stored event at the given id. It never blocks: the
// log has already grown past it.
func (b *HTTPBackend) fetch(id int) (events.Event, error) {
	url := fmt.Sprintf("%s/wait/%d/%d", b.base, b.playerID, id)
	resp, err := b.hc.Get(url)
	if err != nil {
		return events.Event{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return events.Event{}, decodeError(resp)
	}
	var ev events.Event
	if err := json.NewDecoder(resp.Body).Decode(&ev); err != nil {
		return events.Event{}, fmt.Errorf("decoding event: %w", err)
	}
	return ev, nil
}

// Wait long-polls the next event, re-polling on empty answers. Events
// buffered behind an action's answer are drained first.
func (b *HTTPBackend) Wait() (events.EventType, error) {
	if len(b.pending) > 0 {
		return b.nextPending(), nil
	}
	for {
		url := fmt.Sprintf("%s/wait/%d/%d", b.base, b.playerID, b.eventID)
		resp, err := b.hc.Get(url)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusNoContent {
			resp.Body.Close()
			continue
		}
		return b.decodeEvent(resp)
	}
}

func (b *HTTPBackend) post(path string, body any) (events.EventType, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	url := fmt.Sprintf("%s/%s/%d", b.base, path, b.playerID)
	resp, err := b.hc.Post(url, "application/json", &buf)
	if err != nil {
		return nil, err
	}
	return b.decodeEvent(resp)
}

// Bid offers a contract.
func (b *HTTPBackend) Bid(suit cards.Suit, target bid.Target) (events.EventType, error) {
	return b.post("bid", map[string]string{
		"suit":   suit.String(),
		"target": target.String(),
	})
}

// Pass declines to bid.
func (b *HTTPBackend) Pass() (events.EventType, error) {
	return b.post("pass", nil)
}

// Coinche doubles the running contract.
func (b *HTTPBackend) Coinche() (events.EventType, error) {
	return b.post("coinche", nil)
}

// PlayCard plays a card.
func (b *HTTPBackend) PlayCard(c cards.Card) (events.EventType, error) {
	return b.post("play", map[string]string{"card": c.String()})
}

// Leave cancels the whole table.
func (b *HTTPBackend) Leave() error {
	url := fmt.Sprintf("%s/leave/%d", b.base, b.playerID)
	resp, err := b.hc.Post(url, "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}
