package events

import (
	"encoding/json"
	"testing"

	"github.com/gyscos/coinched/bid"
	"github.com/gyscos/coinched/cards"
	"github.com/gyscos/coinched/pos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativizeNewGame(t *testing.T) {
	hands := cards.DealRandom()
	e := NewGame{First: pos.P2, Hands: hands}

	// Each seat only sees its own hand
	for p := pos.P0; p <= pos.P3; p++ {
		rel := e.Relativize(p)
		ngr, ok := rel.(NewGameRelative)
		require.True(t, ok)
		assert.Equal(t, pos.P2, ngr.First)
		assert.Equal(t, hands[p], ngr.Hand)
	}
}

func TestRelativizePassThrough(t *testing.T) {
	passthrough := []EventType{
		FromPlayer{Pos: pos.P1, Event: Passed{}},
		BidOver{Contract: bid.Contract{Trump: cards.Spades}},
		BidCancelled{},
		TrickOver{Winner: pos.P3},
		GameOver{Points: [2]int{100, 62}},
		PartyCancelled{Msg: "gone"},
		YourTurn{},
	}
	for _, e := range passthrough {
		for p := pos.P0; p <= pos.P3; p++ {
			assert.Equal(t, e, e.Relativize(p))
		}
	}
}

func TestMarshalTagged(t *testing.T) {
	data, err := Marshal(TrickOver{Winner: pos.P2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"TrickOver","winner":2}`, string(data))

	data, err = Marshal(YourTurn{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"YourTurn"}`, string(data))
}

func TestMarshalFromPlayer(t *testing.T) {
	e := FromPlayer{
		Pos: pos.P1,
		Event: Bidded{
			Suit:   cards.Hearts,
			Target: bid.Target80,
		},
	}
	data, err := Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"FromPlayer","pos":1,"event":{"type":"Bidded","suit":"H","target":"80"}}`,
		string(data))
}

func TestEventRoundTrip(t *testing.T) {
	samples := []EventType{
		NewGameRelative{First: pos.P1, Hand: cards.NewHand(
			cards.NewCard(cards.Clubs, cards.Rank8),
			cards.NewCard(cards.Hearts, cards.Rank10),
		)},
		FromPlayer{Pos: pos.P0, Event: Bidded{Suit: cards.Spades, Target: bid.Capot}},
		FromPlayer{Pos: pos.P2, Event: Passed{}},
		FromPlayer{Pos: pos.P3, Event: Coinched{}},
		FromPlayer{Pos: pos.P1, Event: CardPlayed{Card: cards.NewCard(cards.Diamonds, cards.RankJ)}},
		BidOver{Contract: bid.Contract{
			Trump:        cards.Hearts,
			Author:       pos.P2,
			Target:       bid.Target110,
			CoincheLevel: 1,
		}},
		BidCancelled{},
		TrickOver{Winner: pos.P0},
		GameOver{Points: [2]int{70, 92}, Winner: pos.Team(1), Scores: [2]int{0, 160}},
		PartyCancelled{Msg: "player P2 left"},
		YourTurn{},
	}

	for _, e := range samples {
		data, err := Marshal(e)
		require.NoError(t, err)
		back, err := Unmarshal(data)
		require.NoError(t, err, "payload %s", data)
		assert.Equal(t, e, back)
	}
}

func TestUnmarshalRejectsUnknown(t *testing.T) {
	_, err := Unmarshal([]byte(`{"type":"Nope"}`))
	assert.Error(t, err)
	_, err = Unmarshal([]byte(`{"type":"FromPlayer","pos":0,"event":{"type":"Nope"}}`))
	assert.Error(t, err)
}

func TestEventEnvelope(t *testing.T) {
	e := Event{Event: TrickOver{Winner: pos.P1}, ID: 7}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":{"type":"TrickOver","winner":1},"id":7}`, string(data))

	var back Event
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, e, back)
}
