package events

import (
	"encoding/json"
	"fmt"

	"github.com/gyscos/coinched/pos"
)

// marshalTagged serializes v and injects the discriminating "type" key.
func marshalTagged(kind string, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["type"] = kind
	return json.Marshal(fields)
}

// fromPlayerWire is the wire shape of FromPlayer, with the inner
// action as a second tagged union.
type fromPlayerWire struct {
	Type  string          `json:"type"`
	Pos   pos.PlayerPos   `json:"pos"`
	Event json.RawMessage `json:"event"`
}

// Marshal encodes an event as a tagged union {"type": "<Kind>", ...}.
func Marshal(e EventType) ([]byte, error) {
	if fp, ok := e.(FromPlayer); ok {
		inner, err := marshalTagged(fp.Event.Name(), fp.Event)
		if err != nil {
			return nil, err
		}
		return json.Marshal(fromPlayerWire{
			Type:  fp.Type(),
			Pos:   fp.Pos,
			Event: inner,
		})
	}
	return marshalTagged(e.Type(), e)
}

// Unmarshal decodes a tagged-union event.
func Unmarshal(data []byte) (EventType, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case "FromPlayer":
		var wire fromPlayerWire
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		inner, err := unmarshalPlayerEvent(wire.Event)
		if err != nil {
			return nil, err
		}
		return FromPlayer{Pos: wire.Pos, Event: inner}, nil
	case "NewGame":
		var e NewGame
		return e, json.Unmarshal(data, &e)
	case "NewGameRelative":
		var e NewGameRelative
		return e, json.Unmarshal(data, &e)
	case "BidOver":
		var e BidOver
		return e, json.Unmarshal(data, &e)
	case "BidCancelled":
		return BidCancelled{}, nil
	case "TrickOver":
		var e TrickOver
		return e, json.Unmarshal(data, &e)
	case "GameOver":
		var e GameOver
		return e, json.Unmarshal(data, &e)
	case "PartyCancelled":
		var e PartyCancelled
		return e, json.Unmarshal(data, &e)
	case "YourTurn":
		return YourTurn{}, nil
	}
	return nil, fmt.Errorf("unknown event type: %q", probe.Type)
}

func unmarshalPlayerEvent(data []byte) (PlayerEvent, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case "Bidded":
		var e Bidded
		return e, json.Unmarshal(data, &e)
	case "Passed":
		return Passed{}, nil
	case "Coinched":
		return Coinched{}, nil
	case "CardPlayed":
		var e CardPlayed
		return e, json.Unmarshal(data, &e)
	}
	return nil, fmt.Errorf("unknown player event type: %q", probe.Type)
}

// eventWire is the envelope pairing an event with its log id.
type eventWire struct {
	Event json.RawMessage `json:"event"`
	ID    int             `json:"id"`
}

// MarshalJSON encodes the envelope as {"event": {...}, "id": n}.
func (e Event) MarshalJSON() ([]byte, error) {
	inner, err := Marshal(e.Event)
	if err != nil {
		return nil, err
	}
	return json.Marshal(eventWire{Event: inner, ID: e.ID})
}

// UnmarshalJSON decodes the envelope.
func (e *Event) UnmarshalJSON(data []byte) error {
	var wire eventWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	inner, err := Unmarshal(wire.Event)
	if err != nil {
		return err
	}
	e.Event = inner
	e.ID = wire.ID
	return nil
}
