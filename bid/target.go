package bid

import "fmt"

// Target is the level of a bid: a point threshold from 80 to 160, or a
// capot, promising every trick.
type Target uint8

const (
	Target80 Target = iota
	Target90
	Target100
	Target110
	Target120
	Target130
	Target140
	Target150
	Target160
	Capot
)

// Score returns the value banked by the team fulfilling the target.
func (t Target) Score() int {
	if t == Capot {
		return 250
	}
	return 80 + 10*int(t)
}

// Victory checks if the target is met with the given trick points.
// A capot is only met by taking every trick.
func (t Target) Victory(points int, capot bool) bool {
	if t == Capot {
		return capot
	}
	return points >= t.Score()
}

// String returns the canonical wire form: "80".."160", or "Capot".
func (t Target) String() string {
	if t == Capot {
		return "Capot"
	}
	return fmt.Sprintf("%d", t.Score())
}

// TargetFromString parses a target from its canonical form.
func TargetFromString(s string) (Target, error) {
	switch s {
	case "80":
		return Target80, nil
	case "90":
		return Target90, nil
	case "100":
		return Target100, nil
	case "110":
		return Target110, nil
	case "120":
		return Target120, nil
	case "130":
		return Target130, nil
	case "140":
		return Target140, nil
	case "150":
		return Target150, nil
	case "160":
		return Target160, nil
	case "Capot", "capot":
		return Capot, nil
	}
	return 0, fmt.Errorf("invalid target: %s", s)
}

// MarshalJSON encodes the target as its canonical string.
func (t Target) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes a target from its canonical string.
func (t *Target) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid target literal: %s", data)
	}
	target, err := TargetFromString(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = target
	return nil
}
