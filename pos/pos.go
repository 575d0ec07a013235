// Package pos defines table seats and teams.
package pos

import "fmt"

// PlayerPos is a seat at the table, clockwise from P0.
type PlayerPos uint8

const (
	P0 PlayerPos = iota
	P1
	P2
	P3
)

// FromN returns the seat for an index in [0,4).
func FromN(n int) PlayerPos {
	return PlayerPos(n % 4)
}

// Next returns the seat playing after p.
func (p PlayerPos) Next() PlayerPos {
	return (p + 1) % 4
}

// NextN returns the seat playing n turns after p.
func (p PlayerPos) NextN(n int) PlayerPos {
	return PlayerPos((int(p) + n) % 4)
}

// Prev returns the seat playing before p.
func (p PlayerPos) Prev() PlayerPos {
	return (p + 3) % 4
}

// Team returns the player's team: P0 and P2 versus P1 and P3.
func (p PlayerPos) Team() Team {
	return Team(p % 2)
}

// IsPartner checks if o sits on the same team as p.
func (p PlayerPos) IsPartner(o PlayerPos) bool {
	return p.Team() == o.Team()
}

// DistanceUntil returns the number of seats from p to other, both
// included, going clockwise. The distance from a seat to itself is 4.
func (p PlayerPos) DistanceUntil(other PlayerPos) int {
	return (3+int(other)-int(p))%4 + 1
}

// Until lists the seats from p included to other excluded, clockwise.
// When p == other, all four seats are listed.
func (p PlayerPos) Until(other PlayerPos) []PlayerPos {
	d := p.DistanceUntil(other)
	seats := make([]PlayerPos, d)
	for i := range seats {
		seats[i] = p.NextN(i)
	}
	return seats
}

// String returns the seat's display form.
func (p PlayerPos) String() string {
	return fmt.Sprintf("P%d", uint8(p))
}

// Team is one of the two partnerships: 0 for {P0,P2}, 1 for {P1,P3}.
type Team uint8

// Other returns the opposing team.
func (t Team) Other() Team {
	return 1 - t
}

// String returns the team's display form.
func (t Team) String() string {
	return fmt.Sprintf("Team%d", uint8(t))
}
