package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPrev(t *testing.T) {
	assert.Equal(t, P1, P0.Next())
	assert.Equal(t, P0, P3.Next())
	assert.Equal(t, P3, P0.Prev())
	assert.Equal(t, P2, P0.NextN(2))
	assert.Equal(t, P1, P3.NextN(6))

	for p := P0; p <= P3; p++ {
		assert.Equal(t, p, p.Next().Prev())
	}
}

func TestTeams(t *testing.T) {
	assert.Equal(t, Team(0), P0.Team())
	assert.Equal(t, Team(1), P1.Team())
	assert.Equal(t, Team(0), P2.Team())
	assert.Equal(t, Team(1), P3.Team())

	assert.True(t, P0.IsPartner(P2))
	assert.True(t, P3.IsPartner(P1))
	assert.False(t, P0.IsPartner(P1))

	assert.Equal(t, Team(1), Team(0).Other())
	assert.Equal(t, Team(0), Team(1).Other())
}

func TestDistanceUntil(t *testing.T) {
	assert.Equal(t, 1, P0.DistanceUntil(P1))
	assert.Equal(t, 3, P0.DistanceUntil(P3))
	assert.Equal(t, 2, P3.DistanceUntil(P1))

	// The distance from a seat to itself is a full turn
	for p := P0; p <= P3; p++ {
		assert.Equal(t, 4, p.DistanceUntil(p))
	}
}

func TestUntil(t *testing.T) {
	assert.Equal(t, []PlayerPos{P1, P2}, P1.Until(P3))
	assert.Equal(t, []PlayerPos{P3, P0}, P3.Until(P1))
	assert.Equal(t, []PlayerPos{P2, P3, P0, P1}, P2.Until(P2))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "P2", P2.String())
	assert.Equal(t, "Team1", Team(1).String())
}
