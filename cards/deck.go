package cards

import "math/rand"

// NewDeck32 returns the full 32-card deck in encoding order.
func NewDeck32() []Card {
	deck := make([]Card, 0, 32)
	for _, s := range Suits() {
		for r := Rank7; r <= RankA; r++ {
			deck = append(deck, NewCard(s, r))
		}
	}
	return deck
}

// Deal shuffles the deck with the given source and splits it into four
// hands of eight cards. The hands are disjoint and cover the deck.
func Deal(rng *rand.Rand) [4]Hand {
	deck := NewDeck32()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return split(deck)
}

// DealRandom deals with the process-wide source, which is safe to
// share across tables.
func DealRandom() [4]Hand {
	deck := NewDeck32()
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return split(deck)
}

func split(deck []Card) [4]Hand {
	var hands [4]Hand
	for i, c := range deck {
		hands[i/8].Add(c)
	}
	return hands
}
