package zoko

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(rank Rank) Card {
	return Card{Suit: SuitSpades, Rank: rank}
}

// putBlackjackState plants a hand-crafted state so tests can exercise
// exact deck/hand combinations instead of shuffled ones.
func putBlackjackState(b *Blackjack, key string, s *BlackjackState) {
	b.sessions.Lock()
	defer b.sessions.Unlock()
	b.sessions.Put(key, s)
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards []Card
		best  int
		soft  bool
	}{
		{"two aces", []Card{card("A"), card("A")}, 12, true},
		{"natural", []Card{card("A"), card("K")}, 21, true},
		{"soft seventeen", []Card{card("A"), card("6")}, 17, true},
		{"hard seventeen", []Card{card("A"), card("6"), card("10")}, 17, false},
		{"twenty", []Card{card("K"), card("Q")}, 20, false},
		{"three aces and eight", []Card{card("A"), card("A"), card("A"), card("8")}, 21, true},
		{"bust", []Card{card("K"), card("Q"), card("5")}, 25, false},
	}
	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				hv := handValue(tt.cards)
				assert.Equal(t, tt.best, hv.Best)
				assert.Equal(t, tt.soft, hv.Soft)
			},
		)
	}
}

func TestBlackjackStartDealsTwoEach(t *testing.T) {
	b := NewBlackjack(rand.New(rand.NewSource(1)))
	s := b.Start("k")
	require.NotNil(t, s)
	assert.Len(t, s.Player, 2)
	assert.Len(t, s.Dealer, 2)
	assert.Len(t, s.Deck, 48)

	// A finished fresh deal can only be a natural 21 on either side.
	if s.Finished {
		playerBest := handValue(s.Player).Best
		dealerBest := handValue(s.Dealer).Best
		assert.True(t, playerBest == 21 || dealerBest == 21)
		assert.NotEqual(t, BlackjackResultNone, s.Result)
	}
}

func TestBlackjackStartReplacesExisting(t *testing.T) {
	b := NewBlackjack(rand.New(rand.NewSource(1)))
	first := b.Start("k")
	second := b.Start("k")
	assert.NotSame(t, first, second)
	assert.Same(t, second, b.Get("k"))
}

func TestBlackjackHitBust(t *testing.T) {
	b := NewBlackjack(rand.New(rand.NewSource(1)))
	putBlackjackState(
		b, "k", &BlackjackState{
			Deck:   []Card{card("K")},
			Player: []Card{card("K"), card("Q")},
			Dealer: []Card{card("2"), card("3")},
		},
	)

	s := b.Hit("k")
	require.NotNil(t, s)
	assert.True(t, s.Finished)
	assert.Equal(t, BlackjackResultDealer, s.Result)
	assert.Len(t, s.Player, 3)
}

func TestBlackjackHitFinishedIsNoOp(t *testing.T) {
	b := NewBlackjack(rand.New(rand.NewSource(1)))
	putBlackjackState(
		b, "k", &BlackjackState{
			Deck:     []Card{card("K")},
			Player:   []Card{card("K"), card("Q")},
			Dealer:   []Card{card("2"), card("3")},
			Finished: true,
			Result:   BlackjackResultDealer,
		},
	)

	s := b.Hit("k")
	require.NotNil(t, s)
	assert.Len(t, s.Player, 2)
	assert.Len(t, s.Deck, 1)
}

func TestBlackjackHitMissingSession(t *testing.T) {
	b := NewBlackjack(rand.New(rand.NewSource(1)))
	assert.Nil(t, b.Hit("nope"))
}

func TestBlackjackDealerDrawsBelowSeventeen(t *testing.T) {
	b := NewBlackjack(rand.New(rand.NewSource(1)))
	hand := &BlackjackState{
		Deck:   []Card{card("5")},
		Player: []Card{card("K"), card("9")},
		Dealer: []Card{card("K"), card("6")},
	}
	putBlackjackState(b, "k", hand)

	done, s := b.DealerStep("k", hand)
	require.NotNil(t, s)
	assert.False(t, done)
	assert.Len(t, s.Dealer, 3)
	assert.False(t, s.Finished)
}

func TestBlackjackDealerStandsHardSeventeen(t *testing.T) {
	b := NewBlackjack(rand.New(rand.NewSource(1)))
	hand := &BlackjackState{
		Deck:   []Card{card("5")},
		Player: []Card{card("K"), card("9")},
		Dealer: []Card{card("K"), card("7")},
	}
	putBlackjackState(b, "k", hand)

	done, s := b.DealerStep("k", hand)
	require.NotNil(t, s)
	assert.True(t, done)
	assert.True(t, s.Finished)
	// player 19 beats dealer 17
	assert.Equal(t, BlackjackResultPlayer, s.Result)
	// resolved hands leave the store
	assert.Nil(t, b.Get("k"))
}

func TestBlackjackDealerHitsSoftSeventeen(t *testing.T) {
	b := NewBlackjack(rand.New(rand.NewSource(1)))
	hand := &BlackjackState{
		Deck:   []Card{card("5")},
		Player: []Card{card("K"), card("9")},
		Dealer: []Card{card("A"), card("6")},
	}
	putBlackjackState(b, "k", hand)

	done, s := b.DealerStep("k", hand)
	require.NotNil(t, s)
	assert.False(t, done)
	assert.Len(t, s.Dealer, 3)
}

func TestBlackjackDealerBustPaysPlayer(t *testing.T) {
	b := NewBlackjack(rand.New(rand.NewSource(1)))
	hand := &BlackjackState{
		Deck:   []Card{},
		Player: []Card{card("K"), card("9")},
		Dealer: []Card{card("K"), card("Q"), card("5")},
	}
	putBlackjackState(b, "k", hand)

	done, s := b.DealerStep("k", hand)
	require.NotNil(t, s)
	assert.True(t, done)
	assert.Equal(t, BlackjackResultPlayer, s.Result)
}

func TestBlackjackDealerPush(t *testing.T) {
	b := NewBlackjack(rand.New(rand.NewSource(1)))
	hand := &BlackjackState{
		Deck:   []Card{},
		Player: []Card{card("K"), card("9")},
		Dealer: []Card{card("K"), card("9")},
	}
	putBlackjackState(b, "k", hand)

	done, s := b.DealerStep("k", hand)
	require.NotNil(t, s)
	assert.True(t, done)
	assert.Equal(t, BlackjackResultPush, s.Result)
}

func TestBlackjackDealerStepMissingSession(t *testing.T) {
	b := NewBlackjack(rand.New(rand.NewSource(1)))
	done, s := b.DealerStep("nope", nil)
	assert.True(t, done)
	assert.Nil(t, s)
}

func TestBlackjackDealerStepIgnoresReplacedHand(t *testing.T) {
	// A paced dealer loop holds the hand it was started for. If the
	// player deals a fresh hand at the same key mid-animation, stepping
	// with the old hand must not touch the new one.
	b := NewBlackjack(rand.New(rand.NewSource(1)))
	first := &BlackjackState{
		Deck:   []Card{card("5")},
		Player: []Card{card("K"), card("9")},
		Dealer: []Card{card("K"), card("6")},
	}
	putBlackjackState(b, "k", first)

	second := &BlackjackState{
		Deck:   []Card{card("5"), card("4")},
		Player: []Card{card("K"), card("8")},
		Dealer: []Card{card("K"), card("2")},
	}
	putBlackjackState(b, "k", second)

	for i := 0; i < 4; i++ {
		done, s := b.DealerStep("k", first)
		assert.True(t, done)
		assert.Nil(t, s)
	}

	assert.Same(t, second, b.Get("k"))
	assert.False(t, second.Finished)
	assert.Equal(t, BlackjackResultNone, second.Result)
	assert.Len(t, second.Dealer, 2)
	assert.Len(t, second.Deck, 2)
}

func TestBlackjackDealerPlaysOutToTermination(t *testing.T) {
	// Whatever the shuffle, repeatedly stepping the dealer must always
	// terminate with a result.
	for seed := int64(0); seed < 20; seed++ {
		b := NewBlackjack(rand.New(rand.NewSource(seed)))
		hand := b.Start("k")
		if hand.Finished {
			continue
		}
		var done bool
		s := hand
		for i := 0; i < 52; i++ {
			done, s = b.DealerStep("k", hand)
			if done {
				break
			}
		}
		require.True(t, done, "seed %d: dealer never finished", seed)
		require.NotNil(t, s)
		assert.True(t, s.Finished)
		assert.NotEqual(t, BlackjackResultNone, s.Result)
	}
}

func TestBlackjackReset(t *testing.T) {
	b := NewBlackjack(rand.New(rand.NewSource(1)))
	b.Start("k")
	assert.True(t, b.Reset("k"))
	assert.False(t, b.Reset("k"))
	assert.Nil(t, b.Get("k"))
}
