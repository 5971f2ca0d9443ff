package zoko

import (
	"math/rand"
	"time"
)

// Suit is a playing-card suit glyph, kept as the literal glyph so
// renderers can use it directly.
type Suit string

const (
	SuitSpades   Suit = "♠"
	SuitHearts   Suit = "♥"
	SuitDiamonds Suit = "♦"
	SuitClubs    Suit = "♣"
)

var allSuits = []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// Rank is a playing-card rank ("A", "2".."10", "J", "Q", "K").
type Rank string

var allRanks = []Rank{
	"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K",
}

type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return string(c.Suit) + string(c.Rank)
}

// value returns the base value of the card, counting aces as 11.
func (c Card) value() int {
	switch c.Rank {
	case "A":
		return 11
	case "J", "Q", "K", "10":
		return 10
	case "2", "3", "4", "5", "6", "7", "8", "9":
		return int(c.Rank[0] - '0')
	}
	return 0
}

// BlackjackResult is the terminal outcome of a hand.
type BlackjackResult string

const (
	BlackjackResultNone   BlackjackResult = ""
	BlackjackResultPlayer BlackjackResult = "player"
	BlackjackResultDealer BlackjackResult = "dealer"
	BlackjackResultPush   BlackjackResult = "push"
)

// BlackjackState is one live Blackjack hand. The deck is owned
// exclusively by this state; cards are consumed by popping from the
// end. Invariant: Finished is true iff Result is set.
type BlackjackState struct {
	Deck      []Card          `json:"-"`
	Player    []Card          `json:"player"`
	Dealer    []Card          `json:"dealer"`
	Finished  bool            `json:"finished"`
	Result    BlackjackResult `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// HandValue is the evaluated total of a hand. Best counts each ace as
// 11, then demotes aces to 1 (subtract 10) one at a time while the
// total busts. Soft reports whether an ace is still counted as 11.
type HandValue struct {
	Best int
	Soft bool
}

func handValue(cards []Card) HandValue {
	total := 0
	aces := 0
	for _, c := range cards {
		if c.Rank == "A" {
			aces++
		}
		total += c.value()
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return HandValue{Best: total, Soft: aces > 0}
}

// Blackjack manages per-context Blackjack hands. All transitions run
// under the session-store lock; no method performs I/O.
type Blackjack struct {
	sessions *SessionStore[*BlackjackState]
	rng      *rand.Rand
}

// NewBlackjack returns a Blackjack engine with its own session store.
// A nil rng gets a time-seeded source; tests inject a fixed seed.
func NewBlackjack(rng *rand.Rand) *Blackjack {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Blackjack{
		sessions: NewSessionStore[*BlackjackState](),
		rng:      rng,
	}
}

func (b *Blackjack) Sessions() *SessionStore[*BlackjackState] {
	return b.sessions
}

// newShuffledDeck builds a 52-card deck and Fisher-Yates shuffles it.
// Must be called with the store lock held (rng is not goroutine-safe).
func (b *Blackjack) newShuffledDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range allSuits {
		for _, r := range allRanks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	for i := len(deck) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

func drawCard(s *BlackjackState) Card {
	c := s.Deck[len(s.Deck)-1]
	s.Deck = s.Deck[:len(s.Deck)-1]
	return c
}

// Start deals a fresh hand at key, replacing any existing session. If
// either side is dealt a natural 21, the hand finishes immediately:
// both natural is a push, otherwise the natural side wins.
func (b *Blackjack) Start(key string) *BlackjackState {
	b.sessions.Lock()
	defer b.sessions.Unlock()

	s := &BlackjackState{
		Deck:      b.newShuffledDeck(),
		CreatedAt: time.Now().UTC(),
	}
	s.Player = []Card{drawCard(s), drawCard(s)}
	s.Dealer = []Card{drawCard(s), drawCard(s)}

	player21 := handValue(s.Player).Best == 21
	dealer21 := handValue(s.Dealer).Best == 21
	switch {
	case player21 && dealer21:
		s.Finished = true
		s.Result = BlackjackResultPush
	case player21:
		s.Finished = true
		s.Result = BlackjackResultPlayer
	case dealer21:
		s.Finished = true
		s.Result = BlackjackResultDealer
	}

	b.sessions.Put(key, s)
	return s
}

// Get returns the live hand at key, or nil.
func (b *Blackjack) Get(key string) *BlackjackState {
	b.sessions.Lock()
	defer b.sessions.Unlock()
	s, _ := b.sessions.Get(key)
	return s
}

// Hit draws one card for the player. Busting finishes the hand in the
// dealer's favor. Hitting a finished or missing session is a safe
// no-op, returning the current state (or nil).
func (b *Blackjack) Hit(key string) *BlackjackState {
	b.sessions.Lock()
	defer b.sessions.Unlock()

	s, ok := b.sessions.Get(key)
	if !ok || s.Finished {
		return s
	}
	s.Player = append(s.Player, drawCard(s))
	if handValue(s.Player).Best > 21 {
		s.Finished = true
		s.Result = BlackjackResultDealer
	}
	return s
}

// Stand marks the end of the player's turn. It performs no dealer
// resolution itself - the caller passes the returned state to
// DealerStep repeatedly so it can pace the dealer reveal however it
// likes.
func (b *Blackjack) Stand(key string) *BlackjackState {
	b.sessions.Lock()
	defer b.sessions.Unlock()
	s, _ := b.sessions.Get(key)
	return s
}

// DealerStep advances the dealer of the given hand by one action. The
// dealer stands once its best total exceeds 17, equals 17 without being
// soft, or busts; on standing the hand is resolved, removed from the
// store and done=true is returned. Otherwise the dealer draws one card
// and done=false is returned.
//
// hand must be the state Stand returned. If the session at key has
// since been replaced or removed, nothing is touched and (true, nil)
// comes back - a paced dealer loop must never play out a hand it
// wasn't started for.
func (b *Blackjack) DealerStep(
	key string,
	hand *BlackjackState,
) (done bool, state *BlackjackState) {
	b.sessions.Lock()
	defer b.sessions.Unlock()

	s, ok := b.sessions.Get(key)
	if !ok || s != hand {
		return true, nil
	}
	if s.Finished {
		b.sessions.Remove(key)
		return true, s
	}

	hv := handValue(s.Dealer)
	if hv.Best > 21 || hv.Best > 17 || (hv.Best == 17 && !hv.Soft) {
		pv := handValue(s.Player).Best
		switch {
		case hv.Best > 21:
			s.Result = BlackjackResultPlayer
		case pv > hv.Best:
			s.Result = BlackjackResultPlayer
		case pv < hv.Best:
			s.Result = BlackjackResultDealer
		default:
			s.Result = BlackjackResultPush
		}
		s.Finished = true
		b.sessions.Remove(key)
		return true, s
	}

	s.Dealer = append(s.Dealer, drawCard(s))
	return false, s
}

// Reset removes the hand at key, reporting whether one existed.
func (b *Blackjack) Reset(key string) bool {
	b.sessions.Lock()
	defer b.sessions.Unlock()
	return b.sessions.Remove(key)
}
