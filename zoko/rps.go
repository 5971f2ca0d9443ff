package zoko

import (
	"math/rand"
	"time"
)

// RpsChoice is one throw in taş-kağıt-makas.
type RpsChoice string

const (
	RpsRock     RpsChoice = "rock"
	RpsPaper    RpsChoice = "paper"
	RpsScissors RpsChoice = "scissors"
)

var rpsChoices = []RpsChoice{RpsRock, RpsPaper, RpsScissors}

// ParseRpsChoice validates a raw choice string from a component
// custom ID.
func ParseRpsChoice(raw string) (RpsChoice, bool) {
	switch RpsChoice(raw) {
	case RpsRock, RpsPaper, RpsScissors:
		return RpsChoice(raw), true
	}
	return "", false
}

// RpsRound is one scored round. Tie rounds are removed from the match
// history entirely and replayed under the same round number.
type RpsRound struct {
	Round   int       `json:"round"`
	ChoiceX RpsChoice `json:"choice_x"`
	ChoiceO RpsChoice `json:"choice_o"`
	Winner  Winner    `json:"winner"`
}

// RpsState is one live best-of-N match. Invariant: Rounds never
// contains a tie round, and a tie never advances CurrentRound or
// either score.
type RpsState struct {
	Token        string      `json:"token"`
	PlayerX      Player      `json:"player_x"`
	PlayerO      Player      `json:"player_o"`
	BestOf       int         `json:"best_of"`
	CurrentRound int         `json:"current_round"`
	ScoreX       int         `json:"score_x"`
	ScoreO       int         `json:"score_o"`
	Finished     bool        `json:"finished"`
	Winner       Winner      `json:"winner"`
	Rounds       []*RpsRound `json:"rounds"`
	CreatedAt    time.Time   `json:"created_at"`
}

// VersusBot reports whether the O seat is AI-controlled.
func (s *RpsState) VersusBot() bool {
	return s.PlayerO.Bot
}

// scoreToWin is the strict majority needed to take the match.
func (s *RpsState) scoreToWin() int {
	return s.BestOf/2 + 1
}

func (s *RpsState) currentRoundEntry() *RpsRound {
	for _, r := range s.Rounds {
		if r.Round == s.CurrentRound {
			return r
		}
	}
	r := &RpsRound{Round: s.CurrentRound}
	s.Rounds = append(s.Rounds, r)
	return r
}

// RpsResult is what SubmitChoice hands back to the dispatcher. Ready
// is true once both choices for the round were present and resolved;
// on a tie the round is discarded and Round.Winner is WinnerTie so the
// caller can re-prompt both sides for the same round number.
type RpsResult struct {
	State *RpsState
	Round *RpsRound
	Ready bool
}

// RockPaperScissors manages per-channel matches. Besides the context
// key, every match is reachable through a short opaque token so
// per-user ephemeral choice buttons don't need to carry the channel
// context.
type RockPaperScissors struct {
	sessions *SessionStore[*RpsState]
	// token -> context key, guarded by the sessions lock
	tokens map[string]string
	rng    *rand.Rand
}

// NewRockPaperScissors returns an engine with its own session store.
// A nil rng gets a time-seeded source; tests inject a fixed seed.
func NewRockPaperScissors(rng *rand.Rand) *RockPaperScissors {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RockPaperScissors{
		sessions: NewSessionStore[*RpsState](),
		tokens:   map[string]string{},
		rng:      rng,
	}
}

func (r *RockPaperScissors) Sessions() *SessionStore[*RpsState] {
	return r.sessions
}

// Start creates a fresh match at key, replacing any existing session
// and its token mapping. bestOf is clamped to 3 unless it is 5.
func (r *RockPaperScissors) Start(
	key string,
	playerX, playerO Player,
	bestOf int,
	token string,
) *RpsState {
	r.sessions.Lock()
	defer r.sessions.Unlock()

	if bestOf != 5 {
		bestOf = 3
	}
	if old, ok := r.sessions.Get(key); ok {
		delete(r.tokens, old.Token)
	}
	s := &RpsState{
		Token:        token,
		PlayerX:      playerX,
		PlayerO:      playerO,
		BestOf:       bestOf,
		CurrentRound: 1,
		CreatedAt:    time.Now().UTC(),
	}
	r.sessions.Put(key, s)
	r.tokens[token] = key
	return s
}

// Get returns the live match at key, or nil.
func (r *RockPaperScissors) Get(key string) *RpsState {
	r.sessions.Lock()
	defer r.sessions.Unlock()
	s, _ := r.sessions.Get(key)
	return s
}

// GetByToken resolves a match through its invitation token, or nil.
func (r *RockPaperScissors) GetByToken(token string) *RpsState {
	r.sessions.Lock()
	defer r.sessions.Unlock()
	s, _ := r.getByToken(token)
	return s
}

func (r *RockPaperScissors) getByToken(token string) (*RpsState, bool) {
	key, ok := r.tokens[token]
	if !ok {
		return nil, false
	}
	return r.sessions.Get(key)
}

// Cancel removes the match at key and its token mapping.
func (r *RockPaperScissors) Cancel(key string) bool {
	r.sessions.Lock()
	defer r.sessions.Unlock()
	if s, ok := r.sessions.Get(key); ok {
		delete(r.tokens, s.Token)
	}
	return r.sessions.Remove(key)
}

// SubmitChoice records userID's throw for the current round of the
// match behind token. When the O seat is a bot, its throw is picked
// uniformly at random in the same transition, so one human input
// always resolves the round. Once both throws are present the round
// is resolved: ties are discarded and replayed without counting,
// decisions score and either finish the match (strict majority, or
// round counter exhausted) or advance CurrentRound.
func (r *RockPaperScissors) SubmitChoice(
	token, userID string,
	choice RpsChoice,
) (RpsResult, error) {
	r.sessions.Lock()
	defer r.sessions.Unlock()

	s, ok := r.getByToken(token)
	if !ok {
		return RpsResult{}, ErrNoActiveGame
	}
	if s.Finished {
		return RpsResult{State: s}, ErrGameFinished
	}

	round := s.currentRoundEntry()
	switch {
	case s.PlayerX.Is(userID):
		if round.ChoiceX != "" {
			return RpsResult{State: s, Round: round}, ErrAlreadyChosen
		}
		round.ChoiceX = choice
	case s.PlayerO.Is(userID):
		if round.ChoiceO != "" {
			return RpsResult{State: s, Round: round}, ErrAlreadyChosen
		}
		round.ChoiceO = choice
	default:
		return RpsResult{State: s}, ErrNotAParticipant
	}

	if s.PlayerO.Bot && round.ChoiceO == "" {
		round.ChoiceO = rpsChoices[r.rng.Intn(len(rpsChoices))]
	}

	if round.ChoiceX == "" || round.ChoiceO == "" {
		return RpsResult{State: s, Round: round}, nil
	}

	round.Winner = whoWins(round.ChoiceX, round.ChoiceO)
	if round.Winner == WinnerTie {
		// Replay the round: drop it from history, keep the round
		// counter and scores untouched.
		for i, rr := range s.Rounds {
			if rr == round {
				s.Rounds = append(s.Rounds[:i], s.Rounds[i+1:]...)
				break
			}
		}
		return RpsResult{State: s, Round: round, Ready: true}, nil
	}

	if round.Winner == WinnerX {
		s.ScoreX++
	} else {
		s.ScoreO++
	}

	need := s.scoreToWin()
	if s.ScoreX >= need || s.ScoreO >= need || s.CurrentRound >= s.BestOf {
		s.Finished = true
		switch {
		case s.ScoreX > s.ScoreO:
			s.Winner = WinnerX
		case s.ScoreO > s.ScoreX:
			s.Winner = WinnerO
		default:
			s.Winner = WinnerTie
		}
	} else {
		s.CurrentRound++
	}
	return RpsResult{State: s, Round: round, Ready: true}, nil
}

// whoWins resolves a single round by the canonical precedence: rock
// beats scissors, paper beats rock, scissors beats paper.
func whoWins(x, o RpsChoice) Winner {
	if x == o {
		return WinnerTie
	}
	switch {
	case x == RpsRock && o == RpsScissors,
		x == RpsPaper && o == RpsRock,
		x == RpsScissors && o == RpsPaper:
		return WinnerX
	}
	return WinnerO
}
