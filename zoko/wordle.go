package zoko

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

const (
	WordleMinLength       = 5
	WordleMaxLength       = 7
	DefaultWordleAttempts = 6
)

// LetterMark is the per-letter feedback for one guessed position.
type LetterMark string

const (
	LetterCorrect LetterMark = "correct"
	LetterPresent LetterMark = "present"
	LetterAbsent  LetterMark = "absent"
)

// GuessRow is one evaluated guess.
type GuessRow struct {
	Letters []string     `json:"letters"`
	Marks   []LetterMark `json:"marks"`
}

func (r GuessRow) allCorrect() bool {
	for _, m := range r.Marks {
		if m != LetterCorrect {
			return false
		}
	}
	return true
}

// WordleState is one live Wordle game. Invariant: len(Rows) never
// exceeds MaxAttempts, and Finished flips the instant a row is
// all-correct (Success) or the attempt limit is reached.
type WordleState struct {
	Target      string     `json:"-"`
	Length      int        `json:"length"`
	MaxAttempts int        `json:"max_attempts"`
	Rows        []GuessRow `json:"rows"`
	Finished    bool       `json:"finished"`
	Success     bool       `json:"success"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Wordle manages per-channel Wordle games over a fixed Turkish
// dictionary.
type Wordle struct {
	sessions *SessionStore[*WordleState]
	rng      *rand.Rand
}

// NewWordle returns an engine with its own session store. A nil rng
// gets a time-seeded source; tests inject a fixed seed.
func NewWordle(rng *rand.Rand) *Wordle {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Wordle{
		sessions: NewSessionStore[*WordleState](),
		rng:      rng,
	}
}

func (w *Wordle) Sessions() *SessionStore[*WordleState] {
	return w.sessions
}

// Start picks a random target word of the requested length (clamped to
// [5,7]) and creates a fresh game at key, replacing any existing
// session.
func (w *Wordle) Start(key string, length int) *WordleState {
	w.sessions.Lock()
	defer w.sessions.Unlock()

	if length < WordleMinLength {
		length = WordleMinLength
	}
	if length > WordleMaxLength {
		length = WordleMaxLength
	}

	target := normalizeTurkish(pickWord(w.rng, length))
	s := &WordleState{
		Target:      target,
		Length:      len([]rune(target)),
		MaxAttempts: DefaultWordleAttempts,
		CreatedAt:   time.Now().UTC(),
	}
	w.sessions.Put(key, s)
	return s
}

// Get returns the live game at key, or nil.
func (w *Wordle) Get(key string) *WordleState {
	w.sessions.Lock()
	defer w.sessions.Unlock()
	s, _ := w.sessions.Get(key)
	return s
}

// Cancel removes the game at key, reporting whether one existed.
func (w *Wordle) Cancel(key string) bool {
	w.sessions.Lock()
	defer w.sessions.Unlock()
	return w.sessions.Remove(key)
}

// Guess scores rawGuess against the target and appends the row.
// Guesses of the wrong length are rejected without mutating state.
// Out-of-dictionary guesses of the correct length are accepted and
// scored - dictionary membership is informational only.
func (w *Wordle) Guess(key, rawGuess string) (*WordleState, GuessRow, error) {
	w.sessions.Lock()
	defer w.sessions.Unlock()

	s, ok := w.sessions.Get(key)
	if !ok {
		return nil, GuessRow{}, ErrNoActiveGame
	}
	if s.Finished {
		return s, GuessRow{}, ErrGameFinished
	}
	guess := normalizeTurkish(rawGuess)
	if len([]rune(guess)) != s.Length {
		return s, GuessRow{}, ErrWrongGuessLength
	}

	row := evaluateGuess(guess, s.Target)
	s.Rows = append(s.Rows, row)

	if row.allCorrect() {
		s.Finished = true
		s.Success = true
	} else if len(s.Rows) >= s.MaxAttempts {
		s.Finished = true
	}

	return s, row, nil
}

// evaluateGuess marks each guessed letter with two-pass duplicate
// accounting: pass one marks exact-position matches and tallies the
// unmatched target letters, pass two consumes that tally for
// wrong-position letters. A letter appearing once in the target is
// therefore marked at most once across the guess.
func evaluateGuess(guess, target string) GuessRow {
	gr := []rune(guess)
	tr := []rune(target)

	row := GuessRow{
		Letters: make([]string, len(gr)),
		Marks:   make([]LetterMark, len(gr)),
	}
	remaining := map[rune]int{}

	for i, g := range gr {
		row.Letters[i] = string(g)
		if i < len(tr) && g == tr[i] {
			row.Marks[i] = LetterCorrect
		} else if i < len(tr) {
			remaining[tr[i]]++
		}
	}
	for i, g := range gr {
		if row.Marks[i] == LetterCorrect {
			continue
		}
		if remaining[g] > 0 {
			row.Marks[i] = LetterPresent
			remaining[g]--
		} else {
			row.Marks[i] = LetterAbsent
		}
	}
	return row
}

// normalizeTurkish trims and lowercases using Turkish casing rules, so
// dotted/dotless i fold the way players expect ("İ" -> "i", "I" -> "ı").
func normalizeTurkish(s string) string {
	return strings.ToLowerSpecial(unicode.TurkishCase, strings.TrimSpace(s))
}
