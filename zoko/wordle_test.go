package zoko

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// putWordleState plants a game with a known target word.
func putWordleState(w *Wordle, key, target string) *WordleState {
	w.sessions.Lock()
	defer w.sessions.Unlock()
	s := &WordleState{
		Target:      normalizeTurkish(target),
		Length:      len([]rune(target)),
		MaxAttempts: DefaultWordleAttempts,
	}
	w.sessions.Put(key, s)
	return s
}

func TestNormalizeTurkish(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"KALEM", "kalem"},
		{"  kalem  ", "kalem"},
		{"İZMİR", "izmir"},
		{"ISPARTA", "ısparta"},
		{"Zirve", "zirve"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeTurkish(tt.in), "input %q", tt.in)
	}
}

func TestWordleStartClampsLength(t *testing.T) {
	w := NewWordle(rand.New(rand.NewSource(1)))

	s := w.Start("k", 3)
	assert.Equal(t, WordleMinLength, s.Length)

	s = w.Start("k", 12)
	assert.Equal(t, WordleMaxLength, s.Length)

	s = w.Start("k", 6)
	assert.Equal(t, 6, s.Length)
	assert.Equal(t, DefaultWordleAttempts, s.MaxAttempts)
	assert.Len(t, []rune(s.Target), 6)
}

func TestWordleExactGuessWins(t *testing.T) {
	w := NewWordle(rand.New(rand.NewSource(1)))
	putWordleState(w, "k", "kalem")

	s, row, err := w.Guess("k", "KALEM")
	require.NoError(t, err)
	assert.True(t, s.Finished)
	assert.True(t, s.Success)
	for _, m := range row.Marks {
		assert.Equal(t, LetterCorrect, m)
	}
}

// A letter occurring once in the target must be marked at most once in
// the guess: guessing "terzi" against "zirve" marks the first 'z'
// present and leaves position-matching to the second pass.
func TestWordleDuplicateLetterAccounting(t *testing.T) {
	w := NewWordle(rand.New(rand.NewSource(1)))
	putWordleState(w, "k", "zirve")

	_, row, err := w.Guess("k", "terzi")
	require.NoError(t, err)

	// t-e-r-z-i vs z-i-r-v-e
	assert.Equal(
		t,
		[]LetterMark{
			LetterAbsent,  // t: not in target
			LetterPresent, // e: in target, wrong spot
			LetterCorrect, // r: exact position
			LetterPresent, // z: in target, wrong spot
			LetterPresent, // i: in target, wrong spot
		},
		row.Marks,
	)
}

func TestWordleRepeatedGuessLetterConsumesTally(t *testing.T) {
	w := NewWordle(rand.New(rand.NewSource(1)))
	putWordleState(w, "k", "kalem")

	// "madam" vs "kalem": both a(1) and m(4) match in place, so the
	// duplicate a(3) and m(0) find nothing left to consume.
	_, row, err := w.Guess("k", "madam")
	require.NoError(t, err)
	assert.Equal(
		t,
		[]LetterMark{
			LetterAbsent,
			LetterCorrect,
			LetterAbsent,
			LetterAbsent,
			LetterCorrect,
		},
		row.Marks,
	)
}

func TestWordleWrongLengthRejected(t *testing.T) {
	w := NewWordle(rand.New(rand.NewSource(1)))
	putWordleState(w, "k", "kalem")

	s, _, err := w.Guess("k", "kale")
	assert.ErrorIs(t, err, ErrWrongGuessLength)
	assert.Empty(t, s.Rows)
}

func TestWordleMaxAttemptsEndsGame(t *testing.T) {
	w := NewWordle(rand.New(rand.NewSource(1)))
	putWordleState(w, "k", "kalem")

	var s *WordleState
	var err error
	for i := 0; i < DefaultWordleAttempts; i++ {
		s, _, err = w.Guess("k", "zirve")
		require.NoError(t, err)
	}
	assert.True(t, s.Finished)
	assert.False(t, s.Success)
	assert.Len(t, s.Rows, DefaultWordleAttempts)

	_, _, err = w.Guess("k", "zirve")
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestWordleGuessNormalizesTurkishCase(t *testing.T) {
	w := NewWordle(rand.New(rand.NewSource(1)))
	putWordleState(w, "k", "zirve")

	// "ZİRVE" must fold to "zirve", not "zi̇rve"/"zIrve".
	s, _, err := w.Guess("k", "ZİRVE")
	require.NoError(t, err)
	assert.True(t, s.Success)
}

func TestWordleNoActiveGame(t *testing.T) {
	w := NewWordle(rand.New(rand.NewSource(1)))
	_, _, err := w.Guess("nope", "kalem")
	assert.ErrorIs(t, err, ErrNoActiveGame)
}

func TestWordleCancel(t *testing.T) {
	w := NewWordle(rand.New(rand.NewSource(1)))
	w.Start("k", 5)
	assert.True(t, w.Cancel("k"))
	assert.False(t, w.Cancel("k"))
}

func TestDictionaryWordsAreWellFormed(t *testing.T) {
	for _, length := range []int{5, 6, 7} {
		words := wordsForLength(length)
		require.NotEmpty(t, words, "no words of length %d", length)
		for _, word := range words {
			assert.Len(
				t, []rune(word), length,
				"word %q has the wrong length", word,
			)
			assert.Equal(
				t, normalizeTurkish(word), word,
				"word %q is not normalized", word,
			)
			assert.True(t, InDictionary(word))
		}
	}
}
