package zoko

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhoWins(t *testing.T) {
	tests := []struct {
		x, o RpsChoice
		want Winner
	}{
		{RpsRock, RpsRock, WinnerTie},
		{RpsPaper, RpsPaper, WinnerTie},
		{RpsScissors, RpsScissors, WinnerTie},
		{RpsRock, RpsScissors, WinnerX},
		{RpsPaper, RpsRock, WinnerX},
		{RpsScissors, RpsPaper, WinnerX},
		{RpsScissors, RpsRock, WinnerO},
		{RpsRock, RpsPaper, WinnerO},
		{RpsPaper, RpsScissors, WinnerO},
	}
	for _, tt := range tests {
		assert.Equal(
			t, tt.want, whoWins(tt.x, tt.o),
			"%s vs %s", tt.x, tt.o,
		)
	}
}

func TestParseRpsChoice(t *testing.T) {
	for _, raw := range []string{"rock", "paper", "scissors"} {
		choice, ok := ParseRpsChoice(raw)
		assert.True(t, ok)
		assert.Equal(t, RpsChoice(raw), choice)
	}
	_, ok := ParseRpsChoice("lizard")
	assert.False(t, ok)
}

func TestRpsStartClampsBestOf(t *testing.T) {
	r := NewRockPaperScissors(rand.New(rand.NewSource(1)))
	s := r.Start("k", Player{ID: "x"}, Player{ID: "o"}, 7, "t1")
	assert.Equal(t, 3, s.BestOf)

	s = r.Start("k", Player{ID: "x"}, Player{ID: "o"}, 5, "t2")
	assert.Equal(t, 5, s.BestOf)

	// The first token was cleaned up with the replaced session.
	assert.Nil(t, r.GetByToken("t1"))
	assert.Same(t, s, r.GetByToken("t2"))
}

func TestRpsRoundFlow(t *testing.T) {
	r := NewRockPaperScissors(rand.New(rand.NewSource(1)))
	r.Start("k", Player{ID: "x"}, Player{ID: "o"}, 3, "tok")

	// First throw of the round: not ready yet.
	result, err := r.SubmitChoice("tok", "x", RpsRock)
	require.NoError(t, err)
	assert.False(t, result.Ready)

	// Same player can't pick twice in one round.
	_, err = r.SubmitChoice("tok", "x", RpsPaper)
	assert.ErrorIs(t, err, ErrAlreadyChosen)

	// Outsiders are rejected.
	_, err = r.SubmitChoice("tok", "stranger", RpsPaper)
	assert.ErrorIs(t, err, ErrNotAParticipant)

	// Second throw resolves the round: X's rock beats O's scissors.
	result, err = r.SubmitChoice("tok", "o", RpsScissors)
	require.NoError(t, err)
	assert.True(t, result.Ready)
	assert.Equal(t, WinnerX, result.Round.Winner)
	assert.Equal(t, 1, result.State.ScoreX)
	assert.Equal(t, 2, result.State.CurrentRound)
	assert.False(t, result.State.Finished)
}

func TestRpsTieReplaysRound(t *testing.T) {
	r := NewRockPaperScissors(rand.New(rand.NewSource(1)))
	r.Start("k", Player{ID: "x"}, Player{ID: "o"}, 3, "tok")

	_, err := r.SubmitChoice("tok", "x", RpsRock)
	require.NoError(t, err)
	result, err := r.SubmitChoice("tok", "o", RpsRock)
	require.NoError(t, err)

	assert.True(t, result.Ready)
	assert.Equal(t, WinnerTie, result.Round.Winner)

	s := result.State
	// The tie round vanished from history and nothing advanced.
	assert.Empty(t, s.Rounds)
	assert.Equal(t, 1, s.CurrentRound)
	assert.Equal(t, 0, s.ScoreX)
	assert.Equal(t, 0, s.ScoreO)

	// Both players throw again for the same round number.
	_, err = r.SubmitChoice("tok", "x", RpsPaper)
	require.NoError(t, err)
	result, err = r.SubmitChoice("tok", "o", RpsRock)
	require.NoError(t, err)
	assert.Equal(t, WinnerX, result.Round.Winner)
	assert.Equal(t, 1, result.State.ScoreX)
}

func TestRpsEarlyFinishAtMajority(t *testing.T) {
	r := NewRockPaperScissors(rand.New(rand.NewSource(1)))
	r.Start("k", Player{ID: "x"}, Player{ID: "o"}, 3, "tok")

	// X wins rounds 1 and 2; the third round never happens.
	for round := 0; round < 2; round++ {
		_, err := r.SubmitChoice("tok", "x", RpsRock)
		require.NoError(t, err)
		result, err := r.SubmitChoice("tok", "o", RpsScissors)
		require.NoError(t, err)
		require.True(t, result.Ready)
	}

	s := r.GetByToken("tok")
	require.NotNil(t, s)
	assert.True(t, s.Finished)
	assert.Equal(t, WinnerX, s.Winner)
	assert.Equal(t, 2, s.ScoreX)
	assert.Equal(t, 0, s.ScoreO)

	_, err := r.SubmitChoice("tok", "x", RpsRock)
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestRpsVersusBotResolvesInOneSubmit(t *testing.T) {
	r := NewRockPaperScissors(rand.New(rand.NewSource(1)))
	r.Start("k", Player{ID: "x"}, PlayerFromID(BotPlayerID), 3, "tok")

	result, err := r.SubmitChoice("tok", "x", RpsRock)
	require.NoError(t, err)
	// The bot's throw is applied in the same transition, so the round
	// always resolves.
	assert.True(t, result.Ready)
	assert.NotEmpty(t, result.Round.ChoiceO)
}

func TestRpsVersusBotMatchTerminates(t *testing.T) {
	// However the bot throws, pumping one choice per round must finish
	// a best-of-3 within a bounded number of submissions (ties replay
	// but don't consume rounds).
	r := NewRockPaperScissors(rand.New(rand.NewSource(42)))
	r.Start("k", Player{ID: "x"}, PlayerFromID(BotPlayerID), 3, "tok")

	for i := 0; i < 200; i++ {
		result, err := r.SubmitChoice("tok", "x", RpsRock)
		require.NoError(t, err)
		if result.State.Finished {
			assert.NotEqual(t, WinnerNone, result.State.Winner)
			return
		}
	}
	t.Fatal("match never finished")
}

func TestRpsUnknownToken(t *testing.T) {
	r := NewRockPaperScissors(rand.New(rand.NewSource(1)))
	_, err := r.SubmitChoice("nope", "x", RpsRock)
	assert.ErrorIs(t, err, ErrNoActiveGame)
}

func TestRpsCancelRemovesToken(t *testing.T) {
	r := NewRockPaperScissors(rand.New(rand.NewSource(1)))
	r.Start("k", Player{ID: "x"}, Player{ID: "o"}, 3, "tok")
	assert.True(t, r.Cancel("k"))
	assert.Nil(t, r.GetByToken("tok"))
	assert.False(t, r.Cancel("k"))
}
