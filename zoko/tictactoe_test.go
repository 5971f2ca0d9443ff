package zoko

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWinner(t *testing.T) {
	tests := []struct {
		name  string
		board [9]Mark
		want  Winner
	}{
		{"empty", [9]Mark{}, WinnerNone},
		{
			"top row X",
			[9]Mark{MarkX, MarkX, MarkX, MarkO, MarkO, "", "", "", ""},
			WinnerX,
		},
		{
			"left column O",
			[9]Mark{MarkO, MarkX, MarkX, MarkO, MarkX, "", MarkO, "", ""},
			WinnerO,
		},
		{
			"diagonal X",
			[9]Mark{MarkX, MarkO, "", MarkO, MarkX, "", "", "", MarkX},
			WinnerX,
		},
		{
			"anti-diagonal O",
			[9]Mark{MarkX, MarkX, MarkO, MarkX, MarkO, "", MarkO, "", ""},
			WinnerO,
		},
		{
			"full board no line",
			[9]Mark{
				MarkX, MarkO, MarkX,
				MarkX, MarkO, MarkO,
				MarkO, MarkX, MarkX,
			},
			WinnerNone,
		},
	}
	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				assert.Equal(t, tt.want, computeWinner(tt.board))
			},
		)
	}
}

func TestChooseBotMovePriorities(t *testing.T) {
	// Winning beats blocking: O can complete 0-1-2 but X threatens
	// 6-7-8.
	board := [9]Mark{
		MarkO, MarkO, "",
		"", "", "",
		MarkX, MarkX, "",
	}
	assert.Equal(t, 2, chooseBotMove(board, MarkO))

	// No win available: block the opponent's line.
	board = [9]Mark{
		"", "", "",
		"", "", "",
		MarkX, MarkX, "",
	}
	assert.Equal(t, 8, chooseBotMove(board, MarkO))

	// Nothing to win or block: center first.
	board = [9]Mark{MarkX, "", "", "", "", "", "", "", ""}
	assert.Equal(t, 4, chooseBotMove(board, MarkO))

	// Center taken: first free corner.
	board = [9]Mark{MarkX, "", "", "", MarkO, "", "", "", ""}
	assert.Equal(t, 2, chooseBotMove(board, MarkX))

	// Full board.
	board = [9]Mark{
		MarkX, MarkO, MarkX,
		MarkX, MarkO, MarkO,
		MarkO, MarkX, MarkX,
	}
	assert.Equal(t, -1, chooseBotMove(board, MarkO))
}

func TestTicTacToeMoveValidation(t *testing.T) {
	ttt := NewTicTacToe()

	_, err := ttt.Move("nope", "u1", 0)
	assert.ErrorIs(t, err, ErrNoActiveGame)

	ttt.Start("k", Player{ID: "u1"}, Player{ID: "u2"})

	_, err = ttt.Move("k", "u1", 9)
	assert.ErrorIs(t, err, ErrInvalidMove)

	_, err = ttt.Move("k", "u2", 0)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	_, err = ttt.Move("k", "stranger", 0)
	assert.ErrorIs(t, err, ErrNotAParticipant)

	_, err = ttt.Move("k", "u1", 0)
	require.NoError(t, err)

	_, err = ttt.Move("k", "u2", 0)
	assert.ErrorIs(t, err, ErrCellOccupied)
}

func TestTicTacToeTwoHumans(t *testing.T) {
	ttt := NewTicTacToe()
	ttt.Start("k", Player{ID: "x"}, Player{ID: "o"})

	// X: 0, O: 3, X: 1, O: 4, X: 2 -> X wins the top row.
	moves := []struct {
		user  string
		index int
	}{
		{"x", 0}, {"o", 3}, {"x", 1}, {"o", 4},
	}
	for _, m := range moves {
		_, err := ttt.Move("k", m.user, m.index)
		require.NoError(t, err)
	}
	s, err := ttt.Move("k", "x", 2)
	require.NoError(t, err)
	assert.True(t, s.Finished)
	assert.Equal(t, WinnerX, s.Winner)

	_, err = ttt.Move("k", "o", 5)
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestTicTacToeVersusBotRepliesImmediately(t *testing.T) {
	ttt := NewTicTacToe()
	s := ttt.Start("k", Player{ID: "u1"}, PlayerFromID(BotPlayerID))
	require.True(t, s.VersusBot())

	s, err := ttt.Move("k", "u1", 0)
	require.NoError(t, err)

	// The bot moved in the same transition: two cells filled, turn back
	// with the human.
	filled := 0
	for _, c := range s.Board {
		if c != MarkNone {
			filled++
		}
	}
	assert.Equal(t, 2, filled)
	assert.Equal(t, MarkX, s.Turn)
	// Center is the bot's first preference.
	assert.Equal(t, MarkO, s.Board[4])
}

func TestTicTacToeBotBlocksThreat(t *testing.T) {
	ttt := NewTicTacToe()
	ttt.Start("k", Player{ID: "u1"}, PlayerFromID(BotPlayerID))

	// u1: 0, bot: 4 (center). u1: 1 -> threatens 0-1-2; bot must take 2.
	_, err := ttt.Move("k", "u1", 0)
	require.NoError(t, err)
	s, err := ttt.Move("k", "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, MarkO, s.Board[2])
	assert.False(t, s.Finished)
}

func TestTicTacToeBotTakesWin(t *testing.T) {
	ttt := NewTicTacToe()
	ttt.Start("k", Player{ID: "u1"}, PlayerFromID(BotPlayerID))

	// Plant a position where O (bot) has two in a row and it's X's
	// move; after X plays a harmless cell the bot must win, not block.
	s := ttt.Get("k")
	ttt.Sessions().Lock()
	s.Board = [9]Mark{
		MarkO, MarkO, "",
		MarkX, MarkX, "",
		"", "", "",
	}
	s.Turn = MarkX
	ttt.Sessions().Unlock()

	s, err := ttt.Move("k", "u1", 8)
	require.NoError(t, err)
	assert.True(t, s.Finished)
	assert.Equal(t, WinnerO, s.Winner)
	assert.Equal(t, MarkO, s.Board[2])
}

func TestTicTacToeMoveOnBotTurnRejected(t *testing.T) {
	ttt := NewTicTacToe()
	ttt.Start("k", PlayerFromID(BotPlayerID), Player{ID: "u1"})

	// X is the bot and moves first; the human can't play into it.
	_, err := ttt.Move("k", "u1", 0)
	assert.ErrorIs(t, err, ErrNotYourTurn)
}

func TestTicTacToeCancel(t *testing.T) {
	ttt := NewTicTacToe()
	ttt.Start("k", Player{ID: "u1"}, Player{ID: "u2"})
	assert.True(t, ttt.Cancel("k"))
	assert.False(t, ttt.Cancel("k"))
	assert.Nil(t, ttt.Get("k"))
}
