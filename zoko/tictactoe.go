package zoko

import (
	"time"
)

// tttLines are the 8 winning lines of the 3x3 board, indexed 0..8
// row-major.
var tttLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// tttBotPreference orders the center, corner and edge cells the bot
// falls back to when it has no win or block available.
var tttBotPreference = []int{4, 0, 2, 6, 8, 1, 3, 5, 7}

// TttState is one live XOX game. The board is 9 cells, row-major; X
// always moves first. Invariant: Winner is set from one of the 8
// winning lines before a full board is declared a tie.
type TttState struct {
	Board     [9]Mark   `json:"board"`
	Turn      Mark      `json:"turn"`
	PlayerX   Player    `json:"player_x"`
	PlayerO   Player    `json:"player_o"`
	Finished  bool      `json:"finished"`
	Winner    Winner    `json:"winner"`
	CreatedAt time.Time `json:"created_at"`
}

// VersusBot reports whether the O seat is AI-controlled.
func (s *TttState) VersusBot() bool {
	return s.PlayerO.Bot
}

func (s *TttState) currentPlayer() Player {
	if s.Turn == MarkX {
		return s.PlayerX
	}
	return s.PlayerO
}

// TicTacToe manages per-channel XOX games. Transitions are synchronous
// and run entirely under the session-store lock, including the bot's
// reply move.
type TicTacToe struct {
	sessions *SessionStore[*TttState]
}

func NewTicTacToe() *TicTacToe {
	return &TicTacToe{sessions: NewSessionStore[*TttState]()}
}

func (t *TicTacToe) Sessions() *SessionStore[*TttState] {
	return t.sessions
}

// Start creates a fresh game at key with an empty board and X to move,
// replacing any existing session at that key.
func (t *TicTacToe) Start(key string, playerX, playerO Player) *TttState {
	t.sessions.Lock()
	defer t.sessions.Unlock()

	s := &TttState{
		Turn:      MarkX,
		PlayerX:   playerX,
		PlayerO:   playerO,
		CreatedAt: time.Now().UTC(),
	}
	t.sessions.Put(key, s)
	return s
}

// Get returns the live game at key, or nil.
func (t *TicTacToe) Get(key string) *TttState {
	t.sessions.Lock()
	defer t.sessions.Unlock()
	s, _ := t.sessions.Get(key)
	return s
}

// Cancel removes the game at key, reporting whether one existed.
func (t *TicTacToe) Cancel(key string) bool {
	t.sessions.Lock()
	defer t.sessions.Unlock()
	return t.sessions.Remove(key)
}

// Move applies byUserID's move at index. Rejections (no session, game
// over, bad index, wrong turn, occupied cell) leave the board
// untouched. After an accepted move, while the next seat belongs to
// the bot, the bot's move is computed and applied in the same
// transition - a single call can mutate the board twice before
// returning.
func (t *TicTacToe) Move(key, byUserID string, index int) (*TttState, error) {
	t.sessions.Lock()
	defer t.sessions.Unlock()

	s, ok := t.sessions.Get(key)
	if !ok {
		return nil, ErrNoActiveGame
	}
	if s.Finished {
		return s, ErrGameFinished
	}
	if index < 0 || index > 8 {
		return s, ErrInvalidMove
	}

	expected := s.currentPlayer()
	if expected.Bot {
		return s, ErrNotYourTurn
	}
	if !expected.Is(byUserID) {
		if s.PlayerX.Is(byUserID) || s.PlayerO.Is(byUserID) {
			return s, ErrNotYourTurn
		}
		return s, ErrNotAParticipant
	}
	if s.Board[index] != MarkNone {
		return s, ErrCellOccupied
	}

	s.Board[index] = s.Turn
	evaluateTttEnd(s)
	if !s.Finished {
		s.Turn = s.Turn.other()
	}

	// Apply bot transitions until the turn is back with a human or the
	// game ends.
	for !s.Finished && s.currentPlayer().Bot {
		idx := chooseBotMove(s.Board, s.Turn)
		if idx < 0 {
			break
		}
		s.Board[idx] = s.Turn
		evaluateTttEnd(s)
		if !s.Finished {
			s.Turn = s.Turn.other()
		}
	}

	return s, nil
}

func evaluateTttEnd(s *TttState) {
	if w := computeWinner(s.Board); w != WinnerNone {
		s.Finished = true
		s.Winner = w
		return
	}
	for _, c := range s.Board {
		if c == MarkNone {
			return
		}
	}
	s.Finished = true
	s.Winner = WinnerTie
}

// computeWinner returns the mark holding one of the 8 winning lines,
// or WinnerNone.
func computeWinner(board [9]Mark) Winner {
	for _, line := range tttLines {
		a := board[line[0]]
		if a != MarkNone && a == board[line[1]] && a == board[line[2]] {
			return a.winner()
		}
	}
	return WinnerNone
}

// chooseBotMove picks the bot's cell by priority: complete a winning
// line, block the opponent's winning line, take the center, a corner,
// then an edge. Returns -1 on a full board.
func chooseBotMove(board [9]Mark, self Mark) int {
	if idx := findWinningMove(board, self); idx >= 0 {
		return idx
	}
	if idx := findWinningMove(board, self.other()); idx >= 0 {
		return idx
	}
	for _, idx := range tttBotPreference {
		if board[idx] == MarkNone {
			return idx
		}
	}
	return -1
}

// findWinningMove returns the empty cell completing a line already
// holding two of mark, or -1.
func findWinningMove(board [9]Mark, mark Mark) int {
	for _, line := range tttLines {
		empty := -1
		count := 0
		for _, idx := range line {
			switch board[idx] {
			case mark:
				count++
			case MarkNone:
				empty = idx
			}
		}
		if count == 2 && empty >= 0 {
			return empty
		}
	}
	return -1
}
