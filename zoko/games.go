package zoko

import (
	"errors"
	"fmt"
)

// BotPlayerID is the sentinel the slash-command layer uses for an
// AI-controlled seat. Inside the engines a Player carries an explicit
// Bot flag instead, so nothing downstream string-compares against it.
const BotPlayerID = "bot"

// Game transition errors. Engines return these for expected domain
// violations; they are mapped to short user-facing messages at the
// command-handler boundary and never crash the process.
var (
	ErrNoActiveGame     = errors.New("no active game for this context")
	ErrGameFinished     = errors.New("game already finished")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNotAParticipant  = errors.New("not a participant in this game")
	ErrInvalidMove      = errors.New("invalid move")
	ErrCellOccupied     = errors.New("cell already occupied")
	ErrAlreadyChosen    = errors.New("choice already made for this round")
	ErrWrongGuessLength = errors.New("guess has the wrong length")
)

// Player identifies one seat in a two-player game. IDs are opaque
// strings (Discord snowflakes); the engines never validate them
// against a directory.
type Player struct {
	ID  string `json:"id"`
	Bot bool   `json:"bot"`
}

// PlayerFromID converts a command-layer player ID into a Player,
// honoring the "bot" sentinel.
func PlayerFromID(id string) Player {
	if id == BotPlayerID {
		return Player{Bot: true}
	}
	return Player{ID: id}
}

// Is reports whether the given user ID occupies this seat. Bot seats
// match no user.
func (p Player) Is(userID string) bool {
	return !p.Bot && p.ID == userID
}

func (p Player) String() string {
	if p.Bot {
		return BotPlayerID
	}
	return p.ID
}

// Winner is the outcome of a two-player game or round.
type Winner string

const (
	WinnerNone Winner = ""
	WinnerX    Winner = "X"
	WinnerO    Winner = "O"
	WinnerTie  Winner = "tie"
)

func (w Winner) String() string {
	return string(w)
}

// Mark is one side of a two-player board game.
type Mark string

const (
	MarkNone Mark = ""
	MarkX    Mark = "X"
	MarkO    Mark = "O"
)

func (m Mark) other() Mark {
	if m == MarkX {
		return MarkO
	}
	return MarkX
}

func (m Mark) winner() Winner {
	switch m {
	case MarkX:
		return WinnerX
	case MarkO:
		return WinnerO
	default:
		return WinnerNone
	}
}

// gameName values used in logs and GameLog rows.
const (
	gameBlackjack = "blackjack"
	gameXOX       = "xox"
	gameRPS       = "tkm"
	gameWordle    = "wordle"
)

func validGameName(name string) error {
	switch name {
	case gameBlackjack, gameXOX, gameRPS, gameWordle:
		return nil
	default:
		return fmt.Errorf("unknown game: %q", name)
	}
}
