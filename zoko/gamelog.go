package zoko

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// GameLog records one finished game session for the stats API. Rows are
// append-only; the live session lives in the in-memory stores until it
// ends.
//
//nolint:lll // struct tags can't be split
type GameLog struct {
	ModelUintID
	Game      string `json:"game" gorm:"index;not null"`
	GuildID   string `json:"guild_id" gorm:"index"`
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id" gorm:"index;not null"`

	// OpponentID is empty for solo games, "bot" for games against the
	// bot
	OpponentID string `json:"opponent_id,omitempty"`

	// Outcome is game-specific: win/loss/tie for XOX and TKM,
	// player/dealer/push for blackjack, success/fail for wordle
	Outcome string `json:"outcome"`

	// Detail carries small game-specific extras (final score, attempts
	// used)
	Detail string `json:"detail,omitempty"`

	StartedAt  int64 `json:"started_at"`
	FinishedAt int64 `json:"finished_at"`
	ModelUnixTime
}

func (g GameLog) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("id", uint64(g.ID)),
		slog.String("game", g.Game),
		slog.String("user_id", g.UserID),
		slog.String("outcome", g.Outcome),
	)
}

// GameStats is the aggregate shape served by the stats API.
type GameStats struct {
	Game  string `json:"game"`
	Total int64  `json:"total"`
}

// recordGameLog persists a finished game. Failures are logged, not
// surfaced - a stats row must never break a game interaction.
func (z *Zoko) recordGameLog(
	ctx context.Context,
	game, guildID, channelID, userID, opponentID, outcome, detail string,
	startedAt time.Time,
) {
	entry := GameLog{
		Game:       game,
		GuildID:    guildID,
		ChannelID:  channelID,
		UserID:     userID,
		OpponentID: opponentID,
		Outcome:    outcome,
		Detail:     detail,
		StartedAt:  startedAt.UnixMilli(),
		FinishedAt: time.Now().UnixMilli(),
	}
	if err := z.writeDB.Create(ctx, &entry); err != nil {
		z.logger.ErrorContext(
			ctx,
			"error recording game log",
			slog.Any("game_log", entry),
			slog.Any("error", err),
		)
	}
}

// gameStats returns per-game totals, most-played first.
func gameStats(ctx context.Context, db *gorm.DB) ([]GameStats, error) {
	var stats []GameStats
	err := db.WithContext(ctx).Model(&GameLog{}).
		Select("game, count(*) as total").
		Group("game").
		Order("total desc").
		Scan(&stats).Error
	return stats, err
}
