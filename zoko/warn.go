package zoko

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// Warning is a moderator-issued warning against a guild member.
//
//nolint:lll // struct tags can't be split
type Warning struct {
	ModelUintID
	GuildID     string `json:"guild_id" gorm:"index:idx_warning_guild_user;not null"`
	UserID      string `json:"user_id" gorm:"index:idx_warning_guild_user;not null"`
	ModeratorID string `json:"moderator_id" gorm:"not null"`
	Reason      string `json:"reason" gorm:"type:string"`
	ModelUnixTime
}

func (w Warning) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("id", uint64(w.ID)),
		slog.String("guild_id", w.GuildID),
		slog.String("user_id", w.UserID),
		slog.String("moderator_id", w.ModeratorID),
	)
}

// Warnings manages moderator warnings for guild members.
type Warnings struct {
	db      *gorm.DB
	writeDB *database
	logger  *slog.Logger
}

func NewWarnings(db *gorm.DB, writeDB *database, logger *slog.Logger) *Warnings {
	if logger == nil {
		logger = slog.Default()
	}
	return &Warnings{
		db:      db,
		writeDB: writeDB,
		logger:  logger.With(loggerNameKey, "warnings"),
	}
}

// Add records a new warning and returns it with its assigned ID.
func (w *Warnings) Add(
	ctx context.Context,
	guildID, userID, moderatorID, reason string,
) (Warning, error) {
	warning := Warning{
		GuildID:     guildID,
		UserID:      userID,
		ModeratorID: moderatorID,
		Reason:      reason,
	}
	if err := w.writeDB.Create(ctx, &warning); err != nil {
		return Warning{}, fmt.Errorf("error creating warning: %w", err)
	}
	w.logger.InfoContext(ctx, "warning added", slog.Any("warning", warning))
	return warning, nil
}

// List returns a member's warnings, newest first.
func (w *Warnings) List(
	ctx context.Context,
	guildID, userID string,
) ([]Warning, error) {
	var warnings []Warning
	err := w.db.WithContext(ctx).Where(
		"guild_id = ? AND user_id = ?", guildID, userID,
	).Order("created_at desc").Find(&warnings).Error
	return warnings, err
}

// Count returns the number of active warnings a member has.
func (w *Warnings) Count(
	ctx context.Context,
	guildID, userID string,
) (int64, error) {
	var count int64
	err := w.db.WithContext(ctx).Model(&Warning{}).Where(
		"guild_id = ? AND user_id = ?", guildID, userID,
	).Count(&count).Error
	return count, err
}

// Remove soft-deletes a warning by ID, scoped to the guild so a
// moderator can't delete another guild's rows. Returns whether a row
// was actually removed.
func (w *Warnings) Remove(
	ctx context.Context,
	guildID string,
	warningID uint,
) (bool, error) {
	rows, err := w.writeDB.DeleteWhere(
		ctx,
		&Warning{},
		"guild_id = ? AND id = ?",
		guildID,
		warningID,
	)
	if err != nil {
		return false, fmt.Errorf("error deleting warning: %w", err)
	}
	return rows > 0, nil
}
