package zoko

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// ReleaseNote is one /guncelleme changelog entry.
//
//nolint:lll // struct tags can't be split
type ReleaseNote struct {
	ModelUintID
	GuildID  string `json:"guild_id" gorm:"index;not null"`
	Version  string `json:"version" gorm:"not null"`
	Body     string `json:"body" gorm:"not null"`
	AuthorID string `json:"author_id"`
	ModelUnixTime
}

func (r ReleaseNote) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("id", uint64(r.ID)),
		slog.String("guild_id", r.GuildID),
		slog.String("version", r.Version),
	)
}

// ReleaseNotes stores changelog entries shown by /guncelleme.
type ReleaseNotes struct {
	db      *gorm.DB
	writeDB *database
	logger  *slog.Logger
}

func NewReleaseNotes(
	db *gorm.DB,
	writeDB *database,
	logger *slog.Logger,
) *ReleaseNotes {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReleaseNotes{
		db:      db,
		writeDB: writeDB,
		logger:  logger.With(loggerNameKey, "release_notes"),
	}
}

// Add records a new release note.
func (r *ReleaseNotes) Add(
	ctx context.Context,
	guildID, version, body, authorID string,
) (ReleaseNote, error) {
	note := ReleaseNote{
		GuildID:  guildID,
		Version:  version,
		Body:     body,
		AuthorID: authorID,
	}
	if err := r.writeDB.Create(ctx, &note); err != nil {
		return ReleaseNote{}, fmt.Errorf("error creating release note: %w", err)
	}
	r.logger.InfoContext(ctx, "release note added", slog.Any("note", note))
	return note, nil
}

// Latest returns the most recent notes, newest first.
func (r *ReleaseNotes) Latest(
	ctx context.Context,
	guildID string,
	limit int,
) ([]ReleaseNote, error) {
	if limit < 1 || limit > 25 {
		limit = 5
	}
	var notes []ReleaseNote
	err := r.db.WithContext(ctx).Where("guild_id = ?", guildID).
		Order("created_at desc").Limit(limit).Find(&notes).Error
	return notes, err
}
