package zoko

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// FAQEntry is a canned question/answer pair, served by /sss.
//
//nolint:lll // struct tags can't be split
type FAQEntry struct {
	ModelUintID
	GuildID string `json:"guild_id" gorm:"uniqueIndex:idx_faq_guild_key;not null"`

	// Key is the normalized lookup form of the question (Turkish
	// lowercased, trimmed)
	Key string `json:"key" gorm:"uniqueIndex:idx_faq_guild_key;not null"`

	Question string `json:"question" gorm:"not null"`
	Answer   string `json:"answer" gorm:"not null"`
	AuthorID string `json:"author_id"`
	ModelUnixTime
}

func (f FAQEntry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("id", uint64(f.ID)),
		slog.String("guild_id", f.GuildID),
		slog.String("key", f.Key),
	)
}

// faqKey normalizes a question for lookup using Turkish case rules, the
// same folding the wordle engine applies to guesses.
func faqKey(question string) string {
	return strings.ToLowerSpecial(
		unicode.TurkishCase,
		strings.TrimSpace(question),
	)
}

// FAQ stores and answers canned support questions.
type FAQ struct {
	db      *gorm.DB
	writeDB *database
	logger  *slog.Logger
}

func NewFAQ(db *gorm.DB, writeDB *database, logger *slog.Logger) *FAQ {
	if logger == nil {
		logger = slog.Default()
	}
	return &FAQ{
		db:      db,
		writeDB: writeDB,
		logger:  logger.With(loggerNameKey, "faq"),
	}
}

// Upsert creates or replaces the answer for a question.
func (f *FAQ) Upsert(
	ctx context.Context,
	guildID, question, answer, authorID string,
) (FAQEntry, error) {
	key := faqKey(question)
	if key == "" {
		return FAQEntry{}, errors.New("empty question")
	}

	var entry FAQEntry
	err := f.db.WithContext(ctx).Where(
		"guild_id = ? AND key = ?", guildID, key,
	).First(&entry).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return FAQEntry{}, fmt.Errorf("error loading faq entry: %w", err)
	}

	entry.GuildID = guildID
	entry.Key = key
	entry.Question = strings.TrimSpace(question)
	entry.Answer = strings.TrimSpace(answer)
	entry.AuthorID = authorID

	if err := f.writeDB.Save(ctx, &entry); err != nil {
		return FAQEntry{}, fmt.Errorf("error saving faq entry: %w", err)
	}
	f.logger.InfoContext(ctx, "faq entry saved", slog.Any("entry", entry))
	return entry, nil
}

// Lookup finds an answer by exact normalized key. A miss returns
// (zero, false, nil) rather than an error, so callers can fall back to
// listing available questions.
func (f *FAQ) Lookup(
	ctx context.Context,
	guildID, question string,
) (FAQEntry, bool, error) {
	var entry FAQEntry
	err := f.db.WithContext(ctx).Where(
		"guild_id = ? AND key = ?", guildID, faqKey(question),
	).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return FAQEntry{}, false, nil
	}
	if err != nil {
		return FAQEntry{}, false, err
	}
	return entry, true, nil
}

// List returns every stored question in the guild, oldest first.
func (f *FAQ) List(ctx context.Context, guildID string) ([]FAQEntry, error) {
	var entries []FAQEntry
	err := f.db.WithContext(ctx).Where("guild_id = ?", guildID).
		Order("created_at asc").Find(&entries).Error
	return entries, err
}

// Remove deletes a stored question by its normalized key.
func (f *FAQ) Remove(ctx context.Context, guildID, question string) (bool, error) {
	rows, err := f.writeDB.DeleteWhere(
		ctx,
		&FAQEntry{},
		"guild_id = ? AND key = ?",
		guildID,
		faqKey(question),
	)
	return rows > 0, err
}
