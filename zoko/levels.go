package zoko

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// XP curve coefficients. Level 0 -> 1 costs a flat amount tuned so
// roughly 50 qualifying messages at the maximum per-message gain reach
// level 1; later levels follow a quadratic.
const (
	xpCurveA = 5
	xpCurveB = 50
	xpCurveC = 100

	xpGainMin = 15
	xpGainMax = 25

	firstLevelMessages = 50
	firstLevelXP       = xpGainMax * firstLevelMessages // 1250

	antiFloodWindow = 10 * time.Second
	antiFloodLimit  = 5
)

// XPForNextLevel returns the XP needed to advance from level to
// level+1.
func XPForNextLevel(level int) int {
	if level <= 0 {
		return firstLevelXP
	}
	return xpCurveA*level*level + xpCurveB*level + xpCurveC
}

// TotalXPForLevel returns the cumulative XP needed to reach level from
// zero, in closed form via the sum-of-squares and sum-of-integers
// identities rather than looping.
func TotalXPForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	l := level
	sumSquares := (l - 1) * l * (2*l - 1) / 6
	sumInts := (l - 1) * l / 2
	return xpCurveA*sumSquares + xpCurveB*sumInts + xpCurveC*(l-1) + firstLevelXP
}

// applyXP adds gain to a running total and recomputes the level by
// walking the cumulative curve.
func applyXP(total, level, gain int) (newTotal, newLevel int, leveledUp bool) {
	newTotal = total + gain
	newLevel = level
	for newTotal >= TotalXPForLevel(newLevel+1) {
		newLevel++
		leveledUp = true
	}
	return newTotal, newLevel, leveledUp
}

// activityLog is the process-wide anti-flood window, keyed by
// guild+user. Entries older than the window are pruned lazily on each
// record, never by a background sweep.
type activityLog struct {
	mu    sync.Mutex
	times map[string][]time.Time
}

func newActivityLog() *activityLog {
	return &activityLog{times: map[string][]time.Time{}}
}

// record registers one message at now and returns how many messages
// from that key fall inside the window, including this one.
func (a *activityLog) record(guildID, userID string, now time.Time) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := guildID + ":" + userID
	kept := a.times[key][:0]
	for _, t := range a.times[key] {
		if now.Sub(t) <= antiFloodWindow {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	a.times[key] = kept
	return len(kept)
}

// LevelSettings is the per-guild leveling configuration.
//
//nolint:lll // struct tags can't be split
type LevelSettings struct {
	GuildID           string `json:"guild_id" gorm:"primaryKey;type:string"`
	Enabled           bool   `json:"enabled" gorm:"type:bool;default:false"`
	AnnounceChannelID string `json:"announce_channel_id" gorm:"type:string"`
	MinChars          int    `json:"min_chars"`
	MinWords          int    `json:"min_words"`
	ModelUnixTime
}

// LevelUser is one member's XP record in one guild.
//
//nolint:lll // struct tags can't be split
type LevelUser struct {
	ModelUintID
	GuildID  string `json:"guild_id" gorm:"uniqueIndex:idx_level_guild_user;not null"`
	UserID   string `json:"user_id" gorm:"uniqueIndex:idx_level_guild_user;not null"`
	XPTotal  int    `json:"xp_total"`
	Level    int    `json:"level"`
	LastXPAt int64  `json:"last_xp_at"`
	ModelUnixTime
}

func (u LevelUser) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("guild_id", u.GuildID),
		slog.String("user_id", u.UserID),
		slog.Int("xp_total", u.XPTotal),
		slog.Int("level", u.Level),
	)
}

// AwardResult is what one qualifying message earned.
type AwardResult struct {
	Awarded   bool `json:"awarded"`
	XPGained  int  `json:"xp_gained,omitempty"`
	LeveledUp bool `json:"leveled_up,omitempty"`
	Level     int  `json:"level,omitempty"`
	XPTotal   int  `json:"xp_total,omitempty"`

	// Silent means the message tripped the anti-flood gate: XP is
	// still credited, but the caller shouldn't announce anything.
	Silent bool `json:"silent,omitempty"`
}

// Leveling awards message XP and answers rank/leaderboard queries. The
// curve itself is pure; this type owns the anti-flood log and the
// persistence of totals.
type Leveling struct {
	db       *gorm.DB
	writeDB  *database
	logger   *slog.Logger
	activity *activityLog
	rng      *rand.Rand
	rngMu    sync.Mutex
}

func NewLeveling(
	db *gorm.DB,
	writeDB *database,
	logger *slog.Logger,
	rng *rand.Rand,
) *Leveling {
	if logger == nil {
		logger = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Leveling{
		db:       db,
		writeDB:  writeDB,
		logger:   logger.With(loggerNameKey, "leveling"),
		activity: newActivityLog(),
		rng:      rng,
	}
}

// GetSettings returns the guild's leveling settings, or zero-value
// defaults (disabled) if none are stored yet.
func (l *Leveling) GetSettings(ctx context.Context, guildID string) (LevelSettings, error) {
	var s LevelSettings
	err := l.db.WithContext(ctx).Where("guild_id = ?", guildID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LevelSettings{GuildID: guildID}, nil
	}
	return s, err
}

// SaveSettings upserts the guild's leveling settings.
func (l *Leveling) SaveSettings(ctx context.Context, s LevelSettings) error {
	return l.writeDB.Save(ctx, &s)
}

func (l *Leveling) randomGain() int {
	l.rngMu.Lock()
	defer l.rngMu.Unlock()
	return xpGainMin + l.rng.Intn(xpGainMax-xpGainMin+1)
}

// AwardMessageXP credits XP for one guild message, if leveling is
// enabled and the message passes the settings' minimum-length gates.
// Messages tripping the anti-flood window (>= 5 in 10 s from the same
// user) are still credited but flagged Silent. The new total and level
// are persisted before returning.
func (l *Leveling) AwardMessageXP(
	ctx context.Context,
	guildID, userID, content string,
) (AwardResult, error) {
	settings, err := l.GetSettings(ctx, guildID)
	if err != nil {
		return AwardResult{}, fmt.Errorf("error loading level settings: %w", err)
	}
	if !settings.Enabled {
		return AwardResult{}, nil
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return AwardResult{}, nil
	}
	if settings.MinChars > 0 && len([]rune(content)) < settings.MinChars {
		return AwardResult{}, nil
	}
	if settings.MinWords > 0 && len(strings.Fields(content)) < settings.MinWords {
		return AwardResult{}, nil
	}

	now := time.Now().UTC()
	recent := l.activity.record(guildID, userID, now)
	silent := recent >= antiFloodLimit

	var user LevelUser
	err = l.db.WithContext(ctx).Where(
		"guild_id = ? AND user_id = ?", guildID, userID,
	).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AwardResult{}, fmt.Errorf("error loading level user: %w", err)
	}
	user.GuildID = guildID
	user.UserID = userID

	gain := l.randomGain()
	total, level, leveledUp := applyXP(user.XPTotal, user.Level, gain)
	user.XPTotal = total
	user.Level = level
	user.LastXPAt = now.UnixMilli()

	if err := l.writeDB.Upsert(
		ctx,
		&user,
		[]clause.Column{{Name: "guild_id"}, {Name: "user_id"}},
		"xp_total", "level", "last_xp_at", "updated_at",
	); err != nil {
		return AwardResult{}, fmt.Errorf("error saving level user: %w", err)
	}

	return AwardResult{
		Awarded:   true,
		XPGained:  gain,
		LeveledUp: leveledUp,
		Level:     level,
		XPTotal:   total,
		Silent:    silent,
	}, nil
}

// GetUserLevel returns the member's record, zero-valued if they have
// never earned XP.
func (l *Leveling) GetUserLevel(ctx context.Context, guildID, userID string) (LevelUser, error) {
	var user LevelUser
	err := l.db.WithContext(ctx).Where(
		"guild_id = ? AND user_id = ?", guildID, userID,
	).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LevelUser{GuildID: guildID, UserID: userID}, nil
	}
	return user, err
}

// UserRank returns the member's 1-based leaderboard position, counting
// members with strictly more XP ahead of them.
func (l *Leveling) UserRank(ctx context.Context, guildID string, xpTotal int) (int, error) {
	var higher int64
	err := l.db.WithContext(ctx).Model(&LevelUser{}).Where(
		"guild_id = ? AND xp_total > ?", guildID, xpTotal,
	).Count(&higher).Error
	return int(higher) + 1, err
}

// TopUsers returns up to limit members ordered by XP descending.
func (l *Leveling) TopUsers(ctx context.Context, guildID string, limit, offset int) ([]LevelUser, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	var users []LevelUser
	err := l.db.WithContext(ctx).Where("guild_id = ?", guildID).
		Order("xp_total desc").Limit(limit).Offset(offset).
		Find(&users).Error
	return users, err
}

// ResetGuild deletes every XP record in the guild, returning how many
// rows were removed.
func (l *Leveling) ResetGuild(ctx context.Context, guildID string) (int64, error) {
	return l.writeDB.DeleteWhere(ctx, &LevelUser{}, "guild_id = ?", guildID)
}
