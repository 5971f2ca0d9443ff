package zoko

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// RegistrationSettings is the per-guild /kayit configuration: which
// role registered members receive, and how their nickname is formatted.
//
//nolint:lll // struct tags can't be split
type RegistrationSettings struct {
	GuildID string `json:"guild_id" gorm:"primaryKey;type:string"`
	Enabled bool   `json:"enabled" gorm:"type:bool;default:false"`

	// MemberRoleID is granted on registration
	MemberRoleID string `json:"member_role_id"`

	// UnregisteredRoleID, if set, is removed on registration
	UnregisteredRoleID string `json:"unregistered_role_id"`

	// NicknameFormat supports {name} and {age} placeholders,
	// e.g. "{name} | {age}"
	NicknameFormat string `json:"nickname_format"`

	// LogChannelID receives a line for each registration
	LogChannelID string `json:"log_channel_id"`
	ModelUnixTime
}

func (r RegistrationSettings) LogValue() slog.Value {
	return structToSlogValue(r)
}

// formatNickname applies the guild's nickname format. Discord caps
// nicknames at 32 characters.
func (r RegistrationSettings) formatNickname(name string, age int) string {
	format := r.NicknameFormat
	if format == "" {
		format = "{name} | {age}"
	}
	nick := strings.ReplaceAll(format, "{name}", strings.TrimSpace(name))
	nick = strings.ReplaceAll(nick, "{age}", fmt.Sprintf("%d", age))
	return truncate(nick, 32)
}

// Registration handles the /kayit flow: renaming a new member and
// swapping their roles per guild settings.
type Registration struct {
	db      *gorm.DB
	writeDB *database
	logger  *slog.Logger
}

func NewRegistration(db *gorm.DB, writeDB *database, logger *slog.Logger) *Registration {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registration{
		db:      db,
		writeDB: writeDB,
		logger:  logger.With(loggerNameKey, "registration"),
	}
}

// GetSettings returns the guild's registration settings, or disabled
// defaults if none are stored.
func (r *Registration) GetSettings(
	ctx context.Context,
	guildID string,
) (RegistrationSettings, error) {
	var s RegistrationSettings
	err := r.db.WithContext(ctx).Where("guild_id = ?", guildID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return RegistrationSettings{GuildID: guildID}, nil
	}
	return s, err
}

// SaveSettings upserts the guild's registration settings.
func (r *Registration) SaveSettings(
	ctx context.Context,
	s RegistrationSettings,
) error {
	return r.writeDB.Save(ctx, &s)
}

// Register applies the guild's registration flow to a member: set the
// formatted nickname, grant the member role, and drop the unregistered
// role if one is configured. Role/nickname failures are returned so the
// moderator sees which step needs a permissions fix.
func (r *Registration) Register(
	ctx context.Context,
	session DiscordSessionHandler,
	guildID, userID, name string,
	age int,
) (string, error) {
	settings, err := r.GetSettings(ctx, guildID)
	if err != nil {
		return "", fmt.Errorf("error loading registration settings: %w", err)
	}
	if !settings.Enabled {
		return "", errors.New("registration is not enabled for this guild")
	}
	if settings.MemberRoleID == "" {
		return "", errors.New("no member role configured")
	}

	nickname := settings.formatNickname(name, age)
	if err := session.GuildMemberNickname(guildID, userID, nickname); err != nil {
		return "", fmt.Errorf("error setting nickname: %w", err)
	}
	if err := session.GuildMemberRoleAdd(
		guildID, userID, settings.MemberRoleID,
	); err != nil {
		return "", fmt.Errorf("error adding member role: %w", err)
	}
	if settings.UnregisteredRoleID != "" {
		if err := session.GuildMemberRoleRemove(
			guildID, userID, settings.UnregisteredRoleID,
		); err != nil {
			return "", fmt.Errorf("error removing unregistered role: %w", err)
		}
	}

	r.logger.InfoContext(
		ctx,
		"member registered",
		slog.String("guild_id", guildID),
		slog.String("user_id", userID),
		slog.String("nickname", nickname),
	)

	if settings.LogChannelID != "" {
		_, err := session.ChannelMessageSendComplex(
			settings.LogChannelID,
			&discordgo.MessageSend{
				Content: fmt.Sprintf(
					"<@%s> kayıt edildi: **%s**",
					userID,
					nickname,
				),
			},
		)
		if err != nil {
			r.logger.WarnContext(
				ctx,
				"error sending registration log message",
				slog.String("channel_id", settings.LogChannelID),
				slog.Any("error", err),
			)
		}
	}

	return nickname, nil
}
