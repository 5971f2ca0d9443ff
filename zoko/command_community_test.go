package zoko

import (
	"context"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCommandTestBot wires a bot around the in-memory mock session and a
// temp sqlite database, enough to drive interaction handlers directly.
func newCommandTestBot(t *testing.T) (*Zoko, *mockDiscordSession) {
	t.Helper()
	db := newTestDB(t)
	write := newTestWriteDB(t, db)
	session := newMockDiscordSession()
	logger := slog.Default()
	rng := rand.New(rand.NewSource(1))
	cfg := DefaultTestConfig(t)

	z := &Zoko{
		config:  cfg,
		logger:  logger,
		db:      db,
		writeDB: write,
		discord: &Discord{
			session: session,
			config:  cfg.Discord,
			logger:  logger,
		},
		blackjack:    NewBlackjack(rng),
		xox:          NewTicTacToe(),
		tkm:          NewRockPaperScissors(rng),
		wordle:       NewWordle(rng),
		leveling:     NewLeveling(db, write, logger, rng),
		warnings:     NewWarnings(db, write, logger),
		faq:          NewFAQ(db, write, logger),
		registration: NewRegistration(db, write, logger),
		releaseNotes: NewReleaseNotes(db, write, logger),
		startedAt:    time.Now(),
	}
	return z, session
}

func slashInteraction(
	guildID, channelID, userID string,
	name string,
	opts ...*discordgo.ApplicationCommandInteractionDataOption,
) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   guildID,
			ChannelID: channelID,
			Member:    &discordgo.Member{User: &discordgo.User{ID: userID}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
		},
	}
}

func subOption(
	name string,
	opts ...*discordgo.ApplicationCommandInteractionDataOption,
) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Name:    name,
		Options: opts,
	}
}

func stringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:  discordgo.ApplicationCommandOptionString,
		Name:  name,
		Value: value,
	}
}

func intOption(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type: discordgo.ApplicationCommandOptionInteger,
		Name: name,
		// interaction payloads arrive as JSON numbers
		Value: float64(value),
	}
}

func userOption(name, userID string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:  discordgo.ApplicationCommandOptionUser,
		Name:  name,
		Value: userID,
	}
}

func roleOption(name, roleID string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:  discordgo.ApplicationCommandOptionRole,
		Name:  name,
		Value: roleID,
	}
}

func channelOption(name, channelID string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:  discordgo.ApplicationCommandOptionChannel,
		Name:  name,
		Value: channelID,
	}
}

func TestCommandLevelAdminEnablesLeveling(t *testing.T) {
	z, session := newCommandTestBot(t)
	ctx := context.Background()

	// Leveling ships disabled; no message earns XP yet.
	result, err := z.leveling.AwardMessageXP(ctx, "g", "u", "selam dünya nasılsın")
	require.NoError(t, err)
	assert.False(t, result.Awarded)

	z.commandLevelAdmin(ctx, slashInteraction(
		"g", "c", "admin",
		DiscordSlashCommandLevelAdmin,
		subOption(subcommandSettingsEnable),
	))

	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "açıldı")

	settings, err := z.leveling.GetSettings(ctx, "g")
	require.NoError(t, err)
	assert.True(t, settings.Enabled)

	result, err = z.leveling.AwardMessageXP(ctx, "g", "u", "selam dünya nasılsın")
	require.NoError(t, err)
	assert.True(t, result.Awarded)

	z.commandLevelAdmin(ctx, slashInteraction(
		"g", "c", "admin",
		DiscordSlashCommandLevelAdmin,
		subOption(subcommandSettingsDisable),
	))
	settings, err = z.leveling.GetSettings(ctx, "g")
	require.NoError(t, err)
	assert.False(t, settings.Enabled)
}

func TestCommandLevelAdminChannelAndFilter(t *testing.T) {
	z, _ := newCommandTestBot(t)
	ctx := context.Background()

	z.commandLevelAdmin(ctx, slashInteraction(
		"g", "c", "admin",
		DiscordSlashCommandLevelAdmin,
		subOption(subcommandLevelChannel, channelOption(optionChannel, "duyuru")),
	))
	z.commandLevelAdmin(ctx, slashInteraction(
		"g", "c", "admin",
		DiscordSlashCommandLevelAdmin,
		subOption(
			subcommandLevelFilter,
			intOption(optionMinChars, 10),
			intOption(optionMinWords, 3),
		),
	))

	settings, err := z.leveling.GetSettings(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, "duyuru", settings.AnnounceChannelID)
	assert.Equal(t, 10, settings.MinChars)
	assert.Equal(t, 3, settings.MinWords)
}

func TestCommandLevelAdminReset(t *testing.T) {
	z, session := newCommandTestBot(t)
	ctx := context.Background()

	require.NoError(t, z.leveling.SaveSettings(ctx, LevelSettings{
		GuildID: "g",
		Enabled: true,
	}))
	_, err := z.leveling.AwardMessageXP(ctx, "g", "u", "selam dünya nasılsın")
	require.NoError(t, err)

	z.commandLevelAdmin(ctx, slashInteraction(
		"g", "c", "admin",
		DiscordSlashCommandLevelAdmin,
		subOption(subcommandLevelReset),
	))

	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "sıfırlandı")

	users, err := z.leveling.TopUsers(ctx, "g", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCommandLevelAdminGuildOnly(t *testing.T) {
	z, session := newCommandTestBot(t)

	z.commandLevelAdmin(context.Background(), slashInteraction(
		"", "dm-chan", "admin",
		DiscordSlashCommandLevelAdmin,
		subOption(subcommandSettingsEnable),
	))

	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "sadece sunucularda")
}

func TestCommandRegisterAdminActivatesRegistration(t *testing.T) {
	z, session := newCommandTestBot(t)
	ctx := context.Background()

	// Enabling before a member role is configured is refused.
	z.commandRegisterAdmin(ctx, slashInteraction(
		"g", "c", "admin",
		DiscordSlashCommandRegisterAdmin,
		subOption(subcommandSettingsEnable),
	))
	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "roller")

	settings, err := z.registration.GetSettings(ctx, "g")
	require.NoError(t, err)
	assert.False(t, settings.Enabled)

	z.commandRegisterAdmin(ctx, slashInteraction(
		"g", "c", "admin",
		DiscordSlashCommandRegisterAdmin,
		subOption(
			subcommandRegisterRoles,
			roleOption(optionMemberRole, "uye-rol"),
			roleOption(optionNewMemberRole, "yeni-rol"),
		),
	))
	z.commandRegisterAdmin(ctx, slashInteraction(
		"g", "c", "admin",
		DiscordSlashCommandRegisterAdmin,
		subOption(subcommandSettingsEnable),
	))

	settings, err = z.registration.GetSettings(ctx, "g")
	require.NoError(t, err)
	assert.True(t, settings.Enabled)
	assert.Equal(t, "uye-rol", settings.MemberRoleID)
	assert.Equal(t, "yeni-rol", settings.UnregisteredRoleID)

	// The /kayit flow now works end to end.
	z.commandRegister(
		ctx,
		slashInteraction(
			"g", "c", "mod",
			DiscordSlashCommandRegister,
			userOption(optionUser, "yeni-uye"),
			stringOption(optionName, "Ali"),
			intOption(optionAge, 20),
		),
		&discordgo.User{ID: "mod"},
	)
	assert.Equal(t, "Ali | 20", session.nicknames["g:yeni-uye"])
	assert.Contains(t, session.rolesAdded, "g:yeni-uye:uye-rol")
	assert.Contains(t, session.rolesRemoved, "g:yeni-uye:yeni-rol")
}

func TestCommandRegisterAdminChannelAndFormat(t *testing.T) {
	z, _ := newCommandTestBot(t)
	ctx := context.Background()

	z.commandRegisterAdmin(ctx, slashInteraction(
		"g", "c", "admin",
		DiscordSlashCommandRegisterAdmin,
		subOption(subcommandRegisterChannel, channelOption(optionChannel, "kayit-log")),
	))
	z.commandRegisterAdmin(ctx, slashInteraction(
		"g", "c", "admin",
		DiscordSlashCommandRegisterAdmin,
		subOption(subcommandRegisterFormat, stringOption(optionFormat, "{name} ({age})")),
	))

	settings, err := z.registration.GetSettings(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, "kayit-log", settings.LogChannelID)
	assert.Equal(t, "{name} ({age})", settings.NicknameFormat)
	assert.Equal(t, "Ayşe (25)", settings.formatNickname("Ayşe", 25))
}

func TestCommandFAQRemove(t *testing.T) {
	z, session := newCommandTestBot(t)
	ctx := context.Background()

	_, err := z.faq.Upsert(ctx, "g", "Nasıl kayıt olurum?", "Yetkiliye yaz.", "admin")
	require.NoError(t, err)

	z.commandFAQRemove(ctx, slashInteraction(
		"g", "c", "admin",
		DiscordSlashCommandFAQRemove,
		stringOption(optionQuestion, "nasıl kayıt olurum?"),
	))

	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "silindi")

	_, found, err := z.faq.Lookup(ctx, "g", "Nasıl kayıt olurum?")
	require.NoError(t, err)
	assert.False(t, found)

	// Removing again reports a miss.
	z.commandFAQRemove(ctx, slashInteraction(
		"g", "c", "admin",
		DiscordSlashCommandFAQRemove,
		stringOption(optionQuestion, "nasıl kayıt olurum?"),
	))
	resp = session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "kayıtlı değil")
}
