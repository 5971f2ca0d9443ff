package zoko

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModDuration(t *testing.T) {
	valid := []struct {
		raw  string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"10m", 10 * time.Minute},
		{"1h", time.Hour},
		{"1d", 24 * time.Hour},
		{"2w", 14 * 24 * time.Hour},
		{" 5M ", 5 * time.Minute},
	}
	for _, tc := range valid {
		got, err := parseModDuration(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}

	for _, raw := range []string{"", "10", "m", "0m", "-5m", "1x", "abc"} {
		_, err := parseModDuration(raw)
		assert.Error(t, err, raw)
	}
}

func TestModerationReason(t *testing.T) {
	assert.Equal(t, "spam (yetkili: mod)", moderationReason("spam", "mod"))
	assert.Equal(t, "- (yetkili: mod)", moderationReason("", "mod"))
}

func TestCommandBan(t *testing.T) {
	z, session := newCommandTestBot(t)

	z.commandBan(
		context.Background(),
		slashInteraction(
			"g", "c", "mod",
			DiscordSlashCommandBan,
			userOption(optionUser, "kotu-uye"),
			stringOption(optionReason, "spam"),
			intOption(optionDeleteDays, 3),
		),
		&discordgo.User{ID: "mod"},
	)

	require.Len(t, session.bans, 1)
	assert.Equal(t, "g:kotu-uye:3:spam (yetkili: mod)", session.bans[0])

	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "yasaklandı")
	assert.Contains(t, resp.Data.Content, "spam")
	assert.Zero(t, resp.Data.Flags&discordgo.MessageFlagsEphemeral)
}

func TestCommandBanRefusesSelf(t *testing.T) {
	z, session := newCommandTestBot(t)

	z.commandBan(
		context.Background(),
		slashInteraction(
			"g", "c", "mod",
			DiscordSlashCommandBan,
			userOption(optionUser, "mod"),
		),
		&discordgo.User{ID: "mod"},
	)

	assert.Empty(t, session.bans)
	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "Kendini yasaklayamazsın")
}

func TestCommandBanReportsFailure(t *testing.T) {
	z, session := newCommandTestBot(t)
	session.banErr = assert.AnError

	z.commandBan(
		context.Background(),
		slashInteraction(
			"g", "c", "mod",
			DiscordSlashCommandBan,
			userOption(optionUser, "kotu-uye"),
		),
		&discordgo.User{ID: "mod"},
	)

	assert.Empty(t, session.bans)
	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "yasaklanamadı")
	assert.NotZero(t, resp.Data.Flags&discordgo.MessageFlagsEphemeral)
}

func TestCommandKick(t *testing.T) {
	z, session := newCommandTestBot(t)

	z.commandKick(
		context.Background(),
		slashInteraction(
			"g", "c", "mod",
			DiscordSlashCommandKick,
			userOption(optionUser, "kotu-uye"),
			stringOption(optionReason, "kural ihlali"),
		),
		&discordgo.User{ID: "mod"},
	)

	require.Len(t, session.kicks, 1)
	assert.Equal(t, "g:kotu-uye:kural ihlali (yetkili: mod)", session.kicks[0])

	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "atıldı")
}

func TestCommandMute(t *testing.T) {
	z, session := newCommandTestBot(t)

	z.commandMute(
		context.Background(),
		slashInteraction(
			"g", "c", "mod",
			DiscordSlashCommandMute,
			userOption(optionUser, "konuskan"),
			stringOption(optionDuration, "10m"),
		),
		&discordgo.User{ID: "mod"},
	)

	until, ok := session.timeouts["g:konuskan"]
	require.True(t, ok)
	require.NotNil(t, until)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *until, 5*time.Second)

	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "susturuldu")
}

func TestCommandMuteRejectsBadDuration(t *testing.T) {
	z, session := newCommandTestBot(t)

	z.commandMute(
		context.Background(),
		slashInteraction(
			"g", "c", "mod",
			DiscordSlashCommandMute,
			userOption(optionUser, "konuskan"),
			stringOption(optionDuration, "asdf"),
		),
		&discordgo.User{ID: "mod"},
	)

	assert.Empty(t, session.timeouts)
	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "Geçerli bir süre")
}

func TestCommandMuteCapsAtTwentyEightDays(t *testing.T) {
	z, session := newCommandTestBot(t)

	z.commandMute(
		context.Background(),
		slashInteraction(
			"g", "c", "mod",
			DiscordSlashCommandMute,
			userOption(optionUser, "konuskan"),
			stringOption(optionDuration, "5w"),
		),
		&discordgo.User{ID: "mod"},
	)

	assert.Empty(t, session.timeouts)
	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "28 günü aşamaz")
}

func TestCommandUnmute(t *testing.T) {
	z, session := newCommandTestBot(t)
	muted := time.Now().Add(time.Hour)
	session.timeouts["g:konuskan"] = &muted

	z.commandUnmute(context.Background(), slashInteraction(
		"g", "c", "mod",
		DiscordSlashCommandUnmute,
		userOption(optionUser, "konuskan"),
	))

	until, ok := session.timeouts["g:konuskan"]
	require.True(t, ok)
	assert.Nil(t, until)

	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "kaldırıldı")
}

func TestCommandClear(t *testing.T) {
	z, session := newCommandTestBot(t)
	for _, id := range []string{"m1", "m2", "m3", "m4", "m5"} {
		session.channelMessages["c"] = append(
			session.channelMessages["c"],
			&discordgo.Message{ID: id, ChannelID: "c"},
		)
	}

	z.commandClear(context.Background(), slashInteraction(
		"g", "c", "mod",
		DiscordSlashCommandClear,
		intOption(optionAmount, 3),
	))

	assert.Equal(t, []string{"m1", "m2", "m3"}, session.bulkDeleted["c"])

	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "3 mesaj silindi")
	assert.NotZero(t, resp.Data.Flags&discordgo.MessageFlagsEphemeral)
}

func TestCommandClearEmptyChannel(t *testing.T) {
	z, session := newCommandTestBot(t)

	z.commandClear(context.Background(), slashInteraction(
		"g", "c", "mod",
		DiscordSlashCommandClear,
		intOption(optionAmount, 10),
	))

	assert.Empty(t, session.bulkDeleted)
	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "Silinecek mesaj yok")
}

func TestCommandClearRejectsZeroAmount(t *testing.T) {
	z, session := newCommandTestBot(t)

	z.commandClear(context.Background(), slashInteraction(
		"g", "c", "mod",
		DiscordSlashCommandClear,
	))

	resp := session.lastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Content, "1 ile 100 arasında")
}
