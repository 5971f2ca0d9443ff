package zoko

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
)

const (
	maxBanDeleteDays      = 7
	maxBulkDeleteMessages = 100

	// Discord caps member timeouts at 28 days.
	maxTimeoutDuration = 28 * 24 * time.Hour
)

// parseModDuration parses mute durations like "10m", "1h", "3d", "1w".
func parseModDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if len(raw) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", raw)
	}
	value, err := strconv.Atoi(raw[:len(raw)-1])
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid duration: %q", raw)
	}
	var unit time.Duration
	switch raw[len(raw)-1] {
	case 's':
		unit = time.Second
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	case 'w':
		unit = 7 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("invalid duration unit: %q", raw)
	}
	return time.Duration(value) * unit, nil
}

// moderationReason tags the acting moderator onto the audit-log reason.
func moderationReason(reason, moderatorID string) string {
	if reason == "" {
		reason = "-"
	}
	return fmt.Sprintf("%s (yetkili: %s)", reason, moderatorID)
}

func (z *Zoko) commandBan(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	if i.GuildID == "" {
		z.respondEphemeral(ctx, i, "Bu komut sadece sunucularda çalışır.")
		return
	}
	opts := discordInteractionOptions(i)
	targetID := optionUserID(opts, optionUser)
	if targetID == "" {
		z.respondEphemeral(ctx, i, "Üye seçmelisin.")
		return
	}
	if targetID == user.ID {
		z.respondEphemeral(ctx, i, "Kendini yasaklayamazsın.")
		return
	}

	var reason string
	if opt, ok := opts[optionReason]; ok {
		reason = opt.StringValue()
	}
	deleteDays := 0
	if opt, ok := opts[optionDeleteDays]; ok {
		deleteDays = int(opt.IntValue())
	}
	if deleteDays < 0 {
		deleteDays = 0
	}
	if deleteDays > maxBanDeleteDays {
		deleteDays = maxBanDeleteDays
	}

	err := z.discord.session.GuildBanCreateWithReason(
		i.GuildID,
		targetID,
		moderationReason(reason, user.ID),
		deleteDays,
	)
	if err != nil {
		z.logger.ErrorContext(
			ctx,
			"error banning member",
			tint.Err(err),
			"guild_id", i.GuildID,
			"target_id", targetID,
		)
		z.respondEphemeral(
			ctx,
			i,
			"Üye yasaklanamadı. Bot izinlerini ve rol sırasını kontrol et.",
		)
		return
	}
	content := fmt.Sprintf("🔨 <@%s> sunucudan yasaklandı.", targetID)
	if reason != "" {
		content += fmt.Sprintf("\nSebep: %s", truncate(reason, 200))
	}
	z.respondMessage(ctx, i, &discordgo.InteractionResponseData{Content: content})
}

func (z *Zoko) commandKick(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	if i.GuildID == "" {
		z.respondEphemeral(ctx, i, "Bu komut sadece sunucularda çalışır.")
		return
	}
	opts := discordInteractionOptions(i)
	targetID := optionUserID(opts, optionUser)
	if targetID == "" {
		z.respondEphemeral(ctx, i, "Üye seçmelisin.")
		return
	}
	if targetID == user.ID {
		z.respondEphemeral(ctx, i, "Kendini atamazsın.")
		return
	}

	var reason string
	if opt, ok := opts[optionReason]; ok {
		reason = opt.StringValue()
	}

	err := z.discord.session.GuildMemberDeleteWithReason(
		i.GuildID,
		targetID,
		moderationReason(reason, user.ID),
	)
	if err != nil {
		z.logger.ErrorContext(
			ctx,
			"error kicking member",
			tint.Err(err),
			"guild_id", i.GuildID,
			"target_id", targetID,
		)
		z.respondEphemeral(
			ctx,
			i,
			"Üye atılamadı. Bot izinlerini ve rol sırasını kontrol et.",
		)
		return
	}
	content := fmt.Sprintf("👢 <@%s> sunucudan atıldı.", targetID)
	if reason != "" {
		content += fmt.Sprintf("\nSebep: %s", truncate(reason, 200))
	}
	z.respondMessage(ctx, i, &discordgo.InteractionResponseData{Content: content})
}

func (z *Zoko) commandMute(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	if i.GuildID == "" {
		z.respondEphemeral(ctx, i, "Bu komut sadece sunucularda çalışır.")
		return
	}
	opts := discordInteractionOptions(i)
	targetID := optionUserID(opts, optionUser)
	if targetID == "" {
		z.respondEphemeral(ctx, i, "Üye seçmelisin.")
		return
	}
	if targetID == user.ID {
		z.respondEphemeral(ctx, i, "Kendini susturamazsın.")
		return
	}

	var rawDuration string
	if opt, ok := opts[optionDuration]; ok {
		rawDuration = opt.StringValue()
	}
	duration, err := parseModDuration(rawDuration)
	if err != nil {
		z.respondEphemeral(ctx, i, "Geçerli bir süre gir. Örnek: 10m, 1h, 1d")
		return
	}
	if duration > maxTimeoutDuration {
		z.respondEphemeral(ctx, i, "Süre 28 günü aşamaz.")
		return
	}

	until := time.Now().Add(duration)
	if err := z.discord.session.GuildMemberTimeout(
		i.GuildID, targetID, &until,
	); err != nil {
		z.logger.ErrorContext(
			ctx,
			"error muting member",
			tint.Err(err),
			"guild_id", i.GuildID,
			"target_id", targetID,
		)
		z.respondEphemeral(
			ctx,
			i,
			"Susturma uygulanamadı. Bot izinlerini ve rol sırasını kontrol et.",
		)
		return
	}
	z.respondMessage(ctx, i, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf(
			"🔇 <@%s> susturuldu. Bitiş: <t:%d:R>",
			targetID,
			until.Unix(),
		),
	})
}

func (z *Zoko) commandUnmute(
	ctx context.Context,
	i *discordgo.InteractionCreate,
) {
	if i.GuildID == "" {
		z.respondEphemeral(ctx, i, "Bu komut sadece sunucularda çalışır.")
		return
	}
	opts := discordInteractionOptions(i)
	targetID := optionUserID(opts, optionUser)
	if targetID == "" {
		z.respondEphemeral(ctx, i, "Üye seçmelisin.")
		return
	}

	if err := z.discord.session.GuildMemberTimeout(
		i.GuildID, targetID, nil,
	); err != nil {
		z.logger.ErrorContext(
			ctx,
			"error unmuting member",
			tint.Err(err),
			"guild_id", i.GuildID,
			"target_id", targetID,
		)
		z.respondEphemeral(ctx, i, "Susturma kaldırılamadı.")
		return
	}
	z.respondMessage(ctx, i, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("🔊 <@%s> için susturma kaldırıldı.", targetID),
	})
}

// commandClear bulk-deletes the channel's most recent messages. Discord
// refuses bulk deletion of messages older than 14 days; those are
// silently left in place.
func (z *Zoko) commandClear(
	ctx context.Context,
	i *discordgo.InteractionCreate,
) {
	if i.GuildID == "" {
		z.respondEphemeral(ctx, i, "Bu komut sadece sunucularda çalışır.")
		return
	}
	opts := discordInteractionOptions(i)
	amount := 0
	if opt, ok := opts[optionAmount]; ok {
		amount = int(opt.IntValue())
	}
	if amount < 1 {
		z.respondEphemeral(ctx, i, "1 ile 100 arasında bir sayı gir.")
		return
	}
	if amount > maxBulkDeleteMessages {
		amount = maxBulkDeleteMessages
	}

	messages, err := z.discord.session.ChannelMessages(
		i.ChannelID, amount, "", "", "",
	)
	if err != nil {
		z.logger.ErrorContext(ctx, "error listing messages", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	if len(messages) == 0 {
		z.respondEphemeral(ctx, i, "Silinecek mesaj yok.")
		return
	}

	messageIDs := make([]string, 0, len(messages))
	for _, m := range messages {
		messageIDs = append(messageIDs, m.ID)
	}
	if err := z.discord.session.ChannelMessagesBulkDelete(
		i.ChannelID, messageIDs,
	); err != nil {
		z.logger.ErrorContext(ctx, "error bulk deleting messages", tint.Err(err))
		z.respondEphemeral(
			ctx,
			i,
			"Mesajlar silinemedi. Bot izinlerini kontrol et.",
		)
		return
	}
	z.respondEphemeral(
		ctx,
		i,
		fmt.Sprintf(
			"🧹 %d mesaj silindi. (14 günden eski mesajlar silinmez)",
			len(messageIDs),
		),
	)
}
