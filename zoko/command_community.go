package zoko

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
)

const genericErrorMessage = "Bir şeyler ters gitti, tekrar dene."

func (z *Zoko) commandLevel(
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
	username := user.Username
	if targetID == "" {
		targetID = user.ID
	} else if opt, ok := opts[optionUser]; ok {
		if u := opt.UserValue(nil); u != nil && u.Username != "" {
			username = u.Username
		}
	}

	record, err := z.leveling.GetUserLevel(ctx, i.GuildID, targetID)
	if err != nil {
		z.logger.ErrorContext(ctx, "error loading level", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	rank, err := z.leveling.UserRank(ctx, i.GuildID, record.XPTotal)
	if err != nil {
		z.logger.ErrorContext(ctx, "error loading rank", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	z.respondEmbed(ctx, i, levelEmbed(username, record, rank), nil)
}

func (z *Zoko) commandLeaderboard(
	ctx context.Context,
	i *discordgo.InteractionCreate,
) {
	if i.GuildID == "" {
		z.respondEphemeral(ctx, i, "Bu komut sadece sunucularda çalışır.")
		return
	}
	users, err := z.leveling.TopUsers(ctx, i.GuildID, 10, 0)
	if err != nil {
		z.logger.ErrorContext(ctx, "error loading leaderboard", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	z.respondEmbed(ctx, i, leaderboardEmbed(users), nil)
}

// commandLevelAdmin is the admin surface for the leveling system:
// without it LevelSettings.Enabled stays false and no message ever
// earns XP.
func (z *Zoko) commandLevelAdmin(
	ctx context.Context,
	i *discordgo.InteractionCreate,
) {
	if i.GuildID == "" {
		z.respondEphemeral(ctx, i, "Bu komut sadece sunucularda çalışır.")
		return
	}
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		z.respondEphemeral(ctx, i, "Bir alt komut seç.")
		return
	}
	sub := options[0]

	settings, err := z.leveling.GetSettings(ctx, i.GuildID)
	if err != nil {
		z.logger.ErrorContext(ctx, "error loading level settings", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}

	switch sub.Name {
	case subcommandSettingsStatus:
		z.respondEmbed(ctx, i, levelSettingsEmbed(settings), nil)

	case subcommandSettingsEnable:
		settings.Enabled = true
		if err := z.leveling.SaveSettings(ctx, settings); err != nil {
			z.logger.ErrorContext(ctx, "error saving level settings", tint.Err(err))
			z.respondEphemeral(ctx, i, genericErrorMessage)
			return
		}
		z.respondEphemeral(ctx, i, "Seviye sistemi açıldı. ✅")

	case subcommandSettingsDisable:
		settings.Enabled = false
		if err := z.leveling.SaveSettings(ctx, settings); err != nil {
			z.logger.ErrorContext(ctx, "error saving level settings", tint.Err(err))
			z.respondEphemeral(ctx, i, genericErrorMessage)
			return
		}
		z.respondEphemeral(ctx, i, "Seviye sistemi kapatıldı. 🛑")

	case subcommandLevelChannel:
		channelID := optionChannelID(subcommandOptions(sub), optionChannel)
		if channelID == "" {
			z.respondEphemeral(ctx, i, "Kanal seçmelisin.")
			return
		}
		settings.AnnounceChannelID = channelID
		if err := z.leveling.SaveSettings(ctx, settings); err != nil {
			z.logger.ErrorContext(ctx, "error saving level settings", tint.Err(err))
			z.respondEphemeral(ctx, i, genericErrorMessage)
			return
		}
		z.respondEphemeral(
			ctx,
			i,
			fmt.Sprintf("Seviye mesajları artık <#%s> kanalına gidecek.", channelID),
		)

	case subcommandLevelFilter:
		subOpts := subcommandOptions(sub)
		if opt, ok := subOpts[optionMinChars]; ok {
			settings.MinChars = int(opt.IntValue())
		}
		if opt, ok := subOpts[optionMinWords]; ok {
			settings.MinWords = int(opt.IntValue())
		}
		if err := z.leveling.SaveSettings(ctx, settings); err != nil {
			z.logger.ErrorContext(ctx, "error saving level settings", tint.Err(err))
			z.respondEphemeral(ctx, i, genericErrorMessage)
			return
		}
		z.respondEphemeral(
			ctx,
			i,
			fmt.Sprintf(
				"XP alt sınırları güncellendi: en az %d karakter, %d kelime.",
				settings.MinChars,
				settings.MinWords,
			),
		)

	case subcommandLevelReset:
		count, err := z.leveling.ResetGuild(ctx, i.GuildID)
		if err != nil {
			z.logger.ErrorContext(ctx, "error resetting levels", tint.Err(err))
			z.respondEphemeral(ctx, i, genericErrorMessage)
			return
		}
		z.respondMessage(ctx, i, &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("♻️ %d üyenin seviyesi sıfırlandı.", count),
		})

	default:
		z.respondEphemeral(ctx, i, "Bilinmeyen alt komut.")
	}
}

// commandRegisterAdmin configures the /kayit flow. Enabling requires a
// member role to already be set, since Register refuses to run without
// one.
func (z *Zoko) commandRegisterAdmin(
	ctx context.Context,
	i *discordgo.InteractionCreate,
) {
	if i.GuildID == "" {
		z.respondEphemeral(ctx, i, "Bu komut sadece sunucularda çalışır.")
		return
	}
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		z.respondEphemeral(ctx, i, "Bir alt komut seç.")
		return
	}
	sub := options[0]

	settings, err := z.registration.GetSettings(ctx, i.GuildID)
	if err != nil {
		z.logger.ErrorContext(
			ctx,
			"error loading registration settings",
			tint.Err(err),
		)
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}

	save := func(confirmation string) {
		if err := z.registration.SaveSettings(ctx, settings); err != nil {
			z.logger.ErrorContext(
				ctx,
				"error saving registration settings",
				tint.Err(err),
			)
			z.respondEphemeral(ctx, i, genericErrorMessage)
			return
		}
		z.respondEphemeral(ctx, i, confirmation)
	}

	switch sub.Name {
	case subcommandSettingsStatus:
		z.respondEmbed(ctx, i, registrationSettingsEmbed(settings), nil)

	case subcommandSettingsEnable:
		if settings.MemberRoleID == "" {
			z.respondEphemeral(
				ctx,
				i,
				"Önce `/kayit-ayar roller` ile kayıtlı rolünü ayarla.",
			)
			return
		}
		settings.Enabled = true
		save("Kayıt sistemi açıldı. ✅")

	case subcommandSettingsDisable:
		settings.Enabled = false
		save("Kayıt sistemi kapatıldı. 🛑")

	case subcommandRegisterRoles:
		subOpts := subcommandOptions(sub)
		memberRoleID := optionRoleID(subOpts, optionMemberRole)
		if memberRoleID == "" {
			z.respondEphemeral(ctx, i, "Kayıtlı rolü seçmelisin.")
			return
		}
		settings.MemberRoleID = memberRoleID
		settings.UnregisteredRoleID = optionRoleID(subOpts, optionNewMemberRole)
		save(fmt.Sprintf(
			"Kayıt rolleri ayarlandı: kayıtlı <@&%s>.",
			memberRoleID,
		))

	case subcommandRegisterChannel:
		channelID := optionChannelID(subcommandOptions(sub), optionChannel)
		if channelID == "" {
			z.respondEphemeral(ctx, i, "Kanal seçmelisin.")
			return
		}
		settings.LogChannelID = channelID
		save(fmt.Sprintf("Kayıt logları artık <#%s> kanalına gidecek.", channelID))

	case subcommandRegisterFormat:
		var format string
		if opt, ok := subcommandOptions(sub)[optionFormat]; ok {
			format = opt.StringValue()
		}
		if format == "" {
			z.respondEphemeral(ctx, i, "Format zorunlu. Örnek: {name} | {age}")
			return
		}
		settings.NicknameFormat = format
		save(fmt.Sprintf("Takma ad formatı ayarlandı: `%s`", format))

	default:
		z.respondEphemeral(ctx, i, "Bilinmeyen alt komut.")
	}
}

func (z *Zoko) commandWarnAdd(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	opts := discordInteractionOptions(i)
	targetID := optionUserID(opts, optionUser)
	var reason string
	if opt, ok := opts[optionReason]; ok {
		reason = opt.StringValue()
	}
	if targetID == "" || reason == "" {
		z.respondEphemeral(ctx, i, "Üye ve sebep zorunlu.")
		return
	}

	warning, err := z.warnings.Add(ctx, i.GuildID, targetID, user.ID, reason)
	if err != nil {
		z.logger.ErrorContext(ctx, "error adding warning", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	count, err := z.warnings.Count(ctx, i.GuildID, targetID)
	if err != nil {
		z.logger.WarnContext(ctx, "error counting warnings", tint.Err(err))
	}
	z.respondMessage(ctx, i, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf(
			"⚠️ <@%s> uyarıldı (`#%d`). Toplam uyarı: %d\nSebep: %s",
			targetID,
			warning.ID,
			count,
			truncate(reason, 200),
		),
	})
}

func (z *Zoko) commandWarnList(
	ctx context.Context,
	i *discordgo.InteractionCreate,
) {
	opts := discordInteractionOptions(i)
	targetID := optionUserID(opts, optionUser)
	if targetID == "" {
		z.respondEphemeral(ctx, i, "Üye seçmelisin.")
		return
	}

	warnings, err := z.warnings.List(ctx, i.GuildID, targetID)
	if err != nil {
		z.logger.ErrorContext(ctx, "error listing warnings", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	z.respondEmbed(ctx, i, warningsEmbed(targetID, warnings), nil)
}

func (z *Zoko) commandWarnRemove(
	ctx context.Context,
	i *discordgo.InteractionCreate,
) {
	opts := discordInteractionOptions(i)
	opt, ok := opts[optionWarnID]
	if !ok {
		z.respondEphemeral(ctx, i, "Uyarı numarası zorunlu.")
		return
	}
	warningID := uint(opt.IntValue())

	removed, err := z.warnings.Remove(ctx, i.GuildID, warningID)
	if err != nil {
		z.logger.ErrorContext(ctx, "error removing warning", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	if !removed {
		z.respondEphemeral(ctx, i, fmt.Sprintf("`#%d` numaralı uyarı bulunamadı.", warningID))
		return
	}
	z.respondEphemeral(ctx, i, fmt.Sprintf("`#%d` numaralı uyarı silindi.", warningID))
}

func (z *Zoko) commandFAQ(
	ctx context.Context,
	i *discordgo.InteractionCreate,
) {
	opts := discordInteractionOptions(i)
	var question string
	if opt, ok := opts[optionQuestion]; ok {
		question = opt.StringValue()
	}

	if question == "" {
		entries, err := z.faq.List(ctx, i.GuildID)
		if err != nil {
			z.logger.ErrorContext(ctx, "error listing faq", tint.Err(err))
			z.respondEphemeral(ctx, i, genericErrorMessage)
			return
		}
		if len(entries) == 0 {
			z.respondEphemeral(ctx, i, "Henüz kayıtlı soru yok.")
			return
		}
		content := "**Sıkça sorulan sorular:**\n"
		for _, entry := range entries {
			content += "• " + entry.Question + "\n"
		}
		z.respondEphemeral(ctx, i, truncate(content, discordMaxMessageLength))
		return
	}

	entry, found, err := z.faq.Lookup(ctx, i.GuildID, question)
	if err != nil {
		z.logger.ErrorContext(ctx, "error looking up faq", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	if !found {
		z.respondEphemeral(
			ctx,
			i,
			"Bu soru kayıtlı değil. Soruları listelemek için `/sss` yaz.",
		)
		return
	}
	z.respondMessage(ctx, i, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("**%s**\n%s", entry.Question, entry.Answer),
	})
}

func (z *Zoko) commandFAQCreate(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	opts := discordInteractionOptions(i)
	var question, answer string
	if opt, ok := opts[optionQuestion]; ok {
		question = opt.StringValue()
	}
	if opt, ok := opts[optionAnswer]; ok {
		answer = opt.StringValue()
	}
	if question == "" || answer == "" {
		z.respondEphemeral(ctx, i, "Soru ve cevap zorunlu.")
		return
	}

	entry, err := z.faq.Upsert(ctx, i.GuildID, question, answer, user.ID)
	if err != nil {
		z.logger.ErrorContext(ctx, "error saving faq entry", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	z.respondEphemeral(ctx, i, fmt.Sprintf("Kaydedildi: **%s**", entry.Question))
}

func (z *Zoko) commandFAQRemove(
	ctx context.Context,
	i *discordgo.InteractionCreate,
) {
	opts := discordInteractionOptions(i)
	var question string
	if opt, ok := opts[optionQuestion]; ok {
		question = opt.StringValue()
	}
	if question == "" {
		z.respondEphemeral(ctx, i, "Soru zorunlu.")
		return
	}

	removed, err := z.faq.Remove(ctx, i.GuildID, question)
	if err != nil {
		z.logger.ErrorContext(ctx, "error removing faq entry", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	if !removed {
		z.respondEphemeral(ctx, i, "Bu soru kayıtlı değil.")
		return
	}
	z.respondEphemeral(ctx, i, "Soru silindi.")
}

func (z *Zoko) commandTicketCreate(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	if i.GuildID == "" {
		z.respondEphemeral(ctx, i, "Bu komut sadece sunucularda çalışır.")
		return
	}
	opts := discordInteractionOptions(i)
	var subject string
	if opt, ok := opts[optionSubject]; ok {
		subject = opt.StringValue()
	}

	ticket, err := z.tickets.Create(ctx, z.discord.session, i.GuildID, user.ID, subject)
	if err != nil {
		z.logger.ErrorContext(ctx, "error creating ticket", tint.Err(err))
		z.respondEphemeral(
			ctx,
			i,
			"Destek talebi oluşturulamadı. Zaten açık bir talebin olabilir.",
		)
		return
	}

	z.respondEphemeral(
		ctx,
		i,
		fmt.Sprintf("Destek kanalın hazır: <#%s>", ticket.ChannelID),
	)
	_, err = z.discord.session.ChannelMessageSend(
		ticket.ChannelID,
		fmt.Sprintf(
			"<@%s> destek talebin oluşturuldu.\n**Konu:** %s\nEkibimiz en kısa sürede dönecek. Kapatmak için `/ticket-kapa` yaz.",
			user.ID,
			truncate(subject, 200),
		),
	)
	if err != nil {
		z.logger.WarnContext(ctx, "error sending ticket greeting", tint.Err(err))
	}
}

func (z *Zoko) commandTicketClose(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	ticket, found, err := z.tickets.ByChannel(ctx, i.ChannelID)
	if err != nil {
		z.logger.ErrorContext(ctx, "error loading ticket", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	if !found {
		z.respondEphemeral(ctx, i, "Bu kanal bir destek talebi değil.")
		return
	}

	if err := z.tickets.Close(ctx, z.discord.session, ticket, user.ID); err != nil {
		z.logger.ErrorContext(ctx, "error closing ticket", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	z.respondMessage(ctx, i, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf(
			"Talep kapatıldı. Bu kanal %s içinde silinecek. 👋",
			z.config.Tickets.CloseDelay,
		),
	})
}

func (z *Zoko) commandRegister(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	opts := discordInteractionOptions(i)
	targetID := optionUserID(opts, optionUser)
	var name string
	var age int
	if opt, ok := opts[optionName]; ok {
		name = opt.StringValue()
	}
	if opt, ok := opts[optionAge]; ok {
		age = int(opt.IntValue())
	}
	if targetID == "" || name == "" || age <= 0 {
		z.respondEphemeral(ctx, i, "Üye, isim ve yaş zorunlu.")
		return
	}

	nickname, err := z.registration.Register(
		ctx, z.discord.session, i.GuildID, targetID, name, age,
	)
	if err != nil {
		z.logger.ErrorContext(
			ctx,
			"error registering member",
			tint.Err(err),
			"moderator_id", user.ID,
		)
		z.respondEphemeral(ctx, i, "Kayıt başarısız: "+err.Error())
		return
	}
	z.respondMessage(ctx, i, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("✅ <@%s> kayıt edildi: **%s**", targetID, nickname),
	})
}

func (z *Zoko) commandReleaseNoteAdd(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	opts := discordInteractionOptions(i)
	var version, body string
	if opt, ok := opts[optionVersion]; ok {
		version = opt.StringValue()
	}
	if opt, ok := opts[optionBody]; ok {
		body = opt.StringValue()
	}
	if version == "" || body == "" {
		z.respondEphemeral(ctx, i, "Versiyon ve içerik zorunlu.")
		return
	}

	note, err := z.releaseNotes.Add(ctx, i.GuildID, version, body, user.ID)
	if err != nil {
		z.logger.ErrorContext(ctx, "error adding release note", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	z.respondEphemeral(ctx, i, fmt.Sprintf("**%s** notu kaydedildi.", note.Version))
}

func (z *Zoko) commandReleaseNotes(
	ctx context.Context,
	i *discordgo.InteractionCreate,
) {
	notes, err := z.releaseNotes.Latest(ctx, i.GuildID, 5)
	if err != nil {
		z.logger.ErrorContext(ctx, "error loading release notes", tint.Err(err))
		z.respondEphemeral(ctx, i, genericErrorMessage)
		return
	}
	z.respondEmbed(ctx, i, releaseNotesEmbed(notes), nil)
}
