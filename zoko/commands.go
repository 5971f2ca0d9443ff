package zoko

import "github.com/bwmarrin/discordgo"

// Slash command definitions. Descriptions are Turkish, matching the
// bot's audience; option names double as the keys handlers look up.

const (
	optionOpponent = "rakip"
	optionBestOf   = "kac-el"
	optionLength   = "uzunluk"
	optionGuess    = "tahmin"
	optionUser     = "kullanici"
	optionReason   = "sebep"
	optionWarnID   = "uyari-no"
	optionQuestion = "soru"
	optionAnswer   = "cevap"
	optionSubject  = "konu"
	optionName     = "isim"
	optionAge      = "yas"
	optionVersion  = "versiyon"
	optionBody     = "icerik"

	optionChannel       = "kanal"
	optionMinChars      = "min-karakter"
	optionMinWords      = "min-kelime"
	optionMemberRole    = "kayitli-rol"
	optionNewMemberRole = "yeni-uye-rol"
	optionFormat        = "format"
	optionDeleteDays    = "sil-gun"
	optionDuration      = "sure"
	optionAmount        = "miktar"

	subcommandWordleStart  = "baslat"
	subcommandWordleGuess  = "tahmin"
	subcommandWordleCancel = "iptal"

	subcommandSettingsStatus  = "durum"
	subcommandSettingsEnable  = "ac"
	subcommandSettingsDisable = "kapat"
	subcommandLevelChannel    = "kanal"
	subcommandLevelFilter     = "filtre"
	subcommandLevelReset      = "sifirla"
	subcommandRegisterRoles   = "roller"
	subcommandRegisterChannel = "kanal"
	subcommandRegisterFormat  = "format"
)

func appCommandBlackjack() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        DiscordSlashCommandBlackjack,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Krupiyeye karşı blackjack oyna",
	}
}

func appCommandXOX() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        DiscordSlashCommandXOX,
		Type:        discordgo.ChatApplicationCommand,
		Description: "XOX oyna (rakip seçmezsen bota karşı)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionOpponent,
				Description: "Karşına almak istediğin kişi",
			},
		},
	}
}

func appCommandTKM() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        DiscordSlashCommandTKM,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Taş kağıt makas oyna",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionOpponent,
				Description: "Karşına almak istediğin kişi",
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        optionBestOf,
				Description: "Kaç el üzerinden (3 veya 5)",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "3", Value: 3},
					{Name: "5", Value: 5},
				},
			},
		},
	}
}

func appCommandWordle() *discordgo.ApplicationCommand {
	minLength := float64(WordleMinLength)
	maxLength := float64(WordleMaxLength)
	return &discordgo.ApplicationCommand{
		Name:        DiscordSlashCommandWordle,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Türkçe wordle",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandWordleStart,
				Description: "Yeni oyun başlat",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        optionLength,
						Description: "Kelime uzunluğu (5-7)",
						MinValue:    &minLength,
						MaxValue:    maxLength,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandWordleGuess,
				Description: "Tahmin yap",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optionGuess,
						Description: "Tahminin",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandWordleCancel,
				Description: "Oyunu bitir",
			},
		},
	}
}

func appCommandLevel() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        DiscordSlashCommandLevel,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Seviyeni ve XP durumunu göster",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionUser,
				Description: "Başka birinin seviyesine bak",
			},
		},
	}
}

func appCommandLeaderboard() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        DiscordSlashCommandLeaderboard,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Sunucunun XP sıralaması",
	}
}

func appCommandLevelAdmin() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionAdministrator
	minOne := 1.0
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandLevelAdmin,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Seviye sistemini yönet",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandSettingsStatus,
				Description: "Mevcut ayarları göster",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandSettingsEnable,
				Description: "Seviye sistemini aç",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandSettingsDisable,
				Description: "Seviye sistemini kapat",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandLevelChannel,
				Description: "Seviye atlama mesajlarının kanalını ayarla",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        optionChannel,
						Description: "Duyuru kanalı",
						Required:    true,
						ChannelTypes: []discordgo.ChannelType{
							discordgo.ChannelTypeGuildText,
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandLevelFilter,
				Description: "XP kazanmak için mesaj alt sınırlarını ayarla",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        optionMinChars,
						Description: "En az karakter sayısı",
						MinValue:    &minOne,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        optionMinWords,
						Description: "En az kelime sayısı",
						MinValue:    &minOne,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandLevelReset,
				Description: "Tüm üyelerin seviyesini sıfırla",
			},
		},
	}
}

func appCommandWarnAdd() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionKickMembers
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandWarnAdd,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Bir üyeye uyarı ver",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionUser,
				Description: "Uyarılacak üye",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionReason,
				Description: "Uyarı sebebi",
				Required:    true,
			},
		},
	}
}

func appCommandWarnList() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionKickMembers
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandWarnList,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Bir üyenin uyarılarını listele",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionUser,
				Description: "Üye",
				Required:    true,
			},
		},
	}
}

func appCommandWarnRemove() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionKickMembers
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandWarnRemove,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Bir uyarıyı sil",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        optionWarnID,
				Description: "Silinecek uyarının numarası",
				Required:    true,
			},
		},
	}
}

func appCommandFAQ() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        DiscordSlashCommandFAQ,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Sıkça sorulan sorular",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionQuestion,
				Description: "Sorunu yaz (boş bırakırsan soruları listeler)",
			},
		},
	}
}

func appCommandFAQCreate() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionManageServer
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandFAQCreate,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "SSS'ye soru-cevap ekle",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionQuestion,
				Description: "Soru",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionAnswer,
				Description: "Cevap",
				Required:    true,
			},
		},
	}
}

func appCommandFAQRemove() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionManageServer
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandFAQRemove,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "SSS'den bir soruyu sil",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionQuestion,
				Description: "Silinecek soru",
				Required:    true,
			},
		},
	}
}

func appCommandTicketCreate() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        DiscordSlashCommandTicketCreate,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Destek talebi oluştur",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionSubject,
				Description: "Talebinin konusu",
				Required:    true,
			},
		},
	}
}

func appCommandTicketClose() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        DiscordSlashCommandTicketClose,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Bu destek kanalını kapat",
	}
}

func appCommandRegister() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionManageNicknames
	minAge := 1.0
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandRegister,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Yeni üyeyi kayıt et",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionUser,
				Description: "Kayıt edilecek üye",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionName,
				Description: "Üyenin ismi",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        optionAge,
				Description: "Üyenin yaşı",
				Required:    true,
				MinValue:    &minAge,
			},
		},
	}
}

func appCommandRegisterAdmin() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionAdministrator
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandRegisterAdmin,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Kayıt sistemini yönet",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandSettingsStatus,
				Description: "Mevcut ayarları göster",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandSettingsEnable,
				Description: "Kayıt sistemini aç",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandSettingsDisable,
				Description: "Kayıt sistemini kapat",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandRegisterRoles,
				Description: "Kayıt rollerini ayarla",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        optionMemberRole,
						Description: "Kayıt sonrası verilecek rol",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        optionNewMemberRole,
						Description: "Kayıt sonrası alınacak yeni üye rolü",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandRegisterChannel,
				Description: "Kayıt log kanalını ayarla",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        optionChannel,
						Description: "Log kanalı",
						Required:    true,
						ChannelTypes: []discordgo.ChannelType{
							discordgo.ChannelTypeGuildText,
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandRegisterFormat,
				Description: "Takma ad formatını ayarla ({name} ve {age} kullanılabilir)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optionFormat,
						Description: "Örn: {name} | {age}",
						Required:    true,
					},
				},
			},
		},
	}
}

func appCommandReleaseNoteAdd() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionManageServer
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandReleaseNoteAdd,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Güncelleme notu ekle",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionVersion,
				Description: "Versiyon",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionBody,
				Description: "Neler değişti",
				Required:    true,
			},
		},
	}
}

func appCommandReleaseNotes() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        DiscordSlashCommandReleaseNotes,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Son güncelleme notlarını göster",
	}
}

func appCommandBan() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionBanMembers
	minDays := 0.0
	maxDays := float64(maxBanDeleteDays)
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandBan,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Bir üyeyi sunucudan yasakla",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionUser,
				Description: "Yasaklanacak üye",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionReason,
				Description: "Sebep",
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        optionDeleteDays,
				Description: "Son kaç günün mesajları silinsin (0-7)",
				MinValue:    &minDays,
				MaxValue:    maxDays,
			},
		},
	}
}

func appCommandKick() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionKickMembers
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandKick,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Bir üyeyi sunucudan at",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionUser,
				Description: "Atılacak üye",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionReason,
				Description: "Sebep",
			},
		},
	}
}

func appCommandMute() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionModerateMembers
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandMute,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Bir üyeyi belirli bir süre sustur (timeout)",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionUser,
				Description: "Susturulacak üye",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionDuration,
				Description: "Süre (en fazla 28 gün)",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "5 dakika", Value: "5m"},
					{Name: "10 dakika", Value: "10m"},
					{Name: "1 saat", Value: "1h"},
					{Name: "6 saat", Value: "6h"},
					{Name: "12 saat", Value: "12h"},
					{Name: "1 gün", Value: "1d"},
					{Name: "3 gün", Value: "3d"},
					{Name: "7 gün", Value: "7d"},
					{Name: "28 gün", Value: "28d"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionReason,
				Description: "Sebep",
			},
		},
	}
}

func appCommandUnmute() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionModerateMembers
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandUnmute,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Bir üyenin susturmasını kaldır",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optionUser,
				Description: "Susturması kaldırılacak üye",
				Required:    true,
			},
		},
	}
}

func appCommandClear() *discordgo.ApplicationCommand {
	var perms int64 = discordgo.PermissionManageMessages
	minAmount := 1.0
	maxAmount := float64(maxBulkDeleteMessages)
	return &discordgo.ApplicationCommand{
		Name:                     DiscordSlashCommandClear,
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Kanaldaki mesajları toplu sil",
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        optionAmount,
				Description: "Silinecek mesaj sayısı (1-100)",
				Required:    true,
				MinValue:    &minAmount,
				MaxValue:    maxAmount,
			},
		},
	}
}
