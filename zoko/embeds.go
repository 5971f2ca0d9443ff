package zoko

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Embed colors, one per feature so games are visually distinct.
const (
	colorBlackjack = 0x2e7d32
	colorXOX       = 0x1565c0
	colorTKM       = 0xef6c00
	colorWordle    = 0x6a1b9a
	colorLevel     = 0x00897b
	colorWarn      = 0xc62828
	colorInfo      = 0x455a64
)

var tttCellEmoji = map[Mark]string{
	MarkX: "❌",
	MarkO: "⭕",
}

var rpsChoiceEmoji = map[RpsChoice]string{
	RpsRock:     "🪨",
	RpsPaper:    "📄",
	RpsScissors: "✂️",
}

var letterMarkEmoji = map[LetterMark]string{
	LetterCorrect: "🟩",
	LetterPresent: "🟨",
	LetterAbsent:  "⬜",
}

// renderHand joins a hand's cards, e.g. "A♠ 7♥".
func renderHand(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// renderDealerHand hides the dealer's hole card while the player is
// still acting.
func renderDealerHand(cards []Card, hideHole bool) string {
	if !hideHole || len(cards) < 2 {
		return renderHand(cards)
	}
	return cards[0].String() + " 🂠"
}

// blackjackEmbed renders the table. revealDealer shows the hole card
// and dealer total, used once the player stands and during the dealer's
// draw animation.
func blackjackEmbed(s *BlackjackState, revealDealer bool) *discordgo.MessageEmbed {
	playerValue := handValue(s.Player)
	hideHole := !s.Finished && !revealDealer

	dealerLine := renderDealerHand(s.Dealer, hideHole)
	if !hideHole {
		dealerLine = fmt.Sprintf(
			"%s (%d)", renderHand(s.Dealer), handValue(s.Dealer).Best,
		)
	}

	embed := &discordgo.MessageEmbed{
		Title: "Blackjack",
		Color: colorBlackjack,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Elin",
				Value: fmt.Sprintf(
					"%s (%d)", renderHand(s.Player), playerValue.Best,
				),
				Inline: true,
			},
			{
				Name:   "Krupiye",
				Value:  dealerLine,
				Inline: true,
			},
		},
	}

	if s.Finished {
		switch s.Result {
		case BlackjackResultPlayer:
			embed.Description = "🎉 Kazandın!"
		case BlackjackResultDealer:
			embed.Description = "Krupiye kazandı."
		case BlackjackResultPush:
			embed.Description = "Berabere."
		}
	} else {
		embed.Description = "Kart çek veya kal."
	}
	return embed
}

// blackjackComponents returns the hit/stand button row, disabled once
// the game ends.
func blackjackComponents(finished bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Kart Çek",
					Style:    discordgo.PrimaryButton,
					CustomID: customIDPrefixBlackjack + ":hit",
					Disabled: finished,
				},
				discordgo.Button{
					Label:    "Kal",
					Style:    discordgo.SecondaryButton,
					CustomID: customIDPrefixBlackjack + ":stand",
					Disabled: finished,
				},
			},
		},
	}
}

func tttBoardString(s *TttState) string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			idx := row*3 + col
			if cell := s.Board[idx]; cell != MarkNone {
				b.WriteString(tttCellEmoji[cell])
			} else {
				// keypad emoji for the cell number (1-9)
				b.WriteString(fmt.Sprintf("%d️⃣", idx+1))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func tttEmbed(s *TttState) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "XOX",
		Color:       colorXOX,
		Description: tttBoardString(s),
	}
	switch {
	case s.Finished && s.Winner == WinnerTie:
		embed.Description += "\nBerabere!"
	case s.Finished && s.Winner == WinnerX:
		embed.Description += fmt.Sprintf("\n❌ %s kazandı!", playerMention(s.PlayerX))
	case s.Finished && s.Winner == WinnerO:
		embed.Description += fmt.Sprintf("\n⭕ %s kazandı!", playerMention(s.PlayerO))
	default:
		current := s.currentPlayer()
		embed.Description += fmt.Sprintf(
			"\nSıra: %s %s",
			tttCellEmoji[s.Turn],
			playerMention(current),
		)
	}
	return embed
}

// tttComponents renders the 3x3 button grid. Occupied and finished
// cells are disabled.
func tttComponents(s *TttState) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent
	for idx := 0; idx < 9; idx++ {
		label := " "
		style := discordgo.SecondaryButton
		switch s.Board[idx] {
		case MarkX:
			label = "X"
			style = discordgo.DangerButton
		case MarkO:
			label = "O"
			style = discordgo.SuccessButton
		}
		buttons = append(buttons, discordgo.Button{
			Label:    label,
			Style:    style,
			CustomID: fmt.Sprintf("%s:%d", customIDPrefixXOX, idx),
			Disabled: s.Finished || s.Board[idx] != MarkNone,
		})
	}

	var rows []discordgo.MessageComponent
	for _, chunk := range chunkItems(3, buttons...) {
		rows = append(rows, discordgo.ActionsRow{Components: chunk})
	}
	return rows
}

func playerMention(p Player) string {
	if p.Bot {
		return "🤖 Bot"
	}
	return "<@" + p.ID + ">"
}

func rpsEmbed(s *RpsState) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Taş Kağıt Makas (%d el)", s.BestOf),
		Color: colorTKM,
	}

	var b strings.Builder
	for _, round := range s.Rounds {
		fmt.Fprintf(
			&b,
			"%d. el: %s - %s",
			round.Round,
			rpsChoiceEmoji[round.ChoiceX],
			rpsChoiceEmoji[round.ChoiceO],
		)
		switch round.Winner {
		case WinnerX:
			b.WriteString(" → " + playerMention(s.PlayerX))
		case WinnerO:
			b.WriteString(" → " + playerMention(s.PlayerO))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(
		&b,
		"\n**%s %d - %d %s**\n",
		playerMention(s.PlayerX),
		s.ScoreX,
		s.ScoreO,
		playerMention(s.PlayerO),
	)

	if s.Finished {
		switch s.Winner {
		case WinnerX:
			fmt.Fprintf(&b, "🏆 %s kazandı!", playerMention(s.PlayerX))
		case WinnerO:
			fmt.Fprintf(&b, "🏆 %s kazandı!", playerMention(s.PlayerO))
		default:
			b.WriteString("Berabere bitti!")
		}
	} else {
		fmt.Fprintf(&b, "%d. el: seçimini yap!", s.CurrentRound)
	}
	embed.Description = b.String()
	return embed
}

// rpsComponents returns the three choice buttons, carrying the match
// token so stale messages can't affect a newer match.
func rpsComponents(s *RpsState) []discordgo.MessageComponent {
	choices := []RpsChoice{RpsRock, RpsPaper, RpsScissors}
	labels := map[RpsChoice]string{
		RpsRock:     "Taş",
		RpsPaper:    "Kağıt",
		RpsScissors: "Makas",
	}
	var buttons []discordgo.MessageComponent
	for _, choice := range choices {
		buttons = append(buttons, discordgo.Button{
			Label: labels[choice],
			Emoji: &discordgo.ComponentEmoji{
				Name: rpsChoiceEmoji[choice],
			},
			Style: discordgo.PrimaryButton,
			CustomID: fmt.Sprintf(
				"%s:%s:%s", customIDPrefixTKM, s.Token, choice,
			),
			Disabled: s.Finished,
		})
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

// wordleRowString renders one guess as letters plus its color strip.
func wordleRowString(row GuessRow) string {
	var letters strings.Builder
	var marks strings.Builder
	for i, letter := range row.Letters {
		letters.WriteString("`" + strings.ToUpper(letter) + "`")
		marks.WriteString(letterMarkEmoji[row.Marks[i]])
	}
	return letters.String() + "\n" + marks.String()
}

func wordleEmbed(s *WordleState) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, row := range s.Rows {
		b.WriteString(wordleRowString(row))
		b.WriteString("\n")
	}

	switch {
	case s.Finished && s.Success:
		fmt.Fprintf(
			&b,
			"\n🎉 %d tahminde bildin!",
			len(s.Rows),
		)
	case s.Finished:
		fmt.Fprintf(&b, "\nOyun bitti! Kelime: **%s**", s.Target)
	default:
		fmt.Fprintf(
			&b,
			"\n%d/%d tahmin - `/wordle tahmin` ile devam et",
			len(s.Rows),
			s.MaxAttempts,
		)
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Wordle (%d harf)", s.Length),
		Color:       colorWordle,
		Description: b.String(),
	}
}

func levelEmbed(username string, user LevelUser, rank int) *discordgo.MessageEmbed {
	nextLevelXP := TotalXPForLevel(user.Level + 1)
	progress := user.XPTotal - TotalXPForLevel(user.Level)
	needed := nextLevelXP - TotalXPForLevel(user.Level)

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s - Seviye %d", username, user.Level),
		Color: colorLevel,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Toplam XP",
				Value:  fmt.Sprintf("%d", user.XPTotal),
				Inline: true,
			},
			{
				Name:   "Sıralama",
				Value:  fmt.Sprintf("#%d", rank),
				Inline: true,
			},
			{
				Name: "Sonraki seviye",
				Value: fmt.Sprintf(
					"%d / %d XP", progress, needed,
				),
				Inline: true,
			},
		},
	}
}

func leaderboardEmbed(users []LevelUser) *discordgo.MessageEmbed {
	var b strings.Builder
	medals := []string{"🥇", "🥈", "🥉"}
	for i, u := range users {
		prefix := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			prefix = medals[i]
		}
		fmt.Fprintf(
			&b,
			"%s <@%s> - Seviye %d (%d XP)\n",
			prefix,
			u.UserID,
			u.Level,
			u.XPTotal,
		)
	}
	if b.Len() == 0 {
		b.WriteString("Henüz kimse XP kazanmamış.")
	}
	return &discordgo.MessageEmbed{
		Title:       "XP Sıralaması",
		Color:       colorLevel,
		Description: b.String(),
	}
}

// onOff renders a settings toggle in the bot's language.
func onOff(enabled bool) string {
	if enabled {
		return "Açık"
	}
	return "Kapalı"
}

func channelMention(channelID string) string {
	if channelID == "" {
		return "Ayarlı değil"
	}
	return fmt.Sprintf("<#%s>", channelID)
}

func roleMention(roleID string) string {
	if roleID == "" {
		return "Ayarlı değil"
	}
	return fmt.Sprintf("<@&%s>", roleID)
}

func levelSettingsEmbed(s LevelSettings) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Seviye Sistemi",
		Color: colorLevel,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Durum", Value: onOff(s.Enabled), Inline: true},
			{
				Name:   "Duyuru kanalı",
				Value:  channelMention(s.AnnounceChannelID),
				Inline: true,
			},
			{
				Name: "XP alt sınırları",
				Value: fmt.Sprintf(
					"En az %d karakter, %d kelime",
					s.MinChars,
					s.MinWords,
				),
				Inline: false,
			},
		},
	}
}

func registrationSettingsEmbed(s RegistrationSettings) *discordgo.MessageEmbed {
	format := s.NicknameFormat
	if format == "" {
		format = "{name} | {age}"
	}
	return &discordgo.MessageEmbed{
		Title: "Kayıt Sistemi",
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Durum", Value: onOff(s.Enabled), Inline: true},
			{
				Name:   "Kayıtlı rolü",
				Value:  roleMention(s.MemberRoleID),
				Inline: true,
			},
			{
				Name:   "Yeni üye rolü",
				Value:  roleMention(s.UnregisteredRoleID),
				Inline: true,
			},
			{
				Name:   "Log kanalı",
				Value:  channelMention(s.LogChannelID),
				Inline: true,
			},
			{
				Name:   "Takma ad formatı",
				Value:  fmt.Sprintf("`%s`", format),
				Inline: true,
			},
		},
	}
}

func warningsEmbed(userID string, warnings []Warning) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, w := range warnings {
		fmt.Fprintf(
			&b,
			"`#%d` <@%s> tarafından: %s\n",
			w.ID,
			w.ModeratorID,
			truncate(w.Reason, 120),
		)
	}
	if b.Len() == 0 {
		b.WriteString("Uyarı yok.")
	}
	return &discordgo.MessageEmbed{
		Title:       "Uyarılar",
		Color:       colorWarn,
		Description: fmt.Sprintf("<@%s>\n\n%s", userID, b.String()),
	}
}

func releaseNotesEmbed(notes []ReleaseNote) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Güncelleme Notları",
		Color: colorInfo,
	}
	for _, note := range notes {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  note.Version,
			Value: truncate(note.Body, 1024),
		})
	}
	if len(embed.Fields) == 0 {
		embed.Description = "Henüz güncelleme notu yok."
	}
	return embed
}
