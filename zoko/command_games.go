package zoko

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
)

// gameErrorMessage maps engine errors to short Turkish user messages.
func gameErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoActiveGame):
		return "Bu kanalda aktif bir oyun yok."
	case errors.Is(err, ErrGameFinished):
		return "Bu oyun zaten bitti."
	case errors.Is(err, ErrNotYourTurn):
		return "Sıra sende değil!"
	case errors.Is(err, ErrNotAParticipant):
		return "Bu oyunda oyuncu değilsin."
	case errors.Is(err, ErrCellOccupied):
		return "Bu kare dolu."
	case errors.Is(err, ErrAlreadyChosen):
		return "Bu el için zaten seçim yaptın."
	case errors.Is(err, ErrWrongGuessLength):
		return "Tahminin yanlış uzunlukta."
	case errors.Is(err, ErrInvalidMove):
		return "Geçersiz hamle."
	default:
		return "Bir şeyler ters gitti, tekrar dene."
	}
}

// respondMessage sends a channel-message interaction response.
func (z *Zoko) respondMessage(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	data *discordgo.InteractionResponseData,
) {
	err := z.discord.session.InteractionRespond(
		i.Interaction,
		&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: data,
		},
	)
	if err != nil {
		z.logger.ErrorContext(ctx, "error responding to interaction", tint.Err(err))
	}
}

func (z *Zoko) respondEphemeral(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	content string,
) {
	z.respondMessage(ctx, i, &discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

func (z *Zoko) respondEmbed(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	embed *discordgo.MessageEmbed,
	components []discordgo.MessageComponent,
) {
	z.respondMessage(ctx, i, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
}

// respondUpdate replaces the message a component interaction came from.
func (z *Zoko) respondUpdate(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	embed *discordgo.MessageEmbed,
	components []discordgo.MessageComponent,
) {
	err := z.discord.session.InteractionRespond(
		i.Interaction,
		&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{embed},
				Components: components,
			},
		},
	)
	if err != nil {
		z.logger.ErrorContext(ctx, "error updating interaction", tint.Err(err))
	}
}

// editResponse edits the original interaction response after the fact
// (used by the dealer animation).
func (z *Zoko) editResponse(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	embed *discordgo.MessageEmbed,
	components []discordgo.MessageComponent,
) {
	embeds := []*discordgo.MessageEmbed{embed}
	_, err := z.discord.session.InteractionResponseEdit(
		i.Interaction,
		&discordgo.WebhookEdit{
			Embeds:     &embeds,
			Components: &components,
		},
	)
	if err != nil {
		z.logger.ErrorContext(ctx, "error editing interaction response", tint.Err(err))
	}
}

// optionUserID pulls a user option's ID, or "" if unset.
func optionUserID(
	opts map[string]*discordgo.ApplicationCommandInteractionDataOption,
	name string,
) string {
	opt, ok := opts[name]
	if !ok {
		return ""
	}
	if u := opt.UserValue(nil); u != nil {
		return u.ID
	}
	return ""
}

// optionChannelID pulls a channel option's ID, or "" if unset.
func optionChannelID(
	opts map[string]*discordgo.ApplicationCommandInteractionDataOption,
	name string,
) string {
	opt, ok := opts[name]
	if !ok {
		return ""
	}
	if ch := opt.ChannelValue(nil); ch != nil {
		return ch.ID
	}
	return ""
}

// optionRoleID pulls a role option's ID, or "" if unset.
func optionRoleID(
	opts map[string]*discordgo.ApplicationCommandInteractionDataOption,
	name string,
) string {
	opt, ok := opts[name]
	if !ok {
		return ""
	}
	if r := opt.RoleValue(nil, ""); r != nil {
		return r.ID
	}
	return ""
}

// --- Blackjack ---

func (z *Zoko) commandBlackjack(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	key := UserContextID(i.GuildID, i.ChannelID, user.ID)
	s := z.blackjack.Start(key)

	z.respondEmbed(
		ctx,
		i,
		blackjackEmbed(s, s.Finished),
		blackjackComponents(s.Finished),
	)
	if s.Finished {
		z.recordGameLog(
			ctx,
			gameBlackjack, i.GuildID, i.ChannelID, user.ID, BotPlayerID,
			string(s.Result), "natural", s.CreatedAt,
		)
		z.blackjack.Reset(key)
	}
}

func (z *Zoko) componentBlackjack(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
	action string,
) {
	key := UserContextID(i.GuildID, i.ChannelID, user.ID)

	switch action {
	case "hit":
		s := z.blackjack.Hit(key)
		if s == nil {
			z.respondEphemeral(ctx, i, gameErrorMessage(ErrNoActiveGame))
			return
		}
		z.respondUpdate(ctx, i, blackjackEmbed(s, s.Finished), blackjackComponents(s.Finished))
		if s.Finished {
			z.recordGameLog(
				ctx,
				gameBlackjack, i.GuildID, i.ChannelID, user.ID, BotPlayerID,
				string(s.Result), "", s.CreatedAt,
			)
			z.blackjack.Reset(key)
		}
	case "stand":
		s := z.blackjack.Stand(key)
		if s == nil {
			z.respondEphemeral(ctx, i, gameErrorMessage(ErrNoActiveGame))
			return
		}
		// Reveal the dealer hand, disable the buttons and let the
		// dealer play out one card per tick.
		z.respondUpdate(ctx, i, blackjackEmbed(s, true), blackjackComponents(true))
		go z.runDealer(i, user.ID, key, s)
	default:
		z.logger.Warn("unknown blackjack action", "action", action)
	}
}

// runDealer paces the dealer's draws so the message edit reads like an
// animation, then records the outcome. The loop only ever steps the
// hand it was handed - if the player starts a replacement hand at the
// same key mid-animation, DealerStep returns nil and the loop exits
// without touching it.
func (z *Zoko) runDealer(
	i *discordgo.InteractionCreate,
	userID string,
	key string,
	hand *BlackjackState,
) {
	ctx := WithLogger(context.Background(), z.logger)
	delay := z.config.Games.DealerStepDelay

	for {
		time.Sleep(delay)
		done, s := z.blackjack.DealerStep(key, hand)
		if s == nil {
			return
		}
		z.editResponse(ctx, i, blackjackEmbed(s, true), blackjackComponents(true))
		if done {
			z.recordGameLog(
				ctx,
				gameBlackjack, i.GuildID, i.ChannelID, userID, BotPlayerID,
				string(s.Result), "", s.CreatedAt,
			)
			return
		}
	}
}

// --- XOX ---

func (z *Zoko) commandXOX(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	opts := discordInteractionOptions(i)

	opponentID := optionUserID(opts, optionOpponent)
	if opponentID == user.ID {
		z.respondEphemeral(ctx, i, "Kendine karşı oynayamazsın!")
		return
	}
	playerO := PlayerFromID(BotPlayerID)
	if opponentID != "" {
		playerO = PlayerFromID(opponentID)
	}

	key := ChannelContextID(i.GuildID, i.ChannelID)
	s := z.xox.Start(key, Player{ID: user.ID}, playerO)
	z.respondEmbed(ctx, i, tttEmbed(s), tttComponents(s))
}

func (z *Zoko) componentXOX(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
	rest string,
) {
	index, err := strconv.Atoi(rest)
	if err != nil {
		z.respondEphemeral(ctx, i, gameErrorMessage(ErrInvalidMove))
		return
	}

	key := ChannelContextID(i.GuildID, i.ChannelID)
	s, err := z.xox.Move(key, user.ID, index)
	if err != nil {
		z.respondEphemeral(ctx, i, gameErrorMessage(err))
		return
	}

	z.respondUpdate(ctx, i, tttEmbed(s), tttComponents(s))
	if s.Finished {
		z.recordGameLog(
			ctx,
			gameXOX, i.GuildID, i.ChannelID,
			s.PlayerX.String(), s.PlayerO.String(),
			s.Winner.String(), "", s.CreatedAt,
		)
		z.xox.Cancel(key)
	}
}

// --- Taş Kağıt Makas ---

func (z *Zoko) commandTKM(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	opts := discordInteractionOptions(i)

	opponentID := optionUserID(opts, optionOpponent)
	if opponentID == user.ID {
		z.respondEphemeral(ctx, i, "Kendine karşı oynayamazsın!")
		return
	}
	playerO := PlayerFromID(BotPlayerID)
	if opponentID != "" {
		playerO = PlayerFromID(opponentID)
	}

	bestOf := z.config.Games.RpsBestOf
	if opt, ok := opts[optionBestOf]; ok {
		bestOf = int(opt.IntValue())
	}

	token, err := generateRandomHexString(8)
	if err != nil {
		z.logger.ErrorContext(ctx, "error generating match token", tint.Err(err))
		z.respondEphemeral(ctx, i, gameErrorMessage(err))
		return
	}

	key := ChannelContextID(i.GuildID, i.ChannelID)
	s := z.tkm.Start(key, Player{ID: user.ID}, playerO, bestOf, token)
	z.respondEmbed(ctx, i, rpsEmbed(s), rpsComponents(s))
}

func (z *Zoko) componentTKM(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
	rest string,
) {
	token, rawChoice, ok := strings.Cut(rest, ":")
	if !ok {
		z.respondEphemeral(ctx, i, gameErrorMessage(ErrInvalidMove))
		return
	}
	choice, ok := ParseRpsChoice(rawChoice)
	if !ok {
		z.respondEphemeral(ctx, i, gameErrorMessage(ErrInvalidMove))
		return
	}

	result, err := z.tkm.SubmitChoice(token, user.ID, choice)
	if err != nil {
		z.respondEphemeral(ctx, i, gameErrorMessage(err))
		return
	}

	if !result.Ready {
		// First throw of a two-human round: acknowledge privately,
		// leave the shared message alone so the choice stays hidden.
		z.respondEphemeral(ctx, i, "Seçimin alındı, rakibin bekleniyor...")
		return
	}

	s := result.State
	z.respondUpdate(ctx, i, rpsEmbed(s), rpsComponents(s))
	if s.Finished {
		z.recordGameLog(
			ctx,
			gameRPS, i.GuildID, i.ChannelID,
			s.PlayerX.String(), s.PlayerO.String(),
			s.Winner.String(),
			fmt.Sprintf("%d-%d", s.ScoreX, s.ScoreO),
			s.CreatedAt,
		)
		key := ChannelContextID(i.GuildID, i.ChannelID)
		z.tkm.Cancel(key)
	}
}

// --- Wordle ---

func (z *Zoko) commandWordle(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		z.respondEphemeral(ctx, i, "Bir alt komut seç: baslat, tahmin, iptal")
		return
	}
	sub := options[0]
	key := ChannelContextID(i.GuildID, i.ChannelID)

	switch sub.Name {
	case subcommandWordleStart:
		length := z.config.Games.WordleLength
		subOpts := subcommandOptions(sub)
		if opt, ok := subOpts[optionLength]; ok {
			length = int(opt.IntValue())
		}
		s := z.wordle.Start(key, length)
		z.respondEmbed(ctx, i, wordleEmbed(s), nil)

	case subcommandWordleGuess:
		subOpts := subcommandOptions(sub)
		opt, ok := subOpts[optionGuess]
		if !ok {
			z.respondEphemeral(ctx, i, gameErrorMessage(ErrInvalidMove))
			return
		}
		raw := opt.StringValue()
		s, _, err := z.wordle.Guess(key, raw)
		if err != nil {
			z.respondEphemeral(ctx, i, gameErrorMessage(err))
			return
		}
		z.respondEmbed(ctx, i, wordleEmbed(s), nil)
		if s.Finished {
			outcome := "fail"
			if s.Success {
				outcome = "success"
			}
			z.recordGameLog(
				ctx,
				gameWordle, i.GuildID, i.ChannelID, user.ID, "",
				outcome,
				fmt.Sprintf("attempts=%d", len(s.Rows)),
				s.CreatedAt,
			)
			z.wordle.Cancel(key)
		}

	case subcommandWordleCancel:
		if z.wordle.Cancel(key) {
			z.respondEphemeral(ctx, i, "Oyun iptal edildi.")
		} else {
			z.respondEphemeral(ctx, i, gameErrorMessage(ErrNoActiveGame))
		}

	default:
		z.respondEphemeral(ctx, i, "Bilinmeyen alt komut.")
	}
}
