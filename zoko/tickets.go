package zoko

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

const (
	ticketStatusOpen    = "open"
	ticketStatusClosing = "closing"
	ticketStatusClosed  = "closed"
)

// Ticket is one support request, backed by a private text channel.
//
//nolint:lll // struct tags can't be split
type Ticket struct {
	ModelUintID
	GuildID   string `json:"guild_id" gorm:"index;not null"`
	ChannelID string `json:"channel_id" gorm:"index;not null"`
	UserID    string `json:"user_id" gorm:"index;not null"`
	Subject   string `json:"subject"`
	Status    string `json:"status" gorm:"default:open"`

	// ClosedBy is the user who ran /ticket-kapa
	ClosedBy string `json:"closed_by,omitempty"`
	ClosedAt int64  `json:"closed_at,omitempty"`
	ModelUnixTime
}

func (t Ticket) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("id", uint64(t.ID)),
		slog.String("guild_id", t.GuildID),
		slog.String("channel_id", t.ChannelID),
		slog.String("user_id", t.UserID),
		slog.String("status", t.Status),
	)
}

// Tickets creates and tears down support-ticket channels. Closing is
// delayed by config so the requester sees the goodbye message before
// the channel disappears; pending closes are tracked so Stop can cancel
// their timers on shutdown (the rows stay 'closing' and are swept on
// the next start).
type Tickets struct {
	db      *gorm.DB
	writeDB *database
	logger  *slog.Logger
	config  TicketsConfig

	mu      sync.Mutex
	pending map[uint]*time.Timer
}

func NewTickets(
	db *gorm.DB,
	writeDB *database,
	logger *slog.Logger,
	config TicketsConfig,
) *Tickets {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tickets{
		db:      db,
		writeDB: writeDB,
		logger:  logger.With(loggerNameKey, "tickets"),
		config:  config,
		pending: map[uint]*time.Timer{},
	}
}

// OpenForUser returns the user's open ticket in the guild, if any.
func (t *Tickets) OpenForUser(
	ctx context.Context,
	guildID, userID string,
) (Ticket, bool, error) {
	var ticket Ticket
	err := t.db.WithContext(ctx).Where(
		"guild_id = ? AND user_id = ? AND status = ?",
		guildID, userID, ticketStatusOpen,
	).First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Ticket{}, false, nil
	}
	if err != nil {
		return Ticket{}, false, err
	}
	return ticket, true, nil
}

// ByChannel finds the ticket backed by the given channel.
func (t *Tickets) ByChannel(
	ctx context.Context,
	channelID string,
) (Ticket, bool, error) {
	var ticket Ticket
	err := t.db.WithContext(ctx).Where(
		"channel_id = ? AND status <> ?", channelID, ticketStatusClosed,
	).First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Ticket{}, false, nil
	}
	if err != nil {
		return Ticket{}, false, err
	}
	return ticket, true, nil
}

// Create opens a new ticket channel visible to the requester only (plus
// roles inheriting from the category) and records it. One open ticket
// per user per guild.
func (t *Tickets) Create(
	ctx context.Context,
	session DiscordSessionHandler,
	guildID, userID, subject string,
) (Ticket, error) {
	if _, exists, err := t.OpenForUser(ctx, guildID, userID); err != nil {
		return Ticket{}, fmt.Errorf("error checking open tickets: %w", err)
	} else if exists {
		return Ticket{}, errors.New("user already has an open ticket")
	}

	channel, err := session.GuildChannelCreateComplex(
		guildID,
		discordgo.GuildChannelCreateData{
			Name: fmt.Sprintf("destek-%s", userID),
			Type: discordgo.ChannelTypeGuildText,
			PermissionOverwrites: []*discordgo.PermissionOverwrite{
				{
					ID:   guildID, // @everyone
					Type: discordgo.PermissionOverwriteTypeRole,
					Deny: discordgo.PermissionViewChannel,
				},
				{
					ID:   userID,
					Type: discordgo.PermissionOverwriteTypeMember,
					Allow: discordgo.PermissionViewChannel |
						discordgo.PermissionSendMessages |
						discordgo.PermissionReadMessageHistory,
				},
			},
		},
	)
	if err != nil {
		return Ticket{}, fmt.Errorf("error creating ticket channel: %w", err)
	}

	ticket := Ticket{
		GuildID:   guildID,
		ChannelID: channel.ID,
		UserID:    userID,
		Subject:   subject,
		Status:    ticketStatusOpen,
	}
	if err := t.writeDB.Create(ctx, &ticket); err != nil {
		// Channel exists but the row doesn't; remove the channel so we
		// don't strand it.
		if _, delErr := session.ChannelDelete(channel.ID); delErr != nil {
			t.logger.ErrorContext(
				ctx,
				"error deleting orphaned ticket channel",
				slog.String("channel_id", channel.ID),
				slog.Any("error", delErr),
			)
		}
		return Ticket{}, fmt.Errorf("error saving ticket: %w", err)
	}

	t.logger.InfoContext(ctx, "ticket created", slog.Any("ticket", ticket))
	return ticket, nil
}

// Close marks the ticket closing and schedules the channel deletion
// after the configured delay, so the farewell message is readable
// before the channel vanishes.
func (t *Tickets) Close(
	ctx context.Context,
	session DiscordSessionHandler,
	ticket Ticket,
	closedBy string,
) error {
	ticket.Status = ticketStatusClosing
	ticket.ClosedBy = closedBy
	if err := t.writeDB.Save(ctx, &ticket); err != nil {
		return fmt.Errorf("error updating ticket: %w", err)
	}

	timer := time.AfterFunc(t.config.CloseDelay, func() {
		t.finishClose(session, ticket)
	})

	t.mu.Lock()
	if prev, ok := t.pending[ticket.ID]; ok {
		prev.Stop()
	}
	t.pending[ticket.ID] = timer
	t.mu.Unlock()

	t.logger.InfoContext(
		ctx,
		"ticket close scheduled",
		slog.Any("ticket", ticket),
		slog.Duration("delay", t.config.CloseDelay),
	)
	return nil
}

func (t *Tickets) finishClose(session DiscordSessionHandler, ticket Ticket) {
	ctx, cancel := context.WithTimeout(context.Background(), dbOperationTimeout)
	defer cancel()

	t.mu.Lock()
	delete(t.pending, ticket.ID)
	t.mu.Unlock()

	if _, err := session.ChannelDelete(ticket.ChannelID); err != nil {
		t.logger.ErrorContext(
			ctx,
			"error deleting ticket channel",
			slog.Any("ticket", ticket),
			slog.Any("error", err),
		)
	}

	ticket.Status = ticketStatusClosed
	ticket.ClosedAt = time.Now().UnixMilli()
	if err := t.writeDB.Save(ctx, &ticket); err != nil {
		t.logger.ErrorContext(
			ctx,
			"error marking ticket closed",
			slog.Any("ticket", ticket),
			slog.Any("error", err),
		)
	}
}

// SweepStale finishes closes that were scheduled but never completed
// (e.g. the bot restarted mid-delay). Called on startup.
func (t *Tickets) SweepStale(
	ctx context.Context,
	session DiscordSessionHandler,
) error {
	var stale []Ticket
	err := t.db.WithContext(ctx).Where(
		"status = ?", ticketStatusClosing,
	).Find(&stale).Error
	if err != nil {
		return err
	}
	for _, ticket := range stale {
		t.logger.InfoContext(
			ctx,
			"finishing stale ticket close",
			slog.Any("ticket", ticket),
		)
		t.finishClose(session, ticket)
	}
	return nil
}

// Stop cancels pending close timers. Rows already marked closing are
// swept on the next startup.
func (t *Tickets) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, timer := range t.pending {
		timer.Stop()
		delete(t.pending, id)
	}
}
