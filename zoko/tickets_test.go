package zoko

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTickets(t *testing.T, closeDelay time.Duration) (*Tickets, *mockDiscordSession) {
	t.Helper()
	db := newTestDB(t)
	tickets := NewTickets(
		db,
		newTestWriteDB(t, db),
		nil,
		TicketsConfig{CloseDelay: closeDelay},
	)
	t.Cleanup(tickets.Stop)
	return tickets, newMockDiscordSession()
}

func TestTicketCreate(t *testing.T) {
	tickets, session := newTestTickets(t, time.Minute)
	ctx := context.Background()

	ticket, err := tickets.Create(ctx, session, "g", "u", "yardım lazım")
	require.NoError(t, err)
	assert.Equal(t, ticketStatusOpen, ticket.Status)
	assert.NotEmpty(t, ticket.ChannelID)

	require.Len(t, session.createdChannels, 1)
	assert.Equal(t, "destek-u", session.createdChannels[0].Name)

	// The channel is hidden from @everyone and visible to the requester.
	overwrites := session.createdChannels[0].PermissionOverwrites
	require.Len(t, overwrites, 2)

	found, ok, err := tickets.ByChannel(ctx, ticket.ChannelID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ticket.ID, found.ID)

	_, ok, err = tickets.OpenForUser(ctx, "g", "u")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTicketCreateOnePerUser(t *testing.T) {
	tickets, session := newTestTickets(t, time.Minute)
	ctx := context.Background()

	_, err := tickets.Create(ctx, session, "g", "u", "ilk")
	require.NoError(t, err)

	_, err = tickets.Create(ctx, session, "g", "u", "ikinci")
	assert.Error(t, err)
	assert.Len(t, session.createdChannels, 1)
}

func TestTicketCreateChannelFailure(t *testing.T) {
	tickets, session := newTestTickets(t, time.Minute)
	session.channelCreateErr = assert.AnError

	_, err := tickets.Create(context.Background(), session, "g", "u", "konu")
	assert.ErrorIs(t, err, assert.AnError)

	_, ok, err := tickets.OpenForUser(context.Background(), "g", "u")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTicketCloseDeletesChannelAfterDelay(t *testing.T) {
	tickets, session := newTestTickets(t, 10*time.Millisecond)
	ctx := context.Background()

	ticket, err := tickets.Create(ctx, session, "g", "u", "konu")
	require.NoError(t, err)

	require.NoError(t, tickets.Close(ctx, session, ticket, "mod"))

	// Still addressable until the delay elapses and the channel goes.
	_, ok, err := tickets.ByChannel(ctx, ticket.ChannelID)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Eventually(
		t, func() bool {
			_, ok, err := tickets.ByChannel(ctx, ticket.ChannelID)
			return err == nil && !ok
		}, 2*time.Second, 10*time.Millisecond,
	)
	assert.Equal(t, []string{ticket.ChannelID}, session.deletedChannels)
}

func TestTicketSweepStale(t *testing.T) {
	tickets, session := newTestTickets(t, time.Minute)
	ctx := context.Background()

	ticket, err := tickets.Create(ctx, session, "g", "u", "konu")
	require.NoError(t, err)

	// Simulate a restart that left the row mid-close.
	ticket.Status = ticketStatusClosing
	require.NoError(t, tickets.writeDB.Save(ctx, &ticket))

	require.NoError(t, tickets.SweepStale(ctx, session))

	_, ok, err := tickets.ByChannel(ctx, ticket.ChannelID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{ticket.ChannelID}, session.deletedChannels)
}
