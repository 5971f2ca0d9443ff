package zoko

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerFromID(t *testing.T) {
	bot := PlayerFromID(BotPlayerID)
	assert.True(t, bot.Bot)
	assert.Empty(t, bot.ID)
	assert.Equal(t, BotPlayerID, bot.String())

	human := PlayerFromID("123")
	assert.False(t, human.Bot)
	assert.True(t, human.Is("123"))
	assert.False(t, human.Is("456"))

	// Bot seats match no user, not even the sentinel.
	assert.False(t, bot.Is(BotPlayerID))
	assert.False(t, bot.Is(""))
}

func TestValidGameName(t *testing.T) {
	for _, name := range []string{gameBlackjack, gameXOX, gameRPS, gameWordle} {
		assert.NoError(t, validGameName(name))
	}
	assert.Error(t, validGameName("satranc"))
	assert.Error(t, validGameName(""))
}
