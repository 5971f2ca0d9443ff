package zoko

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DefaultTestConfig returns a config suitable for tests: sqlite in a
// temp dir, fake discord credentials, API disabled.
func DefaultTestConfig(t testing.TB) *Config {
	tmpdir := t.TempDir()
	cfg := DefaultConfig()

	cfg.DatabaseType = dbTypeSQLite
	cfg.Database = filepath.Join(tmpdir, fmt.Sprintf("%s.sqlite3", t.Name()))
	cfg.StartupTimeout = 5 * time.Second
	cfg.ShutdownTimeout = 10 * time.Second
	cfg.Discord.Token = "test-token"
	cfg.Discord.ApplicationID = "test-app-id"
	cfg.API.CORS.AllowOrigins = []string{"*"}

	return cfg
}

func TestValidateDefaultTestConfig(t *testing.T) {
	cfg := DefaultTestConfig(t)
	require.NoError(t, structValidator.Struct(cfg))
}

func TestValidateConfigMissingToken(t *testing.T) {
	cfg := DefaultTestConfig(t)
	cfg.Discord.Token = ""
	assert.Error(t, structValidator.Struct(cfg))
}

func TestValidateConfigBadGames(t *testing.T) {
	cfg := DefaultTestConfig(t)
	cfg.Games.WordleLength = 4
	assert.Error(t, structValidator.Struct(cfg))

	cfg = DefaultTestConfig(t)
	cfg.Games.RpsBestOf = 4
	assert.Error(t, structValidator.Struct(cfg))
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultDatabaseType, cfg.DatabaseType)
	assert.Equal(t, DefaultDealerStepDelay, cfg.Games.DealerStepDelay)
	assert.Equal(t, DefaultWordleLength, cfg.Games.WordleLength)
	assert.Equal(t, DefaultRpsBestOf, cfg.Games.RpsBestOf)
	assert.Equal(t, DefaultTicketCloseDelay, cfg.Tickets.CloseDelay)
	assert.False(t, cfg.API.Enabled)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel.Level())
}
