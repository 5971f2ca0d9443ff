//nolint:lll // struct tags can't be split
package zoko

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-contrib/cors"
	"github.com/go-playground/validator/v10"
)

const (
	EnvvarSetEnvPrefix = "ZOKO_ENV_PREFIX"
	DefaultEnvPrefix   = "ZOKO"

	DefaultDatabaseType          = "sqlite"
	DefaultDatabase              = "zoko.sqlite3"
	DefaultDatabaseSlowThreshold = 200 * time.Millisecond
	DefaultDatabaseLogLevel      = slog.LevelInfo

	DefaultLogLevel          = slog.LevelInfo
	DefaultDiscordLogLevel   = slog.LevelWarn
	DefaultDiscordgoLogLevel = slog.LevelWarn
	DefaultAPILogLevel       = slog.LevelInfo

	DefaultStartupTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 60 * time.Second

	DefaultDiscordStartupMessage = "Buradayım!"
	DefaultDiscordCustomStatus   = "/blackjack, /xox, /tkm, /wordle"

	DefaultAPIListen             = "127.0.0.1:5000"
	defaultListenNetwork         = "tcp"
	DefaultReadTimeout           = 5 * time.Second
	DefaultReadHeaderTimeout     = 5 * time.Second
	DefaultWriteTimeout          = 10 * time.Second
	DefaultIdleTimeout           = 30 * time.Second
	DefaultAPIRequestsPerSecond  = 10.0
	DefaultAPIRequestBurst       = 20
	DefaultAPICORSMaxAge         = 12 * time.Hour
	DefaultAPIAllowCredentials   = true
	DefaultDealerStepDelay       = 1200 * time.Millisecond
	DefaultWordleLength          = 5
	DefaultRpsBestOf             = 3
	DefaultTicketCloseDelay      = 15 * time.Second
	DefaultTicketEscalationDelay = 60 * time.Second

	discordMaxMessageLength = 2000
)

// DefaultDiscordGatewayIntent includes MessageContent (privileged),
// which the leveling message-ingestion handler requires.
const DefaultDiscordGatewayIntent = discordgo.IntentsAllWithoutPrivileged |
	discordgo.IntentMessageContent

// Slash command names. The bot's audience is Turkish, matching the
// command surface users already know.
const (
	DiscordSlashCommandBlackjack      = "blackjack"
	DiscordSlashCommandXOX            = "xox"
	DiscordSlashCommandTKM            = "tkm"
	DiscordSlashCommandWordle         = "wordle"
	DiscordSlashCommandLevel          = "seviye"
	DiscordSlashCommandLeaderboard    = "seviye-liderlik"
	DiscordSlashCommandLevelAdmin     = "seviye-yonetim"
	DiscordSlashCommandWarnAdd        = "uyari-ver"
	DiscordSlashCommandWarnList       = "uyari-liste"
	DiscordSlashCommandWarnRemove     = "uyari-sil"
	DiscordSlashCommandFAQ            = "sss"
	DiscordSlashCommandFAQCreate      = "destek-soru-olustur"
	DiscordSlashCommandFAQRemove      = "destek-soru-sil"
	DiscordSlashCommandTicketCreate   = "destek-olustur"
	DiscordSlashCommandTicketClose    = "ticket-kapa"
	DiscordSlashCommandRegister       = "kayit"
	DiscordSlashCommandRegisterAdmin  = "kayit-ayar"
	DiscordSlashCommandReleaseNoteAdd = "guncelleme-notu-olustur"
	DiscordSlashCommandReleaseNotes   = "guncelleme"
	DiscordSlashCommandBan            = "ban"
	DiscordSlashCommandKick           = "kick"
	DiscordSlashCommandMute           = "mute"
	DiscordSlashCommandUnmute         = "unmute"
	DiscordSlashCommandClear          = "clear"
)

// Component custom ID prefixes (button clicks route on these).
const (
	customIDPrefixBlackjack = "bj"
	customIDPrefixXOX       = "xox"
	customIDPrefixTKM       = "tkm"
)

var (
	DefaultCORSAllowMethods = []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodOptions,
	}
	DefaultCORSAllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Accept",
		"Authorization",
	}
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

//nolint:gochecknoinits // gotta register the validator tag name
func init() {
	structValidator.SetTagName("binding")
}

// Config is the top-level bot configuration, loaded from environment
// variables/.env via viper in cmd.
type Config struct {
	// Database connection string (file path for sqlite)
	Database string `yaml:"database" mapstructure:"database" json:"database"`

	// DatabaseType specifies the type of database, either 'sqlite' or 'postgres'
	DatabaseType string `yaml:"database_type" mapstructure:"database_type" json:"database_type" binding:"oneof=sqlite postgres"`

	// DatabaseLogLevel sets the log level for database operations
	DatabaseLogLevel *slog.LevelVar `yaml:"database_log_level" mapstructure:"database_log_level" json:"database_log_level"`

	// DatabaseSlowThreshold is the duration threshold for identifying slow database queries
	DatabaseSlowThreshold time.Duration `yaml:"database_slow_threshold" mapstructure:"database_slow_threshold" json:"database_slow_threshold"`

	// LogLevel is the base log level, for the default logger
	LogLevel *slog.LevelVar `yaml:"log_level" mapstructure:"log_level" json:"log_level"`

	// StartupTimeout aborts startup if initialization takes longer
	StartupTimeout time.Duration `yaml:"startup_timeout" mapstructure:"startup_timeout" json:"startup_timeout"`

	// ShutdownTimeout is the time to allow for a graceful shutdown
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" json:"shutdown_timeout"`

	// Discord configures the bot itself
	Discord *DiscordConfig `yaml:"discord" mapstructure:"discord" json:"discord"`

	// API configures the status/stats HTTP server
	API *APIConfig `yaml:"api" mapstructure:"api" json:"api"`

	// Games tunes game pacing and defaults
	Games *GamesConfig `yaml:"games" mapstructure:"games" json:"games"`

	// Tickets tunes support-ticket channel lifecycle delays
	Tickets *TicketsConfig `yaml:"tickets" mapstructure:"tickets" json:"tickets"`

	HTTPClient *http.Client `log:"[redacted]"`
}

func (c Config) LogValue() slog.Value {
	return structToSlogValue(c)
}

// DiscordConfig configures the discord bot itself.
type DiscordConfig struct {
	// Discord bot token (from the 'Bot' tab in the discord dev portal)
	Token string `yaml:"token" mapstructure:"token" json:"token" log:"[redacted]" binding:"required"`

	// Discord application ID
	ApplicationID string `yaml:"application_id" mapstructure:"application_id" json:"application_id" binding:"required"`

	// GuildID specifies the guild ID used when registering slash commands.
	// Leave empty for commands to be registered as global.
	GuildID string `yaml:"guild_id" mapstructure:"guild_id" json:"guild_id"`

	// Base discord logging level
	LogLevel *slog.LevelVar `yaml:"log_level" mapstructure:"log_level" json:"log_level"`

	// Log level for the `discordgo` library's logger
	DiscordGoLogLevel *slog.LevelVar `yaml:"discordgo_log_level" mapstructure:"discordgo_log_level" json:"discordgo_log_level"`

	// If NotificationChannelID is set, this message is sent there
	// whenever the bot connects to the gateway
	StartupMessage string `yaml:"startup_message" mapstructure:"startup_message" json:"startup_message"`

	// NotificationChannelID receives startup messages
	NotificationChannelID string `yaml:"notification_channel_id" mapstructure:"notification_channel_id" json:"notification_channel_id"`

	// CustomStatus shown on the bot user
	CustomStatus string `yaml:"custom_status" mapstructure:"custom_status" json:"custom_status"`

	// Discord gateway intents
	GatewayIntents discordgo.Intent `yaml:"gateway_intents" mapstructure:"gateway_intents" json:"gateway_intents"`

	httpClient *http.Client
}

// APIConfig configures the status/stats HTTP server.
type APIConfig struct {
	// Enabled determines whether the API listens at all
	Enabled bool `yaml:"enabled" mapstructure:"enabled" json:"enabled"`

	// The address and port on which the server should listen
	Listen string `yaml:"listen" mapstructure:"listen" json:"listen" binding:"required_if=Enabled true,hostname|filepath"`

	// The network type for listening (e.g., "tcp", "tcp4", "tcp6", "unix")
	ListenNetwork string `yaml:"listen_network" mapstructure:"listen_network" json:"listen_network" binding:"required_if=Enabled true,oneof=tcp tcp4 tcp6 unix"`

	// AdminToken guards the /api routes (sent as a bearer token).
	// Stored hashed in memory; the plaintext is dropped on startup.
	AdminToken string `yaml:"admin_token" mapstructure:"admin_token" json:"admin_token" log:"[redacted]"`

	// The logging level for the API server
	LogLevel *slog.LevelVar `yaml:"log_level" mapstructure:"log_level" json:"log_level"`

	// Cross-origin configuration
	CORS CORSConfig `yaml:"cors" mapstructure:"cors" json:"cors"`

	// RequestsPerSecond limits inbound requests (token bucket)
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second" json:"requests_per_second"`

	// RequestBurst is the token-bucket burst size
	RequestBurst int `yaml:"request_burst" mapstructure:"request_burst" json:"request_burst"`

	ReadTimeout       time.Duration `yaml:"read_timeout" mapstructure:"read_timeout" json:"read_timeout" binding:"required_if=Enabled true,min=1s"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" mapstructure:"read_header_timeout" json:"read_header_timeout" binding:"required_if=Enabled true,min=1s"`
	WriteTimeout      time.Duration `yaml:"write_timeout" mapstructure:"write_timeout" json:"write_timeout" binding:"required_if=Enabled true,min=1s"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout" json:"idle_timeout" binding:"required_if=Enabled true,min=1s"`
}

// GamesConfig tunes pacing and defaults for the mini-games.
type GamesConfig struct {
	// DealerStepDelay paces the dealer's card reveals after a stand -
	// one DealerStep per tick, so the message edit reads like an
	// animation
	DealerStepDelay time.Duration `yaml:"dealer_step_delay" mapstructure:"dealer_step_delay" json:"dealer_step_delay"`

	// WordleLength is the default word length when not specified
	WordleLength int `yaml:"wordle_length" mapstructure:"wordle_length" json:"wordle_length" binding:"min=5,max=7"`

	// RpsBestOf is the default match length (3 or 5)
	RpsBestOf int `yaml:"rps_best_of" mapstructure:"rps_best_of" json:"rps_best_of" binding:"oneof=3 5"`
}

// TicketsConfig tunes support-ticket channel lifecycle delays.
type TicketsConfig struct {
	// CloseDelay is the wall-clock delay between /ticket-kapa and the
	// channel actually being deleted
	CloseDelay time.Duration `yaml:"close_delay" mapstructure:"close_delay" json:"close_delay"`

	// EscalationDelay is how long a ticket waits unanswered before
	// the support role is pinged
	EscalationDelay time.Duration `yaml:"escalation_delay" mapstructure:"escalation_delay" json:"escalation_delay"`
}

// CORSConfig specifies cross-origin resource sharing settings.
type CORSConfig struct {
	AllowOrigins     []string      `yaml:"allow_origins" mapstructure:"allow_origins" json:"allow_origins"`
	AllowMethods     []string      `yaml:"allow_methods" mapstructure:"allow_methods" json:"allow_methods"`
	AllowHeaders     []string      `yaml:"allow_headers" mapstructure:"allow_headers" json:"allow_headers"`
	AllowCredentials bool          `yaml:"allow_credentials" mapstructure:"allow_credentials" json:"allow_credentials"`
	MaxAge           time.Duration `yaml:"max_age" mapstructure:"max_age" json:"max_age"`
}

func (c CORSConfig) GINConfig() cors.Config {
	return cors.Config{
		AllowOrigins:     c.AllowOrigins,
		AllowMethods:     c.AllowMethods,
		AllowHeaders:     c.AllowHeaders,
		MaxAge:           c.MaxAge,
		AllowCredentials: c.AllowCredentials,
	}
}

func DefaultCORSConfig() CORSConfig {
	defaultMethods := make([]string, len(DefaultCORSAllowMethods))
	copy(defaultMethods, DefaultCORSAllowMethods)

	defaultHeaders := make([]string, len(DefaultCORSAllowHeaders))
	copy(defaultHeaders, DefaultCORSAllowHeaders)

	return CORSConfig{
		AllowOrigins:     []string{},
		AllowMethods:     defaultMethods,
		AllowHeaders:     defaultHeaders,
		MaxAge:           DefaultAPICORSMaxAge,
		AllowCredentials: DefaultAPIAllowCredentials,
	}
}

// DefaultConfig returns a Config with all default settings populated.
func DefaultConfig() *Config {
	mainLogLevel := &slog.LevelVar{}
	discordLogLevel := &slog.LevelVar{}
	discordgoLogLevel := &slog.LevelVar{}
	dbLogLevel := &slog.LevelVar{}
	apiLogLevel := &slog.LevelVar{}

	mainLogLevel.Set(DefaultLogLevel)
	discordLogLevel.Set(DefaultDiscordLogLevel)
	discordgoLogLevel.Set(DefaultDiscordgoLogLevel)
	dbLogLevel.Set(DefaultDatabaseLogLevel)
	apiLogLevel.Set(DefaultAPILogLevel)

	return &Config{
		DatabaseType:          DefaultDatabaseType,
		Database:              DefaultDatabase,
		DatabaseLogLevel:      dbLogLevel,
		DatabaseSlowThreshold: DefaultDatabaseSlowThreshold,
		LogLevel:              mainLogLevel,
		StartupTimeout:        DefaultStartupTimeout,
		ShutdownTimeout:       DefaultShutdownTimeout,
		Discord: &DiscordConfig{
			LogLevel:          discordLogLevel,
			DiscordGoLogLevel: discordgoLogLevel,
			GatewayIntents:    DefaultDiscordGatewayIntent,
			StartupMessage:    DefaultDiscordStartupMessage,
			CustomStatus:      DefaultDiscordCustomStatus,
		},
		API: &APIConfig{
			Enabled:           false,
			Listen:            DefaultAPIListen,
			ListenNetwork:     defaultListenNetwork,
			LogLevel:          apiLogLevel,
			CORS:              DefaultCORSConfig(),
			RequestsPerSecond: DefaultAPIRequestsPerSecond,
			RequestBurst:      DefaultAPIRequestBurst,
			ReadTimeout:       DefaultReadTimeout,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			WriteTimeout:      DefaultWriteTimeout,
			IdleTimeout:       DefaultIdleTimeout,
		},
		Games: &GamesConfig{
			DealerStepDelay: DefaultDealerStepDelay,
			WordleLength:    DefaultWordleLength,
			RpsBestOf:       DefaultRpsBestOf,
		},
		Tickets: &TicketsConfig{
			CloseDelay:      DefaultTicketCloseDelay,
			EscalationDelay: DefaultTicketEscalationDelay,
		},
	}
}
