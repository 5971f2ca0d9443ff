package zoko

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
	"gorm.io/gorm"
)

var defaultLogWriter io.Writer = os.Stdout

// Zoko is the bot: a discord gateway connection, the in-memory game
// engines, the leveling/moderation/support services, and an optional
// status API.
type Zoko struct {
	config     *Config
	logger     *slog.Logger
	logHandler slog.Handler

	db      *gorm.DB
	writeDB *database
	discord *Discord
	api     *API

	blackjack *Blackjack
	xox       *TicTacToe
	tkm       *RockPaperScissors
	wordle    *Wordle

	leveling     *Leveling
	warnings     *Warnings
	faq          *FAQ
	registration *Registration
	tickets      *Tickets
	releaseNotes *ReleaseNotes

	startedAt  time.Time
	runMu      sync.Mutex
	signalStop chan struct{}
}

// New assembles a Zoko from the given config. The database isn't
// opened and nothing connects to discord until Run.
func New(config *Config) (*Zoko, error) {
	var errs []error

	switch config.DatabaseType {
	case dbTypeSQLite, dbTypePostgres:
		//
	default:
		errs = append(
			errs,
			errors.New("invalid database type (must be 'sqlite' or 'postgres')"),
		)
	}

	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}

	z := &Zoko{config: config}

	z.logHandler = tint.NewHandler(
		defaultLogWriter, &tint.Options{
			Level:     config.LogLevel,
			AddSource: true,
		},
	)
	z.logger = slog.New(z.logHandler)
	slog.SetDefault(z.logger)

	config.Discord.httpClient = config.HTTPClient

	disc, err := newDiscord(config.Discord)
	if err != nil {
		errs = append(errs, err)
	} else {
		discordgo.Logger = discordgoLoggerFunc(
			context.Background(),
			tint.NewHandler(
				defaultLogWriter, &tint.Options{
					Level:     config.Discord.DiscordGoLogLevel,
					AddSource: true,
				},
			).WithAttrs([]slog.Attr{slog.String(loggerNameKey, "discordgo")}),
		)
		disc.logger = slog.New(
			tint.NewHandler(
				defaultLogWriter, &tint.Options{
					Level:     config.Discord.LogLevel,
					AddSource: true,
				},
			),
		).With(loggerNameKey, "discord")
		disc.bot = z
		z.discord = disc
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	z.blackjack = NewBlackjack(rng)
	z.xox = NewTicTacToe()
	z.tkm = NewRockPaperScissors(rng)
	z.wordle = NewWordle(rng)

	if config.API != nil && config.API.Enabled {
		api, apiErr := newAPI(z, config.API)
		if apiErr != nil {
			errs = append(errs, apiErr)
		}
		z.api = api
	}

	return z, errors.Join(errs...)
}

func (z *Zoko) ValidateConfig() error {
	return structValidator.Struct(z.config)
}

// RegisterSlashCommands pushes the bot's commands to the discord bulk
// overwrite endpoint.
func (z *Zoko) RegisterSlashCommands(options ...discordgo.RequestOption) (
	[]*discordgo.ApplicationCommand,
	error,
) {
	return z.discord.registerCommands(options...)
}

// initRun opens and migrates the database and wires up the services
// that depend on it.
func (z *Zoko) initRun(ctx context.Context) error {
	gormLogger := newGORMLogger(
		tint.NewHandler(
			defaultLogWriter, &tint.Options{
				Level:     z.config.DatabaseLogLevel,
				AddSource: true,
			},
		),
		z.config.DatabaseSlowThreshold,
	)

	db, err := CreateDB(ctx, z.config.DatabaseType, z.config.Database, gormLogger)
	if err != nil {
		return fmt.Errorf("error creating database: %w", err)
	}
	z.db = db
	z.writeDB = newWriteDB(
		db,
		z.logger,
		z.config.DatabaseType == dbTypePostgres,
	)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	z.leveling = NewLeveling(z.db, z.writeDB, z.logger, rng)
	z.warnings = NewWarnings(z.db, z.writeDB, z.logger)
	z.faq = NewFAQ(z.db, z.writeDB, z.logger)
	z.registration = NewRegistration(z.db, z.writeDB, z.logger)
	z.tickets = NewTickets(z.db, z.writeDB, z.logger, *z.config.Tickets)
	z.releaseNotes = NewReleaseNotes(z.db, z.writeDB, z.logger)
	return nil
}

// Run starts the bot and blocks until ctx is canceled, then shuts down
// gracefully.
func (z *Zoko) Run(ctx context.Context) error {
	// prevents concurrent runs
	z.runMu.Lock()
	defer z.runMu.Unlock()

	z.signalStop = make(chan struct{}, 1)
	z.startedAt = time.Now()
	logger := z.logger

	if err := z.ValidateConfig(); err != nil {
		logger.Error("invalid config", tint.Err(err))
		return err
	}

	ctx = WithLogger(ctx, logger)
	logger.LogAttrs(ctx, slog.LevelInfo, "starting", slog.Any("config", z.config))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-z.signalStop:
			logger.Warn("got stop signal, canceling")
			cancel()
		case <-ctx.Done():
			return
		}
	}()

	startCtx, startCancel := context.WithTimeout(ctx, z.config.StartupTimeout)
	if err := z.initRun(startCtx); err != nil {
		startCancel()
		logger.ErrorContext(ctx, "init error", tint.Err(err))
		return err
	}
	startCancel()

	if z.api != nil {
		go func() {
			httpErr := z.api.Serve(ctx)
			if httpErr != nil && !errors.Is(httpErr, http.ErrServerClosed) {
				logger.ErrorContext(ctx, "error serving api HTTP", tint.Err(httpErr))
			}
		}()
	}

	if err := z.discordInit(ctx); err != nil {
		return err
	}

	// block until something cancels the runtime context - generally an
	// interrupt
	<-ctx.Done()
	return z.shutdown()
}

// discordInit opens the websocket connection, attaches gateway
// handlers and registers slash commands.
func (z *Zoko) discordInit(ctx context.Context) error {
	session, err := z.discord.newSession()
	if err != nil {
		return fmt.Errorf("error creating discord session: %w", err)
	}
	z.discord.session = session

	z.discord.discordgoRemoveHandlerFuncs = []func(){
		session.AddHandler(z.discord.handlerReady()),
		session.AddHandler(z.discord.handlerConnect()),
		session.AddHandler(z.discord.handlerDisconnect()),
		session.AddHandler(z.handleInteractionCreate),
		session.AddHandler(z.handleMessageCreate),
	}

	if err := session.Open(); err != nil {
		return fmt.Errorf("error opening discord connection: %w", err)
	}

	if _, err := z.RegisterSlashCommands(); err != nil {
		return fmt.Errorf("error registering commands: %w", err)
	}

	if err := z.tickets.SweepStale(ctx, session); err != nil {
		z.logger.WarnContext(ctx, "error sweeping stale tickets", tint.Err(err))
	}
	return nil
}

// Stop triggers a graceful shutdown from outside Run.
func (z *Zoko) Stop() {
	select {
	case z.signalStop <- struct{}{}:
	default:
	}
}

func (z *Zoko) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		z.config.ShutdownTimeout,
	)
	defer cancel()

	z.logger.InfoContext(shutdownCtx, "shutting down")

	if z.tickets != nil {
		z.tickets.Stop()
	}

	var errs []error
	if z.discord != nil && z.discord.session != nil {
		for _, removeHandler := range z.discord.discordgoRemoveHandlerFuncs {
			removeHandler()
		}
		if err := z.discord.session.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing discord session: %w", err))
		}
	}

	if z.db != nil {
		if sqlDB, err := z.db.DB(); err == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				errs = append(errs, fmt.Errorf("error closing database: %w", closeErr))
			}
		}
	}

	z.logger.InfoContext(shutdownCtx, "shutdown complete")
	return errors.Join(errs...)
}

// handleInteractionCreate routes slash commands and component clicks.
// Each interaction runs on its own goroutine (discordgo's default), so
// the engines guard their stores with locks.
func (z *Zoko) handleInteractionCreate(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
) {
	ctx, cancel := context.WithTimeout(context.Background(), dbOperationTimeout)
	defer cancel()
	ctx = WithLogger(ctx, z.logger)

	user := getDiscordUser(i)
	if user == nil {
		z.logger.Warn("interaction with no user", "interaction_id", i.ID)
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		z.handleApplicationCommand(ctx, i, user)
	case discordgo.InteractionMessageComponent:
		z.handleMessageComponent(ctx, i, user)
	default:
		z.logger.Warn(
			"unhandled interaction type",
			"type", i.Type.String(),
			"interaction_id", i.ID,
		)
	}
}

func (z *Zoko) handleApplicationCommand(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	name := i.ApplicationCommandData().Name
	logger := z.logger.With(
		"command", name,
		"user_id", user.ID,
		"guild_id", i.GuildID,
	)
	logger.InfoContext(ctx, "handling command")

	switch name {
	case DiscordSlashCommandBlackjack:
		z.commandBlackjack(ctx, i, user)
	case DiscordSlashCommandXOX:
		z.commandXOX(ctx, i, user)
	case DiscordSlashCommandTKM:
		z.commandTKM(ctx, i, user)
	case DiscordSlashCommandWordle:
		z.commandWordle(ctx, i, user)
	case DiscordSlashCommandLevel:
		z.commandLevel(ctx, i, user)
	case DiscordSlashCommandLeaderboard:
		z.commandLeaderboard(ctx, i)
	case DiscordSlashCommandLevelAdmin:
		z.commandLevelAdmin(ctx, i)
	case DiscordSlashCommandWarnAdd:
		z.commandWarnAdd(ctx, i, user)
	case DiscordSlashCommandWarnList:
		z.commandWarnList(ctx, i)
	case DiscordSlashCommandWarnRemove:
		z.commandWarnRemove(ctx, i)
	case DiscordSlashCommandFAQ:
		z.commandFAQ(ctx, i)
	case DiscordSlashCommandFAQCreate:
		z.commandFAQCreate(ctx, i, user)
	case DiscordSlashCommandFAQRemove:
		z.commandFAQRemove(ctx, i)
	case DiscordSlashCommandTicketCreate:
		z.commandTicketCreate(ctx, i, user)
	case DiscordSlashCommandTicketClose:
		z.commandTicketClose(ctx, i, user)
	case DiscordSlashCommandRegister:
		z.commandRegister(ctx, i, user)
	case DiscordSlashCommandRegisterAdmin:
		z.commandRegisterAdmin(ctx, i)
	case DiscordSlashCommandReleaseNoteAdd:
		z.commandReleaseNoteAdd(ctx, i, user)
	case DiscordSlashCommandReleaseNotes:
		z.commandReleaseNotes(ctx, i)
	case DiscordSlashCommandBan:
		z.commandBan(ctx, i, user)
	case DiscordSlashCommandKick:
		z.commandKick(ctx, i, user)
	case DiscordSlashCommandMute:
		z.commandMute(ctx, i, user)
	case DiscordSlashCommandUnmute:
		z.commandUnmute(ctx, i)
	case DiscordSlashCommandClear:
		z.commandClear(ctx, i)
	default:
		logger.WarnContext(ctx, "unknown command")
	}
}

func (z *Zoko) handleMessageComponent(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	user *discordgo.User,
) {
	customID := i.MessageComponentData().CustomID
	prefix, rest, _ := strings.Cut(customID, ":")

	switch prefix {
	case customIDPrefixBlackjack:
		z.componentBlackjack(ctx, i, user, rest)
	case customIDPrefixXOX:
		z.componentXOX(ctx, i, user, rest)
	case customIDPrefixTKM:
		z.componentTKM(ctx, i, user, rest)
	default:
		z.logger.Warn("unknown component", "custom_id", customID)
	}
}

// handleMessageCreate feeds guild messages to the leveling service and
// announces level-ups unless the anti-flood gate asked for silence.
func (z *Zoko) handleMessageCreate(
	s *discordgo.Session,
	m *discordgo.MessageCreate,
) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbOperationTimeout)
	defer cancel()

	result, err := z.leveling.AwardMessageXP(ctx, m.GuildID, m.Author.ID, m.Content)
	if err != nil {
		z.logger.ErrorContext(ctx, "error awarding xp", tint.Err(err))
		return
	}
	if !result.Awarded || !result.LeveledUp || result.Silent {
		return
	}

	settings, err := z.leveling.GetSettings(ctx, m.GuildID)
	if err != nil {
		z.logger.ErrorContext(ctx, "error loading level settings", tint.Err(err))
		return
	}
	channelID := settings.AnnounceChannelID
	if channelID == "" {
		channelID = m.ChannelID
	}
	_, err = s.ChannelMessageSend(
		channelID,
		fmt.Sprintf(
			"🎉 <@%s> seviye atladı! Yeni seviye: **%d**",
			m.Author.ID,
			result.Level,
		),
	)
	if err != nil {
		z.logger.WarnContext(ctx, "error announcing level up", tint.Err(err))
	}
}
