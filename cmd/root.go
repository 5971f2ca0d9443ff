package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"

	"github.com/GokhanGuclu/zoko/zoko"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg        = zoko.DefaultConfig()
	configFile string
)

var rootCmd = &cobra.Command{
	Use: "zoko [flags]",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		err := viper.Unmarshal(
			cfg,
			viper.DecodeHook(
				mapstructure.ComposeDecodeHookFunc(
					mapstructure.StringToTimeDurationHookFunc(),
					LevelToStringHookFunc(),
				),
			),
		)
		if err != nil {
			log.Fatalln(err)
		}
	},
}

func getLogLevel(level string) (slog.Level, error) {
	switch level {
	case slog.LevelDebug.String():
		return slog.LevelDebug, nil
	case slog.LevelInfo.String():
		return slog.LevelInfo, nil
	case slog.LevelWarn.String():
		return slog.LevelWarn, nil
	case slog.LevelError.String():
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

func LevelToStringHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data any,
	) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t.Kind() != reflect.Ptr {
			return data, nil
		}

		typ := t.Elem()

		if typ != reflect.TypeOf(slog.LevelVar{}) {
			return data, nil
		}
		lvl, err := getLogLevel(data.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %s", data)
		}
		lvlVar := &slog.LevelVar{}
		lvlVar.Set(lvl)
		return lvlVar, nil
	}
}

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	rootCmd.SetContext(ctx)
	signals := make(chan os.Signal, 1)
	signal.Notify(
		signals,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer func() {
		signal.Stop(signals)
		cancel()
	}()
	go func() {
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
			//
		}
	}()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initConfig() {
	if configFile == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found")
		}
	} else {
		fmt.Println("loading env from file", configFile)
		if err := godotenv.Load(configFile); err != nil {
			log.Println("No .env file found")
		}
	}

	viper.SetDefault("database", zoko.DefaultDatabase)
	viper.SetDefault("database_type", zoko.DefaultDatabaseType)
	viper.SetDefault(
		"database_slow_threshold",
		zoko.DefaultDatabaseSlowThreshold,
	)
	viper.SetDefault(
		"database_log_level",
		zoko.DefaultDatabaseLogLevel.String(),
	)

	viper.SetDefault("log_level", zoko.DefaultLogLevel.String())

	viper.SetDefault("startup_timeout", zoko.DefaultStartupTimeout)
	viper.SetDefault("shutdown_timeout", zoko.DefaultShutdownTimeout)

	// Discord config
	viper.SetDefault("discord.token", "")
	viper.SetDefault("discord.application_id", "")
	viper.SetDefault("discord.guild_id", "")
	viper.SetDefault(
		"discord.log_level",
		zoko.DefaultDiscordLogLevel.String(),
	)
	viper.SetDefault(
		"discord.discordgo_log_level",
		zoko.DefaultDiscordgoLogLevel.String(),
	)
	viper.SetDefault(
		"discord.gateway_intents",
		zoko.DefaultDiscordGatewayIntent,
	)
	viper.SetDefault("discord.startup_message", zoko.DefaultDiscordStartupMessage)
	viper.SetDefault("discord.notification_channel_id", "")
	viper.SetDefault("discord.custom_status", zoko.DefaultDiscordCustomStatus)

	// Games config
	viper.SetDefault("games.dealer_step_delay", zoko.DefaultDealerStepDelay)
	viper.SetDefault("games.wordle_length", zoko.DefaultWordleLength)
	viper.SetDefault("games.rps_best_of", zoko.DefaultRpsBestOf)

	// Tickets config
	viper.SetDefault("tickets.close_delay", zoko.DefaultTicketCloseDelay)
	viper.SetDefault(
		"tickets.escalation_delay",
		zoko.DefaultTicketEscalationDelay,
	)

	// API config
	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.listen", zoko.DefaultAPIListen)
	viper.SetDefault("api.listen_network", "tcp")
	viper.SetDefault("api.admin_token", "")
	viper.SetDefault("api.log_level", zoko.DefaultAPILogLevel.String())
	viper.SetDefault("api.requests_per_second", zoko.DefaultAPIRequestsPerSecond)
	viper.SetDefault("api.request_burst", zoko.DefaultAPIRequestBurst)
	viper.SetDefault("api.read_timeout", zoko.DefaultReadTimeout)
	viper.SetDefault(
		"api.read_header_timeout",
		zoko.DefaultReadHeaderTimeout,
	)
	viper.SetDefault("api.write_timeout", zoko.DefaultWriteTimeout)
	viper.SetDefault("api.idle_timeout", zoko.DefaultIdleTimeout)

	// API: CORS config
	viper.SetDefault(
		"api.cors.allow_headers",
		zoko.DefaultCORSAllowHeaders,
	)
	viper.SetDefault(
		"api.cors.allow_methods",
		zoko.DefaultCORSAllowMethods,
	)
	viper.SetDefault("api.cors.allow_origins", []string{})
	viper.SetDefault("api.cors.max_age", zoko.DefaultAPICORSMaxAge)
	viper.SetDefault(
		"api.cors.allow_credentials",
		zoko.DefaultAPIAllowCredentials,
	)

	envPrefix := os.Getenv(zoko.EnvvarSetEnvPrefix)
	if envPrefix == "" {
		envPrefix = zoko.DefaultEnvPrefix
	}
	viper.SetEnvPrefix(envPrefix)

	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv()

	// Convert values to correct types
	viper.Set(
		"api.cors.allow_headers",
		viper.GetStringSlice("api.cors.allow_headers"),
	)
	viper.Set(
		"api.cors.allow_origins",
		viper.GetStringSlice("api.cors.allow_origins"),
	)
	viper.Set(
		"api.cors.allow_methods",
		viper.GetStringSlice("api.cors.allow_methods"),
	)

	for _, key := range []string{
		"log_level",
		"database_log_level",
		"discord.log_level",
		"discord.discordgo_log_level",
		"api.log_level",
	} {
		logLevelVar, err := levelStringToLevelVar(viper.GetString(key))
		if err != nil {
			log.Fatalf("error parsing %s: %v", key, err)
		}
		viper.Set(key, logLevelVar)
	}
}

func levelStringToLevelVar(lvl string) (*slog.LevelVar, error) {
	level := &slog.LevelVar{}
	err := level.UnmarshalText([]byte(lvl))
	return level, err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"Config file to use",
	)
}
