package zoko

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"golang.org/x/time/rate"
)

const (
	apiHealthCheck = "/healthz"
	apiPathStats   = "/api/stats"
	apiPathGames   = "/api/games"
	apiPathQuit    = "/api/quit"
)

// API is the bot's status/stats HTTP server. Everything under /api is
// guarded by a bearer token; the plaintext token is hashed on startup
// and dropped.
type API struct {
	bot        *Zoko
	config     *APIConfig
	engine     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	logger     *slog.Logger
	limiter    *rate.Limiter

	hashedAdminToken string
}

func newAPI(z *Zoko, config *APIConfig) (*API, error) {
	logger := slog.New(
		tint.NewHandler(
			defaultLogWriter, &tint.Options{
				Level:     config.LogLevel,
				AddSource: true,
			},
		),
	).With(loggerNameKey, "api")

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	api := &API{
		bot:    z,
		config: config,
		engine: r,
		logger: logger,
		limiter: rate.NewLimiter(
			rate.Limit(config.RequestsPerSecond),
			config.RequestBurst,
		),
	}

	if config.AdminToken != "" {
		hashed, err := hashPassword(config.AdminToken)
		if err != nil {
			return nil, fmt.Errorf("error hashing admin token: %w", err)
		}
		api.hashedAdminToken = hashed
		config.AdminToken = ""
	}

	api.httpServer = &http.Server{
		Addr:              config.Listen,
		Handler:           r,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	corsConfig := config.CORS.GINConfig()
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"*"}
		corsConfig.AllowCredentials = false
	}

	r.Use(
		gin.Recovery(),
		api.loggingMiddleware(),
		api.rateLimitMiddleware(),
		cors.New(corsConfig),
	)

	r.GET(apiHealthCheck, api.healthCheck)

	authorized := r.Group("/", api.authMiddleware())
	authorized.GET(apiPathStats, api.statsHandler)
	authorized.GET(apiPathGames, api.gamesHandler)
	authorized.POST(apiPathQuit, api.quitHandler)

	return api, nil
}

// Serve listens and serves until the server is shut down. ctx cancels
// the listener setup and triggers a graceful server shutdown.
func (a *API) Serve(ctx context.Context) error {
	if a.listener == nil {
		listenCfg := &net.ListenConfig{}
		ln, err := listenCfg.Listen(ctx, a.config.ListenNetwork, a.config.Listen)
		if err != nil {
			return fmt.Errorf("error listening on %s: %w", a.config.Listen, err)
		}
		a.listener = ln
	}
	a.logger.Info("api listening", "addr", a.listener.Addr().String())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			5*time.Second,
		)
		defer cancel()
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("error shutting down api server", tint.Err(err))
		}
	}()

	return a.httpServer.Serve(a.listener)
}

func (a *API) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.logger.Info(
			"request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

func (a *API) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.limiter.Allow() {
			c.AbortWithStatusJSON(
				http.StatusTooManyRequests,
				gin.H{"error": "rate limit exceeded"},
			)
			return
		}
		c.Next()
	}
}

// authMiddleware checks the Authorization bearer token against the
// hashed admin token.
func (a *API) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.hashedAdminToken == "" {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				gin.H{"error": "api admin token not configured"},
			)
			return
		}
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing bearer token"},
			)
			return
		}
		valid, err := verifyPassword(a.hashedAdminToken, token)
		if err != nil || !valid {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}
		c.Next()
	}
}

func (a *API) healthCheck(c *gin.Context) {
	connected := a.bot.discord != nil && a.bot.discord.connected.Load()
	c.JSON(
		http.StatusOK, gin.H{
			"status":            "ok",
			"discord_connected": connected,
			"uptime":            time.Since(a.bot.startedAt).String(),
		},
	)
}

// statsHandler reports live session counts and all-time per-game
// totals.
func (a *API) statsHandler(c *gin.Context) {
	totals, err := gameStats(c.Request.Context(), a.bot.db)
	if err != nil {
		a.logger.Error("error loading game stats", tint.Err(err))
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "error loading stats"},
		)
		return
	}

	c.JSON(
		http.StatusOK, gin.H{
			"uptime": time.Since(a.bot.startedAt).String(),
			"live_sessions": gin.H{
				"blackjack": a.bot.blackjack.Sessions().Count(),
				"xox":       a.bot.xox.Sessions().Count(),
				"tkm":       a.bot.tkm.Sessions().Count(),
				"wordle":    a.bot.wordle.Sessions().Count(),
			},
			"games_played": totals,
		},
	)
}

// gamesHandler returns the most recent finished games, optionally
// filtered by game name (?game=xox).
func (a *API) gamesHandler(c *gin.Context) {
	query := a.bot.db.WithContext(c.Request.Context()).
		Order("finished_at desc").Limit(50)
	if game := c.Query("game"); game != "" {
		if err := validGameName(game); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("game = ?", game)
	}

	var logs []GameLog
	if err := query.Find(&logs).Error; err != nil {
		a.logger.Error("error loading game logs", tint.Err(err))
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "error loading games"},
		)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": logs})
}

// quitHandler triggers a graceful shutdown.
func (a *API) quitHandler(c *gin.Context) {
	a.logger.Warn("shutdown requested via api", "client_ip", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"status": "shutting down"})
	go a.bot.Stop()
}
