package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"sapchat/internal/answer"
	"sapchat/internal/api"
	"sapchat/internal/config"
	"sapchat/internal/service"
	"sapchat/internal/store"
)

// App bundles the wired application for the server entrypoint and for tests.
type App struct {
	Store  *store.Store
	Client answer.Client
	Server *http.Server
}

// NewApp wires the store, services, handlers, and HTTP server from a loaded
// configuration.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg.AnswerAPIURL == "" {
		return nil, fmt.Errorf("ANSWER_API_URL must not be empty")
	}

	st := store.New()
	client := answer.NewClient(cfg.AnswerAPIURL)

	chatService := service.NewChatService(st, client, cfg.SerializeSends)
	sessionService := service.NewSessionService(st, client)

	chatHandler := api.NewChatHandler(chatService)
	sessionHandler := api.NewSessionHandler(sessionService)
	router := api.NewRouter(chatHandler, sessionHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled: send routes block on the answer endpoint
		IdleTimeout:       120 * time.Second,
	}

	return &App{Store: st, Client: client, Server: server}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	a, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		return 1
	}

	probeAnswerEndpoint(a.Client, cfg.AnswerAPIURL)

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// probeAnswerEndpoint checks the Answer Endpoint once at startup. A failure
// is logged but not fatal: the endpoint may come up later, and every send
// reports its own error anyway.
func probeAnswerEndpoint(client answer.Client, url string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	status, err := client.Health(ctx)
	if err != nil {
		slog.Warn("Answer endpoint is not reachable yet", "url", url, "error", err)
		return
	}
	slog.Info("Answer endpoint is ready.", "url", url, "status", status.Status)
}
