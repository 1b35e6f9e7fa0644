package main

import (
	"context"
	"fmt"
	"os"

	"nasdaq-earnings-bot/internal/api"
	"nasdaq-earnings-bot/internal/bot"
	"nasdaq-earnings-bot/internal/bot/botobs"
	"nasdaq-earnings-bot/internal/calendar"
	"nasdaq-earnings-bot/internal/calendar/calendarobs"
	"nasdaq-earnings-bot/internal/chat/chatobs"
	"nasdaq-earnings-bot/internal/chat/discord"
	"nasdaq-earnings-bot/internal/earnings"
	"nasdaq-earnings-bot/internal/interfaces"
	"nasdaq-earnings-bot/internal/logger"
	"nasdaq-earnings-bot/internal/schedule"
	"nasdaq-earnings-bot/internal/store"
	"nasdaq-earnings-bot/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig(configPath())
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

// initializeSource builds the Nasdaq calendar source with observability
func initializeSource(ctx context.Context, cfg *store.Config) interfaces.CalendarSource {
	client := api.NewClient(
		api.WithTimeout(cfg.Timeout()),
		api.WithLogging(logger.IsDebugEnabled()),
	)

	logger.Info(ctx, "Using Nasdaq earnings calendar", "base_url", cfg.Calendar.BaseURL)

	return calendarobs.Wrap(calendar.NewNasdaqSource(client, cfg.Calendar.BaseURL))
}

// initializeDiscord creates the Discord client without connecting
func initializeDiscord(cfg *store.Config) (*discord.Discord, error) {
	return discord.New(discord.Params{
		Token:          cfg.Discord.Token,
		ApplicationID:  cfg.Discord.ApplicationID,
		GuildID:        cfg.Discord.GuildID,
		ChannelID:      cfg.Discord.ChannelID,
		CommandName:    cfg.Discord.CommandName,
		CommandTimeout: cfg.Timeout(),
	})
}

// initializeBot wires source, sink and tracker into the bot with observability
func initializeBot(cfg *store.Config, source interfaces.CalendarSource, sink interfaces.Notifier) interfaces.Bot {
	b := bot.New(source, chatobs.Wrap(sink), earnings.NewTracker(), cfg.Location())

	return botobs.Wrap(b)
}

// initializeScheduler registers the overview and poll triggers
func initializeScheduler(ctx context.Context, cfg *store.Config, b interfaces.Bot) (*schedule.Scheduler, error) {
	s := schedule.New(cfg.Location(), b, cfg.Timeout())
	if err := s.Register(cfg.Schedule.Overview, cfg.Schedule.Poll); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Triggers registered",
		"timezone", cfg.Timezone,
		"overview", cfg.Schedule.Overview,
		"poll", cfg.Schedule.Poll,
	)
	return s, nil
}
