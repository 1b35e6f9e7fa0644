package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimezone       = "Europe/Berlin"
	DefaultCommandName    = "earnings"
	DefaultBaseURL        = "https://api.nasdaq.com"
	DefaultTimeoutSeconds = 30
	// Cron specs carry a leading seconds field.
	DefaultOverviewSpec = "0 0 0 * * *"
	DefaultPollSpec     = "0 * 8-23 * * *"
)

type Config struct {
	Timezone string `yaml:"timezone"`
	Discord  struct {
		Token         string `yaml:"token"`
		ApplicationID string `yaml:"application_id"`
		GuildID       string `yaml:"guild_id"`
		ChannelID     string `yaml:"channel_id"`
		CommandName   string `yaml:"command_name"`
	} `yaml:"discord"`
	Schedule struct {
		Overview string `yaml:"overview"`
		Poll     string `yaml:"poll"`
	} `yaml:"schedule"`
	Calendar struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"calendar"`
}

// Location resolves the configured timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Timeout bounds one fetch-and-post cycle.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Calendar.TimeoutSeconds) * time.Second
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Discord.Token) == "" {
		return errors.New("discord.token undefined (set DISCORD_TOKEN)")
	}
	if strings.TrimSpace(c.Discord.ChannelID) == "" {
		return errors.New("discord.channel_id undefined (set CHANNEL_ID)")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}
	if _, err := cron.Parse(c.Schedule.Overview); err != nil {
		return fmt.Errorf("invalid schedule.overview '%s': %w", c.Schedule.Overview, err)
	}
	if _, err := cron.Parse(c.Schedule.Poll); err != nil {
		return fmt.Errorf("invalid schedule.poll '%s': %w", c.Schedule.Poll, err)
	}
	if c.Calendar.TimeoutSeconds <= 0 {
		return fmt.Errorf("calendar.timeout_seconds must be positive, got %d", c.Calendar.TimeoutSeconds)
	}
	return nil
}

// LoadConfig reads the YAML file at path, applies defaults and environment
// overrides, then validates. A missing file is not an error: the bot can be
// configured from the environment alone.
func LoadConfig(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	applyEnv(&c)
	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func applyEnv(c *Config) {
	overrides := []struct {
		env string
		dst *string
	}{
		{"DISCORD_TOKEN", &c.Discord.Token},
		{"CLIENT_ID", &c.Discord.ApplicationID},
		{"GUILD_ID", &c.Discord.GuildID},
		{"CHANNEL_ID", &c.Discord.ChannelID},
		{"TZ", &c.Timezone},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

func applyDefaults(c *Config) {
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.Discord.CommandName == "" {
		c.Discord.CommandName = DefaultCommandName
	}
	if c.Schedule.Overview == "" {
		c.Schedule.Overview = DefaultOverviewSpec
	}
	if c.Schedule.Poll == "" {
		c.Schedule.Poll = DefaultPollSpec
	}
	if c.Calendar.BaseURL == "" {
		c.Calendar.BaseURL = DefaultBaseURL
	}
	c.Calendar.BaseURL = strings.TrimRight(c.Calendar.BaseURL, "/")
	if c.Calendar.TimeoutSeconds == 0 {
		c.Calendar.TimeoutSeconds = DefaultTimeoutSeconds
	}
}
