package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DISCORD_TOKEN", "CLIENT_ID", "GUILD_ID", "CHANNEL_ID", "TZ"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
timezone: America/New_York
discord:
  token: file-token
  application_id: "111"
  guild_id: "222"
  channel_id: "333"
schedule:
  poll: "0 */5 9-17 * * *"
calendar:
  base_url: http://localhost:8080/
  timeout_seconds: 5
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Discord.ChannelID != "333" {
		t.Errorf("Expected channel 333, got %s", cfg.Discord.ChannelID)
	}
	if cfg.Schedule.Poll != "0 */5 9-17 * * *" {
		t.Errorf("Expected custom poll schedule, got %s", cfg.Schedule.Poll)
	}
	if cfg.Schedule.Overview != DefaultOverviewSpec {
		t.Errorf("Expected default overview schedule, got %s", cfg.Schedule.Overview)
	}
	if cfg.Calendar.BaseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.Calendar.BaseURL)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", cfg.Timeout())
	}
	if cfg.Location().String() != "America/New_York" {
		t.Errorf("Expected America/New_York, got %s", cfg.Location())
	}
	if cfg.Discord.CommandName != DefaultCommandName {
		t.Errorf("Expected default command name, got %s", cfg.Discord.CommandName)
	}
}

func TestLoadConfigEnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "env-token")
	t.Setenv("CHANNEL_ID", "999")
	t.Setenv("GUILD_ID", "888")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Discord.Token != "env-token" || cfg.Discord.ChannelID != "999" || cfg.Discord.GuildID != "888" {
		t.Errorf("Expected env overrides, got %+v", cfg.Discord)
	}
	if cfg.Timezone != DefaultTimezone {
		t.Errorf("Expected default timezone, got %s", cfg.Timezone)
	}
	if cfg.Calendar.BaseURL != DefaultBaseURL {
		t.Errorf("Expected default base URL, got %s", cfg.Calendar.BaseURL)
	}
	if cfg.Calendar.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("Expected default timeout, got %d", cfg.Calendar.TimeoutSeconds)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHANNEL_ID", "from-env")
	path := writeConfig(t, `
discord:
  token: t
  channel_id: from-file
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Discord.ChannelID != "from-env" {
		t.Errorf("Expected env to win, got %s", cfg.Discord.ChannelID)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing token",
			body:    "discord:\n  channel_id: \"1\"\n",
			wantErr: "discord.token",
		},
		{
			name:    "missing channel",
			body:    "discord:\n  token: t\n",
			wantErr: "discord.channel_id",
		},
		{
			name:    "bad timezone",
			body:    "timezone: Mars/Olympus\ndiscord:\n  token: t\n  channel_id: \"1\"\n",
			wantErr: "invalid timezone",
		},
		{
			name:    "bad poll schedule",
			body:    "discord:\n  token: t\n  channel_id: \"1\"\nschedule:\n  poll: every minute\n",
			wantErr: "schedule.poll",
		},
		{
			name:    "negative timeout",
			body:    "discord:\n  token: t\n  channel_id: \"1\"\ncalendar:\n  timeout_seconds: -1\n",
			wantErr: "timeout_seconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	clearEnv(t)
	if _, err := LoadConfig(writeConfig(t, "discord: [unclosed")); err == nil {
		t.Error("Expected YAML error")
	}
}
