package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"nasdaq-earnings-bot/internal/interfaces"
	"nasdaq-earnings-bot/internal/logger"
)

// ApologyMessage replaces the overview when a slash-command request fails.
const ApologyMessage = "Failed to fetch earnings."

const defaultCommandTimeout = 30 * time.Second

// OverviewFunc renders the current overview for a slash-command reply.
type OverviewFunc func(ctx context.Context) (string, error)

// Params holds the Discord connection settings.
type Params struct {
	Token         string
	ApplicationID string
	GuildID       string
	ChannelID     string
	CommandName   string
	// CommandTimeout bounds one slash-command request.
	CommandTimeout time.Duration
}

// Discord posts to one announcement channel and answers the overview
// slash command.
type Discord struct {
	params  Params
	session *discordgo.Session
	channel *discordgo.Channel

	overview      OverviewFunc
	removeHandler func()
}

var _ interfaces.Notifier = (*Discord)(nil)

func init() {
	discordgo.Logger = func(msgL, caller int, format string, a ...interface{}) {
		msg := fmt.Sprintf(format, a...)
		ctx := context.Background()
		switch msgL {
		case discordgo.LogError:
			logger.Error(ctx, msg, "component", "discordgo")
		case discordgo.LogWarning:
			logger.Warn(ctx, msg, "component", "discordgo")
		default:
			logger.Debug(ctx, msg, "component", "discordgo")
		}
	}
}

// New creates a Discord client. The gateway connection is opened by Open.
func New(p Params) (*Discord, error) {
	if p.Token == "" {
		return nil, errors.New("discord token is required")
	}
	if p.ChannelID == "" {
		return nil, errors.New("discord channel id is required")
	}
	if p.CommandTimeout <= 0 {
		p.CommandTimeout = defaultCommandTimeout
	}

	session, err := discordgo.New("Bot " + p.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds
	session.LogLevel = discordgo.LogWarning

	return &Discord{
		params:  p,
		session: session,
	}, nil
}

// HandleOverview answers the slash command with fn's output. Must be called
// before Open.
func (d *Discord) HandleOverview(fn OverviewFunc) {
	d.overview = fn
}

// Open connects to the gateway, resolves the announcement channel and
// registers the slash command. Failing to resolve the channel is an error;
// failing to register the command is only logged.
func (d *Discord) Open(ctx context.Context) error {
	if d.overview != nil {
		d.removeHandler = d.session.AddHandler(d.onInteraction)
	}

	if err := d.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}

	channel, err := d.session.Channel(d.params.ChannelID, discordgo.WithContext(ctx))
	if err != nil {
		d.session.Close()
		return fmt.Errorf("failed to resolve channel %s: %w", d.params.ChannelID, err)
	}
	d.channel = channel
	logger.Info(ctx, "Discord connected",
		"channel_id", channel.ID,
		"channel_name", channel.Name,
	)

	if err := d.registerCommand(ctx); err != nil {
		logger.ErrorWithErr(ctx, "Failed to register slash command", err,
			"command", d.params.CommandName,
		)
	}
	return nil
}

func (d *Discord) registerCommand(ctx context.Context) error {
	appID := d.params.ApplicationID
	if appID == "" && d.session.State != nil && d.session.State.User != nil {
		appID = d.session.State.User.ID
	}
	if appID == "" {
		return errors.New("application id unknown")
	}

	cmds := []*discordgo.ApplicationCommand{{
		Name:        d.params.CommandName,
		Description: "Show today's Nasdaq earnings calendar",
	}}
	if _, err := d.session.ApplicationCommandBulkOverwrite(appID, d.params.GuildID, cmds, discordgo.WithContext(ctx)); err != nil {
		return err
	}

	logger.Info(ctx, "Slash command registered",
		"command", d.params.CommandName,
		"guild_id", d.params.GuildID,
	)
	return nil
}

// Send posts text to the announcement channel, split into as many messages
// as the length limit requires.
func (d *Discord) Send(ctx context.Context, text string) error {
	if d.channel == nil {
		return errors.New("discord channel not resolved")
	}
	for i, chunk := range SplitMessage(text, MaxMessageLength) {
		if _, err := d.session.ChannelMessageSend(d.channel.ID, chunk, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("failed to send message part %d: %w", i+1, err)
		}
	}
	return nil
}

func (d *Discord) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().Name != d.params.CommandName {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.params.CommandTimeout)
	defer cancel()

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx))
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to acknowledge command", err, "command", d.params.CommandName)
		return
	}

	text := overviewReply(ctx, d.overview)
	chunks := SplitMessage(text, MaxMessageLength)

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &chunks[0]}, discordgo.WithContext(ctx)); err != nil {
		logger.ErrorWithErr(ctx, "Failed to send command reply", err, "command", d.params.CommandName)
		return
	}
	for _, chunk := range chunks[1:] {
		if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: chunk}, discordgo.WithContext(ctx)); err != nil {
			logger.ErrorWithErr(ctx, "Failed to send command followup", err, "command", d.params.CommandName)
			return
		}
	}
}

// overviewReply runs fn and falls back to the apology text on failure.
func overviewReply(ctx context.Context, fn OverviewFunc) string {
	text, err := fn(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Overview command failed", err)
		return ApologyMessage
	}
	return text
}

// Close disconnects from the gateway.
func (d *Discord) Close() error {
	if d.removeHandler != nil {
		d.removeHandler()
	}
	return d.session.Close()
}
