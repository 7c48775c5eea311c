package notify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// discord messages are capped at 2000 characters.
const discordLimit = 2000

var errDiscordWebhook = errors.New("discord webhook url must look like .../webhooks/{id}/{token}")

// Discord executes a channel webhook.
type Discord struct {
	session *discordgo.Session
	id      string
	token   string
}

// NewDiscord parses the webhook URL and prepares a token-less session.
func NewDiscord(webhookURL string) (*Discord, error) {
	id, token, err := parseDiscordWebhook(webhookURL)
	if err != nil {
		return nil, err
	}
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return &Discord{session: s, id: id, token: token}, nil
}

func parseDiscordWebhook(raw string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", "", errDiscordWebhook
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "webhooks" && i+2 < len(parts) {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", errDiscordWebhook
}

// masked nicknames contain '*', which discord would read as emphasis.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"~", `\~`,
	"`", "\\`",
	"|", `\|`,
	">", `\>`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func (d *Discord) Name() string { return "discord" }

func (d *Discord) Publish(ctx context.Context, title, body string) error {
	content := "**" + escapeMarkdown(title) + "**\n" + escapeMarkdown(body)
	if runes := []rune(content); len(runes) > discordLimit {
		content = string(runes[:discordLimit])
	}
	_, err := d.session.WebhookExecute(d.id, d.token, false, &discordgo.WebhookParams{
		Content: content,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord: %w", err)
	}
	return nil
}
