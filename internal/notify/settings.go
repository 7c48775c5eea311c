package notify

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Settings holds channel credentials. A channel is enabled only when all of
// its required variables are non-empty.
type Settings struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`
	WeComKey         string `env:"WECHAT_WEBHOOK_KEY"`
	DingTalkWebhook  string `env:"DINGTALK_WEBHOOK"`
	PushPlusToken    string `env:"PUSHPLUS_TOKEN"`
	ServerChanKey    string `env:"SERVERCHAN_SCKEY"`
	ServerChan3Key   string `env:"SERVERCHAN3_SCKEY"`
	CoolPushKey      string `env:"COOLPUSH_SKEY"`
	CustomWebhook    string `env:"CUSTOM_WEBHOOK"`
	DiscordWebhook   string `env:"DISCORD_WEBHOOK_URL"`
	AMQPURL          string `env:"AMQP_URL"`
	AMQPExchange     string `env:"AMQP_EXCHANGE" envDefault:"checkin"`
	AMQPRoutingKey   string `env:"AMQP_ROUTING_KEY" envDefault:"checkin.summary"`
	NATSURL          string `env:"NATS_URL"`
	NATSSubject      string `env:"NATS_SUBJECT" envDefault:"checkin.summary"`
}

// ParseSettings reads channel settings from the given environment map.
func ParseSettings(environment map[string]string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: environment}); err != nil {
		return Settings{}, fmt.Errorf("notification settings: %w", err)
	}
	s.trim()
	return s, nil
}

func (s *Settings) trim() {
	for _, v := range []*string{
		&s.TelegramBotToken, &s.TelegramChatID, &s.WeComKey, &s.DingTalkWebhook,
		&s.PushPlusToken, &s.ServerChanKey, &s.ServerChan3Key, &s.CoolPushKey,
		&s.CustomWebhook, &s.DiscordWebhook, &s.AMQPURL, &s.NATSURL,
	} {
		*v = strings.TrimSpace(*v)
	}
}

// Channels builds the enabled channels in a fixed order. A channel whose
// settings cannot be used is logged and left out.
func (s Settings) Channels(hc *HTTPClient, logger *slog.Logger) []Channel {
	if logger == nil {
		logger = slog.Default()
	}
	var out []Channel
	if s.TelegramBotToken != "" && s.TelegramChatID != "" {
		out = append(out, Telegram(hc, s.TelegramBotToken, s.TelegramChatID))
	}
	if s.WeComKey != "" {
		out = append(out, WeCom(hc, s.WeComKey))
	}
	if s.DingTalkWebhook != "" {
		out = append(out, DingTalk(hc, s.DingTalkWebhook))
	}
	if s.PushPlusToken != "" {
		out = append(out, PushPlus(hc, s.PushPlusToken))
	}
	if s.ServerChanKey != "" {
		out = append(out, ServerChan(hc, s.ServerChanKey))
	}
	if s.ServerChan3Key != "" {
		out = append(out, ServerChan3(hc, s.ServerChan3Key))
	}
	if s.CoolPushKey != "" {
		out = append(out, CoolPush(hc, s.CoolPushKey))
	}
	if s.CustomWebhook != "" {
		out = append(out, Custom(hc, s.CustomWebhook))
	}
	if s.DiscordWebhook != "" {
		if ch, err := NewDiscord(s.DiscordWebhook); err != nil {
			logger.Warn("notification channel disabled", slog.String("channel", "discord"), slog.Any("error", err))
		} else {
			out = append(out, ch)
		}
	}
	if s.AMQPURL != "" {
		if ch, err := NewAMQP(s.AMQPURL, s.AMQPExchange, s.AMQPRoutingKey); err != nil {
			logger.Warn("notification channel disabled", slog.String("channel", "amqp"), slog.Any("error", err))
		} else {
			out = append(out, ch)
		}
	}
	if s.NATSURL != "" {
		out = append(out, NewNATS(s.NATSURL, s.NATSSubject))
	}
	return out
}
