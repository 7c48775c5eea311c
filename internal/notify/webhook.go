package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	domainerrors "github.com/polkiloo/checkin/internal/domain/errors"
)

// HTTPClient sends webhook requests.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient returns a client with the given timeout, 10s when unset.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

func (c *HTTPClient) do(req *http.Request) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domainerrors.StatusError{Code: resp.StatusCode}
	}
	return nil
}

// redact drops the request URL from transport errors. Several channels carry
// their secret key in the URL.
func redact(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return fmt.Errorf("%s request failed: %w", urlErr.Op, urlErr.Err)
}

type requestFunc func(ctx context.Context, title, body string) (*http.Request, error)

// webhook is an HTTP based channel.
type webhook struct {
	name  string
	hc    *HTTPClient
	build requestFunc
}

func (w *webhook) Name() string { return w.name }

func (w *webhook) Publish(ctx context.Context, title, body string) error {
	req, err := w.build(ctx, title, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", w.name, err)
	}
	if err := w.hc.do(req); err != nil {
		return fmt.Errorf("%s: %w", w.name, redact(err))
	}
	return nil
}

func postJSON(ctx context.Context, endpoint string, payload any) (*http.Request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func fullText(title, body string) string {
	return title + "\n" + body
}

type textMessage struct {
	MsgType string `json:"msgtype"`
	Text    struct {
		Content string `json:"content"`
	} `json:"text"`
}

func newTextMessage(content string) textMessage {
	m := textMessage{MsgType: "text"}
	m.Text.Content = content
	return m
}

var (
	telegramEndpoint   = "https://api.telegram.org"
	wecomEndpoint      = "https://qyapi.weixin.qq.com/cgi-bin/webhook/send"
	dingtalkEndpoint   = "https://oapi.dingtalk.com/robot/send"
	pushplusEndpoint   = "http://www.pushplus.plus/send"
	serverchanEndpoint = "https://sctapi.ftqq.com"
	coolpushEndpoint   = "https://push.xuthus.cc/send"
)

// Telegram sends through the Bot API sendMessage method.
func Telegram(hc *HTTPClient, token, chatID string) Channel {
	return &webhook{name: "telegram", hc: hc, build: func(ctx context.Context, title, body string) (*http.Request, error) {
		q := url.Values{}
		q.Set("chat_id", chatID)
		q.Set("text", fullText(title, body))
		endpoint := telegramEndpoint + "/bot" + token + "/sendMessage?" + q.Encode()
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	}}
}

// WeCom posts a text message to a group robot. key may be a full webhook URL.
func WeCom(hc *HTTPClient, key string) Channel {
	return &webhook{name: "wecom", hc: hc, build: func(ctx context.Context, title, body string) (*http.Request, error) {
		return postJSON(ctx, robotURL(key, wecomEndpoint, "key"), newTextMessage(fullText(title, body)))
	}}
}

// DingTalk posts a text message to a robot. token may be a full webhook URL.
func DingTalk(hc *HTTPClient, token string) Channel {
	return &webhook{name: "dingtalk", hc: hc, build: func(ctx context.Context, title, body string) (*http.Request, error) {
		return postJSON(ctx, robotURL(token, dingtalkEndpoint, "access_token"), newTextMessage(fullText(title, body)))
	}}
}

func robotURL(value, endpoint, param string) string {
	if strings.HasPrefix(value, "https://") {
		return value
	}
	return endpoint + "?" + param + "=" + url.QueryEscape(value)
}

// PushPlus posts to the PushPlus send API.
func PushPlus(hc *HTTPClient, token string) Channel {
	return &webhook{name: "pushplus", hc: hc, build: func(ctx context.Context, title, body string) (*http.Request, error) {
		return postJSON(ctx, pushplusEndpoint, map[string]string{"token": token, "title": title, "content": body})
	}}
}

// ServerChan posts a form to the Turbo API.
func ServerChan(hc *HTTPClient, key string) Channel {
	return &webhook{name: "serverchan", hc: hc, build: func(ctx context.Context, title, body string) (*http.Request, error) {
		form := url.Values{}
		form.Set("title", title)
		form.Set("desp", body)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverchanEndpoint+"/"+key+".send", strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}}
}

var sc3UID = regexp.MustCompile(`^sctp(\d+)t`)

// ServerChan3 posts JSON to the per-user host encoded in the send key.
func ServerChan3(hc *HTTPClient, key string) Channel {
	return &webhook{name: "serverchan3", hc: hc, build: func(ctx context.Context, title, body string) (*http.Request, error) {
		return postJSON(ctx, serverChan3URL(key), map[string]string{
			"title": title,
			"desp":  body,
			"tags":  "JLC|check-in",
		})
	}}
}

func serverChan3URL(key string) string {
	if m := sc3UID.FindStringSubmatch(key); m != nil {
		return "https://" + m[1] + ".push.ft07.com/send/" + key + ".send"
	}
	return serverchanEndpoint + "/" + key + ".send"
}

// CoolPush sends the text as a query parameter.
func CoolPush(hc *HTTPClient, key string) Channel {
	return &webhook{name: "coolpush", hc: hc, build: func(ctx context.Context, title, body string) (*http.Request, error) {
		endpoint := coolpushEndpoint + "/" + key + "?c=" + url.QueryEscape(fullText(title, body))
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	}}
}

// Custom posts {title, content} to an arbitrary URL.
func Custom(hc *HTTPClient, endpoint string) Channel {
	return &webhook{name: "custom", hc: hc, build: func(ctx context.Context, title, body string) (*http.Request, error) {
		return postJSON(ctx, endpoint, map[string]string{"title": title, "content": body})
	}}
}
