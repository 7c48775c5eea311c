package coins

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/polkiloo/checkin/internal/adapter/rest"
	domainErrors "github.com/polkiloo/checkin/internal/domain/errors"
	"github.com/polkiloo/checkin/internal/domain/model"
)

const (
	tokenHeader = "X-JLC-AccessToken"
	userAgent   = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_2_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 Html5Plus/1.0 (Immersed/20) JlcMobileApp"
)

// Client talks to the coins platform on behalf of many accounts.
type Client struct {
	rest   *rest.Client
	logger *slog.Logger
}

// NewClient creates the coins platform client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	rc, err := rest.NewClient(baseURL, timeout, logger)
	if err != nil {
		return nil, fmt.Errorf("coins client: %w", err)
	}
	return &Client{rest: rc, logger: logger}, nil
}

// Session binds the client to one account access token.
func (c *Client) Session(token model.Credential) *Session {
	return &Session{client: c, token: string(token)}
}

// Session is one account's view of the coins platform.
type Session struct {
	client *Client
	token  string
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type assetsResponse struct {
	envelope
	Data *struct {
		IntegralVoucher int64  `json:"integralVoucher"`
		CustomerCode    string `json:"customerCode"`
	} `json:"data"`
}

type signInResponse struct {
	envelope
	Data *struct {
		GainNum *int64 `json:"gainNum"`
	} `json:"data"`
}

// Platform identifies the upstream.
func (s *Session) Platform() model.Platform {
	return model.PlatformCoins
}

func (s *Session) header() http.Header {
	return http.Header{
		tokenHeader:  []string{s.token},
		"User-Agent": []string{userAgent},
	}
}

// Balance returns the gold coin count and customer code.
func (s *Session) Balance(ctx context.Context) (*model.BalanceReading, error) {
	var resp assetsResponse
	path := "/api/appPlatform/center/assets/selectPersonalAssetsInfo"
	if _, err := s.client.rest.Do(ctx, rest.Request{Path: path, Header: s.header()}, &resp); err != nil {
		return nil, fmt.Errorf("fetch assets: %w", err)
	}
	if !resp.Success || resp.Data == nil {
		return nil, fmt.Errorf("fetch assets: %w: %s", domainErrors.ErrMalformedResponse, resp.Message)
	}
	return &model.BalanceReading{Amount: resp.Data.IntegralVoucher, CustomerCode: resp.Data.CustomerCode}, nil
}

// CheckIn signs the account in for today.
func (s *Session) CheckIn(ctx context.Context) (*model.CheckInResponse, error) {
	var resp signInResponse
	req := rest.Request{
		Path:   "/api/activity/sign/signIn",
		Query:  url.Values{"source": []string{"3"}},
		Header: s.header(),
	}
	raw, err := s.client.rest.Do(ctx, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	out := &model.CheckInResponse{Success: resp.Success, Message: resp.Message, Raw: string(raw)}
	if resp.Data != nil {
		out.Reward = resp.Data.GainNum
	}
	return out, nil
}

// ClaimBonus claims the seven-day streak voucher; other kinds are not offered here.
func (s *Session) ClaimBonus(ctx context.Context, kind model.BonusKind) (*model.BonusClaim, error) {
	if kind != model.BonusStreak {
		return nil, domainErrors.ErrBonusNotSupported
	}

	var resp envelope
	if _, err := s.client.rest.Do(ctx, rest.Request{Path: "/api/activity/sign/receiveVoucher", Header: s.header()}, &resp); err != nil {
		return nil, fmt.Errorf("receive voucher: %w", err)
	}
	return &model.BonusClaim{Kind: kind, Claimed: resp.Success, Message: resp.Message}, nil
}
