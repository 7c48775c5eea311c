package points

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/polkiloo/checkin/internal/adapter/rest"
	domainErrors "github.com/polkiloo/checkin/internal/domain/errors"
	"github.com/polkiloo/checkin/internal/domain/model"
)

const (
	userAgent             = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	alreadyClaimedMessage = "已领取"
)

// Client talks to the points platform on behalf of many accounts.
type Client struct {
	rest    *rest.Client
	referer string
	logger  *slog.Logger
	now     func() time.Time
}

// NewClient creates the points platform client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	rc, err := rest.NewClient(baseURL, timeout, logger)
	if err != nil {
		return nil, fmt.Errorf("points client: %w", err)
	}
	return &Client{
		rest:    rc,
		referer: strings.TrimSuffix(baseURL, "/") + "/sign_in",
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Session binds the client to one account cookie.
func (c *Client) Session(cookie model.Credential) *Session {
	return &Session{client: c, cookie: string(cookie)}
}

// Session is one account's view of the points platform.
type Session struct {
	client *Client
	cookie string
}

type envelope struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Msg     string `json:"msg"`
}

func (e envelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Msg
}

type userResponse struct {
	envelope
	Result struct {
		Points   int64  `json:"points"`
		Nickname string `json:"nickname"`
	} `json:"result"`
}

type gift struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Received bool   `json:"received"`
}

type giftsResponse struct {
	envelope
	Result struct {
		SevenDays *gift `json:"sevenDays"`
		MonthEnd  *gift `json:"monthEnd"`
	} `json:"result"`
}

type claimResponse struct {
	envelope
	Result int `json:"result"`
}

// Platform identifies the upstream.
func (s *Session) Platform() model.Platform {
	return model.PlatformPoints
}

func (s *Session) header() http.Header {
	return http.Header{
		"User-Agent": []string{userAgent},
		"Accept":     []string{"application/json, text/plain, */*"},
		"Cookie":     []string{s.cookie},
		"Referer":    []string{s.client.referer},
	}
}

// Balance returns current points and nickname.
func (s *Session) Balance(ctx context.Context) (*model.BalanceReading, error) {
	var resp userResponse
	_, err := s.client.rest.Do(ctx, rest.Request{Path: "/api/users", Header: s.header()}, &resp)
	if err != nil {
		var se domainErrors.StatusError
		if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	if !resp.Success {
		if resp.Code == http.StatusUnauthorized {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("fetch user info: %w: %s", domainErrors.ErrMalformedResponse, resp.text())
	}
	return &model.BalanceReading{Amount: resp.Result.Points, DisplayName: resp.Result.Nickname}, nil
}

// CheckIn signs the account in for today. The platform never reports the reward inline.
func (s *Session) CheckIn(ctx context.Context) (*model.CheckInResponse, error) {
	var resp envelope
	body := map[string]int64{"_t": s.client.now().UnixMilli()}
	raw, err := s.client.rest.Do(ctx, rest.Request{Method: http.MethodPost, Path: "/api/users/signIn", Header: s.header(), Body: body}, &resp)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return &model.CheckInResponse{Success: resp.Success, Message: resp.text(), Raw: string(raw)}, nil
}

// ClaimBonus claims the weekly or month-end gift.
func (s *Session) ClaimBonus(ctx context.Context, kind model.BonusKind) (*model.BonusClaim, error) {
	if kind != model.BonusWeekly && kind != model.BonusMonthly {
		return nil, domainErrors.ErrBonusNotSupported
	}

	var gifts giftsResponse
	if _, err := s.client.rest.Do(ctx, rest.Request{Path: "/api/gift/goodGift", Header: s.header()}, &gifts); err != nil {
		return nil, fmt.Errorf("fetch gifts: %w", err)
	}
	if !gifts.Success {
		return nil, fmt.Errorf("fetch gifts: %w: %s", domainErrors.ErrMalformedResponse, gifts.text())
	}

	target := gifts.Result.SevenDays
	if kind == model.BonusMonthly {
		target = gifts.Result.MonthEnd
	}
	if target == nil || target.UUID == "" {
		return nil, domainErrors.ErrBonusNotFound
	}
	if target.Received {
		return &model.BonusClaim{Kind: kind, AlreadyClaimed: true, Message: target.Name}, nil
	}

	var claim claimResponse
	claimPath := "/api/gift/goodGift/" + url.PathEscape(target.UUID)
	if _, err := s.client.rest.Do(ctx, rest.Request{Method: http.MethodPost, Path: claimPath, Header: s.header()}, &claim); err != nil {
		return nil, fmt.Errorf("claim gift: %w", err)
	}

	if !claim.Success {
		msg := claim.text()
		return &model.BonusClaim{Kind: kind, AlreadyClaimed: strings.Contains(msg, alreadyClaimedMessage), Message: msg}, nil
	}
	return &model.BonusClaim{Kind: kind, Claimed: true, Reward: rewardName(claim.Result), Message: target.Name}, nil
}

func rewardName(code int) string {
	switch code {
	case 1:
		return "coupon"
	case 2:
		return "points (about 20)"
	default:
		return "unknown reward"
	}
}
