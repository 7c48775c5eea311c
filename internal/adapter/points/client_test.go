package points

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/checkin/internal/domain/errors"
	"github.com/polkiloo/checkin/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestSession(t *testing.T, handler http.HandlerFunc) *Session {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	client.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return client.Session("sid=abc")
}

func TestBalanceReadsPointsAndNickname(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Cookie") != "sid=abc" {
			t.Errorf("expected cookie header, got %q", r.Header.Get("Cookie"))
		}
		if r.Header.Get("Referer") == "" {
			t.Errorf("expected referer header")
		}
		_, _ = w.Write([]byte(`{"success":true,"result":{"points":120,"nickname":"maker"}}`))
	})

	reading, err := s.Balance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Amount != 120 || reading.DisplayName != "maker" {
		t.Fatalf("unexpected reading %+v", reading)
	}
}

func TestBalanceUnauthorized(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"code in body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"code":401}`))
		}},
		{"http status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, tc.handler)
			if _, err := s.Balance(context.Background()); !errors.Is(err, domainErrors.ErrUnauthorized) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestBalanceRejectedWithoutCode(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"busy"}`))
	})
	if _, err := s.Balance(context.Background()); !errors.Is(err, domainErrors.ErrMalformedResponse) {
		t.Fatalf("expected rejection error, got %v", err)
	}
}

func TestCheckInPostsTimestamp(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/users/signIn" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]int64
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["_t"] != 1700000000000 {
			t.Errorf("unexpected timestamp %v", body)
		}
		_, _ = w.Write([]byte(`{"success":false,"message":"Duplicate entry 'x' for key"}`))
	})

	resp, err := s.CheckIn(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Success || resp.Reward != nil {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Message != "Duplicate entry 'x' for key" || resp.Raw == "" {
		t.Fatalf("expected message and raw body, got %+v", resp)
	}
}

func TestCheckInTransportFailure(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if _, err := s.CheckIn(context.Background()); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestClaimBonusStreakNotSupported(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s", r.URL.Path)
	})
	if _, err := s.ClaimBonus(context.Background(), model.BonusStreak); !errors.Is(err, domainErrors.ErrBonusNotSupported) {
		t.Fatalf("expected not supported, got %v", err)
	}
}

func giftServer(t *testing.T, claimBody string, claimed *string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/gift/goodGift":
			_, _ = w.Write([]byte(`{"success":true,"result":{"sevenDays":{"uuid":"week-1","name":"7 days"},"monthEnd":{"uuid":"month-1","name":"month","received":true}}}`))
		case r.Method == http.MethodPost:
			*claimed = r.URL.Path
			_, _ = w.Write([]byte(claimBody))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}
}

func TestClaimBonusWeekly(t *testing.T) {
	var claimed string
	s := newTestSession(t, giftServer(t, `{"success":true,"result":2}`, &claimed))

	claim, err := s.ClaimBonus(context.Background(), model.BonusWeekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claimed != "/api/gift/goodGift/week-1" {
		t.Fatalf("unexpected claim path %q", claimed)
	}
	if !claim.Claimed || claim.Reward != "points (about 20)" {
		t.Fatalf("unexpected claim %+v", claim)
	}
}

func TestClaimBonusAlreadyClaimed(t *testing.T) {
	var claimed string
	s := newTestSession(t, giftServer(t, `{"success":false,"msg":"礼包已领取"}`, &claimed))

	claim, err := s.ClaimBonus(context.Background(), model.BonusWeekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claim.Claimed || !claim.AlreadyClaimed {
		t.Fatalf("expected already claimed, got %+v", claim)
	}

	monthly, err := s.ClaimBonus(context.Background(), model.BonusMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !monthly.AlreadyClaimed {
		t.Fatalf("expected received gift to be reported as already claimed, got %+v", monthly)
	}
}

func TestClaimBonusGiftMissing(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"result":{}}`))
	})
	if _, err := s.ClaimBonus(context.Background(), model.BonusMonthly); !errors.Is(err, domainErrors.ErrBonusNotFound) {
		t.Fatalf("expected bonus not found, got %v", err)
	}
}

func TestRewardName(t *testing.T) {
	if rewardName(1) != "coupon" || rewardName(2) != "points (about 20)" || rewardName(9) != "unknown reward" {
		t.Fatal("unexpected reward names")
	}
}
