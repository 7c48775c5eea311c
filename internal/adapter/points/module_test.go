package points

import (
	"testing"
	"time"

	"github.com/polkiloo/checkin/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{PointsBaseURL: "https://points.example.com/", RequestTimeout: time.Second}
	client, err := newClient(clientParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.referer != "https://points.example.com/sign_in" {
		t.Fatalf("unexpected referer %q", client.referer)
	}
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	if _, err := newClient(clientParams{Config: &config.Config{PointsBaseURL: "points"}, Logger: testLogger()}); err == nil {
		t.Fatal("expected error for relative url")
	}
}
