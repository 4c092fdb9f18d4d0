package cli

import (
	"testing"
	"time"

	"github.com/ppiankov/factly/internal/model"
)

func TestSourceCallTimeout_TracksSlowestEnabledSource(t *testing.T) {
	cfg := model.DefaultConfig()

	// Default config: newsldr's 15s is the slowest enabled source
	if got := sourceCallTimeout(cfg); got != 15*time.Second {
		t.Errorf("expected 15s for defaults, got %v", got)
	}

	cfg.Sources.Official.Timeout = 45 * time.Second
	if got := sourceCallTimeout(cfg); got != 45*time.Second {
		t.Errorf("expected 45s after raising official, got %v", got)
	}

	// A disabled source's timeout does not count
	cfg.Sources.Official.Enabled = false
	if got := sourceCallTimeout(cfg); got != 15*time.Second {
		t.Errorf("expected 15s with official disabled, got %v", got)
	}
}

func TestSourceCallTimeout_Floor(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Sources.FactCheck.Timeout = 0
	cfg.Sources.NewsAPI.Timeout = 0
	cfg.Sources.NewsLdr.Timeout = 0
	cfg.Sources.Official.Timeout = 0
	cfg.Sources.RSS.Timeout = 0

	if got := sourceCallTimeout(cfg); got != 10*time.Second {
		t.Errorf("expected 10s floor, got %v", got)
	}
}
