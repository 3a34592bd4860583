package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chine/internal/config"
)

const minimalConfig = `
[[searches]]
name = "Pokemon bulk"
query = "lot cartes pokemon"
max_unit_price = 0.06
min_quantity = 80
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" || !exists {
		t.Fatalf("expected resolved existing path, got %q exists=%v", resolved, exists)
	}

	if cfg.Vinted.BaseURL != "https://www.vinted.fr" {
		t.Fatalf("unexpected base url: %q", cfg.Vinted.BaseURL)
	}
	if cfg.Vinted.Currency != "EUR" {
		t.Fatalf("unexpected currency: %q", cfg.Vinted.Currency)
	}
	if cfg.Watch.PollSeconds != 90 {
		t.Fatalf("unexpected poll seconds: %d", cfg.Watch.PollSeconds)
	}
	if cfg.Watch.MaxItemAgeMinutes != 60 {
		t.Fatalf("unexpected max item age: %d", cfg.Watch.MaxItemAgeMinutes)
	}
	wantState := filepath.Join(tempHome, ".local", "share", "chine")
	if cfg.Watch.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Watch.StateDir, wantState)
	}
	if cfg.SeenPath() != filepath.Join(wantState, "seen.json") {
		t.Fatalf("unexpected seen path: %q", cfg.SeenPath())
	}
	if cfg.TelegramConfigured() {
		t.Fatal("expected Telegram unconfigured by default")
	}

	if len(cfg.Searches) != 1 {
		t.Fatalf("expected one search, got %d", len(cfg.Searches))
	}
	search := cfg.Searches[0]
	if search.MaxPrice != nil {
		t.Fatal("max_price should be absent")
	}
	if search.MaxUnitPrice == nil || *search.MaxUnitPrice != 0.06 {
		t.Fatalf("unexpected max_unit_price: %v", search.MaxUnitPrice)
	}
	if search.MinQuantity == nil || *search.MinQuantity != 80 {
		t.Fatalf("unexpected min_quantity: %v", search.MinQuantity)
	}
}

func TestLoadTelegramEnvOverrides(t *testing.T) {
	t.Setenv("CHINE_TELEGRAM_TOKEN", "12345:abc")
	t.Setenv("CHAT_ID", "987654")

	cfg, _, _, err := config.Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Telegram.Token != "12345:abc" {
		t.Fatalf("expected token from env, got %q", cfg.Telegram.Token)
	}
	if cfg.Telegram.ChatID != "987654" {
		t.Fatalf("expected chat id from legacy env, got %q", cfg.Telegram.ChatID)
	}
	if !cfg.TelegramConfigured() {
		t.Fatal("expected Telegram configured")
	}
}

func TestLoadPollEnvOverrides(t *testing.T) {
	t.Setenv("POLL_SECONDS", "120")
	t.Setenv("MAX_ITEM_AGE_MIN", "30")

	cfg, _, _, err := config.Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Watch.PollSeconds != 120 {
		t.Fatalf("expected poll override, got %d", cfg.Watch.PollSeconds)
	}
	if cfg.Watch.MaxItemAgeMinutes != 30 {
		t.Fatalf("expected age override, got %d", cfg.Watch.MaxItemAgeMinutes)
	}
}

func TestLoadRejectsBadPollEnv(t *testing.T) {
	t.Setenv("POLL_SECONDS", "soon")
	if _, _, _, err := config.Load(writeConfig(t, minimalConfig)); err == nil {
		t.Fatal("expected error for non-numeric POLL_SECONDS")
	}
}

func TestValidateRequiresSearches(t *testing.T) {
	_, _, _, err := config.Load(writeConfig(t, "[telegram]\ntoken = \"x\"\n"))
	if err == nil {
		t.Fatal("expected error when no searches configured")
	}
	if !strings.Contains(err.Error(), "searches") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBadSearchRules(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "[[searches]]\nquery = \"lego\"\n"},
		{"missing query", "[[searches]]\nname = \"Lego\"\n"},
		{"zero max price", "[[searches]]\nname = \"Lego\"\nquery = \"lego\"\nmax_price = 0.0\n"},
		{"negative unit price", "[[searches]]\nname = \"Lego\"\nquery = \"lego\"\nmax_unit_price = -0.5\n"},
		{"zero min quantity", "[[searches]]\nname = \"Lego\"\nquery = \"lego\"\nmin_quantity = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := config.Load(writeConfig(t, tt.content)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateRejectsShortPollInterval(t *testing.T) {
	content := minimalConfig + "\n[watch]\npoll_seconds = 5\n"
	if _, _, _, err := config.Load(writeConfig(t, content)); err == nil {
		t.Fatal("expected error for poll interval below 10s")
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if len(cfg.Searches) != 4 {
		t.Fatalf("expected four sample searches, got %d", len(cfg.Searches))
	}
}
