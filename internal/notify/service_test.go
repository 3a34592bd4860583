package notify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chine/internal/config"
	"chine/internal/listing"
	"chine/internal/notify"
	"chine/internal/rules"
)

func telegramConfig() *config.Config {
	cfg := config.Default()
	cfg.Telegram.Token = "12345:token"
	cfg.Telegram.ChatID = "42"
	return &cfg
}

func sampleMatch() notify.Match {
	return notify.Match{
		SearchName: "Pokemon bulk",
		Listing: listing.Listing{
			ID:    "111",
			Title: "lot 100 cartes pokemon",
			Price: 2.40,
			URL:   "https://www.vinted.fr/items/111",
		},
		Result: rules.Result{
			Matched:   true,
			Quantity:  100,
			HasQty:    true,
			UnitPrice: 0.024,
			HasUnit:   true,
		},
	}
}

func TestFormatMatchIncludesAllLines(t *testing.T) {
	msg := notify.FormatMatch(sampleMatch())

	for _, want := range []string{
		"Nouvelle offre",
		"Requête: Pokemon bulk",
		"lot 100 cartes pokemon",
		"Prix: 2.40 €",
		"Quantité estimée: 100",
		"Prix unitaire estimé: 0.0240 €",
		"https://www.vinted.fr/items/111",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatMatchOmitsUnknownNumbers(t *testing.T) {
	m := sampleMatch()
	m.Result = rules.Result{Matched: true}
	msg := notify.FormatMatch(m)

	if strings.Contains(msg, "Quantité") {
		t.Fatalf("message should omit quantity line:\n%s", msg)
	}
	if strings.Contains(msg, "unitaire") {
		t.Fatalf("message should omit unit price line:\n%s", msg)
	}
}

func TestTelegramServicePostsFormData(t *testing.T) {
	var gotPath, gotChatID, gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotPath = r.URL.Path
		gotChatID = r.PostFormValue("chat_id")
		gotText = r.PostFormValue("text")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)

	svc := notify.NewService(telegramConfig(), nil, notify.WithAPIBaseURL(server.URL))
	if err := svc.NotifyMatch(context.Background(), sampleMatch()); err != nil {
		t.Fatalf("NotifyMatch returned error: %v", err)
	}

	if gotPath != "/bot12345:token/sendMessage" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotChatID != "42" {
		t.Fatalf("unexpected chat_id: %q", gotChatID)
	}
	if !strings.Contains(gotText, "Pokemon bulk") {
		t.Fatalf("unexpected text: %q", gotText)
	}
}

func TestTelegramServiceReturnsErrorOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"ok":false,"description":"bot was blocked"}`))
	}))
	t.Cleanup(server.Close)

	svc := notify.NewService(telegramConfig(), nil, notify.WithAPIBaseURL(server.URL))
	err := svc.NotifyMatch(context.Background(), sampleMatch())
	if err == nil {
		t.Fatal("expected error for non-success status")
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "blocked") {
		t.Fatalf("error should carry status and body: %v", err)
	}
}

func TestNewServiceFallsBackToLoggingWithoutCredentials(t *testing.T) {
	cfg := config.Default()
	svc := notify.NewService(&cfg, nil)

	if err := svc.NotifyMatch(context.Background(), sampleMatch()); err != nil {
		t.Fatalf("log fallback should never fail, got %v", err)
	}
	if err := svc.Test(context.Background()); err != nil {
		t.Fatalf("log fallback test should never fail, got %v", err)
	}
}
