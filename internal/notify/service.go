package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chine/internal/config"
	"chine/internal/listing"
	"chine/internal/logging"
	"chine/internal/rules"
)

const (
	defaultAPIBaseURL = "https://api.telegram.org"

	maxErrorBodyBytes = 200
)

// Match bundles everything the alert message needs: which search fired,
// the listing itself, and the evaluation numbers.
type Match struct {
	SearchName string
	Listing    listing.Listing
	Result     rules.Result
}

// Service is the notification surface the watcher depends on.
type Service interface {
	NotifyMatch(ctx context.Context, m Match) error
	Test(ctx context.Context) error
}

// Option configures the Telegram-backed service.
type Option func(*telegramService)

// WithAPIBaseURL overrides the Telegram API base URL.
func WithAPIBaseURL(baseURL string) Option {
	return func(s *telegramService) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			s.apiBaseURL = trimmed
		}
	}
}

// NewService builds a notifier backed by Telegram when credentials are
// configured. Without credentials it returns a log-only implementation so
// startup never blocks on missing secrets.
func NewService(cfg *config.Config, logger *slog.Logger, opts ...Option) Service {
	componentLogger := logging.NewComponentLogger(logger, "notify")

	if !cfg.TelegramConfigured() {
		componentLogger.Warn("telegram credentials missing, alerts will be logged locally")
		return &logService{logger: componentLogger}
	}

	timeout := time.Duration(cfg.Telegram.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	svc := &telegramService{
		token:      cfg.Telegram.Token,
		chatID:     cfg.Telegram.ChatID,
		apiBaseURL: defaultAPIBaseURL,
		client:     &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// FormatMatch renders the multi-line alert body for a match.
func FormatMatch(m Match) string {
	lines := []string{
		"🔥 Nouvelle offre détectée !",
		fmt.Sprintf("🔎 Requête: %s", m.SearchName),
		fmt.Sprintf("📌 %s", m.Listing.Title),
		fmt.Sprintf("💰 Prix: %.2f €", m.Listing.Price),
	}
	if m.Result.HasQty {
		lines = append(lines, fmt.Sprintf("📦 Quantité estimée: %d", m.Result.Quantity))
	}
	if m.Result.HasUnit {
		lines = append(lines, fmt.Sprintf("🔢 Prix unitaire estimé: %.4f €", m.Result.UnitPrice))
	}
	lines = append(lines, fmt.Sprintf("🔗 %s", m.Listing.URL))
	return strings.Join(lines, "\n")
}

type telegramService struct {
	token      string
	chatID     string
	apiBaseURL string
	client     *http.Client
}

func (s *telegramService) NotifyMatch(ctx context.Context, m Match) error {
	return s.send(ctx, FormatMatch(m))
}

func (s *telegramService) Test(ctx context.Context) error {
	return s.send(ctx, "chine: notification de test")
}

func (s *telegramService) send(ctx context.Context, text string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBaseURL, s.token)

	form := url.Values{}
	form.Set("chat_id", s.chatID)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("telegram returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// logService stands in when Telegram is not configured: alerts land in the
// log stream and delivery always succeeds.
type logService struct {
	logger *slog.Logger
}

func (s *logService) NotifyMatch(_ context.Context, m Match) error {
	s.logger.Info("match (telegram not configured)",
		logging.String(logging.FieldSearch, m.SearchName),
		logging.String("message", FormatMatch(m)))
	return nil
}

func (s *logService) Test(context.Context) error {
	s.logger.Info("test notification (telegram not configured)")
	return nil
}
