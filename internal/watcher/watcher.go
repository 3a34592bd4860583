package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"chine/internal/config"
	"chine/internal/listing"
	"chine/internal/logging"
	"chine/internal/notify"
	"chine/internal/rules"
	"chine/internal/seen"
)

const (
	// Inter-query pause bounds, to spread load across searches.
	queryPauseMin = 400 * time.Millisecond
	queryPauseMax = 1200 * time.Millisecond

	// Poll jitter bounds, to avoid a perfectly periodic request pattern.
	pollJitterMin = -5 * time.Second
	pollJitterMax = 8 * time.Second

	// Pause after a cycle failed wholesale before trying again.
	errorRetryPause = 10 * time.Second
)

// Searcher is the slice of the Vinted client the watcher needs.
type Searcher interface {
	Search(ctx context.Context, query string) ([]listing.Listing, error)
}

// Watcher owns one full scan pipeline: client, rules, notifier, seen set.
type Watcher struct {
	cfg      *config.Config
	client   Searcher
	notifier notify.Service
	store    *seen.Store
	logger   *slog.Logger

	lock *flock.Flock

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) bool
}

// New constructs a watcher. The seen store and notifier are injected so
// the loop logic stays independent of transport and storage details.
func New(cfg *config.Config, client Searcher, notifier notify.Service, store *seen.Store, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil || client == nil || notifier == nil || store == nil {
		return nil, errors.New("watcher requires config, client, notifier, and store")
	}
	w := &Watcher{
		cfg:      cfg,
		client:   client,
		notifier: notifier,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "watcher"),
		lock:     flock.New(cfg.LockPath()),
		now:      time.Now,
	}
	w.sleep = w.sleepFor
	return w, nil
}

// Run acquires the instance lock and scans forever, sleeping with jitter
// between cycles. It returns only when the context is canceled or the lock
// cannot be acquired.
func (w *Watcher) Run(ctx context.Context) error {
	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another chine instance is already running (lock: %s)", w.cfg.LockPath())
	}
	defer func() {
		if err := w.lock.Unlock(); err != nil {
			w.logger.Warn("failed to release instance lock", logging.Error(err))
		}
	}()

	w.logStartup()

	for {
		sent, err := w.ScanOnce(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			// Never fatal: pause briefly and try again.
			w.logger.Error("scan cycle failed", logging.Error(err))
			if !w.sleep(ctx, errorRetryPause) {
				return ctx.Err()
			}
			continue
		}
		if sent > 0 {
			w.logger.Info("notifications sent", logging.Int("sent", sent))
		}
		if !w.sleep(ctx, w.pollDelay()) {
			return ctx.Err()
		}
	}
}

// ScanOnce runs a single cycle over all configured searches and returns
// how many notifications were sent. Individual search failures are logged
// and skipped; only context cancellation aborts the cycle.
func (w *Watcher) ScanOnce(ctx context.Context) (int, error) {
	cycleLogger := w.logger.With(logging.String(logging.FieldCycleID, uuid.NewString()))

	sent := 0
	for _, search := range w.cfg.Searches {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		searchLogger := cycleLogger.With(logging.String(logging.FieldSearch, search.Name))

		listings, err := w.client.Search(ctx, search.Query)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return sent, err
			}
			searchLogger.Warn("search failed, treating as empty", logging.Error(err))
			listings = nil
		}

		sent += w.processListings(ctx, searchLogger, search, listings)

		// Spread the remaining searches out a little.
		if !w.sleep(ctx, queryPauseMin+randDuration(queryPauseMax-queryPauseMin)) {
			return sent, ctx.Err()
		}
	}

	if sent > 0 {
		if err := w.store.Persist(); err != nil {
			cycleLogger.Warn("failed to persist seen set", logging.Error(err))
		}
	}

	return sent, nil
}

func (w *Watcher) processListings(ctx context.Context, logger *slog.Logger, search config.Search, listings []listing.Listing) int {
	sent := 0
	maxAge := w.cfg.MaxItemAge()
	now := w.now()

	for _, l := range listings {
		if l.ID == "" {
			continue
		}
		if w.store.Contains(l.ID) {
			continue
		}

		// Stale listings are suppressed permanently without evaluation so
		// a fresh start does not flood the chat with historic matches.
		// Unknown age counts as recent.
		if age, known := l.Age(now); known && age > maxAge {
			w.store.Add(l.ID)
			continue
		}

		res := rules.Evaluate(search, l)
		w.store.Add(l.ID)

		if !res.Matched {
			logger.Debug("listing rejected",
				logging.String(logging.FieldListingID, l.ID),
				logging.Float64("price", l.Price),
				logging.Int("quantity", res.Quantity))
			continue
		}

		logger.Info("match",
			logging.String(logging.FieldListingID, l.ID),
			logging.String("title", l.Title),
			logging.Float64("price", l.Price),
			logging.String("url", l.URL))

		if err := w.notifier.NotifyMatch(ctx, notify.Match{
			SearchName: search.Name,
			Listing:    l,
			Result:     res,
		}); err != nil {
			logger.Warn("notification failed", logging.Error(err))
		}
		sent++
	}

	return sent
}

func (w *Watcher) logStartup() {
	w.logger.Info("chine started",
		logging.Int("searches", len(w.cfg.Searches)),
		logging.Duration("poll_interval", w.cfg.PollInterval()),
		logging.Duration("max_item_age", w.cfg.MaxItemAge()),
		logging.Bool("telegram", w.cfg.TelegramConfigured()))
	for _, search := range w.cfg.Searches {
		w.logger.Info("watching",
			logging.String(logging.FieldSearch, search.Name),
			logging.String("query", search.Query))
	}
}

func (w *Watcher) pollDelay() time.Duration {
	delay := w.cfg.PollInterval() + pollJitterMin + randDuration(pollJitterMax-pollJitterMin)
	if delay < 0 {
		return 0
	}
	return delay
}

func randDuration(span time.Duration) time.Duration {
	if span <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(span)))
}

func (w *Watcher) sleepFor(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
