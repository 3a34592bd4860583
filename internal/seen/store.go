package seen

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chine/internal/logging"
)

// Store holds the set of already-processed listing ids and its backing
// file. It is owned by the single watcher loop; no locking is needed.
type Store struct {
	path   string
	logger *slog.Logger
	ids    map[string]struct{}
}

// NewStore creates a store backed by the file at path and loads whatever
// is already there. Any load failure leaves the set empty: re-evaluating a
// previously-rejected listing is harmless, losing the process is not.
func NewStore(path string, logger *slog.Logger) *Store {
	logger = logging.NewComponentLogger(logger, "seen")

	s := &Store{
		path:   path,
		logger: logger,
		ids:    make(map[string]struct{}),
	}

	if err := s.load(); err != nil {
		logger.Warn("failed to load seen set, starting empty",
			logging.String("path", path),
			logging.Error(err))
	}

	return s
}

// Contains reports whether the id has already been processed.
func (s *Store) Contains(id string) bool {
	_, found := s.ids[id]
	return found
}

// Add records an id as processed. It does not persist; the watcher calls
// Persist once per cycle, and only when the cycle produced matches.
func (s *Store) Add(id string) {
	if strings.TrimSpace(id) == "" {
		return
	}
	s.ids[id] = struct{}{}
}

// Len returns the number of recorded ids.
func (s *Store) Len() int {
	return len(s.ids)
}

// Persist writes the full id set to disk, sorted, via a temp file and
// rename. Errors are returned for the caller to log; they are never fatal.
func (s *Store) Persist() error {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal seen set: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	s.logger.Debug("persisted seen set", logging.Int("ids", len(ids)))
	return nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // fresh start
		}
		return fmt.Errorf("read seen file: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("parse seen file: %w", err)
	}

	for _, id := range ids {
		if strings.TrimSpace(id) != "" {
			s.ids[id] = struct{}{}
		}
	}

	s.logger.Debug("loaded seen set",
		logging.Int("ids", len(s.ids)),
		logging.String("path", s.path))

	return nil
}
