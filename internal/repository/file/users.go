package file

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// UserRepo is a flat-file backed registry of known user IDs: one decimal ID
// per line, append-only. The in-memory set is authoritative after Load.
type UserRepo struct {
	path   string
	logger *zap.Logger

	mu  sync.RWMutex
	ids map[int64]struct{}
}

// NewUserRepo creates a new user registry backed by the given file
func NewUserRepo(path string, logger *zap.Logger) *UserRepo {
	return &UserRepo{
		path:   path,
		logger: logger,
		ids:    make(map[int64]struct{}),
	}
}

// Load reads persisted IDs into memory. A missing file is created empty;
// malformed lines are skipped, not fatal.
func (r *UserRepo) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if os.IsNotExist(err) {
		r.logger.Warn("User file not found, starting with empty registry",
			zap.String("path", r.path),
		)
		if createErr := os.WriteFile(r.path, nil, 0o644); createErr != nil {
			return fmt.Errorf("failed to create user file: %w", createErr)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open user file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, parseErr := strconv.ParseInt(line, 10, 64)
		if parseErr != nil || id < 0 {
			r.logger.Warn("Skipping malformed user ID line", zap.String("line", line))
			continue
		}
		r.ids[id] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read user file: %w", err)
	}

	r.logger.Info("User IDs loaded", zap.Int("count", len(r.ids)))
	return nil
}

// Add registers a user ID. Returns false if the ID is already known or the
// append failed; memory is only updated after a successful write.
func (r *UserRepo) Add(userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, known := r.ids[userID]; known {
		return false
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		r.logger.Error("Failed to open user file for append",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return false
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d\n", userID); err != nil {
		r.logger.Error("Failed to append user ID",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return false
	}

	r.ids[userID] = struct{}{}
	r.logger.Info("New user registered",
		zap.Int64("user_id", userID),
		zap.Int("total", len(r.ids)),
	)
	return true
}

// All returns a defensive copy of the known user IDs.
func (r *UserRepo) All() map[int64]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[int64]struct{}, len(r.ids))
	for id := range r.ids {
		snapshot[id] = struct{}{}
	}
	return snapshot
}

// Count returns the number of known users.
func (r *UserRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids)
}
