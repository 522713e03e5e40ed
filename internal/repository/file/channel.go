package file

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ChannelRepo persists the single configured channel identifier in a
// one-line file. The file is overwritten wholesale on set and removed on
// clear; the in-memory value changes only after the write succeeds.
type ChannelRepo struct {
	path   string
	logger *zap.Logger

	mu      sync.RWMutex
	current string
}

// NewChannelRepo creates a new channel store backed by the given file
func NewChannelRepo(path string, logger *zap.Logger) *ChannelRepo {
	return &ChannelRepo{
		path:   path,
		logger: logger,
	}
}

// Load reads the configured channel from disk. A missing or empty file
// means no channel is configured and is not an error.
func (r *ChannelRepo) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		r.logger.Warn("Channel config file not found, gate disabled",
			zap.String("path", r.path),
		)
		r.current = ""
		return nil
	}
	if err != nil {
		r.current = ""
		return err
	}

	line, _, _ := strings.Cut(string(data), "\n")
	r.current = strings.TrimSpace(line)
	if r.current == "" {
		r.logger.Warn("Channel config file is empty", zap.String("path", r.path))
	} else {
		r.logger.Info("Channel loaded", zap.String("channel", r.current))
	}
	return nil
}

// Set overwrites the configured channel. The identifier is trimmed before
// writing. Returns false on write failure, leaving the prior value intact.
func (r *ChannelRepo) Set(identifier string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cleaned := strings.TrimSpace(identifier)
	if err := os.WriteFile(r.path, []byte(cleaned), 0o644); err != nil {
		r.logger.Error("Failed to write channel config",
			zap.String("channel", cleaned),
			zap.Error(err),
		)
		return false
	}

	r.current = cleaned
	r.logger.Info("Channel configured", zap.String("channel", cleaned))
	return true
}

// Clear removes the backing file and resets the in-memory value. A missing
// file still counts as cleared.
func (r *ChannelRepo) Clear() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		r.logger.Error("Failed to remove channel config", zap.Error(err))
		return false
	}

	r.current = ""
	r.logger.Info("Channel configuration cleared")
	return true
}

// Current returns the configured channel identifier, or "" if none is set.
func (r *ChannelRepo) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}
