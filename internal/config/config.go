package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	AdminIDs    map[int64]struct{}
	UsersFile   string
	ChannelFile string

	// AdminIDsErr is set when ADMIN_IDS was present but unparsable; the bot
	// still starts, admin features just stay unreachable.
	AdminIDsErr error
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		UsersFile:   getEnv("USERS_FILE", "foydalanuvchi_idlar.txt"),
		ChannelFile: getEnv("CHANNEL_FILE", "kanal_id.txt"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	admins, err := ParseAdminIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		cfg.AdminIDs = map[int64]struct{}{}
		cfg.AdminIDsErr = err
	} else {
		cfg.AdminIDs = admins
	}

	return cfg, nil
}

// ParseAdminIDs parses a comma-separated list of numeric Telegram IDs.
// Empty input yields an empty set; a non-numeric entry is an error.
func ParseAdminIDs(s string) (map[int64]struct{}, error) {
	ids := make(map[int64]struct{})
	if strings.TrimSpace(s) == "" {
		return ids, nil
	}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin ID %q: %w", part, err)
		}
		ids[id] = struct{}{}
	}

	return ids, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
