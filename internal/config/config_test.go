package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseAdminIDs(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    []int64
		expectError bool
	}{
		{
			name:     "single ID",
			input:    "123456",
			expected: []int64{123456},
		},
		{
			name:     "multiple IDs",
			input:    "1,2,3",
			expected: []int64{1, 2, 3},
		},
		{
			name:     "IDs with spaces",
			input:    " 10 , 20 ,30",
			expected: []int64{10, 20, 30},
		},
		{
			name:     "trailing comma tolerated",
			input:    "10,20,",
			expected: []int64{10, 20},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:        "non-numeric entry",
			input:       "10,abc,30",
			expectError: true,
		},
		{
			name:        "negative-less garbage",
			input:       "not-a-number",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := ParseAdminIDs(tt.input)

			if tt.expectError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, ids, len(tt.expected))
			for _, id := range tt.expected {
				assert.Contains(t, ids, id)
			}
		})
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_IDS", "111,222")
	t.Setenv("USERS_FILE", "")
	t.Setenv("CHANNEL_FILE", "")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "test-token", cfg.BotToken)
	assert.Equal(t, "foydalanuvchi_idlar.txt", cfg.UsersFile)
	assert.Equal(t, "kanal_id.txt", cfg.ChannelFile)
	assert.Contains(t, cfg.AdminIDs, int64(111))
	assert.Contains(t, cfg.AdminIDs, int64(222))
	assert.NoError(t, cfg.AdminIDsErr)
}

func TestLoad_BadAdminIDsNotFatal(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_IDS", "111,oops")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Error(t, cfg.AdminIDsErr)
	assert.Empty(t, cfg.AdminIDs)
}
