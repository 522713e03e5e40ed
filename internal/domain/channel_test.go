package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChannelIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "username form",
			input:    "@mychannel",
			expected: "@mychannel",
		},
		{
			name:     "username form with surrounding spaces",
			input:    "  @mychannel  ",
			expected: "@mychannel",
		},
		{
			name:     "numeric id form",
			input:    "-1001234567890",
			expected: "-1001234567890",
		},
		{
			name:     "https link form",
			input:    "https://t.me/mychannel",
			expected: "@mychannel",
		},
		{
			name:     "https link with trailing path",
			input:    "https://t.me/mychannel/123",
			expected: "@mychannel",
		},
		{
			name:    "bare at sign",
			input:   "@",
			wantErr: true,
		},
		{
			name:    "invite link is rejected",
			input:   "https://t.me/+abc123def",
			wantErr: true,
		},
		{
			name:    "numeric link segment is rejected",
			input:   "https://t.me/1234567890",
			wantErr: true,
		},
		{
			name:    "schemeless link is rejected",
			input:   "t.me/mychannel",
			wantErr: true,
		},
		{
			name:    "positive number is rejected",
			input:   "1234567890",
			wantErr: true,
		},
		{
			name:    "dash with letters is rejected",
			input:   "-abc",
			wantErr: true,
		},
		{
			name:    "plain word is rejected",
			input:   "mychannel",
			wantErr: true,
		},
		{
			name:    "empty input is rejected",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "link with empty path is rejected",
			input:   "https://t.me/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChannelIdentifier(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadChannelFormat)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
