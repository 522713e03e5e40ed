package domain

import (
	"fmt"
	"strings"
)

const linkPrefix = "https://t.me/"

// ErrBadChannelFormat is returned for channel input that matches none of the
// accepted shapes.
var ErrBadChannelFormat = fmt.Errorf("channel identifier format not recognized")

// ParseChannelIdentifier validates admin input for the mandatory-membership
// channel. Accepted shapes: "@username", "-100..." (numeric private ID) and
// a "https://t.me/<username>" link, from which the username is extracted.
// Invite links (t.me/+...) and schemeless links are rejected.
func ParseChannelIdentifier(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(s, "@") && len(s) > 1:
		return s, nil

	case strings.HasPrefix(s, "-") && len(s) > 1 && isDigits(s[1:]):
		return s, nil

	case strings.HasPrefix(s, linkPrefix):
		segment := strings.TrimPrefix(s, linkPrefix)
		if i := strings.IndexByte(segment, '/'); i >= 0 {
			segment = segment[:i]
		}
		if segment == "" || isDigits(segment) || strings.HasPrefix(segment, "+") {
			return "", ErrBadChannelFormat
		}
		return "@" + segment, nil
	}

	return "", ErrBadChannelFormat
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
