package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"

	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/testutil"
)

func TestGate_IsMemberNoChannelConfigured(t *testing.T) {
	channels := new(testutil.MockChannelStore)
	channels.On("Current").Return("")

	api := new(testutil.MockMembershipAPI)
	gate := NewGate(api, channels, testutil.NewTestLogger())

	for _, userID := range []int64{1, 42, 999999999} {
		assert.True(t, gate.IsMember(userID), "gate must be open without a channel")
	}
	api.AssertNotCalled(t, "ChatMemberOf", mock.Anything, mock.Anything)
}

func TestGate_IsMemberStatuses(t *testing.T) {
	tests := []struct {
		name     string
		role     tele.MemberStatus
		expected bool
	}{
		{name: "member", role: tele.Member, expected: true},
		{name: "administrator", role: tele.Administrator, expected: true},
		{name: "creator", role: tele.Creator, expected: true},
		{name: "left", role: tele.Left, expected: false},
		{name: "kicked", role: tele.Kicked, expected: false},
		{name: "restricted", role: tele.Restricted, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			channels := new(testutil.MockChannelStore)
			channels.On("Current").Return("@mychan")

			api := new(testutil.MockMembershipAPI)
			api.On("ChatMemberOf", mock.Anything, mock.Anything).
				Return(&tele.ChatMember{Role: tt.role}, nil)

			gate := NewGate(api, channels, testutil.NewTestLogger())
			assert.Equal(t, tt.expected, gate.IsMember(123))
		})
	}
}

func TestGate_IsMemberFailsClosed(t *testing.T) {
	channels := new(testutil.MockChannelStore)
	channels.On("Current").Return("@mychan")

	api := new(testutil.MockMembershipAPI)
	api.On("ChatMemberOf", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("telegram: chat not found"))

	gate := NewGate(api, channels, testutil.NewTestLogger())
	assert.False(t, gate.IsMember(123), "lookup failure must count as not a member")
}

func TestGate_IsMemberUsesConfiguredChannel(t *testing.T) {
	channels := new(testutil.MockChannelStore)
	channels.On("Current").Return("-1001234567890")

	api := new(testutil.MockMembershipAPI)
	api.On("ChatMemberOf",
		mock.MatchedBy(func(r tele.Recipient) bool { return r.Recipient() == "-1001234567890" }),
		mock.MatchedBy(func(r tele.Recipient) bool { return r.Recipient() == "123" }),
	).Return(&tele.ChatMember{Role: tele.Member}, nil)

	gate := NewGate(api, channels, testutil.NewTestLogger())
	assert.True(t, gate.IsMember(123))
	api.AssertExpectations(t)
}

func TestGate_ChannelInfo(t *testing.T) {
	api := new(testutil.MockMembershipAPI)
	api.On("ChatByUsername", "@mychan").Return(&tele.Chat{Title: "My Channel"}, nil)
	api.On("ChatByID", int64(-1001234567890)).Return(&tele.Chat{Title: "Private"}, nil)

	gate := NewGate(api, new(testutil.MockChannelStore), testutil.NewTestLogger())

	byName, err := gate.ChannelInfo("@mychan")
	assert.NoError(t, err)
	assert.Equal(t, "My Channel", byName.Title)

	byID, err := gate.ChannelInfo("-1001234567890")
	assert.NoError(t, err)
	assert.Equal(t, "Private", byID.Title)

	_, err = gate.ChannelInfo("garbage")
	assert.Error(t, err)
}
