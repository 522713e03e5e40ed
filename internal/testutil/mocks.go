package testutil

import (
	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

// MockUserRegistry is a mock for repository.UserRegistry
type MockUserRegistry struct {
	mock.Mock
}

func (m *MockUserRegistry) Load() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUserRegistry) Add(userID int64) bool {
	args := m.Called(userID)
	return args.Bool(0)
}

func (m *MockUserRegistry) All() map[int64]struct{} {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[int64]struct{})
}

func (m *MockUserRegistry) Count() int {
	args := m.Called()
	return args.Int(0)
}

// MockChannelStore is a mock for repository.ChannelStore
type MockChannelStore struct {
	mock.Mock
}

func (m *MockChannelStore) Load() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockChannelStore) Set(identifier string) bool {
	args := m.Called(identifier)
	return args.Bool(0)
}

func (m *MockChannelStore) Clear() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockChannelStore) Current() string {
	args := m.Called()
	return args.String(0)
}

// MockMembershipAPI is a mock for service.MembershipAPI
type MockMembershipAPI struct {
	mock.Mock
}

func (m *MockMembershipAPI) ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error) {
	args := m.Called(chat, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.ChatMember), args.Error(1)
}

func (m *MockMembershipAPI) ChatByUsername(name string) (*tele.Chat, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.Chat), args.Error(1)
}

func (m *MockMembershipAPI) ChatByID(id int64) (*tele.Chat, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.Chat), args.Error(1)
}

// MockSender is a mock for service.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	args := m.Called(to, what, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.Message), args.Error(1)
}
