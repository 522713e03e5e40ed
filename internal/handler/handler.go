package handler

import (
	"context"
	"sync"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/domain"
	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/repository"
	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/service"
)

// Translator detects languages and translates text.
type Translator interface {
	Detect(ctx context.Context, text string) string
	Translate(ctx context.Context, text, src, dest string) (string, error)
}

// Dictionary looks up definitions for an English word.
type Dictionary interface {
	Lookup(ctx context.Context, word string, maxDefinitions int) (*domain.Lookup, error)
}

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	users       repository.UserRegistry
	channels    repository.ChannelStore
	gate        *service.Gate
	broadcaster *service.Broadcaster
	translator  Translator
	dictionary  Dictionary
	admins      map[int64]struct{}
	logger      *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]domain.UserState
	stateMux sync.RWMutex

	// Per-user locks serializing one user's updates
	userMux   sync.Mutex
	userLocks map[int64]*sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	users repository.UserRegistry,
	channels repository.ChannelStore,
	gate *service.Gate,
	broadcaster *service.Broadcaster,
	translator Translator,
	dictionary Dictionary,
	admins map[int64]struct{},
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:         bot,
		users:       users,
		channels:    channels,
		gate:        gate,
		broadcaster: broadcaster,
		translator:  translator,
		dictionary:  dictionary,
		admins:      admins,
		logger:      logger,
		states:      make(map[int64]domain.UserState),
		userLocks:   make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Global override commands, valid in any state
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/cancel", h.handleCancel)

	// Everything else goes through the ordered dispatch in handleText
	h.bot.Handle(tele.OnText, h.handleText)

	// Inline membership-check button, valid in any state
	h.bot.Handle(&service.BtnCheckMembership, h.handleMembershipCheck)
}

// State returns user's current conversational state
func (h *Handler) State(userID int64) domain.UserState {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return domain.StateIdle
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state domain.UserState) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, domain.StateIdle)
}

// userLock returns the per-user mutex, creating it on first use
func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.userMux.Lock()
	defer h.userMux.Unlock()

	lock, exists := h.userLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.userLocks[userID] = lock
	}
	return lock
}

func (h *Handler) isAdmin(userID int64) bool {
	_, ok := h.admins[userID]
	return ok
}

// Menu button labels
const (
	btnHelp       = "🆘 Yordam"
	btnStats      = "📊 Statistika"
	btnBroadcast  = "📢 Reklama Yuborish"
	btnChannelSet = "🔧 Kanal Sozlash"
	btnChannelDel = "🗑 Kanalni O'chirish"
	btnUserMode   = "⬅️ Ortga (Foydalanuvchi rejimi)"
)

func isAdminButton(text string) bool {
	switch text {
	case btnBroadcast, btnChannelSet, btnChannelDel, btnUserMode:
		return true
	}
	return false
}

// userMenu returns the plain-user reply keyboard
func userMenu() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnHelp), menu.Text(btnStats)),
	)
	return menu
}

// adminMenu returns the admin reply keyboard
func adminMenu() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnBroadcast)),
		menu.Row(menu.Text(btnChannelSet), menu.Text(btnChannelDel)),
		menu.Row(menu.Text(btnUserMode)),
	)
	return menu
}

func removeKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// menuFor returns the role-appropriate keyboard
func (h *Handler) menuFor(userID int64) *tele.ReplyMarkup {
	if h.isAdmin(userID) {
		return adminMenu()
	}
	return userMenu()
}

// sendMainMenu restores the role-appropriate menu
func (h *Handler) sendMainMenu(c tele.Context) error {
	return c.Send("Asosiy menyu:", h.menuFor(c.Sender().ID))
}
