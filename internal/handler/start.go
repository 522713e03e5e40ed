package handler

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/domain"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	sender := c.Sender()

	lock := h.userLock(sender.ID)
	lock.Lock()
	defer lock.Unlock()

	h.ResetState(sender.ID)

	if h.users.Add(sender.ID) {
		h.logger.Info("new user registered", zap.Int64("user_id", sender.ID))
	}

	if !h.gate.IsMember(sender.ID) {
		return h.gate.PromptMembership(c)
	}

	greeting := fmt.Sprintf(
		"👋 Salom, %s! Speak English botiga xush kelibsiz 😊\n\n"+
			"Foydalanish uchun so'z yoki ibora yuboring, yoki pastdagi tugmalardan birini bosing 👇",
		sender.FirstName,
	)
	if h.isAdmin(sender.ID) {
		greeting += "\n\n*(Siz adminsiz. /admin buyrug'i orqali admin paneliga o'tishingiz mumkin)*"
	}

	return c.Send(greeting, userMenu())
}

// handleCancel handles /cancel command
func (h *Handler) handleCancel(c tele.Context) error {
	sender := c.Sender()

	lock := h.userLock(sender.ID)
	lock.Lock()
	defer lock.Unlock()

	if h.State(sender.ID) == domain.StateIdle {
		return c.Send("Siz hozir hech qanday jarayonda emassiz.", userMenu())
	}

	h.ResetState(sender.ID)
	return c.Send("Jarayon bekor qilindi.", h.menuFor(sender.ID))
}
