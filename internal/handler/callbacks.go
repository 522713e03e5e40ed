package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/domain"
)

// handleMembershipCheck handles the inline "check membership" button
func (h *Handler) handleMembershipCheck(c tele.Context) error {
	sender := c.Sender()

	lock := h.userLock(sender.ID)
	lock.Lock()
	defer lock.Unlock()

	if !h.gate.IsMember(sender.ID) {
		return c.Respond(&tele.CallbackResponse{
			Text:      "❌ Hali kanalga a'zo bo'lmadingiz yoki a'zoligingizni tekshira olmadim. Qaytadan urinib ko'ring.",
			ShowAlert: true,
		})
	}

	if err := c.Respond(&tele.CallbackResponse{Text: "Tekshirilmoqda..."}); err != nil {
		h.logger.Warn("failed to answer callback",
			zap.Int64("user_id", sender.ID), zap.Error(err))
	}

	if err := c.Send("✅ Rahmat! Kanalga a'zo bo'lgansiz.\nEndi botdan foydalanishingiz mumkin."); err != nil {
		return err
	}

	// Drop the prompt message with the inline buttons
	if err := c.Delete(); err != nil {
		h.logger.Warn("failed to delete membership prompt",
			zap.Int64("user_id", sender.ID), zap.Error(err))
	}

	if h.State(sender.ID) != domain.StateIdle {
		h.ResetState(sender.ID)
	}

	if h.isAdmin(sender.ID) {
		return c.Send("Admin menyusi:", adminMenu())
	}
	return c.Send("Asosiy menyu:", userMenu())
}
