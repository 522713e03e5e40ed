package handler

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/domain"
)

// showAdminPanel handles /admin command
func (h *Handler) showAdminPanel(c tele.Context) error {
	return c.Send("Salom, Admin! Kerakli bo'limni tanlang:", adminMenu())
}

// promptBroadcast asks the admin for the broadcast text
func (h *Handler) promptBroadcast(c tele.Context) error {
	h.SetState(c.Sender().ID, domain.StateAwaitingBroadcast)
	return c.Send(
		"Yuboriladigan reklama matnini kiriting (bekor qilish uchun /cancel):",
		removeKeyboard(),
	)
}

// promptChannel asks the admin for a channel identifier
func (h *Handler) promptChannel(c tele.Context) error {
	h.SetState(c.Sender().ID, domain.StateAwaitingChannelID)

	current := "Hozirda kanal belgilanmagan."
	if channel := h.channels.Current(); channel != "" {
		current = fmt.Sprintf("Joriy kanal: `%s`", channel)
	}

	return c.Send(
		current+"\n\n"+
			"Yangi kanal manzilini yuboring:\n"+
			"• `@username` ko'rinishida\n"+
			"• `-100...` raqamli ID ko'rinishida\n"+
			"• `https://t.me/username` havola ko'rinishida\n\n"+
			"Bekor qilish uchun /cancel.",
		removeKeyboard(),
	)
}

// deleteChannel turns the mandatory-membership gate off
func (h *Handler) deleteChannel(c tele.Context) error {
	current := h.channels.Current()
	if current == "" {
		return c.Send("❗️ Majburiy a'zolik uchun hech qanday kanal belgilanmagan.", adminMenu())
	}

	if !h.channels.Clear() {
		return c.Send("❌ Majburiy a'zolikni o'chirishda xatolik yuz berdi. Log fayllarini tekshiring.", adminMenu())
	}

	h.logger.Info("mandatory membership disabled",
		zap.Int64("admin_id", c.Sender().ID),
		zap.String("channel", current))
	return c.Send(
		fmt.Sprintf("✅ Majburiy a'zolik funksiyasi o'chirildi (avvalgi kanal: `%s`).", current),
		adminMenu(),
	)
}

// exitAdminMode switches the admin back to the plain-user keyboard
func (h *Handler) exitAdminMode(c tele.Context) error {
	return c.Send("Foydalanuvchi rejimi aktiv.", userMenu())
}

// receiveBroadcastText runs the broadcast with the collected text
func (h *Handler) receiveBroadcastText(c tele.Context, text string) error {
	sender := c.Sender()
	h.ResetState(sender.ID)

	total := h.users.Count()
	if total == 0 {
		return c.Send("🚫 Foydalanuvchilar ro'yxati bo'sh.", adminMenu())
	}

	status, err := h.bot.Send(
		tele.ChatID(c.Chat().ID),
		fmt.Sprintf("🚀 Reklama yuborish boshlanmoqda (jami %d foydalanuvchiga)...", total),
		adminMenu(),
	)
	if err != nil {
		h.logger.Warn("failed to send broadcast status message",
			zap.Int64("admin_id", sender.ID), zap.Error(err))
	}

	h.logger.Info("broadcast started",
		zap.Int64("admin_id", sender.ID),
		zap.Int("recipients", total))

	report := h.broadcaster.Broadcast(text)

	h.logger.Info("broadcast finished",
		zap.Int64("admin_id", sender.ID),
		zap.Int("delivered", report.Delivered),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.Duration))

	summary := fmt.Sprintf(
		"✅ Reklama yuborish yakunlandi!\n\n👤 %d yetkazildi.\n🚫 %d xatolik/blok.\n⏱ %.2fs.",
		report.Delivered, report.Failed, report.Duration.Seconds(),
	)

	if status != nil {
		_, editErr := h.bot.Edit(status, summary)
		if editErr == nil || strings.Contains(editErr.Error(), "message is not modified") {
			return nil
		}
		h.logger.Warn("failed to edit broadcast status",
			zap.Int64("admin_id", sender.ID), zap.Error(editErr))
	}
	return c.Send(summary, adminMenu())
}

// receiveChannelID validates and stores the new gate channel
func (h *Handler) receiveChannelID(c tele.Context, text string) error {
	sender := c.Sender()

	channel, err := domain.ParseChannelIdentifier(text)
	if err != nil {
		// Keep the awaiting state so the admin can retry
		return c.Send(
			"❗️ Format xato. Kanal manzilini `@username`, `-100...` yoki `https://t.me/...` "+
				"ko'rinishida kiriting.\n\nQaytadan urinib ko'ring yoki /cancel.",
			removeKeyboard(),
		)
	}

	h.ResetState(sender.ID)

	if !h.channels.Set(channel) {
		return c.Send("❌ Kanal ID sini saqlashda xatolik.", adminMenu())
	}

	h.logger.Info("mandatory membership channel set",
		zap.Int64("admin_id", sender.ID),
		zap.String("channel", channel))

	if err := c.Send(fmt.Sprintf("✅ Kanal muvaffaqiyatli o'rnatildi: `%s`", channel), adminMenu()); err != nil {
		return err
	}

	// Probe the channel so a typo or missing admin rights surfaces now,
	// not on the first gated user
	if chat, err := h.gate.ChannelInfo(channel); err == nil {
		username := chat.Username
		if username == "" {
			username = channel
		}
		return c.Send(fmt.Sprintf("ℹ️ Bot '%s' (%s) kanalini topa oldi.", chat.Title, username))
	}

	return c.Send(fmt.Sprintf(
		"⚠️ Diqqat: Bot `%s` kanalini topa olmadi yoki ma'lumotlarini o'qiy olmadi. "+
			"ID to'g'riligini va botning kanalda *admin* huquqi borligini tekshiring.",
		channel,
	))
}
