package handler

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/domain"
)

const maxDefinitions = 5

type route int

const (
	routeNone route = iota
	routeAdminPanel
	routeBroadcastPrompt
	routeChannelPrompt
	routeChannelDelete
	routeUserMode
	routeBroadcastText
	routeChannelText
	routeHelp
	routeStats
	routeIgnore
	routeTranslate
)

// resolveRoute decides what an incoming text message means given the
// sender's role and conversational state. Admin states take priority,
// so an admin mid-broadcast can send any text (even "/admin" or a menu
// label) as broadcast content.
func resolveRoute(isAdmin bool, state domain.UserState, text string) route {
	if isAdmin {
		switch state {
		case domain.StateAwaitingBroadcast:
			return routeBroadcastText
		case domain.StateAwaitingChannelID:
			return routeChannelText
		}
	}

	if state != domain.StateIdle {
		// Non-admin stuck in an admin state: swallow until /cancel
		return routeIgnore
	}

	if isAdmin {
		switch text {
		case "/admin":
			return routeAdminPanel
		case btnBroadcast:
			return routeBroadcastPrompt
		case btnChannelSet:
			return routeChannelPrompt
		case btnChannelDel:
			return routeChannelDelete
		case btnUserMode:
			return routeUserMode
		}
	} else if isAdminButton(text) {
		// Admin-only labels typed by a regular user fall through to
		// translation, same as any other text
		return routeTranslate
	}

	switch text {
	case btnHelp:
		return routeHelp
	case btnStats:
		return routeStats
	}

	return routeTranslate
}

// handleText is the single OnText dispatcher
func (h *Handler) handleText(c tele.Context) error {
	sender := c.Sender()
	text := strings.TrimSpace(c.Text())

	lock := h.userLock(sender.ID)
	lock.Lock()
	defer lock.Unlock()

	switch resolveRoute(h.isAdmin(sender.ID), h.State(sender.ID), text) {
	case routeAdminPanel:
		return h.showAdminPanel(c)
	case routeBroadcastPrompt:
		return h.promptBroadcast(c)
	case routeChannelPrompt:
		return h.promptChannel(c)
	case routeChannelDelete:
		return h.deleteChannel(c)
	case routeUserMode:
		return h.exitAdminMode(c)
	case routeBroadcastText:
		return h.receiveBroadcastText(c, text)
	case routeChannelText:
		return h.receiveChannelID(c, text)
	case routeHelp:
		return h.handleHelp(c)
	case routeStats:
		return h.handleStats(c)
	case routeIgnore:
		return nil
	default:
		return h.handleFreeText(c, text)
	}
}

// handleHelp handles the help button
func (h *Handler) handleHelp(c tele.Context) error {
	if !h.gate.IsMember(c.Sender().ID) {
		return h.gate.PromptMembership(c)
	}

	helpText := "ℹ️ *Yordam*\n\n" +
		"Menga inglizcha yoki o'zbekcha so'z (yoki ibora) yuboring.\n\n" +
		"🇬🇧 Inglizcha so'z yuborsangiz: o'zbekcha tarjimasi, ta'rifi va talaffuzini olasiz.\n" +
		"🇺🇿 O'zbekcha so'z yuborsangiz: inglizcha tarjimasini olasiz.\n\n" +
		"/start - Botni qayta ishga tushirish\n" +
		"/cancel - Joriy jarayonni bekor qilish"
	return c.Send(helpText, h.menuFor(c.Sender().ID))
}

// handleStats handles the stats button
func (h *Handler) handleStats(c tele.Context) error {
	if !h.gate.IsMember(c.Sender().ID) {
		return h.gate.PromptMembership(c)
	}

	return c.Send(
		fmt.Sprintf("📊 Botdagi jami foydalanuvchilar soni: *%d* ta", h.users.Count()),
		h.menuFor(c.Sender().ID),
	)
}

// handleFreeText runs the translate + lookup flow for arbitrary text
func (h *Handler) handleFreeText(c tele.Context, text string) error {
	sender := c.Sender()

	if !h.gate.IsMember(sender.ID) {
		return h.gate.PromptMembership(c)
	}
	if text == "" {
		return nil
	}

	ctx := context.Background()

	lang := h.translator.Detect(ctx, text)
	dest := "en"
	if lang == "en" {
		dest = "uz"
	}

	translated, err := h.translator.Translate(ctx, text, lang, dest)
	if err != nil {
		h.logger.Error("translation failed",
			zap.Int64("user_id", sender.ID),
			zap.String("text", text),
			zap.Error(err))
		if sendErr := c.Send("❗️ Tarjima qilishda xatolik yuz berdi."); sendErr != nil {
			return sendErr
		}
		return h.sendMainMenu(c)
	}
	translated = strings.TrimSpace(translated)

	translationShown := false
	if !strings.EqualFold(text, translated) {
		reply := fmt.Sprintf("*%s* → *%s* Tarjimasi:\n`%s`", lang, dest, translated)
		if err := c.Reply(reply); err != nil {
			h.logger.Warn("failed to send translation",
				zap.Int64("user_id", sender.ID), zap.Error(err))
		} else {
			translationShown = true
		}
	}

	if word := lookupCandidate(text, translated, lang, dest); word != "" {
		h.lookupAndReply(ctx, c, word, translationShown)
	}

	return h.sendMainMenu(c)
}

// lookupAndReply fetches the dictionary entry for word and replies
// with definitions, phonetics and pronunciation audio when available
func (h *Handler) lookupAndReply(ctx context.Context, c tele.Context, word string, translationShown bool) {
	sender := c.Sender()

	progress, err := h.bot.Send(
		tele.ChatID(c.Chat().ID),
		fmt.Sprintf("`%s` uchun ta'rif va talaffuz izlanmoqda...", word),
		removeKeyboard(),
	)
	if err != nil {
		h.logger.Warn("failed to send progress message",
			zap.Int64("user_id", sender.ID), zap.Error(err))
	}
	defer func() {
		if progress == nil {
			return
		}
		if err := h.bot.Delete(progress); err != nil {
			h.logger.Warn("failed to delete progress message",
				zap.Int64("user_id", sender.ID), zap.Error(err))
		}
	}()

	lookup, err := h.dictionary.Lookup(ctx, word, maxDefinitions)
	if err != nil {
		h.logger.Info("dictionary lookup failed",
			zap.Int64("user_id", sender.ID),
			zap.String("word", word),
			zap.Error(err))
		var msg string
		if translationShown {
			msg = fmt.Sprintf("✅ Tarjimasi yuqorida ko'rsatildi.\n\n"+
				"ℹ️ Qo'shimcha ma'lumot (`%s` uchun ta'rif/fonetika) topilmadi.", word)
		} else {
			msg = fmt.Sprintf("ℹ️ `%s` uchun tarjima, ta'rif yoki fonetika topilmadi.", word)
		}
		if sendErr := c.Send(msg); sendErr != nil {
			h.logger.Warn("failed to send lookup failure notice",
				zap.Int64("user_id", sender.ID), zap.Error(sendErr))
		}
		return
	}

	msg := fmt.Sprintf("📖 So'z: `%s`\n🔊 Fonetika: %s\n\n📚 Ta'riflar:\n%s",
		lookup.Word, lookup.Phonetic, strings.Join(lookup.Definitions, "\n"))
	if err := c.Send(msg); err != nil {
		h.logger.Warn("failed to send dictionary entry",
			zap.Int64("user_id", sender.ID), zap.Error(err))
	}

	if lookup.Audio == "" {
		return
	}
	if err := c.Notify(tele.UploadingAudio); err != nil {
		h.logger.Warn("failed to send chat action",
			zap.Int64("user_id", sender.ID), zap.Error(err))
	}
	voice := &tele.Voice{
		File:    tele.FromURL(lookup.Audio),
		Caption: fmt.Sprintf("`%s` talaffuzi", lookup.Word),
	}
	if err := c.Send(voice); err != nil {
		h.logger.Warn("failed to send pronunciation audio",
			zap.Int64("user_id", sender.ID),
			zap.String("url", lookup.Audio),
			zap.Error(err))
	}
}

// lookupCandidate returns the English word worth a dictionary lookup,
// or "" when neither side of the translation qualifies
func lookupCandidate(original, translated, lang, dest string) string {
	if lang == "en" && isSingleAlphabeticWord(original) {
		return strings.ToLower(strings.TrimSpace(original))
	}
	if dest == "en" && isSingleAlphabeticWord(translated) {
		return strings.ToLower(strings.TrimSpace(translated))
	}
	return ""
}

func isSingleAlphabeticWord(s string) bool {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 1 {
		return false
	}
	for _, r := range fields[0] {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
