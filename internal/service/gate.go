package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/repository"
)

// BtnCheckMembership is the inline button users press after joining the
// channel. Registered by the handler, attached to prompts by the gate.
var BtnCheckMembership = tele.Btn{
	Unique: "check_membership",
	Text:   "✅ A'zolikni Tekshirish",
}

// MembershipAPI is the slice of the bot transport the gate needs.
type MembershipAPI interface {
	ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error)
	ChatByUsername(name string) (*tele.Chat, error)
	ChatByID(id int64) (*tele.Chat, error)
}

// channelRecipient addresses a chat by its raw "@handle" or "-100..." value.
type channelRecipient string

func (r channelRecipient) Recipient() string { return string(r) }

// Gate decides whether a user may use bot features based on membership in
// the configured channel.
type Gate struct {
	api      MembershipAPI
	channels repository.ChannelStore
	logger   *zap.Logger
}

// NewGate creates a membership gate
func NewGate(api MembershipAPI, channels repository.ChannelStore, logger *zap.Logger) *Gate {
	return &Gate{
		api:      api,
		channels: channels,
		logger:   logger,
	}
}

// IsMember reports whether the user may use the bot. With no channel
// configured the gate is open. Any lookup failure counts as not a member;
// errors are logged, never surfaced.
func (g *Gate) IsMember(userID int64) bool {
	channel := g.channels.Current()
	if channel == "" {
		return true
	}

	member, err := g.api.ChatMemberOf(channelRecipient(channel), tele.ChatID(userID))
	if err != nil {
		g.logger.Error("Membership check failed",
			zap.Int64("user_id", userID),
			zap.String("channel", channel),
			zap.Error(err),
		)
		return false
	}

	switch member.Role {
	case tele.Member, tele.Administrator, tele.Creator:
		return true
	default:
		g.logger.Debug("User is not a channel member",
			zap.Int64("user_id", userID),
			zap.String("status", string(member.Role)),
		)
		return false
	}
}

// ChannelInfo resolves metadata for the configured identifier.
func (g *Gate) ChannelInfo(identifier string) (*tele.Chat, error) {
	if strings.HasPrefix(identifier, "@") {
		return g.api.ChatByUsername(identifier)
	}
	id, err := strconv.ParseInt(identifier, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("unresolvable channel identifier %q", identifier)
	}
	return g.api.ChatByID(id)
}

// PromptMembership sends the join prompt: channel name, a join link when one
// can be built, and always the inline membership-check button. When channel
// metadata cannot be resolved at all, an apology naming the raw identifier
// is sent instead of a broken link.
func (g *Gate) PromptMembership(c tele.Context) error {
	channel := g.channels.Current()
	if channel == "" {
		g.logger.Warn("Membership prompt requested but no channel configured",
			zap.Int64("user_id", c.Sender().ID),
		)
		return c.Send("Bot hozirda hech qanday kanalga ulanmagan. Administrator sozlamalarni amalga oshirishini kuting.")
	}

	name := channel
	link := ""

	chat, err := g.ChannelInfo(channel)
	switch {
	case err == nil:
		if chat.Title != "" {
			name = chat.Title
		}
		if chat.Username != "" {
			link = "https://t.me/" + chat.Username
		} else {
			g.logger.Warn("Channel is private or has no username, no join link",
				zap.String("channel", channel),
			)
		}
	case errors.Is(err, tele.ErrChatNotFound):
		g.logger.Error("Configured channel not found or bot lacks access",
			zap.String("channel", channel),
		)
		return c.Send(fmt.Sprintf(
			"❗️ Administrator tomonidan belgilangan kanal (%s) topilmadi yoki botda ruxsat yo'q. Administrator bilan bog'laning.",
			channel,
		))
	default:
		g.logger.Warn("Failed to resolve channel metadata, using raw identifier",
			zap.String("channel", channel),
			zap.Error(err),
		)
		if strings.HasPrefix(channel, "@") {
			link = "https://t.me/" + channel[1:]
		}
	}

	text := fmt.Sprintf("✨ Botdan toʻliq foydalanish uchun, iltimos, *%s* kanalimizga aʼzo boʻling.\n\n", name)

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	if link != "" {
		rows = append(rows, markup.Row(markup.URL(fmt.Sprintf("➕ '%s' ga a'zo bo'lish", name), link)))
	} else {
		text += "Kanalni qidiruv orqali topishingiz mumkin.\n\n"
	}
	rows = append(rows, markup.Row(markup.Data(BtnCheckMembership.Text, BtnCheckMembership.Unique)))
	markup.Inline(rows...)

	text += "A'zo bo'lgach, '✅ A'zolikni Tekshirish' tugmasini bosing."

	return c.Send(text, markup, tele.ModeMarkdown)
}
