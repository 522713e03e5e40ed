package service

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/domain"
	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/repository"
)

const (
	// batchSize is how many sends are issued before each pacing pause.
	batchSize = 25
	// batchPause keeps the dispatch rate under the Telegram flood limit.
	batchPause = 1100 * time.Millisecond
)

// Sender is the slice of the bot transport the broadcaster needs.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Broadcaster fans one message out to every known user with fixed batch
// pacing and per-recipient failure isolation.
type Broadcaster struct {
	sender Sender
	users  repository.UserRegistry
	logger *zap.Logger

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// NewBroadcaster creates a broadcast engine
func NewBroadcaster(sender Sender, users repository.UserRegistry, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{
		sender: sender,
		users:  users,
		logger: logger,
		sleep:  time.Sleep,
	}
}

// Broadcast sends text to a snapshot of the registry taken at invocation
// time. Individual failures are counted, never abort the batch. The
// returned tally always satisfies Delivered+Failed == snapshot size.
func (b *Broadcaster) Broadcast(text string) domain.BroadcastReport {
	snapshot := b.users.All()
	start := time.Now()

	if len(snapshot) == 0 {
		b.logger.Warn("Broadcast requested with empty user registry")
		return domain.BroadcastReport{}
	}

	b.logger.Info("Broadcast started", zap.Int("recipients", len(snapshot)))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		delivered int
		failed    int
	)

	issued := 0
	for userID := range snapshot {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			ok := b.sendTo(id, text)

			mu.Lock()
			if ok {
				delivered++
			} else {
				failed++
			}
			mu.Unlock()
		}(userID)

		issued++
		if issued%batchSize == 0 {
			b.sleep(batchPause)
		}
	}

	wg.Wait()

	report := domain.BroadcastReport{
		Delivered: delivered,
		Failed:    failed,
		Duration:  time.Since(start),
	}
	b.logger.Info("Broadcast finished",
		zap.Int("delivered", report.Delivered),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.Duration),
	)
	return report
}

// sendTo delivers one message, honoring a flood-wait once and falling back
// to plain text when markdown parsing is rejected.
func (b *Broadcaster) sendTo(userID int64, text string) bool {
	opts := &tele.SendOptions{
		ParseMode:             tele.ModeMarkdown,
		DisableWebPagePreview: true,
	}
	return b.trySend(userID, text, opts, true)
}

func (b *Broadcaster) trySend(userID int64, text string, opts *tele.SendOptions, retryOnFlood bool) bool {
	_, err := b.sender.Send(tele.ChatID(userID), text, opts)
	if err == nil {
		return true
	}

	var flood tele.FloodError
	if errors.As(err, &flood) && retryOnFlood {
		b.logger.Warn("Flood limit hit, waiting before retry",
			zap.Int64("user_id", userID),
			zap.Int("retry_after", flood.RetryAfter),
		)
		b.sleep(time.Duration(flood.RetryAfter) * time.Second)
		return b.trySend(userID, text, opts, false)
	}

	switch {
	case errors.Is(err, tele.ErrBlockedByUser):
		b.logger.Warn("Recipient blocked the bot", zap.Int64("user_id", userID))
	case errors.Is(err, tele.ErrChatNotFound):
		b.logger.Warn("Recipient chat not found", zap.Int64("user_id", userID))
	case errors.Is(err, tele.ErrUserIsDeactivated):
		b.logger.Warn("Recipient account deactivated", zap.Int64("user_id", userID))
	case strings.Contains(err.Error(), "can't parse entities"):
		b.logger.Warn("Markdown rejected, retrying as plain text",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		if _, plainErr := b.sender.Send(tele.ChatID(userID), stripMarkdown(text), &tele.SendOptions{
			DisableWebPagePreview: true,
		}); plainErr == nil {
			return true
		}
	default:
		b.logger.Error("Broadcast send failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
	return false
}

// stripMarkdown drops the most common markdown control characters.
func stripMarkdown(s string) string {
	return strings.NewReplacer("*", "", "_", "", "`", "", "[", "", "]", "").Replace(s)
}
