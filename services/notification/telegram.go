package notification

import (
	"context"
	"fmt"
	"strings"

	"kilnbot/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramNotifier is the production Service implementation: it delivers
// every notification class as a Telegram message, rate-limited per chat.
type TelegramNotifier struct {
	api           *tgbotapi.BotAPI
	adminID       int64
	adminUsername string
	limiters      *chatLimiterStore
	logger        *zap.Logger
}

// NewTelegramNotifier builds a notifier bound to the studio admin identity.
func NewTelegramNotifier(api *tgbotapi.BotAPI, adminID int64, adminUsername string, sendsPerSec float64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		api:           api,
		adminID:       adminID,
		adminUsername: adminUsername,
		limiters:      newChatLimiterStore(sendsPerSec),
		logger:        logger,
	}
}

// send delivers one Markdown message, honoring the per-chat rate limit.
func (n *TelegramNotifier) send(ctx context.Context, chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	if chatID == 0 {
		return fmt.Errorf("no chat id to deliver to")
	}
	if err := n.limiters.wait(ctx, chatID); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send to %d: %w", chatID, err)
	}
	return nil
}

// contactKeyboard links the recipient straight to the admin chat.
func (n *TelegramNotifier) contactKeyboard() *tgbotapi.InlineKeyboardMarkup {
	handle := strings.TrimPrefix(n.adminUsername, "@")
	if handle == "" {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("💬 Message the studio", "https://t.me/"+handle),
		),
	)
	return &markup
}

func (n *TelegramNotifier) BookingRequested(ctx context.Context, b *models.Booking) error {
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm", fmt.Sprintf("confirm_%d", b.ID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Reject", fmt.Sprintf("reject_%d", b.ID)),
		),
	)
	text := fmt.Sprintf(
		"📝 *New booking request #%d*\n\n👤 %s (@%s)\n🆔 %d\n🎯 %s\n📅 %s at %s",
		b.ID, b.FullName, b.Username, b.UserID,
		b.Category.DisplayName(), b.DisplayDate(), b.Time,
	)
	return n.send(ctx, n.adminID, text, &markup)
}

func (n *TelegramNotifier) BookingConfirmed(ctx context.Context, b *models.Booking) error {
	text := fmt.Sprintf(
		"✅ *Your booking is confirmed!*\n\n📅 %s at %s\n🎯 %s\n\nSee you at the studio!",
		b.DisplayDate(), b.Time, b.Category.DisplayName(),
	)
	return n.send(ctx, b.UserID, text, n.contactKeyboard())
}

func (n *TelegramNotifier) BookingRejected(ctx context.Context, b *models.Booking) error {
	text := "❌ *Unfortunately that time is not available.*\n\nPlease message the studio to pick another slot."
	return n.send(ctx, b.UserID, text, n.contactKeyboard())
}

func (n *TelegramNotifier) BookingCancelled(ctx context.Context, b *models.Booking) error {
	text := fmt.Sprintf(
		"❌ *Your booking was cancelled*\n\nThe session on %s at %s was cancelled. Please message the studio for details.",
		b.DisplayDate(), b.Time,
	)
	return n.send(ctx, b.UserID, text, n.contactKeyboard())
}

func (n *TelegramNotifier) DayReminder(ctx context.Context, b *models.Booking) error {
	text := fmt.Sprintf(
		"🔔 *Workshop reminder!*\n\n🎯 %s\n📅 Tomorrow, %s at %s\n\nWe're looking forward to seeing you. Message the studio if anything comes up.",
		b.Category.DisplayName(), b.DisplayDate(), b.Time,
	)
	return n.send(ctx, b.UserID, text, n.contactKeyboard())
}

func (n *TelegramNotifier) HourReminder(ctx context.Context, b *models.Booking) error {
	text := fmt.Sprintf(
		"⏰ *Your workshop starts in an hour!*\n\n🎯 %s\n📅 Today, %s at %s\n\nOn your way? See you soon! 🏺",
		b.Category.DisplayName(), b.DisplayDate(), b.Time,
	)
	return n.send(ctx, b.UserID, text, n.contactKeyboard())
}

func (n *TelegramNotifier) AdminHourReminder(ctx context.Context, b *models.Booking) error {
	text := fmt.Sprintf(
		"⏰ *Workshop in an hour!*\n\n👤 %s (@%s)\n🎯 %s\n📅 Today, %s at %s\n\nTime to prep the clay! 🏺",
		b.FullName, b.Username, b.Category.DisplayName(), b.DisplayDate(), b.Time,
	)
	return n.send(ctx, n.adminID, text, nil)
}

func (n *TelegramNotifier) PurchaseRequest(ctx context.Context, userID int64, username, fullName string, item *models.Product) error {
	if username == "" {
		username = "none"
	}
	text := fmt.Sprintf(
		"🛒 *Purchase request!*\n\n👤 %s\n🆔 %d\n📱 @%s\n\n🎁 %s\n💰 %d ₽",
		fullName, userID, username, item.Name, item.Price,
	)
	return n.send(ctx, n.adminID, text, nil)
}

var _ Service = (*TelegramNotifier)(nil)
