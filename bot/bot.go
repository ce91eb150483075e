// Package bot is the Telegram transport layer: it receives updates over
// long polling and translates them into booking service calls. Customer and
// admin flows live in their own files; this file owns the update loop and
// dispatch.
package bot

import (
	"context"
	"strings"

	"kilnbot/bot/session"
	"kilnbot/services/booking"
	"kilnbot/services/notification"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot wires the Telegram API to the booking service and the session store.
type Bot struct {
	api           *tgbotapi.BotAPI
	svc           booking.Service
	sessions      session.Store
	notifier      notification.Service
	adminID       int64
	adminUsername string
	logger        *zap.Logger
}

// New builds a Bot around an authenticated Telegram client.
func New(api *tgbotapi.BotAPI, svc booking.Service, sessions session.Store, notifier notification.Service, adminID int64, adminUsername string, logger *zap.Logger) *Bot {
	return &Bot{
		api:           api,
		svc:           svc,
		sessions:      sessions,
		notifier:      notifier,
		adminID:       adminID,
		adminUsername: strings.TrimPrefix(adminUsername, "@"),
		logger:        logger,
	}
}

// Run consumes updates until the context is cancelled. Updates are handled
// one at a time, so slot selection races only across processes, which the
// storage layer's unique index covers.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("bot polling started", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("bot polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate dispatches one update and contains any panic so a single bad
// update never kills the loop.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic while handling update", zap.Any("panic", r), zap.Int("updateId", update.UpdateID))
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "admin":
		b.handleAdminCommand(ctx, msg)
	case "bookings":
		b.handleBookingsCommand(ctx, msg)
	case "add_booking":
		b.handleAddBookingCommand(ctx, msg)
	default:
		b.reply(msg.Chat.ID, "Unknown command. Try /start.", nil)
	}
}

// handleMessage routes free-form text into whatever multi-step flow the chat
// has open. With no active flow the text is answered with the main menu.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	st, err := b.sessions.Get(ctx, msg.Chat.ID)
	if err != nil {
		b.logger.Error("session lookup failed", zap.Int64("chatId", msg.Chat.ID), zap.Error(err))
		return
	}
	if st != nil && b.isAdmin(msg.From.ID) && strings.HasPrefix(st.Step, "admin_") {
		b.handleAdminFlowMessage(ctx, msg, st)
		return
	}
	b.reply(msg.Chat.ID, welcomeText, ptr(mainMenuKeyboard()))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data

	switch {
	case data == "back_to_main":
		b.answer(cb, "")
		b.sendMainMenu(cb.Message.Chat.ID)
	case data == "order_product":
		b.answer(cb, "")
		b.reply(cb.Message.Chat.ID, orderProductText, ptr(productMenuKeyboard()))
	case data == "check_stock":
		b.answer(cb, "")
		b.showCatalogPage(ctx, cb.Message.Chat.ID, 0)
	case data == "order_reference":
		b.answer(cb, "")
		b.reply(cb.Message.Chat.ID, orderReferenceText, ptr(contactKeyboard(b.adminUsername)))
	case strings.HasPrefix(data, "catalog_page_"):
		b.handleCatalogPage(ctx, cb)
	case data == "catalog_noop":
		b.answer(cb, "")
	case strings.HasPrefix(data, "buy_item_"):
		b.handleBuyItem(ctx, cb)
	case data == "master_class":
		b.answer(cb, "")
		b.reply(cb.Message.Chat.ID, "Pick a workshop format:", ptr(workshopMenuKeyboard()))
	case strings.HasPrefix(data, "mk_"):
		b.handleWorkshopDetails(ctx, cb)
	case data == "certificate":
		b.answer(cb, "")
		b.reply(cb.Message.Chat.ID, certificateText, ptr(contactKeyboard(b.adminUsername)))
	case strings.HasPrefix(data, "book_"):
		b.handleStartBooking(ctx, cb)
	case strings.HasPrefix(data, "slot_"):
		b.handleSlotChosen(ctx, cb)
	case data == "no_slots":
		b.alert(cb, "All slots this week are taken. Message the studio to arrange another date.")
	case data == "other_date":
		b.answer(cb, "")
		b.reply(cb.Message.Chat.ID, otherDateText, ptr(contactKeyboard(b.adminUsername)))
	case data == "contact_admin":
		b.answer(cb, "")
		b.reply(cb.Message.Chat.ID, contactAdminText, ptr(contactKeyboard(b.adminUsername)))
	case data == "my_bookings":
		b.handleMyBookings(ctx, cb)
	default:
		b.handleAdminCallback(ctx, cb)
	}
}

// reply sends a Markdown message; delivery failures are logged and dropped
// so a flaky chat never breaks the update loop.
func (b *Bot) reply(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message", zap.Int64("chatId", chatID), zap.Error(err))
	}
}

// answer acks a callback so the client stops showing the spinner.
func (b *Bot) answer(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		b.logger.Warn("failed to answer callback", zap.String("data", cb.Data), zap.Error(err))
	}
}

// alert acks a callback with a blocking popup.
func (b *Bot) alert(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallbackWithAlert(cb.ID, text)); err != nil {
		b.logger.Warn("failed to alert callback", zap.String("data", cb.Data), zap.Error(err))
	}
}

// editText rewrites the message a callback came from, dropping its keyboard.
func (b *Bot) editText(cb *tgbotapi.CallbackQuery, text string) {
	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Warn("failed to edit message", zap.Int64("chatId", cb.Message.Chat.ID), zap.Error(err))
	}
}

func ptr(m tgbotapi.InlineKeyboardMarkup) *tgbotapi.InlineKeyboardMarkup {
	return &m
}
