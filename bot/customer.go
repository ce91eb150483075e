package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kilnbot/bot/session"
	"kilnbot/catalog"
	"kilnbot/models"
	"kilnbot/services/booking"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	// A fresh /start abandons any half-finished flow.
	if err := b.sessions.Clear(ctx, msg.Chat.ID); err != nil {
		b.logger.Warn("failed to clear session on /start", zap.Int64("chatId", msg.Chat.ID), zap.Error(err))
	}
	b.sendMainMenu(msg.Chat.ID)
}

func (b *Bot) sendMainMenu(chatID int64) {
	b.reply(chatID, welcomeText, ptr(mainMenuKeyboard()))
}

// showCatalogPage renders one product card with photo and paging controls.
func (b *Bot) showCatalogPage(_ context.Context, chatID int64, page int) {
	items := catalog.Items()
	if page < 0 || page >= len(items) {
		page = 0
	}
	item := items[page]

	caption := fmt.Sprintf("*%s*\n\n%s\n\n💰 %d ₽", item.Name, item.Description, item.Price)
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(item.Image))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdown
	photo.ReplyMarkup = catalogKeyboard(page, item)
	if _, err := b.api.Send(photo); err != nil {
		// Missing image files degrade to a text-only card.
		b.logger.Warn("failed to send product photo", zap.Int("productId", item.ID), zap.Error(err))
		b.reply(chatID, caption, ptr(catalogKeyboard(page, item)))
	}
}

func (b *Bot) handleCatalogPage(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	page, err := strconv.Atoi(strings.TrimPrefix(cb.Data, "catalog_page_"))
	if err != nil {
		b.answer(cb, "")
		return
	}
	b.answer(cb, "")
	b.showCatalogPage(ctx, cb.Message.Chat.ID, page)
}

// handleBuyItem forwards a purchase request to the admin and acks the buyer.
func (b *Bot) handleBuyItem(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	id, err := strconv.Atoi(strings.TrimPrefix(cb.Data, "buy_item_"))
	if err != nil {
		b.answer(cb, "")
		return
	}
	item, ok := catalog.ItemByID(id)
	if !ok {
		b.alert(cb, "This piece is no longer in the catalog.")
		return
	}

	from := cb.From
	if err := b.notifier.PurchaseRequest(ctx, from.ID, from.UserName, displayName(from), item); err != nil {
		b.logger.Error("failed to forward purchase request", zap.Int("productId", id), zap.Error(err))
		b.alert(cb, "Couldn't reach the studio right now, please try again.")
		return
	}
	b.answer(cb, "Request sent!")
	b.reply(cb.Message.Chat.ID,
		fmt.Sprintf("✅ Your request for *%s* has been sent. The studio will contact you shortly.", item.Name),
		ptr(backToMainKeyboard()))
}

func (b *Bot) handleWorkshopDetails(_ context.Context, cb *tgbotapi.CallbackQuery) {
	cat := models.BookingCategory(strings.TrimPrefix(cb.Data, "mk_"))
	text, ok := workshopTexts[cat]
	if !ok {
		b.answer(cb, "")
		return
	}
	b.answer(cb, "")
	b.reply(cb.Message.Chat.ID, text, ptr(workshopDetailKeyboard(cat)))
}

// handleStartBooking opens the slot picker for a category and records the
// choice in the chat session so the slot callback knows what is being booked.
func (b *Bot) handleStartBooking(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	cat := models.BookingCategory(strings.TrimPrefix(cb.Data, "book_"))
	if !cat.Valid() {
		b.answer(cb, "")
		return
	}

	slots, err := b.svc.UpcomingSlots(ctx, time.Now())
	if err != nil {
		b.logger.Error("failed to list upcoming slots", zap.Error(err))
		b.alert(cb, "Couldn't load the schedule, please try again.")
		return
	}

	st := &session.State{Step: session.StepSlotSelect, Category: cat}
	if err := b.sessions.Set(ctx, cb.Message.Chat.ID, st); err != nil {
		b.logger.Error("failed to save session", zap.Int64("chatId", cb.Message.Chat.ID), zap.Error(err))
		b.alert(cb, "Something went wrong, please try again.")
		return
	}

	b.answer(cb, "")
	b.reply(cb.Message.Chat.ID,
		fmt.Sprintf("📅 *%s*\n\nFree slots for the coming week:", cat.DisplayName()),
		ptr(slotsKeyboard(slots)))
}

// handleSlotChosen turns a slot button press into a booking request.
func (b *Bot) handleSlotChosen(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	parts := strings.SplitN(cb.Data, "_", 3)
	if len(parts) != 3 {
		b.answer(cb, "")
		return
	}
	date, tm := parts[1], parts[2]

	// Category comes from the session; an expired session falls back to an
	// individual request rather than losing the customer.
	cat := models.CategoryIndividual
	if st, err := b.sessions.Get(ctx, cb.Message.Chat.ID); err == nil && st != nil && st.Category.Valid() {
		cat = st.Category
	}

	req := booking.Request{
		UserID:   cb.From.ID,
		Username: cb.From.UserName,
		FullName: displayName(cb.From),
		Category: cat,
		Date:     date,
		Time:     tm,
	}
	bk, err := b.svc.Request(ctx, req)
	switch {
	case errors.Is(err, booking.ErrSlotTaken):
		b.alert(cb, "That slot was just taken. Please pick another one.")
		return
	case err != nil:
		b.logger.Error("booking request failed", zap.String("date", date), zap.String("time", tm), zap.Error(err))
		b.alert(cb, "Couldn't create the booking, please try again.")
		return
	}

	if err := b.sessions.Clear(ctx, cb.Message.Chat.ID); err != nil {
		b.logger.Warn("failed to clear session after booking", zap.Int64("chatId", cb.Message.Chat.ID), zap.Error(err))
	}

	b.answer(cb, "Request sent!")
	b.reply(cb.Message.Chat.ID,
		fmt.Sprintf(
			"📨 *Request #%d sent!*\n\n🎯 %s\n📅 %s at %s\n\nThe studio will confirm your booking shortly.",
			bk.ID, bk.Category.DisplayName(), bk.DisplayDate(), bk.Time,
		),
		ptr(backToMainKeyboard()))
}

// handleMyBookings lists the requester's five most recent bookings.
func (b *Bot) handleMyBookings(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	bookings, err := b.svc.UserBookings(ctx, cb.From.ID)
	if err != nil {
		b.logger.Error("failed to list user bookings", zap.Int64("userId", cb.From.ID), zap.Error(err))
		b.alert(cb, "Couldn't load your bookings, please try again.")
		return
	}
	b.answer(cb, "")

	if len(bookings) == 0 {
		b.reply(cb.Message.Chat.ID, "You have no bookings yet. Pick a workshop to get started!", ptr(workshopMenuKeyboard()))
		return
	}
	if len(bookings) > 5 {
		bookings = bookings[:5]
	}

	var sb strings.Builder
	sb.WriteString("📋 *Your bookings:*\n")
	for _, bk := range bookings {
		sb.WriteString(fmt.Sprintf("\n%s *#%d* %s at %s · %s\n",
			statusEmoji(bk.Status), bk.ID, bk.DisplayDate(), bk.Time, bk.Category.DisplayName()))
	}
	b.reply(cb.Message.Chat.ID, sb.String(), ptr(backToMainKeyboard()))
}

func statusEmoji(s models.BookingStatus) string {
	switch s {
	case models.StatusPending:
		return "⏳"
	case models.StatusConfirmed:
		return "✅"
	case models.StatusRejected:
		return "❌"
	default:
		return "•"
	}
}

// displayName builds a human-readable name from the Telegram profile.
func displayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	return name
}
