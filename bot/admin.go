package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kilnbot/bot/session"
	"kilnbot/models"
	"kilnbot/services/booking"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) isAdmin(userID int64) bool {
	return userID == b.adminID
}

// handleAdminCommand lists pending requests, one actionable card each.
func (b *Bot) handleAdminCommand(ctx context.Context, msg *tgbotapi.Message) {
	if !b.isAdmin(msg.From.ID) {
		b.reply(msg.Chat.ID, permissionDeniedText, nil)
		return
	}

	pending, err := b.svc.Pending(ctx)
	if err != nil {
		b.logger.Error("failed to list pending bookings", zap.Error(err))
		b.reply(msg.Chat.ID, "Couldn't load pending requests.", nil)
		return
	}
	if len(pending) == 0 {
		b.reply(msg.Chat.ID, "✨ No pending requests.", ptr(adminMenuKeyboard()))
		return
	}

	b.reply(msg.Chat.ID, fmt.Sprintf("⏳ *Pending requests: %d*", len(pending)), nil)
	for _, bk := range pending {
		b.reply(msg.Chat.ID, formatBookingCard(&bk), ptr(pendingActionKeyboard(bk.ID)))
	}
}

// handleBookingsCommand shows the status summary plus the admin menu.
func (b *Bot) handleBookingsCommand(ctx context.Context, msg *tgbotapi.Message) {
	if !b.isAdmin(msg.From.ID) {
		b.reply(msg.Chat.ID, permissionDeniedText, nil)
		return
	}

	sum, err := b.svc.Summary(ctx)
	if err != nil {
		b.logger.Error("failed to load booking summary", zap.Error(err))
		b.reply(msg.Chat.ID, "Couldn't load the summary.", nil)
		return
	}
	text := fmt.Sprintf(
		"📊 *Bookings*\n\n⏳ Pending: %d\n✅ Confirmed: %d\n❌ Rejected: %d\n\nTotal: %d",
		sum.Pending, sum.Confirmed, sum.Rejected, sum.Total,
	)
	b.reply(msg.Chat.ID, text, ptr(adminMenuKeyboard()))
}

// handleAddBookingCommand starts the manual entry flow.
func (b *Bot) handleAddBookingCommand(ctx context.Context, msg *tgbotapi.Message) {
	if !b.isAdmin(msg.From.ID) {
		b.reply(msg.Chat.ID, permissionDeniedText, nil)
		return
	}
	b.startManualBooking(ctx, msg.Chat.ID)
}

func (b *Bot) startManualBooking(ctx context.Context, chatID int64) {
	st := &session.State{Step: session.StepAdminCategory}
	if err := b.sessions.Set(ctx, chatID, st); err != nil {
		b.logger.Error("failed to start manual booking session", zap.Error(err))
		b.reply(chatID, "Couldn't start the flow, please try again.", nil)
		return
	}
	b.reply(chatID, "➕ *Manual booking*\n\nPick the session format:", ptr(adminCategoryKeyboard()))
}

// handleAdminCallback is the fallthrough for all admin-only buttons. Unknown
// data and non-admin presses get the same generic denial.
func (b *Bot) handleAdminCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.alert(cb, permissionDeniedText)
		return
	}
	data := cb.Data

	switch {
	case strings.HasPrefix(data, "confirm_"):
		b.handleConfirm(ctx, cb, strings.TrimPrefix(data, "confirm_"))
	case strings.HasPrefix(data, "reject_"):
		b.handleReject(ctx, cb, strings.TrimPrefix(data, "reject_"))
	case strings.HasPrefix(data, "delete_confirm_"):
		b.handleDeleteConfirmed(ctx, cb, strings.TrimPrefix(data, "delete_confirm_"))
	case strings.HasPrefix(data, "admin_delete_"):
		b.handleDeleteAsk(ctx, cb, strings.TrimPrefix(data, "admin_delete_"))
	case data == "admin_today":
		b.answer(cb, "")
		today := time.Now().Format(models.DateLayout)
		b.sendBookingList(ctx, cb.Message.Chat.ID, "📅 *Today*", today, today)
	case data == "admin_week":
		b.answer(cb, "")
		now := time.Now()
		start := now.Format(models.DateLayout)
		end := now.AddDate(0, 0, 6).Format(models.DateLayout)
		b.sendBookingList(ctx, cb.Message.Chat.ID, "🗓 *This week*", start, end)
	case data == "admin_pending":
		b.answer(cb, "")
		b.sendPendingCards(ctx, cb.Message.Chat.ID)
	case data == "admin_all":
		b.answer(cb, "")
		b.sendAllBookings(ctx, cb.Message.Chat.ID)
	case data == "admin_manual_booking":
		b.answer(cb, "")
		b.startManualBooking(ctx, cb.Message.Chat.ID)
	case strings.HasPrefix(data, "admin_book_"):
		b.handleManualCategory(ctx, cb, strings.TrimPrefix(data, "admin_book_"))
	case data == "admin_cancel_booking":
		if err := b.sessions.Clear(ctx, cb.Message.Chat.ID); err != nil {
			b.logger.Warn("failed to clear manual booking session", zap.Error(err))
		}
		b.answer(cb, "Cancelled")
		b.reply(cb.Message.Chat.ID, "Manual booking cancelled.", ptr(adminMenuKeyboard()))
	case data == "admin_delete_menu":
		b.answer(cb, "")
		b.sendDeleteMenu(ctx, cb.Message.Chat.ID)
	case data == "back_to_admin_menu":
		b.answer(cb, "")
		b.reply(cb.Message.Chat.ID, "📊 Admin menu:", ptr(adminMenuKeyboard()))
	default:
		b.answer(cb, "")
	}
}

func (b *Bot) handleConfirm(ctx context.Context, cb *tgbotapi.CallbackQuery, raw string) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		b.answer(cb, "")
		return
	}
	bk, err := b.svc.Confirm(ctx, id)
	switch {
	case errors.Is(err, booking.ErrNotFound):
		b.alert(cb, "Booking not found.")
		return
	case errors.Is(err, booking.ErrBadTransition):
		b.alert(cb, "This request was already handled.")
		return
	case err != nil:
		b.logger.Error("confirm failed", zap.Int64("id", id), zap.Error(err))
		b.alert(cb, "Couldn't confirm, please try again.")
		return
	}
	b.answer(cb, "Confirmed")
	b.editText(cb, formatBookingCard(bk)+"\n\n✅ *Confirmed*")
}

func (b *Bot) handleReject(ctx context.Context, cb *tgbotapi.CallbackQuery, raw string) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		b.answer(cb, "")
		return
	}
	bk, err := b.svc.Reject(ctx, id)
	switch {
	case errors.Is(err, booking.ErrNotFound):
		b.alert(cb, "Booking not found.")
		return
	case errors.Is(err, booking.ErrBadTransition):
		b.alert(cb, "This request was already handled.")
		return
	case err != nil:
		b.logger.Error("reject failed", zap.Int64("id", id), zap.Error(err))
		b.alert(cb, "Couldn't reject, please try again.")
		return
	}
	b.answer(cb, "Rejected")
	b.editText(cb, formatBookingCard(bk)+"\n\n❌ *Rejected*")
}

// handleDeleteAsk swaps the card for a yes/no confirmation.
func (b *Bot) handleDeleteAsk(ctx context.Context, cb *tgbotapi.CallbackQuery, raw string) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		b.answer(cb, "")
		return
	}
	bk, err := b.svc.Get(ctx, id)
	if errors.Is(err, booking.ErrNotFound) {
		b.alert(cb, "Booking not found.")
		return
	}
	if err != nil {
		b.logger.Error("delete lookup failed", zap.Int64("id", id), zap.Error(err))
		b.alert(cb, "Couldn't load the booking.")
		return
	}
	b.answer(cb, "")
	b.reply(cb.Message.Chat.ID,
		fmt.Sprintf("🗑 Delete booking *#%d* (%s at %s, %s)?\n\nThe customer will be notified.",
			bk.ID, bk.DisplayDate(), bk.Time, bk.FullName),
		ptr(deleteConfirmKeyboard(id)))
}

func (b *Bot) handleDeleteConfirmed(ctx context.Context, cb *tgbotapi.CallbackQuery, raw string) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		b.answer(cb, "")
		return
	}
	bk, err := b.svc.Delete(ctx, id)
	switch {
	case errors.Is(err, booking.ErrNotFound):
		b.alert(cb, "Booking not found.")
		return
	case err != nil:
		b.logger.Error("delete failed", zap.Int64("id", id), zap.Error(err))
		b.alert(cb, "Couldn't delete, please try again.")
		return
	}
	b.answer(cb, "Deleted")
	b.editText(cb, fmt.Sprintf("🗑 Booking *#%d* (%s at %s) deleted.", bk.ID, bk.DisplayDate(), bk.Time))
}

func (b *Bot) sendPendingCards(ctx context.Context, chatID int64) {
	pending, err := b.svc.Pending(ctx)
	if err != nil {
		b.logger.Error("failed to list pending bookings", zap.Error(err))
		b.reply(chatID, "Couldn't load pending requests.", nil)
		return
	}
	if len(pending) == 0 {
		b.reply(chatID, "✨ No pending requests.", ptr(backToAdminKeyboard()))
		return
	}
	for _, bk := range pending {
		b.reply(chatID, formatBookingCard(&bk), ptr(pendingActionKeyboard(bk.ID)))
	}
}

// sendBookingList renders the active bookings of a date range as one message.
func (b *Bot) sendBookingList(ctx context.Context, chatID int64, title, start, end string) {
	bookings, err := b.svc.ByDateRange(ctx, start, end)
	if err != nil {
		b.logger.Error("failed to list bookings by range", zap.String("start", start), zap.String("end", end), zap.Error(err))
		b.reply(chatID, "Couldn't load the bookings.", nil)
		return
	}
	if len(bookings) == 0 {
		b.reply(chatID, title+"\n\nNothing scheduled.", ptr(backToAdminKeyboard()))
		return
	}

	var sb strings.Builder
	sb.WriteString(title + "\n")
	for _, bk := range bookings {
		sb.WriteString("\n" + formatBookingLine(&bk))
	}
	b.reply(chatID, sb.String(), ptr(backToAdminKeyboard()))
}

func (b *Bot) sendAllBookings(ctx context.Context, chatID int64) {
	bookings, err := b.svc.All(ctx)
	if err != nil {
		b.logger.Error("failed to list all bookings", zap.Error(err))
		b.reply(chatID, "Couldn't load the bookings.", nil)
		return
	}
	if len(bookings) == 0 {
		b.reply(chatID, "📚 No bookings yet.", ptr(backToAdminKeyboard()))
		return
	}

	var sb strings.Builder
	sb.WriteString("📚 *All bookings*\n")
	for _, bk := range bookings {
		sb.WriteString("\n" + formatBookingLine(&bk))
	}
	b.reply(chatID, sb.String(), ptr(backToAdminKeyboard()))
}

func (b *Bot) sendDeleteMenu(ctx context.Context, chatID int64) {
	bookings, err := b.svc.All(ctx)
	if err != nil {
		b.logger.Error("failed to list bookings for deletion", zap.Error(err))
		b.reply(chatID, "Couldn't load the bookings.", nil)
		return
	}
	if len(bookings) == 0 {
		b.reply(chatID, "📚 No bookings to delete.", ptr(backToAdminKeyboard()))
		return
	}
	b.reply(chatID, "🗑 *Pick a booking to delete:*", nil)
	for _, bk := range bookings {
		b.reply(chatID, formatBookingCard(&bk), ptr(deleteActionKeyboard(bk.ID)))
	}
}

// handleManualCategory records the picked format and asks for the user id.
func (b *Bot) handleManualCategory(ctx context.Context, cb *tgbotapi.CallbackQuery, raw string) {
	cat := models.BookingCategory(raw)
	if !cat.Valid() {
		b.answer(cb, "")
		return
	}
	st := &session.State{Step: session.StepAdminUserID, Category: cat}
	if err := b.sessions.Set(ctx, cb.Message.Chat.ID, st); err != nil {
		b.logger.Error("failed to save manual booking session", zap.Error(err))
		b.alert(cb, "Something went wrong, please try again.")
		return
	}
	b.answer(cb, "")
	b.reply(cb.Message.Chat.ID,
		"🆔 Send the customer's Telegram id (a number), or `0` if they're not on Telegram:", nil)
}

// handleAdminFlowMessage walks the manual entry flow one text input at a
// time. Any hard failure clears the session so the next message starts clean.
func (b *Bot) handleAdminFlowMessage(ctx context.Context, msg *tgbotapi.Message, st *session.State) {
	chatID := msg.Chat.ID
	input := strings.TrimSpace(msg.Text)

	fail := func(userText string) {
		if err := b.sessions.Clear(ctx, chatID); err != nil {
			b.logger.Warn("failed to clear session", zap.Int64("chatId", chatID), zap.Error(err))
		}
		b.reply(chatID, userText, ptr(adminMenuKeyboard()))
	}

	switch st.Step {
	case session.StepAdminUserID:
		id, err := strconv.ParseInt(input, 10, 64)
		if err != nil || id < 0 {
			b.reply(chatID, "That doesn't look like a Telegram id. Send a number, or `0` for none:", nil)
			return
		}
		st.UserID = id
		st.Step = session.StepAdminUsername
		if err := b.sessions.Set(ctx, chatID, st); err != nil {
			fail("Couldn't save the flow state, starting over.")
			return
		}
		b.reply(chatID, "📱 Send the customer's username (without @), or `-` if none:", nil)

	case session.StepAdminUsername:
		if input != "-" {
			st.Username = strings.TrimPrefix(input, "@")
		}
		st.Step = session.StepAdminName
		if err := b.sessions.Set(ctx, chatID, st); err != nil {
			fail("Couldn't save the flow state, starting over.")
			return
		}
		b.reply(chatID, "👤 Send the customer's name:", nil)

	case session.StepAdminName:
		if input == "" {
			b.reply(chatID, "The name can't be empty. Send the customer's name:", nil)
			return
		}
		st.FullName = input
		st.Step = session.StepAdminDate
		if err := b.sessions.Set(ctx, chatID, st); err != nil {
			fail("Couldn't save the flow state, starting over.")
			return
		}
		b.reply(chatID, "📅 Send the date as `DD.MM` (for example `15.03`):", nil)

	case session.StepAdminDate:
		date, err := models.ResolveDisplayDate(input, time.Now())
		if err != nil {
			b.reply(chatID, "That date didn't parse. Send it as `DD.MM` (for example `15.03`):", nil)
			return
		}
		st.Date = date
		st.Step = session.StepAdminTime
		if err := b.sessions.Set(ctx, chatID, st); err != nil {
			fail("Couldn't save the flow state, starting over.")
			return
		}
		b.reply(chatID, "⏰ Send the start time as `HH:MM` (for example `15:00`):", nil)

	case session.StepAdminTime:
		req := booking.Request{
			UserID:   st.UserID,
			Username: st.Username,
			FullName: st.FullName,
			Category: st.Category,
			Date:     st.Date,
			Time:     input,
		}
		bk, err := b.svc.CreateManual(ctx, req)
		switch {
		case errors.Is(err, booking.ErrInvalidTime):
			b.reply(chatID, "That start time isn't on the schedule. Send `HH:MM` matching a session start:", nil)
			return
		case errors.Is(err, booking.ErrSlotTaken):
			fail("❌ That slot is already taken. Start over with another slot.")
			return
		case errors.Is(err, booking.ErrInvalidDate):
			fail("❌ That date is in the past. Start the flow again.")
			return
		case err != nil:
			b.logger.Error("manual booking failed", zap.Error(err))
			fail("❌ Couldn't create the booking, please try again.")
			return
		}
		if err := b.sessions.Clear(ctx, chatID); err != nil {
			b.logger.Warn("failed to clear session", zap.Int64("chatId", chatID), zap.Error(err))
		}
		b.reply(chatID,
			fmt.Sprintf("✅ *Booking #%d created and confirmed*\n\n%s", bk.ID, formatBookingCard(bk)),
			ptr(adminMenuKeyboard()))

	default:
		fail("This flow got out of sync, starting over.")
	}
}

// formatBookingCard is the multi-line admin view of one booking.
func formatBookingCard(b *models.Booking) string {
	username := b.Username
	if username == "" {
		username = "none"
	}
	return fmt.Sprintf(
		"%s *Booking #%d*\n👤 %s (@%s)\n🎯 %s\n📅 %s at %s",
		statusEmoji(b.Status), b.ID, b.FullName, username,
		b.Category.DisplayName(), b.DisplayDate(), b.Time,
	)
}

// formatBookingLine is the compact one-line list view.
func formatBookingLine(b *models.Booking) string {
	return fmt.Sprintf("%s *#%d* %s %s · %s · %s",
		statusEmoji(b.Status), b.ID, b.DisplayDate(), b.Time, b.Category.DisplayName(), b.FullName)
}
