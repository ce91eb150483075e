package bot

import (
	"strings"
	"testing"

	"kilnbot/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBookingCard(t *testing.T) {
	b := &models.Booking{
		ID:       7,
		Username: "potterfan",
		FullName: "Pat Potter",
		Category: models.CategoryPaired,
		Date:     "2026-09-05",
		Time:     "17:00",
		Status:   models.StatusPending,
	}
	card := formatBookingCard(b)
	assert.Contains(t, card, "#7")
	assert.Contains(t, card, "@potterfan")
	assert.Contains(t, card, "05.09 at 17:00")
	assert.Contains(t, card, "⏳")

	// Manual entries without a handle render a placeholder.
	b.Username = ""
	assert.Contains(t, formatBookingCard(b), "@none")
}

func TestFormatBookingLine(t *testing.T) {
	b := &models.Booking{
		ID:       3,
		FullName: "Pat Potter",
		Category: models.CategoryGroup,
		Date:     "2026-09-05",
		Time:     "11:00",
		Status:   models.StatusConfirmed,
	}
	line := formatBookingLine(b)
	assert.Contains(t, line, "✅")
	assert.Contains(t, line, "#3")
	assert.Contains(t, line, "05.09 11:00")
}

func TestSlotsKeyboardCallbackData(t *testing.T) {
	slots := []models.Slot{
		{Date: "2026-09-05", Time: "11:00"},
		{Date: "2026-09-07", Time: "15:00"},
		{Date: "2026-09-07", Time: "18:00"},
	}
	markup := slotsKeyboard(slots)

	var buttons []tgbotapi.InlineKeyboardButton
	for _, row := range markup.InlineKeyboard {
		buttons = append(buttons, row...)
	}

	var slotData []string
	for _, btn := range buttons {
		if btn.CallbackData != nil && strings.HasPrefix(*btn.CallbackData, "slot_") {
			slotData = append(slotData, *btn.CallbackData)
		}
	}
	require.Len(t, slotData, 3)
	assert.Equal(t, "slot_2026-09-05_11:00", slotData[0])

	// The data parses back into the exact stored date and time.
	parts := strings.SplitN(slotData[0], "_", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "2026-09-05", parts[1])
	assert.Equal(t, "11:00", parts[2])

	// Labels show the day.month form, never the ISO date.
	label := markup.InlineKeyboard[0][0].Text
	assert.Equal(t, "05.09 11:00", label)
}

func TestSlotsKeyboardEmpty(t *testing.T) {
	markup := slotsKeyboard(nil)

	var datas []string
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil {
				datas = append(datas, *btn.CallbackData)
			}
		}
	}
	assert.Contains(t, datas, "no_slots")
	assert.Contains(t, datas, "other_date")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Pat Potter", displayName(&tgbotapi.User{FirstName: "Pat", LastName: "Potter"}))
	assert.Equal(t, "Pat", displayName(&tgbotapi.User{FirstName: "Pat"}))
	assert.Equal(t, "potterfan", displayName(&tgbotapi.User{UserName: "potterfan"}))
}

func TestStatusEmoji(t *testing.T) {
	assert.Equal(t, "⏳", statusEmoji(models.StatusPending))
	assert.Equal(t, "✅", statusEmoji(models.StatusConfirmed))
	assert.Equal(t, "❌", statusEmoji(models.StatusRejected))
}
