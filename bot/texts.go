package bot

import "kilnbot/models"

const welcomeText = "✨ Hello! This is the Junona Ceramics studio.\n\n" +
	"Are you interested in a workshop, or would you like to order a finished piece?"

const orderProductText = "In the *Pieces* section you can:\n\n" +
	"👀 *Browse what's in stock* — photos of finished work\n" +
	"✍️ *Order from your own reference* — we'll discuss the details"

const orderReferenceText = "Have a photo or an idea? Send it to the studio admin directly."

const otherDateText = "Message the studio admin to arrange a different date."

const contactAdminText = "Ask the master directly:"

const permissionDeniedText = "⛔ You don't have admin rights"

// workshopTexts is the per-category description shown before booking.
var workshopTexts = map[models.BookingCategory]string{
	models.CategoryIndividual: "✨ *Individual session at the potter's wheel*\n\n" +
		"💰 *Price:* 2500 ₽\n" +
		"⏱ *Duration:* 1–1.5 hours (we keep 30 minutes in reserve in case a piece breaks mid-throw)\n\n" +
		"🍽 *The piece:* the ceramic is food safe — oven, microwave, and dishwasher friendly\n" +
		"🎨 *Included:* materials, painting, glaze, and two kiln firings\n" +
		"📦 *Ready:* in 2–3 weeks; we ship home (delivery to another city by arrangement)\n\n" +
		"⚠️ *Please note:* cats live in the studio. Keep that in mind if you have allergies.",

	models.CategoryPaired: "💑 *Paired session at the potter's wheel*\n\n" +
		"💰 *Price:* 5000 ₽ per pair\n\n" +
		"Four hands, one wheel: throw a vase, a dish, a plate, or mugs — your choice. " +
		"The studio is yours alone for the session, and we can photograph the process if you like.\n\n" +
		"⏱ *Duration:* 1–1.5 hours\n" +
		"🎨 *Included:* all materials, painting, glaze, and two kiln firings\n" +
		"📦 *Ready:* in 2–3 weeks, then shipped to you\n\n" +
		"⚠️ *Please note:* cats live in the studio.",

	models.CategoryGroup: "👥 *Group session*\n\n" +
		"💰 *Price:* 2000 ₽ per person\n\n" +
		"Shape a practical or decorative piece: a cup, a plate, a vase.\n\n" +
		"👨‍👩‍👧‍👦 *Group size:* up to 10 people is most comfortable, but we're happy to discuss your group\n" +
		"⏱ *Duration:* 1–1.5 hours\n" +
		"🎨 *Included:* all materials, painting, glaze, and two kiln firings\n" +
		"📦 *Ready:* in 2–3 weeks, then shipped to you",

	models.CategorySchool: "🏫 *School workshop*\n\n" +
		"💰 *Price:* 800 ₽ per person\n\n" +
		"Kids work at the slab roller, make a plate with an imprint or an ornament, and paint it on the spot.\n\n" +
		"⏱ *Duration:* 1–1.5 hours\n" +
		"🔥 *Technique:* the piece dries for 2–3 weeks, gets a first firing, a glaze coat, and a second firing at 1150°C — sturdy and usable\n" +
		"🎨 *Included:* all materials, glaze, and two kiln firings",
}

const certificateText = "🎁 *Gift certificate for the Junona Ceramics studio*\n\n" +
	"You can gift a session to someone close:\n" +
	"• Individual (2500 ₽)\n" +
	"• Paired (5000 ₽ per pair)\n" +
	"• Group (2000 ₽/person)\n\n" +
	"Message the admin and we'll help pick the amount and arrange it."
