// Package handlers exposes the read-only operations API: booking listings
// and counts for the studio's own tooling. All writes go through the bot.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"kilnbot/models"
	"kilnbot/services/booking"
	"kilnbot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves booking reads over HTTP.
type BookingHandler struct {
	Svc    booking.Service
	Logger *zap.Logger
}

// NewBookingHandler wires the handler dependencies.
func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// ListBookings returns bookings, optionally filtered: ?from=2006-01-02&to=...
// limits to active bookings in the range, ?status=pending limits to pending.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	switch {
	case from != "" && to != "":
		if !validISODate(from) || !validISODate(to) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date range", "from and to must be YYYY-MM-DD")
			return
		}
		bookings, err := h.Svc.ByDateRange(c.Request.Context(), from, to)
		if err != nil {
			h.Logger.Error("range listing failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	case c.Query("status") == string(models.StatusPending):
		bookings, err := h.Svc.Pending(c.Request.Context())
		if err != nil {
			h.Logger.Error("pending listing failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	default:
		bookings, err := h.Svc.All(c.Request.Context())
		if err != nil {
			h.Logger.Error("full listing failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	}
}

// GetBooking returns a single booking by its numeric id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id", "id must be an integer")
		return
	}
	b, err := h.Svc.Get(c.Request.Context(), id)
	if errors.Is(err, booking.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
		return
	}
	if err != nil {
		h.Logger.Error("booking lookup failed", zap.Int64("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load booking", "")
		return
	}
	c.JSON(http.StatusOK, b)
}

// Summary returns the per-status booking counts.
func (h *BookingHandler) Summary(c *gin.Context) {
	sum, err := h.Svc.Summary(c.Request.Context())
	if err != nil {
		h.Logger.Error("summary failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load summary", "")
		return
	}
	c.JSON(http.StatusOK, sum)
}

// Slots returns the free slots over the booking window.
func (h *BookingHandler) Slots(c *gin.Context) {
	slots, err := h.Svc.UpcomingSlots(c.Request.Context(), time.Now())
	if err != nil {
		h.Logger.Error("slot listing failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list slots", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func validISODate(s string) bool {
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}
