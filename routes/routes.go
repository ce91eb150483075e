package routes

import (
	"time"

	"kilnbot/handlers"
	"kilnbot/middleware"
	"kilnbot/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes builds the operations API router: health plus read-only
// booking endpoints for the studio's own tooling.
func SetupRoutes(bh *handlers.BookingHandler, requestsPerMin int) *gin.Engine {
	r := gin.New()
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RateLimitMiddleware(requestsPerMin))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	api := r.Group("/api/bookings")
	{
		api.GET("", bh.ListBookings)
		api.GET("/summary", bh.Summary)
		api.GET("/slots", bh.Slots)
		api.GET("/:id", bh.GetBooking)
	}

	return r
}
