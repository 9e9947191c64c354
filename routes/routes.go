package routes

import (
	"time"

	"keazy/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterQueryRoutes registers the query-to-booking pipeline endpoints.
func RegisterQueryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/query")
	{
		api.POST("", hb.Query.HandleQuery)
		api.POST("/book", hb.Query.HandleBook)
		api.POST("/cancel", hb.Query.HandleCancel)
		api.GET("/bookings/:user_id", hb.Query.HandleUserBookings)
	}
}

// RegisterProviderRoutes registers provider management and search endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.POST("", hb.Provider.Register)
		api.GET("/nearby", hb.Provider.Nearby)
		api.PATCH("/:id/availability", hb.Provider.SetAvailability)
		api.POST("/:id/slots", hb.Provider.CreateSlots)
	}
}

// RegisterServiceRoutes registers the admin surface for service categories.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.POST("", hb.Service.Create)
		api.PUT("/:name", hb.Service.Update)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterQueryRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
