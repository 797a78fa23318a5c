package api

import (
	"database/sql"
	stdhttp "net/http"
	"time"

	"monametro/internal/config"
	"monametro/internal/domain"
	h "monametro/internal/http/handlers"
	"monametro/internal/http/middleware"
	"monametro/internal/repositories"
	"monametro/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env config.Env, conn *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	_ = r.SetTrustedProxies(nil)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	users := repositories.UserRepository{DB: conn}
	buses := repositories.BusRepository{DB: conn}
	bookings := repositories.BookingRepository{DB: conn}
	payments := repositories.PaymentRepository{DB: conn}
	feedback := repositories.FeedbackRepository{DB: conn}
	updates := repositories.UpdateRepository{DB: conn}

	authSvc := services.AuthService{Users: users, Secret: []byte(env.JWTSecret), TokenTTL: env.TokenTTL}

	authHandler := h.AuthHandler{Users: users, Secret: []byte(env.JWTSecret), TokenTTL: env.TokenTTL}
	busHandler := h.BusHandler{Buses: buses}
	bookingHandler := h.BookingHandler{Bookings: bookings}
	paymentHandler := h.PaymentHandler{DB: conn, Payments: payments, Bookings: bookings, Users: users, MinAmount: env.MinPaymentAmount}
	feedbackHandler := h.FeedbackHandler{Feedback: feedback, Users: users}
	updateHandler := h.UpdateHandler{Updates: updates}
	profileHandler := h.ProfileHandler{Users: users}
	systemHandler := h.SystemHandler{DB: conn}

	authenticated := middleware.Authenticate(authSvc)

	api := r.Group("/api")
	{
		api.GET("/health", systemHandler.Health)
		api.GET("/db-check", systemHandler.DBCheck)

		// Public surface
		api.POST("/signup", authHandler.SignUp)
		api.POST("/signin", authHandler.SignIn)
		api.GET("/bus-schedule", busHandler.Schedule)
		api.GET("/bus-updates", updateHandler.List)

		// Token-protected surface
		protected := api.Group("", authenticated)
		protected.GET("/profile", profileHandler.Get)
		protected.GET("/buses/active", busHandler.Active)
		protected.PUT("/buses/:id/status",
			middleware.RequireEndpoint(domain.EndpointBusStatusSet), busHandler.SetStatus)

		protected.GET("/bookings/upcoming", bookingHandler.Upcoming)
		protected.GET("/bookings/recent", bookingHandler.Recent)

		protected.POST("/feedback",
			middleware.RequireEndpoint(domain.EndpointFeedbackSubmit), feedbackHandler.Submit)
		protected.GET("/feedback",
			middleware.RequireEndpoint(domain.EndpointFeedbackList), feedbackHandler.List)

		protected.POST("/bus-updates",
			middleware.RequireEndpoint(domain.EndpointBusUpdateSubmit), updateHandler.Submit)

		protected.POST("/payments", paymentHandler.Pay)
		protected.GET("/wallet", paymentHandler.Wallet)
		protected.POST("/wallet/topup", paymentHandler.TopUp)
		protected.GET("/payments/history", paymentHandler.History)
		protected.GET("/payments/:id/receipt", paymentHandler.Receipt)
	}

	return r
}
