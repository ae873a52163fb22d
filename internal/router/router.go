package router

import (
	"time"

	"gamoiwere/config"
	"gamoiwere/internal/handler"
	"gamoiwere/internal/middleware"
	"gamoiwere/internal/repository"
	"gamoiwere/internal/service"
	"gamoiwere/internal/ws"
	"gamoiwere/pkg/bog"
	"gamoiwere/pkg/mailer"
	"gamoiwere/pkg/sms"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	trackingRepo := repository.NewTrackingRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	smsLogRepo := repository.NewSMSLogRepository(db)

	hub := ws.NewHub()

	// External clients
	bogClient := bog.NewClient(cfg.BOG.ClientID, cfg.BOG.ClientSecret, cfg.BOG.TokenURL, cfg.BOG.APIBaseURL)
	smsSender := sms.NewUBillSender(cfg.SMS.BaseURL, cfg.SMS.APIKey, cfg.SMS.BrandID)
	mail := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notificationRepo, hub)
	orderSvc := service.NewOrderService(orderRepo, userRepo)
	paymentSvc := service.NewPaymentService(db, orderRepo, paymentRepo, userRepo, cfg.Bank)
	trackingSvc := service.NewTrackingService(db, trackingRepo, orderRepo, userRepo, smsLogRepo, notifSvc, smsSender)
	dispatcher := service.NewDispatcher(mail, smsSender, orderRepo, smsLogRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	meHandler := handler.NewMeHandler(userRepo)
	orderHandler := handler.NewOrderHandler(orderSvc, dispatcher)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, notifSvc, orderRepo)
	bogHandler := handler.NewBOGHandler(cfg, bogClient, orderSvc, orderRepo, userRepo, dispatcher)
	bogWebhookHandler := handler.NewBOGWebhookHandler(orderRepo, paymentRepo, notifSvc)
	trackingHandler := handler.NewTrackingHandler(trackingSvc)
	addressHandler := handler.NewAddressHandler(addressRepo)
	favoriteHandler := handler.NewFavoriteHandler(favoriteRepo)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	adminHandler := handler.NewAdminHandler(orderRepo, userRepo, notifSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.AdminRequired(userRepo)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("", meHandler.GetProfile)
			me.PATCH("", meHandler.UpdateProfile)
		}

		orders := api.Group("/orders")
		orders.Use(authMw)
		{
			orders.POST("", orderHandler.Create)
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Get)
		}

		payments := api.Group("/payments")
		payments.Use(authMw)
		{
			payments.POST("/bank-transfer", paymentHandler.BankTransfer)
			payments.POST("/balance", paymentHandler.Balance)
			payments.POST("/bank-transfer/:id/confirm", adminMw, paymentHandler.ConfirmBankTransfer)
		}

		bogGroup := api.Group("/bog-payment")
		{
			bogGroup.POST("/create-order", authMw, bogHandler.CreateOrder)
			bogGroup.POST("/create-order-payment", authMw, bogHandler.CreateOrderPayment)
			bogGroup.GET("/status/:orderId", authMw, bogHandler.Status)
			// gateway-invoked, no session; reconciliation is by external_order_id
			bogGroup.POST("/callback", bogWebhookHandler.Handle)
		}

		api.GET("/user/delivery-tracking", authMw, trackingHandler.GetMine)

		addresses := api.Group("/addresses")
		addresses.Use(authMw)
		{
			addresses.GET("", addressHandler.List)
			addresses.POST("", addressHandler.Create)
			addresses.PUT("/:id", addressHandler.Update)
			addresses.DELETE("/:id", addressHandler.Delete)
			addresses.POST("/:id/default", addressHandler.SetDefault)
		}

		favorites := api.Group("/favorites")
		favorites.Use(authMw)
		{
			favorites.GET("", favoriteHandler.List)
			favorites.POST("", favoriteHandler.Add)
			favorites.DELETE("/:productId", favoriteHandler.Remove)
		}

		notifications := api.Group("/notifications")
		notifications.Use(authMw)
		{
			notifications.GET("", notificationHandler.List)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, adminMw)
		{
			admin.GET("/orders", adminHandler.ListOrders)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
			admin.GET("/orders/:orderId/delivery-tracking", trackingHandler.GetForOrder)
			admin.POST("/orders/:orderId/delivery-tracking", trackingHandler.Upsert)
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users/:id/balance", adminHandler.AdjustBalance)
		}
	}

	r.GET("/ws", ws.UpgradeNotificationWS(&cfg.JWT, hub))

	return r
}
