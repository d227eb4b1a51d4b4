package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emmanuel7l7/chicken-farm/config"
	"github.com/emmanuel7l7/chicken-farm/controllers"
	"github.com/emmanuel7l7/chicken-farm/database"
	"github.com/emmanuel7l7/chicken-farm/kafka"
	"github.com/emmanuel7l7/chicken-farm/logger"
	"github.com/emmanuel7l7/chicken-farm/models"
	"github.com/emmanuel7l7/chicken-farm/payments"
	"github.com/emmanuel7l7/chicken-farm/repository"
	"github.com/emmanuel7l7/chicken-farm/routes"
	"github.com/emmanuel7l7/chicken-farm/sender"
	"github.com/emmanuel7l7/chicken-farm/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer func() { _ = zap.L().Sync() }()

	// Orders, payments and profiles live in Postgres
	db, err := database.ConnectPostgres(cfg,
		&models.Order{}, &models.OrderItem{}, &models.Payment{}, &models.User{})
	if err != nil {
		zap.L().Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}

	// Carts live in Redis
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		zap.L().Fatal("failed to connect to Redis", zap.Error(err))
	}

	// Product catalog lives in MongoDB
	mongoClient, mongoDB, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		zap.L().Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := database.CloseMongo(mongoClient); err != nil {
			zap.L().Warn("failed to close MongoDB connection", zap.Error(err))
		}
	}()

	// Repositories
	cartRepo := repository.NewCartRepository(redisClient, cfg.CartTTL)
	productRepo := repository.NewMongoProductRepository(mongoDB)
	orderRepo := repository.NewGormOrderRepository(db)
	paymentRepo := repository.NewGormPaymentRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	// Payment gateway: three mobile money rails plus Stripe for cards
	carriers := map[payments.Method]payments.MobileMoneyClient{
		payments.MethodMpesa:       payments.NewCarrierClient("mpesa", cfg.MpesaURL, cfg.CarrierAPIKey, cfg.PaymentTimeout),
		payments.MethodTigoPesa:    payments.NewCarrierClient("tigo_pesa", cfg.TigoPesaURL, cfg.CarrierAPIKey, cfg.PaymentTimeout),
		payments.MethodAirtelMoney: payments.NewCarrierClient("airtel_money", cfg.AirtelMoneyURL, cfg.CarrierAPIKey, cfg.PaymentTimeout),
	}
	gateway := payments.NewPaymentGateway(
		carriers,
		payments.NewStripeCharger(cfg.StripeSecretKey),
		cfg.Currency,
		cfg.PaymentTimeout,
	)

	// Best-effort order events
	var events services.OrderEventPublisher
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		producer := kafka.NewProducer(brokers, cfg.KafkaTopic)
		defer producer.Close()
		events = producer
	}

	// Best-effort confirmation SMS
	var sms sender.SMSSender
	if cfg.SMSAPIKey != "" {
		smsSender, err := sender.NewAfricasTalkingSender(cfg.SMSUsername, cfg.SMSAPIKey, cfg.SMSSender)
		if err != nil {
			zap.L().Warn("SMS sender disabled", zap.Error(err))
		} else {
			sms = smsSender
		}
	}

	// Services
	cartService := services.NewCartService(cartRepo, productRepo)
	checkoutService := services.NewCheckoutService(
		cartService, productRepo, userRepo, orderRepo, paymentRepo,
		gateway, events, sms, cfg.Currency,
	)
	orderService := services.NewOrderService(orderRepo)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger())

	routes.Register(router, routes.Controllers{
		Cart:     controllers.NewCartController(cartService),
		Checkout: controllers.NewCheckoutController(checkoutService),
		Orders:   controllers.NewOrderController(orderService),
		Products: controllers.NewProductController(productRepo),
	}, []byte(cfg.JWTSecret))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zap.L().Info("Farm store backend is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zap.L().Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Fatal("Shutdown error", zap.Error(err))
	}
	zap.L().Info("Server shutdown complete")
}
