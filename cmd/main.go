package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rnzluv/ecom/internal/events"
	"github.com/rnzluv/ecom/internal/handler"
	"github.com/rnzluv/ecom/internal/repository"
	"github.com/rnzluv/ecom/internal/service"
	"github.com/rnzluv/ecom/pkg/config"
	"github.com/rnzluv/ecom/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("table", cfg.TableName),
		zap.String("kafka_brokers", cfg.KafkaBrokers))

	// Initialize components
	dynamoClient, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		log.Fatal("Failed to create DynamoDB client:", err)
	}

	orderRepo := repository.NewOrderRepository(dynamoClient, cfg.TableName)
	cartRepo := repository.NewCartRepository(dynamoClient, cfg.TableName)
	wishlistRepo := repository.NewWishlistRepository(dynamoClient, cfg.TableName)
	productRepo := repository.NewProductRepository(dynamoClient, cfg.TableName)
	userRepo := repository.NewUserRepository(dynamoClient, cfg.TableName)

	// Kafka is optional: with no brokers configured order flows run
	// without eventing and the reconciliation worker stays off.
	var publisher service.EventPublisher
	var kafkaProducer *events.KafkaProducer
	var compensation *events.CompensationProducer
	if cfg.KafkaBrokers != "" {
		kafkaProducer, err = events.NewKafkaProducer(cfg.KafkaBrokers, logger)
		if err != nil {
			log.Fatal("Failed to create Kafka producer:", err)
		}
		defer kafkaProducer.Close()
		publisher = kafkaProducer

		compensation, err = events.NewCompensationProducer(cfg.KafkaBrokers, logger)
		if err != nil {
			log.Fatal("Failed to create compensation producer:", err)
		}
		defer compensation.Close()
	}

	catalogService := service.NewCatalogService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, publisher, logger)

	productHandler := handler.NewProductHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	wishlistHandler := handler.NewWishlistHandler(wishlistService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	metrics := middleware.NewServerMetrics("api")

	// Setup Gin Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(metrics.Middleware())

	router.GET("/metrics", gin.WrapH(middleware.MetricsHandler()))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			status := gin.H{
				"status":  "healthy",
				"service": "storefront-api",
				"port":    cfg.Port,
			}
			if kafkaProducer != nil {
				if err := kafkaProducer.HealthCheck(); err != nil {
					status["kafka"] = "unhealthy"
					c.JSON(503, status)
					return
				}
				status["kafka"] = "healthy"
			}
			c.JSON(200, status)
		})

		api.GET("/products", productHandler.List)
		api.GET("/products/:id", productHandler.Get)

		auth := middleware.Auth([]byte(cfg.JWTSecret))
		admin := middleware.AdminOnly()

		api.POST("/products", auth, admin, productHandler.Create)
		api.PUT("/products/:id", auth, admin, productHandler.Update)
		api.DELETE("/products/:id", auth, admin, productHandler.Delete)

		cart := api.Group("/cart", auth)
		{
			cart.GET("/me", cartHandler.GetMyCart)
			cart.POST("/add", cartHandler.AddItem)
			cart.PUT("/update", cartHandler.UpdateItem)
			cart.DELETE("/remove", cartHandler.RemoveItem)
			cart.DELETE("/clear", cartHandler.ClearCart)
		}

		wishlist := api.Group("/wishlist", auth)
		{
			wishlist.GET("/me", wishlistHandler.GetMyWishlist)
			wishlist.POST("/add", wishlistHandler.AddItem)
			wishlist.DELETE("/remove", wishlistHandler.RemoveItem)
			wishlist.DELETE("/clear", wishlistHandler.ClearWishlist)
		}

		orders := api.Group("/orders", auth)
		{
			orders.POST("/create", orderHandler.CreateOrder)
			orders.POST("/checkout", orderHandler.Checkout)
			orders.GET("/my-orders", orderHandler.GetMyOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("", admin, orderHandler.GetAllOrders)
			orders.PUT("/:id/status", admin, orderHandler.UpdateStatus)
			orders.DELETE("/:id", admin, orderHandler.DeleteOrder)
		}
	}

	// Post-order cart reconciliation worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	var reconciler *events.Reconciler
	if cfg.KafkaBrokers != "" {
		reconciler = events.NewReconciler(cfg.KafkaBrokers, cartService, compensation, logger)
		go reconciler.Run(workerCtx)
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	stopWorker()
	if reconciler != nil {
		if err := reconciler.Close(); err != nil {
			logger.Error("Reconciler close failed", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
}
