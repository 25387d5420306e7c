package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/towechlabs/finance-category-service/config"
	"github.com/towechlabs/finance-category-service/internal/broker"
	"github.com/towechlabs/finance-category-service/internal/database"
	"github.com/towechlabs/finance-category-service/internal/logger"

	categoryListenerPkg "github.com/towechlabs/finance-category-service/internal/category/listener"
	categoryRepoPkg "github.com/towechlabs/finance-category-service/internal/category/repository"
	categoryUCPkg "github.com/towechlabs/finance-category-service/internal/category/usecase"
	"github.com/towechlabs/finance-category-service/internal/category/validator"
	transactionRepoPkg "github.com/towechlabs/finance-category-service/internal/transaction/repository"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := database.NewPostgres(&database.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	categoryRepo := categoryRepoPkg.NewPGRepository(db)
	transactionRepo := transactionRepoPkg.NewPGRepository(db)

	// 5. Initialize Kafka Consumer and Producer
	consumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.RequestTopic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer consumer.Close()

	producer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.ResponseTopic,
	})
	defer producer.Close()

	appLogger.Info("Connected to Kafka",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("request_topic", cfg.Kafka.RequestTopic),
		zap.String("response_topic", cfg.Kafka.ResponseTopic),
	)

	// 6. Initialize UseCase and Dispatcher
	categoryValidator := validator.New(categoryRepo)
	categoryUC := categoryUCPkg.NewCategoryUseCase(categoryRepo, transactionRepo, categoryValidator, cfg.Category, appLogger)

	processor := categoryListenerPkg.NewProcessor(categoryUC, appLogger)
	categoryListener := categoryListenerPkg.NewCategoryListener(consumer, producer, processor, appLogger)

	// 7. Start Listener
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go categoryListener.Start(ctx)

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down worker...")
	cancel()
	appLogger.Info("Worker stopped")
}
