package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"mostrador-pos/app/controller"
	"mostrador-pos/app/router"
	"mostrador-pos/cart"
	"mostrador-pos/checkout"
	"mostrador-pos/config"
	"mostrador-pos/db"
	"mostrador-pos/events"
	"mostrador-pos/receipt"
	"mostrador-pos/repository"
	"mostrador-pos/service"
	"mostrador-pos/session"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const dbConnectRetries = 5

// App holds the HTTP handler and the resources that must be closed on shutdown.
type App struct {
	Handler http.Handler

	db        *sql.DB
	rdb       *redis.Client
	publisher *events.Publisher
	log       *zap.SugaredLogger
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	log := logger.Sugar()

	// Initialize database connection
	conn, err := db.Open(ctx, cfg.DatabaseURL, dbConnectRetries, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a := &App{db: conn, log: log}

	// Session store: Redis when configured, otherwise in-process
	var store session.Store
	if cfg.RedisAddr != "" {
		a.rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store = session.NewRedisStore(a.rdb, cfg.SessionTTL)
		log.Infof("✅ Sessions stored in Redis at %s (ttl=%s)", cfg.RedisAddr, cfg.SessionTTL)
	} else {
		store = session.NewMemoryStore()
		log.Infof("⚠️ REDIS_ADDR not set, sessions kept in memory")
	}

	// Sale events
	if len(cfg.KafkaBrokers) > 0 {
		a.publisher = events.NewPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic), logger)
		log.Infof("✅ Publishing sales to Kafka topic %s", cfg.KafkaTopic)
	} else {
		a.publisher = events.NewPublisher(nil, logger)
	}

	// Receipts
	logo, err := receipt.LoadLogo(cfg.ReceiptLogoPath)
	if err != nil {
		log.Warnf("⚠️ Receipt logo disabled: %v", err)
		logo = ""
	}
	renderer, err := receipt.NewRenderer(receipt.StoreInfo{
		Name:    cfg.StoreName,
		Address: cfg.StoreAddress,
		TaxID:   cfg.StoreTaxID,
		Footer:  cfg.ReceiptFooter,
	}, logo, cfg.Location, cfg.ChromePath, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(conn, logger)
	saleRepo := repository.NewSaleRepository(conn, logger, cfg.Location)
	financeRepo := repository.NewFinanceTransactionRepository(conn, logger)

	// Initialize services
	sessions := session.NewManager(store, cfg.TaxRate, cart.CurrencyFromCode(cfg.Currency), logger)
	cartService := service.NewCartService(sessions, productRepo, logger)
	checkoutService := checkout.NewService(sessions, saleRepo, a.publisher, logger)

	// Create controllers
	controllers := &router.Controllers{
		Cart:               controller.NewCartController(cartService, logger),
		Sale:               controller.NewSaleController(checkoutService, saleRepo, renderer, logger),
		Item:               controller.NewItemController(productRepo, logger),
		FinanceTransaction: controller.NewFinanceTransactionController(financeRepo, logger),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)
	a.Handler = mux

	return a, nil
}

// Close releases the database, Redis and Kafka connections.
func (a *App) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Errorf("❌ Error closing event publisher: %v", err)
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.log.Errorf("❌ Error closing redis: %v", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Errorf("❌ Error closing database: %v", err)
		}
	}
}
