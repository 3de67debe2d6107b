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
	"github.com/branch-locator/app/config"
	"github.com/branch-locator/app/controllers"
	"github.com/branch-locator/app/services"
	"github.com/branch-locator/internal/external"
	"github.com/branch-locator/internal/gazetteer"
	"github.com/branch-locator/internal/resolver"
	"github.com/branch-locator/internal/search"
	"github.com/branch-locator/routes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Khởi tạo logger
	logger := initLogger(cfg.App.Env)
	defer logger.Sync()

	logger.Info("Starting Branch Locator Service")

	// 3. Load gazetteer và alias table
	gaz, err := gazetteer.Load()
	if err != nil {
		logger.Fatal("Failed to load gazetteer", zap.Error(err))
	}
	aliases := gazetteer.BuildAliasTable(gaz)
	logger.Info("Gazetteer loaded",
		zap.String("version", gaz.Version()),
		zap.Int("provinces", len(gaz.ProvinceNames())))

	// 4. Khởi tạo resolver engine
	engine := resolver.NewEngine(gaz, aliases, logger)

	// 5. Khởi tạo cache theo backend cấu hình
	cache, cleanup := initCache(cfg, gaz.Version(), logger)
	defer cleanup()

	// 6. Khởi tạo sheet store (nguồn dữ liệu kho + search log)
	var store *services.SheetStore
	if cfg.Sheet.URL != "" {
		store = services.NewSheetStore(cfg.Sheet.URL, cfg.Sheet.Timeout, logger)
	} else {
		logger.Warn("Sheet store chưa cấu hình, chỉ dùng seed data nội bộ")
	}

	// 7. Khởi tạo Meilisearch index cho tìm kiếm kho (tùy chọn)
	var index *search.BranchIndex
	if cfg.Meili.Enabled {
		index, err = search.NewBranchIndex(search.IndexConfig{
			Host:      cfg.Meili.URL,
			APIKey:    cfg.Meili.MasterKey,
			IndexName: cfg.Meili.IndexName,
			Timeout:   cfg.Meili.Timeout,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Meilisearch", zap.Error(err))
		}
		if err := index.EnsureSettings(); err != nil {
			logger.Warn("Failed to configure Meilisearch index", zap.Error(err))
		}
	}

	// 8. Khởi tạo branch service: seed nội bộ trước, sheet store ghi đè sau
	branchService := services.NewBranchService(store, index, logger)
	if err := branchService.LoadSeed(); err != nil {
		logger.Fatal("Failed to load seed branches", zap.Error(err))
	}
	if store != nil {
		refreshCtx, cancelRefresh := context.WithCancel(context.Background())
		defer cancelRefresh()
		if err := branchService.RefreshFromStore(refreshCtx); err != nil {
			logger.Warn("Failed to refresh branches from sheet store", zap.Error(err))
		}
		branchService.StartBackgroundRefresh(refreshCtx, cfg.Branches.RefreshInterval)
	}
	if index != nil {
		if err := branchService.ReindexAll(); err != nil {
			logger.Warn("Failed to index branches", zap.Error(err))
		}
	}

	// 9. Khởi tạo AI fallback (tùy chọn)
	var ai external.BranchLocator
	if cfg.OpenAI.APIKey != "" {
		ai = external.NewOpenAILocator(external.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			Timeout: cfg.OpenAI.Timeout,
		}, logger)
	} else {
		logger.Warn("OpenAI chưa cấu hình, tắt AI fallback")
	}

	// 10. Khởi tạo locator service và controllers
	locatorService := services.NewLocatorService(engine, branchService, cache, ai, store, logger)
	locateController := controllers.NewLocateController(locatorService, branchService, logger)
	adminController := controllers.NewAdminController(branchService, locatorService, index, store, gaz, logger)

	// 11. Khởi tạo Gin router và routes
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, locateController, adminController)

	// 12. Khởi động server với graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Branch Locator Service starting", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// initLogger khởi tạo structured logger
func initLogger(env string) *zap.Logger {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	logger, err := config.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}

	return logger
}

// initCache dựng ResultCache theo backend cấu hình, trả kèm hàm cleanup.
func initCache(cfg *config.Config, gazetteerVersion string, logger *zap.Logger) (services.ResultCache, func()) {
	noop := func() {}

	switch cfg.Cache.Backend {
	case "redis":
		redisCache, err := services.NewRedisCacheService(cfg.Redis.URL, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
		}
		return redisCache, func() { redisCache.Close() }

	case "mongo":
		db := initMongoDB(cfg, logger)
		mongoCache, err := services.NewMongoCacheService(db, cfg.Cache.L1Size, gazetteerVersion, logger)
		if err != nil {
			logger.Fatal("Failed to initialize MongoDB cache", zap.Error(err))
		}
		if err := mongoCache.WarmUp(context.Background(), cfg.Cache.WarmUpSize); err != nil {
			logger.Warn("Failed to warm up cache", zap.Error(err))
		}
		return mongoCache, func() {
			mongoCache.Close()
			db.Client().Disconnect(context.Background())
		}

	case "hybrid":
		redisCache, err := services.NewRedisCacheService(cfg.Redis.URL, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
		}
		db := initMongoDB(cfg, logger)
		mongoCache, err := services.NewMongoCacheService(db, cfg.Cache.L1Size, gazetteerVersion, logger)
		if err != nil {
			logger.Fatal("Failed to initialize MongoDB cache", zap.Error(err))
		}
		hybrid := services.NewHybridCacheService(redisCache, mongoCache, logger)
		if err := hybrid.WarmUpFromMongoDB(context.Background(), cfg.Cache.WarmUpSize); err != nil {
			logger.Warn("Failed to warm up cache", zap.Error(err))
		}
		return hybrid, func() {
			hybrid.Close()
			db.Client().Disconnect(context.Background())
		}

	default:
		return services.NewMemoryCacheService(cfg.Cache.MemorySize, cfg.Cache.MemoryTTL), noop
	}
}

// initMongoDB khởi tạo kết nối MongoDB
func initMongoDB(cfg *config.Config, logger *zap.Logger) *mongo.Database {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Mongo.URL))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}

	db := client.Database(cfg.Mongo.Database)
	logger.Info("Connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	return db
}
