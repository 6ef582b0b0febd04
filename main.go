// Package main provides the main entry point for the visitor register backend
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/front-desk/visitor-register/app/handlers"
	"github.com/front-desk/visitor-register/app/middleware"
	"github.com/front-desk/visitor-register/app/router"
	"github.com/front-desk/visitor-register/app/services"
	businessflow "github.com/front-desk/visitor-register/business_flow"
	"github.com/front-desk/visitor-register/config"
	"github.com/front-desk/visitor-register/models"
	"github.com/front-desk/visitor-register/repository"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	stopFuncs []func()
}

func main() {
	log.Println("Starting visitor register application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.router.Start(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.router.GetApp().ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging directs the standard logger to a rotated file when configured
func setupLogging(cfg config.LoggingConfig) {
	if cfg.Output != "file" {
		return
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey,
	// which the flows map to their conflict errors.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// migrateDatabase runs schema migrations and creates the partial unique index
// that enforces at most one active visit per national ID.
func migrateDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Visitor{}, &models.User{}, &models.Setting{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uk_visitors_active_tc_kimlik ON visitors (tc_kimlik) WHERE is_active`,
	).Error
	if err != nil {
		return fmt.Errorf("failed to create active visit index: %w", err)
	}

	log.Println("Database schema migrated")
	return nil
}

// initializeCache initializes the Cache client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// ensureAdminUser seeds the first admin account from configuration when no
// admin exists yet. Config validation has already refused empty or default
// passwords, so the seed credentials are known to be deliberate.
func ensureAdminUser(db *gorm.DB, cfg config.AdminConfig) error {
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	adminRole := models.UserRoleAdmin
	exists, err := userRepo.Exists(ctx, models.UserFilter{Role: &adminRole})
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Username:     cfg.Username,
		PasswordHash: string(hash),
		Role:         models.UserRoleAdmin,
	}
	if err := userRepo.Save(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Printf("Seeded initial admin account: %s", cfg.Username)
	return nil
}

// ensureDefaultSettings seeds the settings rows that do not exist yet
func ensureDefaultSettings(db *gorm.DB) error {
	settingRepo := repository.NewSettingRepository(db)
	if err := settingRepo.SeedDefaults(context.Background(), models.DefaultSettings()); err != nil {
		return err
	}

	log.Println("Default settings ensured")
	return nil
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := migrateDatabase(db); err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		cancel := startCacheHealthMonitor(context.Background(), rc, 30*time.Second)
		stopFuncs = append(stopFuncs, cancel)
	}

	// Seed admin account and default settings
	if err := ensureAdminUser(db, cfg.Admin); err != nil {
		return nil, err
	}
	if err := ensureDefaultSettings(db); err != nil {
		return nil, err
	}

	// Initialize repositories
	visitorRepo := repository.NewVisitorRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Initialize token service
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	// The timezone is validated during config load
	timezone, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	// Initialize flows
	visitorFlow := businessflow.NewVisitorFlow(visitorRepo, db, timezone)
	authFlow := businessflow.NewAuthFlow(userRepo, tokenService)
	userFlow := businessflow.NewUserManagementFlow(userRepo, db)
	settingsFlow := businessflow.NewSettingsFlow(settingRepo, rc, &cfg.Cache, db)

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	visitorHandler := handlers.NewVisitorHandler(visitorFlow)
	authHandler := handlers.NewAuthHandler(authFlow)
	userHandler := handlers.NewUserHandler(userFlow)
	settingsHandler := handlers.NewSettingsHandler(settingsFlow)

	// Initialize router
	fiberRouter := router.NewFiberRouter(
		cfg,
		authMiddleware,
		visitorHandler,
		authHandler,
		userHandler,
		settingsHandler,
	)

	return &Application{
		router:    fiberRouter,
		config:    cfg,
		stopFuncs: stopFuncs,
	}, nil
}
