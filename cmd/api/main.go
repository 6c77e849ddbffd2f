package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/keylounge/keylounge-backend/internal/config"
	"github.com/keylounge/keylounge-backend/internal/handler"
	"github.com/keylounge/keylounge-backend/internal/middleware"
	"github.com/keylounge/keylounge-backend/internal/migration"
	"github.com/keylounge/keylounge-backend/internal/repository"
	"github.com/keylounge/keylounge-backend/internal/routes"
	"github.com/keylounge/keylounge-backend/internal/service"
	pkgjwt "github.com/keylounge/keylounge-backend/pkg/jwt"
	pkglogger "github.com/keylounge/keylounge-backend/pkg/logger"
	pkgredis "github.com/keylounge/keylounge-backend/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	zlog := pkglogger.GetLogger()
	zlog.Info().Str("env", env).Strs("dotenv", dotenvFiles).Msg("starting")

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := migration.AddVisibilityColumnsToAllBoards(db); err != nil {
		zlog.Warn().Err(err).Msg("visibility column migration incomplete")
	}

	// Repositories
	registry := repository.NewContentRegistry(db)
	deletionLogRepo := repository.NewDeletionLogRepository(db)
	reportRepo := repository.NewReportRepository(db)
	penaltyRepo := repository.NewPenaltyRepository(db)
	memberRepo := repository.NewMemberRepository(db)

	// Services
	jwtManager := pkgjwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	authService := service.NewAuthService(memberRepo, jwtManager)
	contentService := service.NewContentService(db, registry, deletionLogRepo)
	reportService := service.NewReportService(reportRepo, registry)
	penaltyService := service.NewPenaltyService(penaltyRepo)
	moderationService := service.NewModerationService(db, reportRepo, penaltyRepo, penaltyService)

	// Redis (optional: the sanction cache degrades to direct DB reads)
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize,
	)
	if err != nil {
		zlog.Warn().Err(err).Msg("redis unavailable, sanction cache disabled")
	} else {
		penaltyService.SetRedisClient(redisClient)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	reportHandler := handler.NewReportHandler(reportService, moderationService)
	contentHandler := handler.NewContentHandler(contentService)
	penaltyHandler := handler.NewPenaltyHandler(penaltyService)

	// Router
	if env != "local" && env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.Setup(router, jwtManager, authHandler, reportHandler, contentHandler, penaltyHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zlog.Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
	db, err := gorm.Open(mysql.Open(cfg.DB.DSN()), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpen)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
