package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ecoconnect/ecoconnect-backend/internal/config"
	"github.com/ecoconnect/ecoconnect-backend/internal/db"
	httpHandlers "github.com/ecoconnect/ecoconnect-backend/internal/http/handlers"
	httpRouter "github.com/ecoconnect/ecoconnect-backend/internal/http/router"
	"github.com/ecoconnect/ecoconnect-backend/internal/logger"
	"github.com/ecoconnect/ecoconnect-backend/internal/repository"
	"github.com/ecoconnect/ecoconnect-backend/internal/service"
	"github.com/ecoconnect/ecoconnect-backend/internal/storage"
	"github.com/ecoconnect/ecoconnect-backend/internal/ws"
	"github.com/ecoconnect/ecoconnect-backend/internal/zalo"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	zaloClient := zalo.NewClient(cfg.ZaloGraphURL)

	mediaStorage, err := storage.NewMediaStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	eventRepo := repository.NewEventRepository(dbConn)
	badgeRepo := repository.NewBadgeRepository(dbConn)
	reviewRepo := repository.NewReviewRepository(dbConn)
	reportRepo := repository.NewReportRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)

	// Справочные данные.
	seedService := service.NewSeedService(badgeRepo, userRepo)
	if err := seedService.SeedBadges(ctx); err != nil {
		log.Fatalf("main: посев каталога значков не удался: %v", err)
	}
	if err := seedService.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("main: посев администратора не удался: %v", err)
	}

	// Вебсокеты.
	hub := ws.NewHub()
	go hub.Run()

	// Сервисы.
	policy := service.NewPolicy()
	notificationService := service.NewNotificationService(notificationRepo, hub, badgeRepo)
	gamificationService := service.NewGamificationService(
		service.DefaultGamificationConfig(), userRepo, eventRepo, badgeRepo, notificationService)
	authService := service.NewAuthService(userRepo, zaloClient, tokenManager)
	userService := service.NewUserService(userRepo)
	eventService := service.NewEventService(eventRepo, policy, gamificationService, notificationService)
	reviewService := service.NewReviewService(reviewRepo, eventRepo)
	reportService := service.NewReportService(reportRepo, eventRepo, userRepo)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	userHandler := httpHandlers.NewUserHandler(userService, eventService)
	eventHandler := httpHandlers.NewEventHandler(eventService)
	reviewHandler := httpHandlers.NewReviewHandler(reviewService)
	reportHandler := httpHandlers.NewReportHandler(reportService)
	adminHandler := httpHandlers.NewAdminHandler(eventService, reportService)
	mediaHandler := httpHandlers.NewMediaHandler(mediaStorage)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	seedHandler := httpHandlers.NewSeedHandler(seedService)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg,
		authHandler, userHandler, eventHandler, reviewHandler, reportHandler,
		adminHandler, mediaHandler, notificationHandler, wsHandler, healthHandler,
		seedHandler, tokenManager, policy)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
