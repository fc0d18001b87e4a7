package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"barbershop/config"
	_ "barbershop/docs"
	"barbershop/internal/cache"
	"barbershop/internal/metrics"
	"barbershop/internal/repository"
	"barbershop/internal/scheduler"
	"barbershop/internal/service"
	"barbershop/internal/storage"
	"barbershop/internal/transport/rest"
	"barbershop/internal/transport/websocket"
	"barbershop/pkg/database"
	"barbershop/pkg/logger"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Barbershop API
// @version 1.0
// @description API записи клиентов в барбершоп

// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Environment, cfg.LogLevel,
		zap.String("app", cfg.Name), zap.String("version", cfg.Version))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.NewPostgresDB(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	log.Info("Запуск миграций базы данных")
	if err := database.RunMigrations(ctx, db, "./migrations", log); err != nil {
		log.Fatal("Ошибка при выполнении миграций", zap.Error(err))
	}
	log.Info("Миграции успешно выполнены")

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn("Redis недоступен, кэш отключен", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("Redis подключен", zap.String("address", cfg.Redis.Address))
	}
	readCache := cache.New(redisClient, cfg.Redis.CacheTTL, log)

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			log.Fatal("Не удалось инициализировать S3 хранилище", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("S3 хранилище успешно инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 хранилище не настроено, загрузка изображений недоступна")
	}

	appMetrics := metrics.NewMetrics(cfg.Name, nil)
	repos := repository.NewRepositories(db)

	tokens := service.NewAuthService(repos.Auth, repos.User, cfg.JWT, log)
	hub := websocket.NewDashboardHub(tokens, appMetrics, log)
	go hub.Run(ctx)

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
		Cache:       readCache,
		Metrics:     appMetrics,
		Events:      hub,
		Clock:       service.NewClock(cfg.Shop.Location),
	})

	if err := services.Team.EnsureSuperAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal("Не удалось создать главного администратора", zap.Error(err))
	}

	var cron *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		cron = scheduler.New(repos.BlockedSlot, repos.Auth, cfg.Shop.Location, appMetrics, log)
		if err := cron.Start(cfg.Scheduler.CleanupSpec); err != nil {
			log.Fatal("Не удалось запустить планировщик", zap.Error(err))
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler := rest.NewHandler(services, hub, appMetrics, log, cfg)
	handler.InitRoutes(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	log.Info("Сервер запущен", zap.String("addr", srv.Addr), zap.String("timezone", cfg.Shop.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Выключение сервера...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Ошибка при остановке сервера", zap.Error(err))
	}
	if cron != nil {
		cron.Stop(shutdownCtx)
	}
	cancel()

	log.Info("Сервер успешно остановлен")
}
