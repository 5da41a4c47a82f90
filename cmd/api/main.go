package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-portal-backend/config"
	_ "job-portal-backend/docs" // Important for Swagger
	v1 "job-portal-backend/internal/delivery/http/v1"
	"job-portal-backend/internal/domain"
	"job-portal-backend/internal/repository/memory"
	"job-portal-backend/internal/repository/postgres"
	"job-portal-backend/internal/usecase"
	"job-portal-backend/pkg/auth"
	"job-portal-backend/pkg/database"
	"job-portal-backend/pkg/logger"
	"job-portal-backend/pkg/metrics"
	"job-portal-backend/pkg/redis"
	"job-portal-backend/pkg/security"
	"job-portal-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
)

// repositories is the storage set chosen by STORAGE_DRIVER.
type repositories struct {
	users             domain.UserRepository
	jobs              domain.JobRepository
	applications      domain.ApplicationRepository
	studentProfiles   domain.StudentProfileRepository
	recruiterProfiles domain.RecruiterProfileRepository
	ping              usecase.HealthCheck
	close             func()
}

// @title           Job Portal API
// @version         1.0
// @description     Job board backend: identity, job catalog, profiles and the application workflow.
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job portal backend", "port", cfg.Port, "storage", cfg.StorageDriver)
	secLogger := security.DefaultLogger()
	defer secLogger.Sync()

	ctx := context.Background()

	// 3. Setup Storage
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer repos.close()

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.Connect(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// 5. Setup Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	// 6. Setup UseCases
	validate := validation.New()
	sanitizer := security.NewTextSanitizer()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	authUC := usecase.NewAuthUsecase(repos.users, tokens, hasher)
	jobUC := usecase.NewJobUsecase(repos.jobs, validate, sanitizer)
	applicationUC := usecase.NewApplicationUsecase(repos.applications, repos.jobs, repos.users, repos.studentProfiles, collector)
	studentProfileUC := usecase.NewStudentProfileUsecase(repos.studentProfiles, validate, security.NewResumeValidator(cfg.MaxResumeBytes))
	recruiterProfileUC := usecase.NewRecruiterProfileUsecase(repos.recruiterProfiles, repos.users, validate, sanitizer)

	healthUC := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"database": repos.ping})
	if redisClient != nil {
		healthUC.WithOptional("redis", func(ctx context.Context) error {
			return redis.HealthCheck(ctx, redisClient)
		})
	}

	trackerCfg := security.DefaultLoginTrackerConfig()
	trackerCfg.MaxAttempts = cfg.FailedLoginMaxAttempts
	trackerCfg.BlockDuration = time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute
	tracker := security.NewLoginTracker(redisClient, trackerCfg, secLogger)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:             authUC,
		JobUC:              jobUC,
		ApplicationUC:      applicationUC,
		StudentProfileUC:   studentProfileUC,
		RecruiterProfileUC: recruiterProfileUC,
		HealthUC:           healthUC,
		LoginTracker:       tracker,
		UploadLimiter:      security.NewUploadLimiter(redisClient, cfg.ResumeUploadsPerMinute, cfg.ResumeUploadsPerDay),
		MaxResumeBytes:     cfg.MaxResumeBytes,
		SecurityLogger:     secLogger,
		Redis:              redisClient,
		HTTPMetrics:        collector,
		Gatherer:           registry,
		AllowedOrigins:     cfg.Origins(),
		RateLimitWindow:    time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		GlobalRateLimit:    cfg.RateLimitGlobalThreshold,
		AuthRateLimit:      cfg.RateLimitAuthThreshold,
		EnableHSTS:         cfg.GinMode == gin.ReleaseMode,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Log.Warn("Using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			users:             store.Users(),
			jobs:              store.Jobs(),
			applications:      store.Applications(),
			studentProfiles:   store.StudentProfiles(),
			recruiterProfiles: store.RecruiterProfiles(),
			ping:              store.Ping,
			close:             func() {},
		}, nil
	}

	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DBUrl); err != nil {
			return nil, err
		}
	}

	pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	return &repositories{
		users:             postgres.NewUserRepository(pool),
		jobs:              postgres.NewJobRepository(pool),
		applications:      postgres.NewApplicationRepository(pool),
		studentProfiles:   postgres.NewStudentProfileRepository(pool),
		recruiterProfiles: postgres.NewRecruiterProfileRepository(pool),
		ping:              pool.Ping,
		close:             pool.Close,
	}, nil
}
