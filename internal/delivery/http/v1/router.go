package v1

import (
	"net/http"
	"time"

	"job-portal-backend/internal/delivery/http/middleware"
	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/internal/usecase"
	"job-portal-backend/pkg/metrics"
	"job-portal-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC             domain.AuthUsecase
	JobUC              domain.JobUsecase
	ApplicationUC      domain.ApplicationUsecase
	StudentProfileUC   domain.StudentProfileUsecase
	RecruiterProfileUC domain.RecruiterProfileUsecase
	HealthUC           usecase.HealthUsecase

	LoginTracker   *security.LoginTracker
	UploadLimiter  UploadQuota
	SecurityLogger *security.SecurityLogger
	// Redis backs the rate limiters; nil selects the in-process fallback
	Redis *goredis.Client

	HTTPMetrics metrics.HTTPRecorder
	// Gatherer serves /metrics; nil disables the route
	Gatherer prometheus.Gatherer

	// MaxResumeBytes sizes the PUT /profile body cap
	MaxResumeBytes int

	AllowedOrigins  []string
	RateLimitWindow time.Duration
	GlobalRateLimit int
	AuthRateLimit   int
	EnableHSTS      bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics(deps.HTTPMetrics))
	r.Use(middleware.SecurityHeadersMiddleware(deps.EnableHSTS))
	r.Use(middleware.ErrorHandler(deps.SecurityLogger))

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(deps.Gatherer)))
	}

	api := r.Group("/api")
	api.Use(middleware.NewRateLimiter(deps.Redis,
		middleware.GlobalRateLimitConfig(deps.GlobalRateLimit, deps.RateLimitWindow), deps.SecurityLogger).Handler())

	NewHealthHandler(api, deps.HealthUC)
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := api.Group("")
	public.Use(middleware.NewRateLimiter(deps.Redis,
		middleware.AuthRateLimitConfig(deps.AuthRateLimit, deps.RateLimitWindow), deps.SecurityLogger).Handler())

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))
	{
		NewAuthHandler(public, protected, deps.AuthUC, deps.LoginTracker, deps.SecurityLogger)
		NewJobHandler(protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewProfileHandler(protected, deps.StudentProfileUC, deps.UploadLimiter, deps.MaxResumeBytes, deps.SecurityLogger)
		NewRecruiterProfileHandler(protected, deps.RecruiterProfileUC)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found", nil)
	})

	return r
}
