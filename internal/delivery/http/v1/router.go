package v1

import (
	"net/http"

	"internmatch-backend/config"
	"internmatch-backend/internal/delivery/http/middleware"
	"internmatch-backend/internal/delivery/http/response"
	"internmatch-backend/internal/domain"
	"internmatch-backend/internal/recommend"
	"internmatch-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	JobUC         domain.JobUsecase
	FeedUC        domain.FeedUsecase
	SavedJobUC    domain.SavedJobUsecase
	ApplicationUC domain.ApplicationUsecase
	UserUC        domain.UserUsecase
	NewsUC        domain.NewsUsecase
	Ranker        *recommend.Ranker
	JWKSProvider  *auth.Provider
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		deps.Config.RateLimitWindowSeconds,
	)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes: the discovery surfaces work for anonymous devices, but
	// pick up scoring and history when a token is present.
	public := v1.Group("")
	public.Use(middleware.OptionalAuth(deps.JWKSProvider, deps.Config))
	{
		NewJobHandler(public, deps.JobUC)
		NewFeedHandler(public, deps.FeedUC)
		NewRecommendationHandler(public, deps.Ranker, deps.Config.RecommendLimit)
		NewNewsHandler(public, deps.NewsUC)
	}

	// Protected routes: saving, tracking and preferences need an account.
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config))
	{
		NewSavedJobHandler(protected, deps.SavedJobUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewPreferenceHandler(protected, deps.UserUC)
	}

	return r
}
