package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arellano-digital/alternativas-backend/api/controllers"
	"github.com/arellano-digital/alternativas-backend/api/middleware"
	"github.com/arellano-digital/alternativas-backend/internal/products"
	responsesvc "github.com/arellano-digital/alternativas-backend/internal/responses"
	"github.com/arellano-digital/alternativas-backend/pkg/config"
	"github.com/arellano-digital/alternativas-backend/pkg/db"
	"github.com/arellano-digital/alternativas-backend/pkg/logger"
	"github.com/arellano-digital/alternativas-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	productService products.Service,
	responseService responsesvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.RateLimit.AllowedHosts),
	)

	searchPolicy := middleware.NewRateLimitPolicy("search", cfg.RateLimit.Window, cfg.RateLimit.SearchLimit)
	submitPolicy := middleware.NewRateLimitPolicy("submit", cfg.RateLimit.Window, cfg.RateLimit.SubmitLimit)

	var limiter middleware.RateLimiterStore
	if redisClient != nil {
		limiter = redisClient
	}

	var redisPinger redis.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.RateLimit(searchPolicy, limiter, logg)).
			Get("/products", controllers.SearchProducts(productService, cfg.Search.DefaultLimit, logg))
		r.With(middleware.RateLimit(submitPolicy, limiter, logg)).
			Post("/responses", controllers.CreateResponse(responseService, logg))
	})

	return r
}
