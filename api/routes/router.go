package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openpantry/productdb-backend/api/controllers"
	"github.com/openpantry/productdb-backend/api/middleware"
	"github.com/openpantry/productdb-backend/internal/missing"
	product "github.com/openpantry/productdb-backend/internal/products"
	request "github.com/openpantry/productdb-backend/internal/requests"
	"github.com/openpantry/productdb-backend/pkg/config"
	"github.com/openpantry/productdb-backend/pkg/logger"
	"github.com/openpantry/productdb-backend/pkg/metrics"
	pkgredis "github.com/openpantry/productdb-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *pkgredis.Client,
	httpMetrics *metrics.HTTPMetrics,
	metricsGatherer prometheus.Gatherer,
	productService product.Service,
	requestService request.Service,
	missingService missing.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(),
	)

	var redisP controllers.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if metricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if redisClient != nil {
			r.Use(middleware.Idempotency(redisClient, cfg.Idempotency.TTL, logg))
			if cfg.RateLimit.Enabled {
				r.Use(middleware.RateLimit(redisClient, cfg.RateLimit.Limit, cfg.RateLimit.Window, logg))
			}
		}

		r.Route("/admin", func(r chi.Router) {
			r.Route("/product", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateProduct(productService, logg))
				r.Delete("/{productId}", controllers.AdminDeleteProduct(productService, logg))
			})
			r.Route("/product_request", func(r chi.Router) {
				r.Post("/query", controllers.AdminQueryProductRequests(requestService, logg))
				r.Get("/{requestId}", controllers.AdminGetProductRequest(requestService, logg))
				r.Get("/{requestId}/image", controllers.AdminGetProductRequestImage(requestService, logg))
				r.Delete("/{requestId}", controllers.AdminDeleteProductRequest(requestService, logg))
			})
			r.Route("/missing_products", func(r chi.Router) {
				r.Post("/query", controllers.AdminQueryMissingProducts(missingService, logg))
				r.Delete("/{reportId}", controllers.AdminDeleteMissingProduct(missingService, logg))
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.Route("/product", func(r chi.Router) {
				r.Post("/query", controllers.UserQueryProducts(productService, logg))
				r.Get("/{productId}", controllers.UserGetProduct(productService, logg))
				r.Get("/{productId}/image", controllers.UserGetProductImage(productService, logg))
			})
			r.Post("/product_request", controllers.UserCreateProductRequest(requestService, logg))
			r.Post("/missing_products", controllers.UserReportMissingProduct(missingService, logg))
		})
	})

	return r
}
