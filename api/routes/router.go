package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tuanzi-labs/ordersheet-backend/api/controllers"
	"github.com/tuanzi-labs/ordersheet-backend/api/middleware"
	"github.com/tuanzi-labs/ordersheet-backend/internal/sheet"
	"github.com/tuanzi-labs/ordersheet-backend/pkg/config"
	"github.com/tuanzi-labs/ordersheet-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	sheetService sheet.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/sheet", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session.CookieName, cfg.Session.TTL, logg))

		r.Get("/", controllers.GetSheet(sheetService, logg))
		r.Put("/rows", controllers.PutRows(sheetService, logg))
		r.Put("/settings", controllers.PutSettings(sheetService, logg))
		r.Get("/products", controllers.GetProducts(sheetService, logg))
		r.Post("/images", controllers.UploadImage(sheetService, logg))
		r.Get("/render", controllers.RenderSheet(sheetService, logg))
	})

	return r
}
