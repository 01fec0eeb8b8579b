package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"github.com/socialchef/cookmate/internal/middleware"
	"github.com/socialchef/cookmate/internal/sentry"
	"go.opentelemetry.io/otel"
)

// NewRouter wires every route behind tracing, metrics, CORS, Sentry and sessions.
func NewRouter(serviceName string, srv *Server, tokens *middleware.SessionTokens) http.Handler {
	r := chi.NewRouter()

	r.Use(otelchi.Middleware(serviceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	metricCfg := otelchimetric.NewBaseConfig(serviceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(sentry.HTTPMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(tokens))

		r.Get("/", srv.HandlePage)
		r.Post("/recipes", srv.HandleSubmitForm)
		r.Post("/recipes/{index}/select", srv.HandleSelectForm)
		r.Post("/detail/close", srv.HandleCloseForm)
		r.Post("/theme/toggle", srv.HandleToggleThemeForm)

		r.Route("/api", func(r chi.Router) {
			r.Get("/state", srv.HandleGetState)
			r.Post("/recipes", srv.HandleSubmitIngredients)
			r.Post("/recipes/{index}/select", srv.HandleSelectRecipe)
			r.Delete("/detail", srv.HandleCloseDetail)
			r.Post("/theme/toggle", srv.HandleToggleTheme)
		})
	})

	return r
}
