package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"ledgerlens-server/src/handlers"
	"ledgerlens-server/src/middleware"
	"ledgerlens-server/src/rules"
)

// Deps is everything the routes need.
type Deps struct {
	Store          handlers.TransactionReader
	Cache          handlers.Invalidator
	Ingester       handlers.Ingester
	Charts         handlers.ChartRenderer
	Rules          *rules.Set
	UploadDir      string
	PlotsDir       string
	AllowedOrigins []string
	Log            zerolog.Logger
}

func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(d.AllowedOrigins))

	r.Get("/", handlers.Index)
	r.Get("/health", handlers.Health)
	r.Handle("/plots/*", http.StripPrefix("/plots/", http.FileServer(http.Dir(d.PlotsDir))))

	categorizer := d.Rules.Categorizer()

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", handlers.UploadStatement(d.Ingester, d.Charts, d.UploadDir, d.PlotsDir))
		r.Get("/final-output", handlers.GetFinalOutput(d.Store))
		r.Get("/dashboard_data", handlers.GetDashboardData(d.Store))

		// Expenses
		r.Get("/expenses/categorized", handlers.GetCategorizedExpenses(d.Store, categorizer))
		r.Get("/expenses/filtered", handlers.GetFilteredExpenses(d.Store))
		r.Get("/expenses/monthly", handlers.GetMonthlyTrends(d.Store))

		// Rules
		r.Get("/rules/categories", handlers.GetCategoryRules(d.Rules))
		r.Get("/rules/explain", handlers.ExplainRemark(d.Rules.Parser(), categorizer))

		if d.Cache != nil {
			r.Post("/admin/cache/clear", handlers.ClearCache(d.Cache))
		}
	})

	return r
}
