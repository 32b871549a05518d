package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amcdesk/amcdesk-backend/api/controllers"
	"github.com/amcdesk/amcdesk-backend/api/middleware"
	"github.com/amcdesk/amcdesk-backend/internal/auth"
	"github.com/amcdesk/amcdesk-backend/internal/catalog"
	"github.com/amcdesk/amcdesk-backend/internal/customers"
	"github.com/amcdesk/amcdesk-backend/internal/documents"
	"github.com/amcdesk/amcdesk-backend/internal/invoices"
	"github.com/amcdesk/amcdesk-backend/internal/mailsetup"
	"github.com/amcdesk/amcdesk-backend/internal/proposals"
	"github.com/amcdesk/amcdesk-backend/pkg/config"
	"github.com/amcdesk/amcdesk-backend/pkg/logger"
	"github.com/amcdesk/amcdesk-backend/pkg/metrics"
	"github.com/amcdesk/amcdesk-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs. RedisClient and
// Metrics may be nil; the routes that use them degrade to passthrough.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          controllers.Pinger
	RedisClient *redis.Client

	Metrics *metrics.HTTPMetrics

	AuthService      auth.Service
	CustomerService  customers.Service
	CatalogService   catalog.Service
	InvoiceService   invoices.Service
	ProposalService  proposals.Service
	MailSetupService mailsetup.Service
	DocumentService  documents.Service
}

// NewRouter wires middleware, health probes, and the versioned API routes.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		p.Metrics.Middleware,
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	// Redis is optional; without it the login limiter is a no-op and the
	// ready probe only checks the database.
	loginLimiter := func(next http.Handler) http.Handler { return next }
	var cachePinger controllers.Pinger
	if p.RedisClient != nil {
		loginLimiter = middleware.AuthRateLimit(loginPolicy, p.RedisClient, logg)
		cachePinger = p.RedisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, cachePinger, logg))
	})

	r.Get("/metrics", p.Metrics.Handler().ServeHTTP)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", controllers.AuthLogin(p.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/auth/me", controllers.AuthMe(p.AuthService, logg))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(p.CustomerService, logg))
			r.Post("/", controllers.CustomerCreate(p.CustomerService, logg))
			r.Route("/{customerID}", func(r chi.Router) {
				r.Get("/", controllers.CustomerGet(p.CustomerService, logg))
				r.Put("/", controllers.CustomerUpdate(p.CustomerService, logg))
				r.Delete("/", controllers.CustomerDelete(p.CustomerService, logg))
				r.Route("/locations", func(r chi.Router) {
					r.Get("/", controllers.LocationList(p.CustomerService, logg))
					r.Post("/", controllers.LocationCreate(p.CustomerService, logg))
					r.Put("/{locationID}", controllers.LocationUpdate(p.CustomerService, logg))
					r.Delete("/{locationID}", controllers.LocationDelete(p.CustomerService, logg))
				})
			})
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", controllers.BrandList(p.CatalogService, logg))
			r.Post("/", controllers.BrandCreate(p.CatalogService, logg))
			r.Get("/{brandID}", controllers.BrandGet(p.CatalogService, logg))
			r.Put("/{brandID}", controllers.BrandUpdate(p.CatalogService, logg))
			r.Delete("/{brandID}", controllers.BrandDelete(p.CatalogService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(p.CatalogService, logg))
			r.Post("/", controllers.CategoryCreate(p.CatalogService, logg))
			r.Get("/{categoryID}", controllers.CategoryGet(p.CatalogService, logg))
			r.Put("/{categoryID}", controllers.CategoryUpdate(p.CatalogService, logg))
			r.Delete("/{categoryID}", controllers.CategoryDelete(p.CatalogService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(p.CatalogService, logg))
			r.Post("/", controllers.ProductCreate(p.CatalogService, logg))
			r.Get("/{productID}", controllers.ProductGet(p.CatalogService, logg))
			r.Put("/{productID}", controllers.ProductUpdate(p.CatalogService, logg))
			r.Delete("/{productID}", controllers.ProductDelete(p.CatalogService, logg))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", controllers.InvoiceList(p.InvoiceService, logg))
			r.Post("/", controllers.InvoiceCreate(p.InvoiceService, logg))
			r.Route("/{invoiceID}", func(r chi.Router) {
				r.Get("/", controllers.InvoiceGet(p.InvoiceService, logg))
				r.Put("/", controllers.InvoiceUpdate(p.InvoiceService, logg))
				r.Delete("/", controllers.InvoiceDelete(p.InvoiceService, logg))
				r.Route("/items", func(r chi.Router) {
					r.Get("/", controllers.InvoiceItemList(p.InvoiceService, logg))
					r.Post("/", controllers.InvoiceItemAdd(p.InvoiceService, logg))
					r.Get("/{itemID}", controllers.InvoiceItemGet(p.InvoiceService, logg))
					r.Put("/{itemID}", controllers.InvoiceItemUpdate(p.InvoiceService, logg))
					r.Delete("/{itemID}", controllers.InvoiceItemDelete(p.InvoiceService, logg))
				})
			})
		})

		r.Route("/proposals", func(r chi.Router) {
			r.Get("/", controllers.ProposalList(p.ProposalService, logg))
			r.Post("/", controllers.ProposalCreate(p.ProposalService, logg))
			r.Route("/{proposalID}", func(r chi.Router) {
				r.Get("/", controllers.ProposalGet(p.ProposalService, logg))
				r.Put("/", controllers.ProposalUpdate(p.ProposalService, logg))
				r.Delete("/", controllers.ProposalDelete(p.ProposalService, logg))
				r.Route("/items", func(r chi.Router) {
					r.Get("/", controllers.ProposalItemList(p.ProposalService, logg))
					r.Post("/", controllers.ProposalItemAdd(p.ProposalService, logg))
					r.Get("/{itemID}", controllers.ProposalItemGet(p.ProposalService, logg))
					r.Put("/{itemID}", controllers.ProposalItemUpdate(p.ProposalService, logg))
					r.Delete("/{itemID}", controllers.ProposalItemDelete(p.ProposalService, logg))
				})
				r.Post("/document", controllers.ProposalDocumentGenerate(p.DocumentService, logg))
				r.Post("/email", controllers.ProposalEmailSend(p.DocumentService, logg))
			})
		})

		// Cross-parent line listings with optional invoice_id/proposal_id
		// query filters.
		r.Get("/invoice-items", controllers.InvoiceItemList(p.InvoiceService, logg))
		r.Get("/proposal-items", controllers.ProposalItemList(p.ProposalService, logg))

		r.Route("/mail-setup", func(r chi.Router) {
			r.Get("/", controllers.MailSetupGet(p.MailSetupService, logg))
			r.Put("/", controllers.MailSetupPut(p.MailSetupService, logg))
		})

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", controllers.DocumentList(p.DocumentService, logg))
			r.Get("/{documentID}", controllers.DocumentGet(p.DocumentService, logg))
		})
		r.Route("/email-records", func(r chi.Router) {
			r.Get("/", controllers.EmailRecordList(p.DocumentService, logg))
			r.Get("/{recordID}", controllers.EmailRecordGet(p.DocumentService, logg))
		})
	})

	return r
}
