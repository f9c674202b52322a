package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bayusbkt/patungan-bay/internal/usecase"
)

type Server struct {
	catalogUC usecase.CatalogUseCase
	subUC     usecase.SubscriptionUseCase
	allocUC   usecase.AllocatorUseCase
	groupUC   usecase.GroupUseCase
	statsUC   usecase.StatsUseCase

	auth        *AuthManager
	adminSecret string
	log         *zerolog.Logger
}

func NewServer(
	catalogUC usecase.CatalogUseCase,
	subUC usecase.SubscriptionUseCase,
	allocUC usecase.AllocatorUseCase,
	groupUC usecase.GroupUseCase,
	statsUC usecase.StatsUseCase,
	auth *AuthManager,
	adminSecret string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		catalogUC:   catalogUC,
		subUC:       subUC,
		allocUC:     allocUC,
		groupUC:     groupUC,
		statsUC:     statsUC,
		auth:        auth,
		adminSecret: adminSecret,
		log:         logger,
	}
}

// Router builds the chi mux for the admin API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.loginHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.Middleware)

			r.Post("/auth/logout", s.logoutHandler)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", s.productsListHandler)
				r.Post("/", s.productCreateHandler)
				r.Get("/{id}", s.productGetHandler)
				r.Put("/{id}", s.productUpdateHandler)
				r.Delete("/{id}", s.productDeleteHandler)
				r.Post("/{id}/restore", s.productRestoreHandler)
				r.Get("/{id}/quote", s.productQuoteHandler)
			})

			r.Route("/subscriptions", func(r chi.Router) {
				r.Get("/", s.subscriptionsListHandler)
				r.Post("/", s.subscriptionCreateHandler)
				r.Get("/unpaid-count", s.unpaidCountHandler)
				r.Get("/by-trx/{trxID}", s.subscriptionByTrxHandler)
				r.Get("/{id}", s.subscriptionGetHandler)
				r.Post("/{id}/payment", s.subscriptionPaymentHandler)
				r.Post("/{id}/approve", s.subscriptionApproveHandler)
				r.Delete("/{id}", s.subscriptionDeleteHandler)
				r.Post("/{id}/restore", s.subscriptionRestoreHandler)
			})

			r.Route("/groups", func(r chi.Router) {
				r.Get("/", s.groupsListHandler)
				r.Post("/allocate", s.groupAllocateHandler)
				r.Get("/{id}", s.groupGetHandler)
				r.Delete("/{id}", s.groupDeleteHandler)
				r.Get("/{id}/messages", s.groupMessagesHandler)
				r.Post("/{id}/messages", s.groupAddMessageHandler)
				r.Get("/{id}/participants", s.groupParticipantsHandler)
			})

			r.Get("/stats", s.statsHandler)
		})
	})
	return r
}
