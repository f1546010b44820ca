package wire

import (
	"net/http"

	"kickstreet/internal/adaptor"
	"kickstreet/internal/data/repository"
	"kickstreet/internal/usecase"
	"kickstreet/pkg/middleware"
	"kickstreet/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// guards are the auth middlewares shared by the route groups.
type guards struct {
	auth     func(http.Handler) http.Handler
	optional func(http.Handler) http.Handler
	admin    func(http.Handler) http.Handler
}

// Wiring builds services, handlers and routes on top of repo. db may be nil, in which
// case /health does not check the database.
func Wiring(repo *repository.Repository, db adaptor.Pinger, config *utils.Config, deps usecase.Deps, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, deps, logger)
	handler := adaptor.NewHandler(service, adaptor.NewHealthHandler(db, logger), logger)

	return &App{
		Router:  setupRouter(handler, service, config, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, service *usecase.Service, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	g := guards{
		auth:     middleware.RequireAuth(service.Auth, logger),
		optional: middleware.OptionalAuth(service.Auth, logger),
		admin:    middleware.Admin(logger),
	}

	r.Get("/health", handler.Health.Check)

	r.Route("/api", func(r chi.Router) {
		wireAuth(r, handler.Auth, g)
		wireUser(r, handler.User, g)
		wireCatalog(r, handler.Product, handler.Slider)
		wireCheckout(r, handler.Checkout, handler.Order, g)
		wireAdmin(r, handler, g)
		r.Post("/newsletter/subscribe", handler.Newsletter.Subscribe)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	return r
}
