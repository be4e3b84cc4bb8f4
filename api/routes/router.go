package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/petrocini/fast-sale-backend/api/controllers"
	"github.com/petrocini/fast-sale-backend/api/middleware"
	addonsvc "github.com/petrocini/fast-sale-backend/internal/addons"
	authsvc "github.com/petrocini/fast-sale-backend/internal/auth"
	categorysvc "github.com/petrocini/fast-sale-backend/internal/categories"
	eventsvc "github.com/petrocini/fast-sale-backend/internal/events"
	possvc "github.com/petrocini/fast-sale-backend/internal/pos"
	productsvc "github.com/petrocini/fast-sale-backend/internal/products"
	usersvc "github.com/petrocini/fast-sale-backend/internal/users"
	"github.com/petrocini/fast-sale-backend/pkg/auth/session"
	"github.com/petrocini/fast-sale-backend/pkg/config"
	"github.com/petrocini/fast-sale-backend/pkg/db"
	"github.com/petrocini/fast-sale-backend/pkg/logger"
	"github.com/petrocini/fast-sale-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	Metrics     prometheus.Gatherer
	AuthService authsvc.Service
	Users       usersvc.Service
	Categories  categorysvc.Service
	Addons      addonsvc.Service
	Events      eventsvc.Service
	Products    productsvc.Service
	Pos         possvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.ListUsers(deps.Users, logg))
			r.Post("/", controllers.CreateUser(deps.Users, logg))
			r.Patch("/{userId}", controllers.UpdateUser(deps.Users, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(deps.Categories, logg))
			r.Post("/", controllers.CreateCategory(deps.Categories, logg))
			r.Patch("/{categoryId}", controllers.UpdateCategory(deps.Categories, logg))
			r.Delete("/{categoryId}", controllers.DeleteCategory(deps.Categories, logg))
		})

		r.Route("/addon-groups", func(r chi.Router) {
			r.Get("/", controllers.ListAddonGroups(deps.Addons, logg))
			r.Post("/", controllers.CreateAddonGroup(deps.Addons, logg))
			r.Get("/{groupId}", controllers.GetAddonGroup(deps.Addons, logg))
			r.Patch("/{groupId}", controllers.UpdateAddonGroup(deps.Addons, logg))
			r.Delete("/{groupId}", controllers.DeleteAddonGroup(deps.Addons, logg))
			r.Post("/{groupId}/items", controllers.CreateAddonItem(deps.Addons, logg))
		})
		r.Route("/addon-items", func(r chi.Router) {
			r.Patch("/{itemId}", controllers.UpdateAddonItem(deps.Addons, logg))
			r.Delete("/{itemId}", controllers.DeleteAddonItem(deps.Addons, logg))
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", controllers.ListEvents(deps.Events, logg))
			r.Post("/", controllers.CreateEvent(deps.Events, logg))
			r.Patch("/{eventId}", controllers.UpdateEvent(deps.Events, logg))
			r.Delete("/{eventId}", controllers.DeleteEvent(deps.Events, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Post("/", controllers.CreateProduct(deps.Products, logg))
			r.Get("/{productId}", controllers.GetProductDetail(deps.Products, logg))
			r.Patch("/{productId}", controllers.UpdateProduct(deps.Products, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(deps.Products, logg))
		})

		r.Route("/pos", func(r chi.Router) {
			r.Route("/composition", func(r chi.Router) {
				r.Post("/start", controllers.PosStartComposition(deps.Pos, logg))
				r.Post("/toggle", controllers.PosToggleAddon(deps.Pos, logg))
				r.Post("/quantity", controllers.PosAdjustCompositionQuantity(deps.Pos, logg))
				r.Post("/confirm", controllers.PosConfirmComposition(deps.Pos, logg))
			})
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.PosCart(deps.Pos, logg))
				r.Post("/quick-add", controllers.PosQuickAdd(deps.Pos, logg))
				r.Delete("/", controllers.PosClearCart(deps.Pos, logg))
				r.Patch("/lines/{lineId}", controllers.PosAdjustLine(deps.Pos, logg))
				r.Delete("/lines/{lineId}", controllers.PosRemoveLine(deps.Pos, logg))
			})
			r.Post("/event", controllers.PosSetEvent(deps.Pos, logg))
		})
	})

	return r
}
