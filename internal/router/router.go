package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"zenweb/internal/config"
	"zenweb/internal/handlers"
	"zenweb/internal/middleware"
	"zenweb/internal/models"
	"zenweb/internal/service"
	"zenweb/internal/storage"
	"zenweb/internal/store"
)

func New(log zerolog.Logger, kv storage.KV, cfg config.Config, sms service.SMSSender) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(log, cfg))

	// Stores + services
	users := store.NewUsers(kv)
	tickets := store.NewTickets(kv)
	projects := store.NewProjects(kv)
	inventory := store.NewInventory(kv)
	contact := store.NewContact(kv)
	settings := store.NewSettings(kv)
	analytics := store.NewAnalytics(kv)
	auth := service.NewAuthService(users, cfg.SessionSecret)

	ah := handlers.NewAuthHTTP(auth, users)
	th := handlers.NewTicketHTTP(tickets, users)
	uh := handlers.NewUserHTTP(users)
	adh := handlers.NewAdminHTTP(auth, users)
	ph := handlers.NewProjectHTTP(projects)
	ih := handlers.NewInventoryHTTP(inventory)
	ch := handlers.NewContactHTTP(contact)
	sh := handlers.NewSettingsHTTP(settings, sms)
	anh := handlers.NewAnalyticsHTTP(analytics, settings)

	admin := middleware.RequireRoles(models.RoleAdmin)
	selfOrAdmin := middleware.RequireSelfOrRoles(models.RoleAdmin)

	// Health
	r.Get("/healthz", handlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", ah.Register())
			r.Post("/login", ah.Login())
			r.Post("/logout", ah.Logout())
			r.With(middleware.RequireAuth).Get("/me", ah.Me())
		})

		r.Route("/tickets", func(r chi.Router) {
			r.Post("/", th.Create()) // guests allowed
			r.With(middleware.RequireAuth).Get("/", th.List())
			r.With(selfOrAdmin).Get("/user/{id}", th.ByUser())
			r.Route("/{id}", func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/", th.Get())
				r.With(admin).Put("/", th.Update())
				r.With(admin).Delete("/", th.Delete())
				r.Post("/comments", th.AddComment())
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.With(admin).Get("/", uh.List())
			r.Route("/{id}", func(r chi.Router) {
				r.With(selfOrAdmin).Get("/", uh.Get())
				r.With(selfOrAdmin).Put("/", uh.Update())
				r.With(admin).Patch("/role", uh.UpdateRole())
				r.With(admin).Delete("/", uh.Delete())
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth, admin)
			r.Post("/impersonate/{id}", adh.Impersonate())
			r.Post("/users/{id}/reset-password", adh.ResetPassword())
		})

		r.Route("/projects", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", ph.List())
			r.Post("/", ph.Create())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", ph.Get())
				r.Put("/", ph.Update())
				r.Delete("/", ph.Delete())
			})
		})

		r.Route("/hardware", func(r chi.Router) {
			r.Use(middleware.RequireAuth, admin)
			r.Get("/", ih.ListHardware())
			r.Post("/", ih.CreateHardware())
			r.Get("/selection", ih.GetSelection())
			r.Put("/selection", ih.PutSelection())
			r.Put("/{id}", ih.UpdateHardware())
			r.Delete("/{id}", ih.DeleteHardware())
		})

		r.Route("/locations", func(r chi.Router) {
			r.Use(middleware.RequireAuth, admin)
			r.Get("/", ih.ListLocations())
			r.Post("/", ih.CreateLocation())
			r.Put("/{id}", ih.UpdateLocation())
			r.Delete("/{id}", ih.DeleteLocation())
		})

		r.Get("/contact", ch.Get())
		r.With(middleware.RequireAuth, admin).Put("/contact", ch.Put())

		r.Route("/settings", func(r chi.Router) {
			r.Use(middleware.RequireAuth, admin)
			r.Get("/", sh.Get())
			r.Put("/", sh.Put())
			r.Post("/test-sms", sh.TestSMS())
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Post("/pageview", anh.PageView())
			r.Get("/my-ip", anh.MyIP())
			r.With(middleware.RequireAuth, admin).Get("/", anh.Summary())
			r.With(middleware.RequireAuth, admin).Get("/excluded-ips", anh.GetExcludedIPs())
			r.With(middleware.RequireAuth, admin).Put("/excluded-ips", anh.PutExcludedIPs())
		})
	})

	return r
}
