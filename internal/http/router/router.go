package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	adminhandler "wastetrack/internal/http/handlers/admin"
	driverhandler "wastetrack/internal/http/handlers/driver"
	"wastetrack/internal/http/handlers/health"
	hospitalhandler "wastetrack/internal/http/handlers/hospital"
	"wastetrack/internal/http/responses"
	"wastetrack/internal/http/session"
	"wastetrack/internal/logging"
)

func NewRouter(
	logger logging.Logger,
	guard *session.Guard,
	healthHandler *health.Handler,
	adminHandler *adminhandler.Handler,
	driverHandler *driverhandler.Handler,
	hospitalHandler *hospitalhandler.Handler,
	uploadDir string,
) chi.Router {
	r := chi.NewRouter()

	useBaseMiddlewares(r, logger)

	// Brute-force protection on the login endpoints only.
	loginLimiter := httprate.LimitByIP(10, time.Minute)

	r.Get("/healthz", healthHandler.Check)

	// Uploaded photos are referenced by bare filename.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	r.Route("/api/admin", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", adminHandler.Login)
		r.Post("/logout", adminHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(guard.RequireAdmin)
			r.Get("/dashboard", adminHandler.Dashboard)

			r.Route("/hospitals", func(r chi.Router) {
				r.Get("/", adminHandler.ListHospitals)
				r.Post("/", adminHandler.CreateHospital)
				r.Put("/{id}", adminHandler.UpdateHospital)
				r.Delete("/{id}", adminHandler.DeleteHospital)
			})

			r.Route("/drivers", func(r chi.Router) {
				r.Get("/", adminHandler.ListDrivers)
				r.Post("/", adminHandler.CreateDriver)
				r.Put("/{id}", adminHandler.UpdateDriver)
				r.Delete("/{id}", adminHandler.DeleteDriver)
			})
		})
	})

	r.Route("/api/driver", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", driverHandler.Login)
		r.Post("/logout", driverHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(guard.RequireDriver)
			r.Get("/hospitals", driverHandler.ListHospitals)
			r.Get("/", driverHandler.ListPickups)
			r.Post("/", driverHandler.CreatePickup)
			r.Put("/{id}", driverHandler.UpdatePickup)
			r.Delete("/{id}", driverHandler.DeletePickup)
			r.Get("/pickups/{id}", driverHandler.GetPickup)
			r.Patch("/pickups/{id}", driverHandler.PatchPickup)
			r.Delete("/pickups/{id}", driverHandler.DeletePickup)
			r.Delete("/photo/{id}", driverHandler.DeletePhoto)
		})
	})

	r.Route("/api/hospital", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", hospitalHandler.Login)
		r.Post("/logout", hospitalHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(guard.RequireHospital)
			r.Get("/dashboard", hospitalHandler.Dashboard)
		})
	})

	r.With(guard.RequireHospital).Get("/api/pickup", hospitalHandler.ListPickups)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteNotFound(w, r)
	})

	return r
}
