package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gabcerqueira/natours/internal/api"
	apiMiddleware "github.com/gabcerqueira/natours/internal/api/middleware"
	"github.com/gabcerqueira/natours/internal/api/shared"
	"github.com/gabcerqueira/natours/internal/domain"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.mailer,
		app.config.Auth,
		app.config.Server.IsProduction(),
	)
	tourHandler := api.NewTourHandler(app.tourStore)
	userHandler := api.NewUserHandler(app.userStore)
	reviewHandler := api.NewReviewHandler(app.reviewStore)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)
	protect := authMiddleware.Authenticate

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/tours", func(r chi.Router) {
			r.Get("/top-5-cheap", tourHandler.TopFiveCheap)
			r.Get("/tour-stats", tourHandler.Stats)

			r.With(protect, apiMiddleware.RequireRoles(
				domain.RoleAdmin, domain.RoleLeadGuide, domain.RoleGuide,
			)).Get("/monthlyPlain/{year}", tourHandler.MonthlyPlan)

			r.With(protect).Get("/", tourHandler.List)
			r.Post("/", tourHandler.Create)

			r.Get("/{id}", tourHandler.Get)
			r.Patch("/{id}", tourHandler.Update)
			r.With(protect, apiMiddleware.RequireRoles(
				domain.RoleAdmin, domain.RoleLeadGuide,
			)).Delete("/{id}", tourHandler.Delete)

			// Nested reviews of a tour
			r.Route("/{tourId}/reviews", func(r chi.Router) {
				r.Use(protect)
				r.Get("/", reviewHandler.List)
				r.With(apiMiddleware.RequireRoles(domain.RoleUser)).
					Post("/", reviewHandler.Create)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/signUp", authHandler.SignUp)
			r.Post("/login", authHandler.Login)
			r.Post("/forgotPassword", authHandler.ForgotPassword)
			r.Patch("/resetPassword/{token}", authHandler.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(protect)
				r.Patch("/updateMyPassword", authHandler.UpdateMyPassword)
				r.Get("/getMe", userHandler.GetMe)
				r.Patch("/updateMe", userHandler.UpdateMe)
				r.Delete("/deleteMe", userHandler.DeleteMe)
			})

			// Admin-only account management
			r.Group(func(r chi.Router) {
				r.Use(protect, apiMiddleware.RequireRoles(domain.RoleAdmin))
				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
				r.Get("/{id}", userHandler.Get)
				r.Patch("/{id}", userHandler.Update)
				r.Delete("/{id}", userHandler.Delete)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(protect)
			r.Get("/", reviewHandler.List)
			r.With(apiMiddleware.RequireRoles(domain.RoleUser)).
				Post("/", reviewHandler.Create)

			r.Get("/{id}", reviewHandler.Get)
			r.With(apiMiddleware.RequireRoles(domain.RoleUser, domain.RoleAdmin)).
				Patch("/{id}", reviewHandler.Update)
			r.With(apiMiddleware.RequireRoles(domain.RoleUser, domain.RoleAdmin)).
				Delete("/{id}", reviewHandler.Delete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound,
			fmt.Sprintf("Can't find %s on this server!", r.URL.Path))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
