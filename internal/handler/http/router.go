package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/roster-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, authHandler AuthHandler, scheduleHandler ScheduleHandler, userHandler UserHandler, notificationHandler NotificationHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Get("/oauth/callback/google", authHandler.OAuthCallbackGoogle)

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Get("/oauth/google", authHandler.LoginWithGoogle)
			})
		})

		r.Route("/schedules", func(r chi.Router) {
			// EventSource authenticates with a query token
			r.Get("/events", scheduleHandler.Events)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))

				r.With(middleware.RequirePermission(user.PermissionScheduleViewOwn)).Get("/my", scheduleHandler.GetMySchedule)
				r.Get("/events/token", scheduleHandler.EventsToken)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.With(middleware.RequirePermission(user.PermissionScheduleViewAll)).Get("/", scheduleHandler.List)
					r.With(middleware.RequirePermission(user.PermissionScheduleImport)).Post("/upload", scheduleHandler.Upload)
				})
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Get("/me", userHandler.Me)
			r.With(middleware.AdminOnly, middleware.RequirePermission(user.PermissionUserManage)).Post("/", userHandler.Create)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Get("/", notificationHandler.List)
			r.Get("/unread-count", notificationHandler.UnreadCount)
			r.Put("/read", notificationHandler.MarkAsRead)
			r.Put("/read-all", notificationHandler.MarkAllAsRead)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"route not found"}}`))
	})

	return r
}
