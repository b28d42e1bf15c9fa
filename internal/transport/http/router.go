package http

import (
	"log/slog"
	"net/http"

	"github.com/docucare-api/internal/application/appointment"
	"github.com/docucare-api/internal/application/auth"
	"github.com/docucare-api/internal/application/doctor"
	"github.com/docucare-api/internal/application/otp"
	"github.com/docucare-api/internal/application/patient"
	"github.com/docucare-api/internal/application/user"
	"github.com/docucare-api/internal/config"
	"github.com/docucare-api/internal/domain"
	"github.com/docucare-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/docucare-api/internal/infrastructure/jwt"
	"github.com/docucare-api/internal/infrastructure/smtp"
	"github.com/docucare-api/internal/transport/http/handler"
	appmiddleware "github.com/docucare-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo        *dynamo.UserRepo
	DoctorRepo      *dynamo.DoctorRepo
	PatientRepo     *dynamo.PatientRepo
	AppointmentRepo *dynamo.AppointmentRepo
	OTPStore        otp.Store
	Mailer          smtp.Mailer
	SMSSender       auth.SMSSender
	JWTProvider     *jwtinfra.Provider
	Logger          *slog.Logger
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to the public auth endpoints
	// so OTP guessing is throttled at the edge.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpSvc := otp.NewService(deps.OTPStore)
	authSvc := auth.NewService(deps.UserRepo, deps.Mailer, deps.SMSSender, deps.JWTProvider, otpSvc, logger)
	userSvc := user.NewService(deps.UserRepo)
	doctorSvc := doctor.NewService(deps.DoctorRepo)
	patientSvc := patient.NewService(deps.PatientRepo, deps.AppointmentRepo)
	apptSvc := appointment.NewService(deps.AppointmentRepo, deps.DoctorRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	doctorH := handler.NewDoctorHandler(doctorSvc)
	patientH := handler.NewPatientHandler(patientSvc)
	apptH := handler.NewAppointmentHandler(apptSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOTP)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/auth/logout", authH.Logout)

			// Any authenticated user
			r.Get("/doctors", doctorH.List)
			r.Get("/doctors/{id}", doctorH.Get)

			// Patient profile
			r.With(appmiddleware.RequireRole(domain.RolePatient, domain.RoleAdmin)).
				Post("/patients", patientH.Upsert)
			r.Get("/patients/me", patientH.GetMine)
			r.Get("/patients/{userID}/medical-history", patientH.MedicalHistory)

			// Appointments
			r.Get("/appointments", apptH.List)
			r.With(appmiddleware.RequireRole(domain.RolePatient)).
				Post("/appointments", apptH.Book)
			r.With(appmiddleware.RequireRole(domain.RoleDoctor, domain.RoleAdmin)).
				Put("/appointments/{id}/status", apptH.UpdateStatus)
			r.Delete("/appointments/{id}", apptH.Cancel)

			// Staff access to patient records
			r.With(appmiddleware.RequireRole(domain.RoleDoctor, domain.RoleAdmin)).
				Get("/patients/{userID}", patientH.Get)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/users", userH.List)
				r.Get("/users/{id}", userH.Get)
				r.Delete("/users/{id}", userH.Delete)

				r.Post("/doctors", doctorH.Create)
				r.Put("/doctors/{id}", doctorH.Update)
				r.Delete("/doctors/{id}", doctorH.Delete)

				r.Get("/patients", patientH.List)
				r.Delete("/patients/{userID}", patientH.Delete)
			})
		})
	})

	return r
}
