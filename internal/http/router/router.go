package router

import (
	"net/http"
	"time"

	"kegiatan-kampus/internal/db"
	"kegiatan-kampus/internal/http/handlers"
	"kegiatan-kampus/internal/http/middleware"
	"kegiatan-kampus/internal/metrics"
	"kegiatan-kampus/internal/models"
	"kegiatan-kampus/internal/security"
	"kegiatan-kampus/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Deps struct {
	DB        *db.DB
	Sessions  *security.SessionManager
	Logger    zerolog.Logger
	Metrics   *metrics.Metrics
	Health    *handlers.HealthHandler
	Location  *time.Location
	StaticDir string

	// Clock overrides the enrollment deadline time source. Nil means time.Now.
	Clock func() time.Time
}

func Setup(d Deps) *mux.Router {
	r := mux.NewRouter()

	enrollments := service.NewEnrollmentService(service.NewEnrollmentRepository(d.DB), d.Location)
	if d.Clock != nil {
		enrollments.WithClock(d.Clock)
	}

	authHandler := handlers.NewAuthHandler(service.NewAuthService(d.DB), d.Sessions, d.Metrics)
	activityHandler := handlers.NewActivityHandler(service.NewActivityService(d.DB))
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollments, d.Metrics)
	healthHandler := d.Health
	if healthHandler == nil {
		healthHandler = handlers.NewHealthHandler(d.DB)
	}

	r.Use(middleware.Logging(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.Session(d.Sessions))

	login := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.RequireLogin)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.RequireLogin, middleware.RequireRole(models.RoleAdmin))
	}
	student := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.RequireLogin, middleware.RequireRole(models.RoleStudent))
	}

	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/ready", healthHandler.Ready).Methods("GET")
	r.Handle("/metrics", d.Metrics.Handler()).Methods("GET")

	r.HandleFunc("/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	r.Handle("/me", login(authHandler.Me)).Methods("GET")

	r.HandleFunc("/kegiatan", activityHandler.List).Methods("GET")
	r.Handle("/kegiatan", admin(activityHandler.Create)).Methods("POST")
	r.HandleFunc("/kegiatan/{id:[0-9]+}", activityHandler.Get).Methods("GET")
	r.Handle("/kegiatan/{id:[0-9]+}", admin(activityHandler.Update)).Methods("PUT")
	r.Handle("/kegiatan/{id:[0-9]+}", admin(activityHandler.Delete)).Methods("DELETE")

	// The student check lives in EnrollmentService so admins get a specific message.
	r.Handle("/daftar", login(enrollmentHandler.Enroll)).Methods("POST")
	r.Handle("/pendaftaran/admin", admin(enrollmentHandler.ListForAdmin)).Methods("GET")
	r.Handle("/pendaftaran/mahasiswa", student(enrollmentHandler.ListForStudent)).Methods("GET")

	if d.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(d.StaticDir))).Methods("GET", "HEAD")
	}

	return r
}
