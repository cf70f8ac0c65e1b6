// Package web serves the training log's HTML pages and JSON API.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"trainingLog/internal/access"
	"trainingLog/internal/auth"
	"trainingLog/internal/config"
	"trainingLog/internal/middleware"
)

// Options are the dependencies of the web server.
type Options struct {
	Access    *access.Access
	Sessions  *auth.Sessions
	Log       logrus.FieldLogger
	Metrics   *middleware.Metrics
	Limiter   *middleware.RateLimiter
	JWTSecret string
	TokenTTL  time.Duration
}

// Server holds the handlers of the web application.
type Server struct {
	access    *access.Access
	sessions  *auth.Sessions
	log       logrus.FieldLogger
	metrics   *middleware.Metrics
	limiter   *middleware.RateLimiter
	views     *views
	jwtSecret string
	tokenTTL  time.Duration
}

// New builds a Server. Access, Sessions and Log are required.
func New(opts Options) (*Server, error) {
	if opts.Access == nil || opts.Sessions == nil || opts.Log == nil {
		return nil, errors.New("web: access, sessions and log are required")
	}
	v, err := loadViews()
	if err != nil {
		return nil, err
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = time.Hour
	}
	return &Server{
		access:    opts.Access,
		sessions:  opts.Sessions,
		log:       opts.Log,
		metrics:   opts.Metrics,
		limiter:   opts.Limiter,
		views:     v,
		jwtSecret: opts.JWTSecret,
		tokenTTL:  opts.TokenTTL,
	}, nil
}

// Routes returns the router serving every page, the API and /metrics.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(s.log))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/", s.requireLogin(s.handleHome)).Methods(http.MethodGet)
	r.HandleFunc("/training_log", s.requireLogin(s.handleHome)).Methods(http.MethodGet)

	r.HandleFunc("/login", s.handleLoginForm).Methods(http.MethodGet)
	r.Handle("/login", s.limited(s.handleLogin)).Methods(http.MethodPost)
	r.HandleFunc("/signup", s.handleSignupForm).Methods(http.MethodGet)
	r.Handle("/signup", s.limited(s.handleSignup)).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	r.HandleFunc("/delete_account", s.requireLogin(s.handleDeleteAccount)).Methods(http.MethodPost)

	w := r.PathPrefix("/training_log/{page}/workouts").Subrouter()
	w.HandleFunc("", s.requireLogin(s.handleWorkouts)).Methods(http.MethodGet)
	w.HandleFunc("/new", s.requireLogin(s.handleNewWorkoutForm)).Methods(http.MethodGet)
	w.HandleFunc("/new", s.requireLogin(s.handleCreateWorkout)).Methods(http.MethodPost)
	w.HandleFunc("/{workout}", s.requireLogin(s.handleWorkout)).Methods(http.MethodGet)
	w.HandleFunc("/{workout}/edit", s.requireLogin(s.handleEditWorkoutForm)).Methods(http.MethodGet)
	w.HandleFunc("/{workout}/edit", s.requireLogin(s.handleUpdateWorkout)).Methods(http.MethodPost)
	w.HandleFunc("/{workout}/delete", s.requireLogin(s.handleDeleteWorkout)).Methods(http.MethodPost)
	w.HandleFunc("/{workout}/exercises/new", s.requireLogin(s.handleNewExerciseForm)).Methods(http.MethodGet)
	w.HandleFunc("/{workout}/exercises/new", s.requireLogin(s.handleCreateExercise)).Methods(http.MethodPost)
	w.HandleFunc("/{workout}/exercises/{exercise}/edit", s.requireLogin(s.handleEditExerciseForm)).Methods(http.MethodGet)
	w.HandleFunc("/{workout}/exercises/{exercise}/edit", s.requireLogin(s.handleUpdateExercise)).Methods(http.MethodPost)
	w.HandleFunc("/{workout}/exercises/{exercise}/delete", s.requireLogin(s.handleDeleteExercise)).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/token", s.limited(s.handleAPIToken)).Methods(http.MethodPost)
	protected := api.PathPrefix("/workouts").Subrouter()
	protected.Use(auth.RequireBearer(s.jwtSecret))
	protected.HandleFunc("", s.handleAPIWorkouts).Methods(http.MethodGet)
	protected.HandleFunc("/{workout}", s.handleAPIWorkout).Methods(http.MethodGet)

	return r
}

func (s *Server) limited(h http.HandlerFunc) http.Handler {
	if s.limiter == nil {
		return h
	}
	return s.limiter.Handler(h)
}

// StartHTTP starts serving handler on cfg.HTTP.Address and returns the bound
// address and a shutdown function.
func StartHTTP(cfg *config.Config, handler http.Handler, log logrus.FieldLogger) (net.Addr, func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}
	addr := cfg.HTTP.Address
	if addr == "" {
		addr = ":8080"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server stopped")
		}
	}()
	return lis.Addr(), srv.Shutdown, nil
}
