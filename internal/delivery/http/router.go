package http

import (
	"net/http"

	"clinic-stats/internal/delivery/http/handler"
	"clinic-stats/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	statsHandler   *handler.StatsHandler
	healthHandler  *handler.HealthHandler
	metricsHandler http.Handler
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	statsHandler *handler.StatsHandler,
	healthHandler *handler.HealthHandler,
	metricsHandler http.Handler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		statsHandler:   statsHandler,
		healthHandler:  healthHandler,
		metricsHandler: metricsHandler,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)

	// Clinic statistics (protected)
	stats := api.PathPrefix("/clinics/{clinic_id}/stats").Subrouter()
	stats.Use(r.authMiddleware.Authenticate)
	// OPTIONS is matched so the CORS middleware can answer preflights before auth runs
	stats.HandleFunc("/appointments", r.statsHandler.GetAppointmentStats).Methods(http.MethodGet, http.MethodOptions)
	stats.HandleFunc("/services", r.statsHandler.GetServiceStats).Methods(http.MethodGet, http.MethodOptions)
	stats.HandleFunc("/demographics", r.statsHandler.GetDemographicStats).Methods(http.MethodGet, http.MethodOptions)
	stats.HandleFunc("/ratings", r.statsHandler.GetRatingStats).Methods(http.MethodGet, http.MethodOptions)
	stats.HandleFunc("/summary", r.statsHandler.GetSummary).Methods(http.MethodGet, http.MethodOptions)
	stats.HandleFunc("/dashboard", r.statsHandler.GetDashboard).Methods(http.MethodGet, http.MethodOptions)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
