package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/beetracked/fleet-ops/internal/adapter/http/handler"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System Health
	a.mux.HandleFunc("GET /health", a.routes.health.HealthCheck)

	a.mux.Handle("/metrics", promhttp.Handler())
	a.mux.HandleFunc("/swagger/", httpSwagger.Handler())

	// Auth
	a.mux.HandleFunc("POST /api/auth/login", a.routes.auth.Login)
	a.mux.HandleFunc("POST /api/auth/logout", a.routes.auth.Logout)
	a.mux.HandleFunc("POST /api/auth/cognito-login", a.routes.auth.CognitoLogin)

	a.mux.HandleFunc("GET /api/auth/sessions", a.routes.sessions.Stats)

	// BeeZero shifts
	a.mux.Handle("POST /api/turnos/iniciar", a.protected(a.routes.shift.Iniciar))
	a.mux.Handle("POST /api/turnos/{id}/cerrar", a.protected(a.routes.shift.Cerrar))
	a.mux.Handle("GET /api/turnos", a.protected(a.routes.shift.List))
	a.mux.Handle("GET /api/turnos/{id}", a.protected(a.routes.shift.Get))

	// Legacy placeholder kept for the old frontend
	a.mux.HandleFunc("GET /api/carreras", a.routes.carrera.Placeholder)

	// Ecodelivery
	a.mux.Handle("POST /api/ecodelivery/upload-photo", a.protected(a.routes.eco.UploadPhoto))
	a.mux.Handle("POST /api/ecodelivery/upload-delivery-photo", a.protected(a.routes.eco.UploadDeliveryPhoto))
	a.mux.Handle("POST /api/ecodelivery/turnos/iniciar", a.protected(a.routes.eco.TurnoIniciar))
	a.mux.Handle("POST /api/ecodelivery/turnos/cerrar", a.protected(a.routes.eco.TurnoCerrar))
	a.mux.Handle("POST /api/ecodelivery/deliveries/registrar", a.protected(a.routes.eco.RegisterDelivery))
	a.mux.Handle("GET /api/ecodelivery/deliveries/{bikerName}", a.protected(a.routes.eco.Deliveries))

	// BeeZero rides
	a.mux.Handle("POST /api/beezero/carreras/registrar", a.protected(a.routes.carrera.Register))
	a.mux.Handle("GET /api/beezero/carreras/{driverName}", a.protected(a.routes.carrera.ByDriver))

	// Live event feed
	a.mux.HandleFunc("GET /ws/events", a.routes.feed.Events)

	// Everything else
	a.mux.HandleFunc("/", handler.NotFound)
}

// protected wraps a handler with session validation.
func (a *API) protected(h http.HandlerFunc) http.Handler {
	return a.m.ValidateSession(h)
}
