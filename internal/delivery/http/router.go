package http

import (
	"net/http"

	"patient-registration/internal/delivery/http/handler"
	"patient-registration/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	patientHandler    *handler.PatientHandler
	auditLogHandler   *handler.AuditLogHandler
	pageHandler       *handler.PageHandler
	requestMiddleware *middleware.RequestMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	auditLogHandler *handler.AuditLogHandler,
	pageHandler *handler.PageHandler,
	requestMiddleware *middleware.RequestMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		patientHandler:    patientHandler,
		auditLogHandler:   auditLogHandler,
		pageHandler:       pageHandler,
		requestMiddleware: requestMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() http.Handler {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patient routes
	patients := api.PathPrefix("/patients").Subrouter()
	patients.HandleFunc("", r.patientHandler.GetPatients).Methods(http.MethodGet)
	patients.HandleFunc("", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	patients.HandleFunc("/validate", r.patientHandler.ValidateField).Methods(http.MethodPost)
	patients.HandleFunc("/statistics", r.patientHandler.GetStatistics).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	patients.HandleFunc("/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Audit trail
	api.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	api.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Server-rendered page
	r.router.HandleFunc("/", r.pageHandler.Index).Methods(http.MethodGet)
	r.router.HandleFunc("/patients", r.pageHandler.Submit).Methods(http.MethodPost)
	r.router.HandleFunc("/patients/{id}/delete", r.pageHandler.ConfirmDelete).Methods(http.MethodGet)
	r.router.HandleFunc("/patients/{id}/delete", r.pageHandler.Delete).Methods(http.MethodPost)

	r.router.Use(r.requestMiddleware.RequestID)
	r.router.Use(r.requestMiddleware.Logging)

	// CORS wraps the router so preflight requests are answered before route matching
	return r.requestMiddleware.Recovery(r.corsMiddleware.Handle(r.router))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
