package handler

import (
	"net/http"

	"github.com/Dan9191/networth-service/internal/config"
	"github.com/Dan9191/networth-service/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter wires every route of the service
func NewRouter(h *Handler, cfg *config.Config, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	// Public routes
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/forecast", h.Forecast).Methods(http.MethodGet)
	authRouter.HandleFunc("/report", h.Report).Methods(http.MethodGet)
	authRouter.HandleFunc("/accounts/{id:[0-9]+}/balances", h.RecordBalance).Methods(http.MethodPost)
	authRouter.HandleFunc("/assumptions", h.GetAssumptions).Methods(http.MethodGet)
	authRouter.HandleFunc("/assumptions", h.UpdateAssumptions).Methods(http.MethodPut)
	authRouter.HandleFunc("/assumptions", h.ResetAssumptions).Methods(http.MethodDelete)
	authRouter.HandleFunc("/assumptions/suggested-banking-rate", h.SuggestedBankingRate).Methods(http.MethodGet)
	return r
}
