package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/networth-service/internal/assumptions"
	"github.com/Dan9191/networth-service/internal/middleware"
	"github.com/Dan9191/networth-service/internal/models"
	"github.com/Dan9191/networth-service/internal/repository"
	"github.com/Dan9191/networth-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// ForecastService computes forecasts and reports and records balances
type ForecastService interface {
	Forecast(ctx context.Context, userID int64, years int) (*models.ForecastResult, error)
	Report(ctx context.Context, userID int64, start, end time.Time) (*models.HistoricalReport, error)
	RecordBalance(ctx context.Context, userID, accountID int64, balance decimal.Decimal, recordedAt time.Time, note string) (*models.BalanceObservation, error)
	SuggestedBankingRate() (decimal.Decimal, error)
}

// AssumptionsService manages a user's rate overrides
type AssumptionsService interface {
	Get(ctx context.Context, userID int64) (*models.Assumptions, error)
	Update(ctx context.Context, userID int64, o assumptions.Overrides) (*models.Assumptions, error)
	Reset(ctx context.Context, userID int64) error
}

type Handler struct {
	svc         ForecastService
	assumptions AssumptionsService
	log         *logrus.Logger
}

func NewHandler(svc ForecastService, assumptions AssumptionsService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, assumptions: assumptions, log: log}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, assumptions.ErrInvalidRate):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.log.Errorf("Request failed: %v", err)
		h.writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
	}
	return userID, ok
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// Forecast handles GET /forecast?years=N
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	years := 0
	if v := r.URL.Query().Get("years"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.badRequest(w, "years must be a positive integer")
			return
		}
		years = n
	}

	result, err := h.svc.Forecast(r.Context(), userID, years)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// Report handles GET /report?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		h.badRequest(w, "start must be formatted as YYYY-MM-DD")
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		h.badRequest(w, "end must be formatted as YYYY-MM-DD")
		return
	}

	result, err := h.svc.Report(r.Context(), userID, start, end)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

type recordBalanceRequest struct {
	Balance    decimal.Decimal `json:"balance"`
	RecordedAt *time.Time      `json:"recorded_at"`
	Note       string          `json:"note"`
}

// RecordBalance handles POST /accounts/{id}/balances
func (h *Handler) RecordBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	accountID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.badRequest(w, "invalid account id")
		return
	}
	var req recordBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	var recordedAt time.Time
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	o, err := h.svc.RecordBalance(r.Context(), userID, accountID, req.Balance, recordedAt, req.Note)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, o)
}

// GetAssumptions handles GET /assumptions
func (h *Handler) GetAssumptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	a, err := h.assumptions.Get(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

// UpdateAssumptions handles PUT /assumptions
func (h *Handler) UpdateAssumptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var o assumptions.Overrides
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	a, err := h.assumptions.Update(r.Context(), userID, o)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

// ResetAssumptions handles DELETE /assumptions
func (h *Handler) ResetAssumptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.assumptions.Reset(r.Context(), userID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SuggestedBankingRate handles GET /assumptions/suggested-banking-rate
func (h *Handler) SuggestedBankingRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.svc.SuggestedBankingRate()
	if err != nil {
		h.log.Errorf("Failed to get suggested banking rate: %v", err)
		h.writeJSON(w, http.StatusBadGateway, errorResponse{Error: "rate source unavailable"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"banking_rate": rate})
}
