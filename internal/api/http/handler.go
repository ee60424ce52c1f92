// Package http exposes the ledger operations as a JSON REST surface.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"rentacar-backend/internal/asset"
	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/security"
	"rentacar-backend/internal/service"

	"github.com/gorilla/mux"
)

// LedgerHandler adapts the RentalLedgerService to HTTP.
type LedgerHandler struct {
	svc service.RentalLedgerService
}

func NewLedgerHandler(svc service.RentalLedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *mux.Router, h *LedgerHandler) {
	r.Use(bearerTokenMiddleware)

	r.HandleFunc("/initialize", h.HandleInitialize).Methods(http.MethodPost)
	r.HandleFunc("/cars", h.HandleAddCar).Methods(http.MethodPost)
	r.HandleFunc("/cars/{owner}/status", h.HandleGetCarStatus).Methods(http.MethodGet)
	r.HandleFunc("/cars/{owner}", h.HandleRemoveCar).Methods(http.MethodDelete)
	r.HandleFunc("/cars/{owner}/return", h.HandleReturnCar).Methods(http.MethodPost)
	r.HandleFunc("/rentals", h.HandleRental).Methods(http.MethodPost)
	r.HandleFunc("/payouts/owner", h.HandlePayoutOwner).Methods(http.MethodPost)
	r.HandleFunc("/payouts/admin", h.HandlePayoutAdmin).Methods(http.MethodPost)
	r.HandleFunc("/admin/balance", h.HandleGetAdminBalance).Methods(http.MethodGet)
}

// bearerTokenMiddleware moves the Authorization bearer token into the
// request context where the authorization oracle can reach it.
func bearerTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			ctx := security.ContextWithToken(r.Context(), strings.TrimPrefix(auth, "Bearer "))
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

type initializeRequest struct {
	Admin        string `json:"admin"`
	PaymentToken string `json:"payment_token"`
}

func (h *LedgerHandler) HandleInitialize(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Initialize(r.Context(), domain.Principal(req.Admin), domain.Principal(req.PaymentToken)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "initialized"})
}

type addCarRequest struct {
	Owner             string        `json:"owner"`
	PricePerDay       domain.Amount `json:"price_per_day"`
	CommissionPercent domain.Amount `json:"commission_percent"`
}

func (h *LedgerHandler) HandleAddCar(w http.ResponseWriter, r *http.Request) {
	var req addCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.AddCar(r.Context(), domain.Principal(req.Owner), req.PricePerDay, req.CommissionPercent); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"owner": req.Owner, "status": string(domain.CarStatusAvailable)})
}

func (h *LedgerHandler) HandleGetCarStatus(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["owner"]
	status, err := h.svc.GetCarStatus(r.Context(), domain.Principal(owner))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"owner": owner, "status": string(status)})
}

func (h *LedgerHandler) HandleRemoveCar(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["owner"]
	if err := h.svc.RemoveCar(r.Context(), domain.Principal(owner)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"owner": owner, "status": "removed"})
}

type rentalRequest struct {
	Renter          string        `json:"renter"`
	Owner           string        `json:"owner"`
	TotalDaysToRent uint32        `json:"total_days_to_rent"`
	Amount          domain.Amount `json:"amount"`
}

func (h *LedgerHandler) HandleRental(w http.ResponseWriter, r *http.Request) {
	var req rentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.svc.Rental(r.Context(), domain.Principal(req.Renter), domain.Principal(req.Owner), req.TotalDaysToRent, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"renter":             req.Renter,
		"owner":              req.Owner,
		"total_days_to_rent": req.TotalDaysToRent,
		"amount":             req.Amount.String(),
	})
}

func (h *LedgerHandler) HandleReturnCar(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["owner"]
	if err := h.svc.ReturnCar(r.Context(), domain.Principal(owner)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"owner": owner, "status": string(domain.CarStatusAvailable)})
}

type payoutOwnerRequest struct {
	Owner  string        `json:"owner"`
	Amount domain.Amount `json:"amount"`
}

func (h *LedgerHandler) HandlePayoutOwner(w http.ResponseWriter, r *http.Request) {
	var req payoutOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.PayoutOwner(r.Context(), domain.Principal(req.Owner), req.Amount); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"owner": req.Owner, "amount": req.Amount.String()})
}

type payoutAdminRequest struct {
	Amount domain.Amount `json:"amount"`
}

func (h *LedgerHandler) HandlePayoutAdmin(w http.ResponseWriter, r *http.Request) {
	var req payoutAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.PayoutAdmin(r.Context(), req.Amount); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"amount": req.Amount.String()})
}

func (h *LedgerHandler) HandleGetAdminBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.svc.GetAdminBalance(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"accumulated_commission": balance.String()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps engine errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, security.ErrUnauthorized),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrCarNotFound),
		errors.Is(err, domain.ErrRentalNotFound),
		errors.Is(err, domain.ErrAdminNotFound),
		errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrContractNotInitialized):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrContractInitialized),
		errors.Is(err, domain.ErrCarAlreadyExist),
		errors.Is(err, domain.ErrCarAlreadyRented),
		errors.Is(err, domain.ErrCarNotRented),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrBalanceNotAvailableForAmountRequested),
		errors.Is(err, asset.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAmountMustBePositive),
		errors.Is(err, domain.ErrRentalDurationCannotBeZero),
		errors.Is(err, domain.ErrCommissionTooHigh),
		errors.Is(err, domain.ErrAdminTokenConflict),
		errors.Is(err, domain.ErrSelfRentalNotAllowed),
		errors.Is(err, domain.ErrMathOverflow):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
