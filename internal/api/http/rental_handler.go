package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/metrics"
	"rentdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type RentalHandler struct {
	rentals  service.RentalService
	payments service.PaymentService
}

func NewRentalHandler(rentals service.RentalService, payments service.PaymentService) *RentalHandler {
	return &RentalHandler{rentals: rentals, payments: payments}
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateRentalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	rental, err := h.rentals.CreateRental(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	metrics.RentalsCreatedTotal.Inc()
	respondJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rental, err := h.rentals.GetRental(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentals.ListRentals(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, domain.RentalStatusActive)
}

func (h *RentalHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, domain.RentalStatusCompleted)
}

func (h *RentalHandler) listByStatus(w http.ResponseWriter, r *http.Request, status domain.RentalStatus) {
	rentals, err := h.rentals.ListRentalsByStatus(r.Context(), status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rentals, err := h.rentals.ListRentalsByCustomer(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) ListByCar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rentals, err := h.rentals.ListRentalsByCar(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rentals, err := h.rentals.ListRentalsByProduct(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input service.EditRentalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	rental, err := h.rentals.EditRental(r.Context(), id, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.rentals.DeleteRental(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type returnRequest struct {
	Items []service.ReturnLine `json:"items"`
}

type returnResponse struct {
	Rental  *domain.Rental `json:"rental"`
	Charged int64          `json:"charged"`
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	rental, charged, err := h.rentals.ReturnItems(r.Context(), id, req.Items)
	if err != nil {
		respondError(w, err)
		return
	}
	metrics.ReturnsProcessedTotal.Inc()
	respondJSON(w, http.StatusOK, returnResponse{Rental: rental, Charged: charged})
}

func (h *RentalHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input service.AddPaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	input.RentalID = &id

	payment, err := h.payments.AddPayment(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

// pathID parses the {id} path variable, writing a 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}
