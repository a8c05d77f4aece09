package http

import (
	"encoding/json"
	"net/http"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

type CarHandler struct {
	cars service.CarService
}

func NewCarHandler(cars service.CarService) *CarHandler {
	return &CarHandler{cars: cars}
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var car domain.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.cars.CreateCar(r.Context(), &car); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	car, err := h.cars.GetCar(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, car)
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.cars.ListCars(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var car domain.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	car.ID = id
	if err := h.cars.UpdateCar(r.Context(), &car); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.cars.DeleteCar(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
