package http

import (
	"net/http"
	"strconv"

	"rentdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type StatisticsHandler struct {
	stats service.StatisticsService
}

func NewStatisticsHandler(stats service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats}
}

func (h *StatisticsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	period := mux.Vars(r)["period"]
	stats, err := h.stats.Revenue(r.Context(), period)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *StatisticsHandler) TopCustomers(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "monthly"
	}
	customers, err := h.stats.TopCustomers(r.Context(), period, queryLimit(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

func (h *StatisticsHandler) MostRentedCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.stats.MostRentedCars(r.Context(), queryLimit(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cars)
}

func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return 10
	}
	return limit
}
