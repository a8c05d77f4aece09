package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

type ProductHandler struct {
	products  service.ProductService
	inventory service.InventoryService
}

func NewProductHandler(products service.ProductService, inventory service.InventoryService) *ProductHandler {
	return &ProductHandler{products: products, inventory: inventory}
}

type createProductRequest struct {
	domain.Product
	Parts []service.ProductPartInput `json:"parts"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.products.CreateProduct(r.Context(), &req.Product, req.Parts); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, req.Product)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	product.ID = id
	if err := h.products.UpdateProduct(r.Context(), &product); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type availabilityResponse struct {
	ProductID int64 `json:"product_id"`
	Requested int64 `json:"requested"`
	Free      int64 `json:"free"`
	Available bool  `json:"available"`
}

func (h *ProductHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	qty := int64(1)
	if raw := r.URL.Query().Get("quantity"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			badRequest(w, "quantity must be a positive integer")
			return
		}
		qty = parsed
	}
	available, free, err := h.inventory.CheckAvailability(r.Context(), id, qty)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, availabilityResponse{
		ProductID: id,
		Requested: qty,
		Free:      free,
		Available: available,
	})
}

type setPartsRequest struct {
	Parts []service.ProductPartInput `json:"parts"`
}

func (h *ProductHandler) SetParts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req setPartsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	product, err := h.products.SetParts(r.Context(), id, req.Parts)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}
