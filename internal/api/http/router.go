package http

import (
	"net/http"

	"rentdesk-backend/internal/api/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth          *AuthHandler
	Rentals       *RentalHandler
	Customers     *CustomerHandler
	Products      *ProductHandler
	Cars          *CarHandler
	Payments      *PaymentHandler
	Expenses      *ExpenseHandler
	CalendarNotes *CalendarNoteHandler
	Statistics    *StatisticsHandler
	Health        *HealthHandler
}

// NewRouter wires the full REST surface. Health, metrics and login are open;
// everything else under /api requires a Bearer token.
func NewRouter(h Handlers, auth *middleware.AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.Metrics)

	r.HandleFunc("/health", h.Health.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/api/auth/login", h.Auth.Login).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.Authenticate)

	// Rentals. Static segments are registered before the {id} routes so mux
	// does not swallow them as ids.
	api.HandleFunc("/rentals", h.Rentals.Create).Methods("POST")
	api.HandleFunc("/rentals", h.Rentals.List).Methods("GET")
	api.HandleFunc("/rentals/active", h.Rentals.ListActive).Methods("GET")
	api.HandleFunc("/rentals/complete", h.Rentals.ListCompleted).Methods("GET")
	api.HandleFunc("/rentals/customer/{id}", h.Rentals.ListByCustomer).Methods("GET")
	api.HandleFunc("/rentals/car/{id}", h.Rentals.ListByCar).Methods("GET")
	api.HandleFunc("/rentals/product/{id}", h.Rentals.ListByProduct).Methods("GET")
	api.HandleFunc("/rentals/{id}", h.Rentals.Get).Methods("GET")
	api.HandleFunc("/rentals/{id}", h.Rentals.Update).Methods("PUT")
	api.HandleFunc("/rentals/{id}", h.Rentals.Delete).Methods("DELETE")
	api.HandleFunc("/rentals/{id}/return", h.Rentals.Return).Methods("POST")
	api.HandleFunc("/rentals/{id}/payment", h.Rentals.AddPayment).Methods("POST")

	// Customers
	api.HandleFunc("/customers", h.Customers.Create).Methods("POST")
	api.HandleFunc("/customers", h.Customers.List).Methods("GET")
	api.HandleFunc("/customers/status/{status}", h.Customers.ListByStatus).Methods("GET")
	api.HandleFunc("/customers/{id}", h.Customers.Get).Methods("GET")
	api.HandleFunc("/customers/{id}", h.Customers.Update).Methods("PUT")
	api.HandleFunc("/customers/{id}", h.Customers.Delete).Methods("DELETE")
	api.HandleFunc("/customers/{id}/balance/recompute", h.Customers.RecomputeBalance).Methods("POST")

	// Products
	api.HandleFunc("/products", h.Products.Create).Methods("POST")
	api.HandleFunc("/products", h.Products.List).Methods("GET")
	api.HandleFunc("/products/{id}", h.Products.Get).Methods("GET")
	api.HandleFunc("/products/{id}", h.Products.Update).Methods("PUT")
	api.HandleFunc("/products/{id}", h.Products.Delete).Methods("DELETE")
	api.HandleFunc("/products/{id}/parts", h.Products.SetParts).Methods("PUT")
	api.HandleFunc("/products/{id}/availability", h.Products.Availability).Methods("GET")

	// Cars
	api.HandleFunc("/cars", h.Cars.Create).Methods("POST")
	api.HandleFunc("/cars", h.Cars.List).Methods("GET")
	api.HandleFunc("/cars/{id}", h.Cars.Get).Methods("GET")
	api.HandleFunc("/cars/{id}", h.Cars.Update).Methods("PUT")
	api.HandleFunc("/cars/{id}", h.Cars.Delete).Methods("DELETE")

	// Payments
	api.HandleFunc("/payments", h.Payments.Create).Methods("POST")
	api.HandleFunc("/payments", h.Payments.List).Methods("GET")
	api.HandleFunc("/payments/customer/{id}", h.Payments.ListByCustomer).Methods("GET")
	api.HandleFunc("/payments/rental/{id}", h.Payments.ListByRental).Methods("GET")
	api.HandleFunc("/payments/{id}", h.Payments.Get).Methods("GET")
	api.HandleFunc("/payments/{id}", h.Payments.Update).Methods("PUT")
	api.HandleFunc("/payments/{id}", h.Payments.Delete).Methods("DELETE")

	// Expenses
	api.HandleFunc("/expenses", h.Expenses.Create).Methods("POST")
	api.HandleFunc("/expenses", h.Expenses.List).Methods("GET")
	api.HandleFunc("/expenses/{id}", h.Expenses.Get).Methods("GET")
	api.HandleFunc("/expenses/{id}", h.Expenses.Update).Methods("PUT")
	api.HandleFunc("/expenses/{id}", h.Expenses.Delete).Methods("DELETE")

	// Calendar notes
	api.HandleFunc("/calendar-notes", h.CalendarNotes.Create).Methods("POST")
	api.HandleFunc("/calendar-notes", h.CalendarNotes.List).Methods("GET")
	api.HandleFunc("/calendar-notes/{id}", h.CalendarNotes.Get).Methods("GET")
	api.HandleFunc("/calendar-notes/{id}", h.CalendarNotes.Update).Methods("PUT")
	api.HandleFunc("/calendar-notes/{id}", h.CalendarNotes.Delete).Methods("DELETE")

	// Statistics
	api.HandleFunc("/statistics/revenue/{period}", h.Statistics.Revenue).Methods("GET")
	api.HandleFunc("/statistics/customers/top", h.Statistics.TopCustomers).Methods("GET")
	api.HandleFunc("/statistics/cars/most-rented", h.Statistics.MostRentedCars).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, errorResponse{Success: false, Message: "route not found"})
	})

	return r
}
