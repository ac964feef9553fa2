package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/trackr/api/internal/api/types"
	"github.com/trackr/api/internal/query"
	"github.com/trackr/api/internal/services"
)

type CustomersHandler struct {
	customers services.CustomerService
	validate  *validator.Validate
}

func NewCustomersHandler(customers services.CustomerService, v *validator.Validate) *CustomersHandler {
	return &CustomersHandler{customers: customers, validate: v}
}

func (h *CustomersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCustomerRequest
	if err := decode(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.customers.CreateCustomer(r.Context(), &services.CreateCustomerInput{
		Name:               req.Name,
		ContactMail:        req.ContactMail,
		OrganizationNumber: req.OrganizationNumber,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CustomersHandler) Paginate(w http.ResponseWriter, r *http.Request) {
	p, err := query.ParseParams(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.customers.PaginateCustomers(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *CustomersHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *CustomersHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.customers.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
