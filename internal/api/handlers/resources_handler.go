package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/trackr/api/internal/api/types"
	"github.com/trackr/api/internal/services"
)

type ResourcesHandler struct {
	resources services.ResourceService
	validate  *validator.Validate
}

func NewResourcesHandler(resources services.ResourceService, v *validator.Validate) *ResourcesHandler {
	return &ResourcesHandler{resources: resources, validate: v}
}

// Create godoc
// @Summary   Add a resource line item; totalCost is timeHours * timeCost
// @Tags      Resource
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body body types.CreateResourceRequest true "resource"
// @Success   200 {object} models.Resource
// @Failure   400 {object} types.ErrorResponse
// @Failure   404 {object} types.ErrorResponse
// @Router    /Resource/CreateResource [post]
func (h *ResourcesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateResourceRequest
	if err := decode(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.resources.CreateResource(r.Context(), &services.CreateResourceInput{
		EstimateType: *req.EstimateType,
		TimeHours:    *req.TimeHours,
		TimeCost:     *req.TimeCost,
		ProjectID:    req.ProjectID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ResourcesHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.resources.ListResources(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ResourcesHandler) ByProject(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "projectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.resources.ListByProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
