package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/trackr/api/internal/api/types"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/query"
	"github.com/trackr/api/internal/repository"
	"github.com/trackr/api/internal/services"
	appErr "github.com/trackr/api/pkg/errors"
)

type ProjectsHandler struct {
	projects   services.ProjectService
	reports    services.ReportService
	validate   *validator.Validate
	reportYear int
}

// NewProjectsHandler builds the project endpoints. reportYear is the year the
// monthly report covers when the request does not name one.
func NewProjectsHandler(projects services.ProjectService, reports services.ReportService, v *validator.Validate, reportYear int) *ProjectsHandler {
	return &ProjectsHandler{projects: projects, reports: reports, validate: v, reportYear: reportYear}
}

// Create godoc
// @Summary   Create a project owned by the caller
// @Tags      Project
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body body types.CreateProjectRequest true "project"
// @Success   200 {object} types.ProjectResponse
// @Failure   400 {object} types.ErrorResponse
// @Failure   403 {object} types.ErrorResponse
// @Router    /Project/CreateProject [post]
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateProjectRequest
	if err := decode(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.projects.CreateProject(r.Context(), principal(r), &services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		CustomerID:  req.CustomerID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ToProjectResponse(*p))
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.UpdateProjectRequest
	if err := decode(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.projects.UpdateProject(r.Context(), principal(r), id, &services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ToProjectResponse(*p))
}

func (h *ProjectsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.UpdateProjectStatusRequest
	if err := decode(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.projects.UpdateStatus(r.Context(), principal(r), id, *req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ToProjectResponse(*p))
}

func (h *ProjectsHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.UpdateProjectCustomerRequest
	if err := decode(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if !req.CustomerID.Set {
		writeError(w, r, appErr.New(appErr.CodeInvalid, "customerId is required; send null to unlink").WithMeta("customerId", "is required"))
		return
	}
	p, err := h.projects.UpdateCustomer(r.Context(), principal(r), id, req.CustomerID.Ptr())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ToProjectResponse(*p))
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.projects.DeleteProject(r.Context(), principal(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Paginate godoc
// @Summary   Page through projects
// @Tags      Project
// @Produce   json
// @Security  BearerAuth
// @Param     searchValue  query string false "name substring"
// @Param     page         query int    false "1-based page"
// @Param     pageSize     query int    false "page size (max 100)"
// @Param     sortOrder    query string false "asc or desc"
// @Param     statusFilter query int    false "0 ToDo, 1 InProgress, 2 Completed, 3 Cancelled"
// @Success   200 {object} query.Page[types.ProjectResponse]
// @Failure   400 {object} types.ErrorResponse
// @Router    /Project/GetProjects [get]
func (h *ProjectsHandler) Paginate(w http.ResponseWriter, r *http.Request) {
	p, err := query.ParseParams(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	status, err := query.ParseFilter(r.URL.Query(), "statusFilter", models.Status.Valid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.projects.PaginateProjects(r.Context(), p, repository.ProjectFilter{Status: status})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, query.Map(page, types.ToProjectResponse))
}

func (h *ProjectsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.projects.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ToProjectResponse(*p))
}

func (h *ProjectsHandler) StatusList(w http.ResponseWriter, r *http.Request) {
	sum, err := h.reports.StatusSummary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// MonthlyData godoc
// @Summary   Project count and resource budget per creation month
// @Tags      Project
// @Produce   json
// @Security  BearerAuth
// @Param     year query int false "report year; defaults to the configured year"
// @Success   200 {array}  services.MonthlyBudget
// @Failure   400 {object} types.ErrorResponse
// @Router    /Project/GetProjectMonthlyData [get]
func (h *ProjectsHandler) MonthlyData(w http.ResponseWriter, r *http.Request) {
	year := h.reportYear
	if raw := r.URL.Query().Get("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, appErr.Newf(appErr.CodeInvalid, "invalid year %q", raw))
			return
		}
		year = n
	}
	months, err := h.reports.MonthlyBudget(r.Context(), year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, months)
}
