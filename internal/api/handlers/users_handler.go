package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/trackr/api/internal/api/types"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/query"
	"github.com/trackr/api/internal/repository"
	"github.com/trackr/api/internal/services"
)

type UsersHandler struct {
	users    services.UserService
	validate *validator.Validate
}

func NewUsersHandler(users services.UserService, v *validator.Validate) *UsersHandler {
	return &UsersHandler{users: users, validate: v}
}

func (h *UsersHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	u, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ToUserSummary(u))
}

func (h *UsersHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ToUserSummaries(users))
}

// Paginate godoc
// @Summary   Page through users
// @Tags      User
// @Produce   json
// @Security  BearerAuth
// @Param     searchValue query string false "name substring"
// @Param     page        query int    false "1-based page"
// @Param     pageSize    query int    false "page size (max 100)"
// @Param     sortOrder   query string false "asc or desc"
// @Param     roleFilter  query int    false "0 User, 1 ProjectManager, 2 Admin"
// @Success   200 {object} query.Page[types.UserSummary]
// @Failure   400 {object} types.ErrorResponse
// @Router    /User/GetUserPagination [get]
func (h *UsersHandler) Paginate(w http.ResponseWriter, r *http.Request) {
	p, err := query.ParseParams(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	role, err := query.ParseFilter(r.URL.Query(), "roleFilter", models.Role.Valid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.users.PaginateUsers(r.Context(), p, repository.UserFilter{Role: role})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, query.Map(page, func(u models.User) types.UserSummary {
		return *types.ToUserSummary(&u)
	}))
}

func (h *UsersHandler) RoleData(w http.ResponseWriter, r *http.Request) {
	stats, err := h.users.RoleStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Update godoc
// @Summary   Partially update a user. Omitted fields are unchanged.
// @Tags      User
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     userId query string true "user id"
// @Param     body   body  types.UpdateUserRequest true "fields to change"
// @Success   200 {object} types.UserSummary
// @Failure   400 {object} types.ErrorResponse
// @Failure   403 {object} types.ErrorResponse
// @Failure   404 {object} types.ErrorResponse
// @Router    /User/UpdateUserData [put]
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.UpdateUserRequest
	if err := decode(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := h.users.UpdateUser(r.Context(), principal(r), id, &services.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ToUserSummary(u))
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.users.DeleteUser(r.Context(), principal(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
