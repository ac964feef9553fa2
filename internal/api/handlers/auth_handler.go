package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/trackr/api/internal/api/types"
	"github.com/trackr/api/internal/services"
	appErr "github.com/trackr/api/pkg/errors"
)

type AuthHandler struct {
	auth     services.AuthService
	validate *validator.Validate
}

func NewAuthHandler(auth services.AuthService, v *validator.Validate) *AuthHandler {
	return &AuthHandler{auth: auth, validate: v}
}

// Login godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     Login
// @Accept   json
// @Produce  json
// @Param    body body types.LoginRequest true "credentials"
// @Success  200 {object} types.LoginResponse
// @Failure  400 {object} types.ErrorResponse
// @Failure  401 {object} types.ErrorResponse
// @Router   /Login/LoginUser [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decode(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.LoginResponse{Token: token, UserID: user.ID})
}

// Register godoc
// @Summary  Create a user; assigning a role above User requires an admin token
// @Tags     User
// @Accept   json
// @Produce  json
// @Param    body body types.RegisterRequest true "new user"
// @Success  200 {object} types.UserSummary
// @Failure  400 {object} types.ErrorResponse
// @Failure  403 {object} types.ErrorResponse
// @Router   /User/CreateUser [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := decode(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.auth.Register(r.Context(), principal(r), &services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ToUserSummary(user))
}

// Me godoc
// @Summary   The authenticated user and what the UI may show them
// @Tags      User
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} types.AuthenticatedUser
// @Failure   401 {object} types.ErrorResponse
// @Router    /User/GetAuthenticatedUser [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := principal(r)
	if user == nil {
		writeError(w, r, appErr.New(appErr.CodeUnauthorized, "authentication required"))
		return
	}
	writeJSON(w, http.StatusOK, types.ToAuthenticatedUser(user))
}
