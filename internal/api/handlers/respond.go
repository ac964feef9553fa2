package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/trackr/api/internal/api/middleware"
	"github.com/trackr/api/internal/api/types"
	"github.com/trackr/api/internal/api/validators"
	"github.com/trackr/api/internal/models"
	appErr "github.com/trackr/api/pkg/errors"
	"github.com/trackr/api/pkg/logger"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to its HTTP status. The cause of server errors is
// logged and never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := appErr.HTTPStatus(appErr.CodeOf(err))
	if status >= http.StatusInternalServerError {
		logger.L().Error("request failed",
			zap.String("id", middleware.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeJSON(w, status, types.ErrorResponse{Error: types.FromAppError(err)})
}

// decode reads a JSON body into dst and validates it.
func decode(r *http.Request, v *validator.Validate, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return appErr.New(appErr.CodeInvalid, "request body is required")
		}
		return appErr.Wrap(err, appErr.CodeInvalid, "invalid json")
	}
	return validators.Struct(v, dst)
}

// queryID parses a required UUID query parameter.
func queryID(r *http.Request, key string) (uuid.UUID, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return uuid.Nil, appErr.Newf(appErr.CodeInvalid, "%s is required", key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, appErr.Newf(appErr.CodeInvalid, "%s must be a uuid", key).WithMeta(key, raw)
	}
	return id, nil
}

// principal is only nil on routes without Auth.
func principal(r *http.Request) *models.User {
	return middleware.GetPrincipal(r.Context())
}
