package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/trackr/api/internal/api/types"
	appErr "github.com/trackr/api/pkg/errors"
)

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus(appErr.CodeOf(err)))
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: types.FromAppError(err)})
}
