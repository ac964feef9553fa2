package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/patch"
	appErr "github.com/trackr/api/pkg/errors"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=48"`
	Count    *int   `json:"count" validate:"required,min=0"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := Struct(v, signup{Email: "nope", Password: "short"})
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	var e *appErr.AppError
	require.ErrorAs(t, err, &e)
	require.Equal(t, "must be a valid email address", e.Meta["email"])
	require.Equal(t, "must be at least 8", e.Meta["password"])
	require.Equal(t, "is required", e.Meta["count"])
}

func TestStructAcceptsZeroPointerValue(t *testing.T) {
	zero := 0
	require.NoError(t, Struct(New(), signup{Email: "a@b.no", Password: "12345678", Count: &zero}))
}

type profileUpdate struct {
	Name     patch.Field[string]      `json:"name" validate:"omitempty,max=250"`
	Email    patch.Field[string]      `json:"email" validate:"omitempty,email,max=250"`
	Password patch.Field[string]      `json:"password" validate:"omitempty,min=8,max=48"`
	Role     patch.Field[models.Role] `json:"role" validate:"omitempty,min=0,max=2"`
}

func TestStructChecksPartialUpdateValues(t *testing.T) {
	v := New()
	err := Struct(v, profileUpdate{
		Name:     patch.Of(strings.Repeat("n", 400)),
		Email:    patch.Of("not-an-email"),
		Password: patch.Of("x"),
		Role:     patch.Of(models.Role(7)),
	})
	var e *appErr.AppError
	require.ErrorAs(t, err, &e)
	require.Equal(t, appErr.CodeInvalid, e.Code)
	require.Equal(t, "must be at most 250", e.Meta["name"])
	require.Equal(t, "must be a valid email address", e.Meta["email"])
	require.Equal(t, "must be at least 8", e.Meta["password"])
	require.Equal(t, "must be at most 2", e.Meta["role"])
}

func TestStructSkipsAbsentAndNullPartialFields(t *testing.T) {
	v := New()
	require.NoError(t, Struct(v, profileUpdate{}))
	require.NoError(t, Struct(v, profileUpdate{Name: patch.Null[string](), Role: patch.Null[models.Role]()}))
	require.NoError(t, Struct(v, profileUpdate{
		Email:    patch.Of("kari@acme.no"),
		Password: patch.Of("password1"),
		Role:     patch.Of(models.RoleUser),
	}))
}
