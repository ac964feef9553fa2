package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOfUnwrapsChain(t *testing.T) {
	base := New(CodeNotFound, "project not found")
	wrapped := fmt.Errorf("load project: %w", base)

	require.Equal(t, CodeNotFound, CodeOf(wrapped))
	require.True(t, IsCode(wrapped, CodeNotFound))
	require.False(t, IsCode(wrapped, CodeInvalid))
	require.Equal(t, CodeUnknown, CodeOf(fmt.Errorf("plain")))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalid:       http.StatusBadRequest,
		CodeNotFound:      http.StatusNotFound,
		CodeAlreadyExists: http.StatusConflict,
		CodeConflict:      http.StatusConflict,
		CodeUnauthorized:  http.StatusUnauthorized,
		CodeForbidden:     http.StatusForbidden,
		CodeInternal:      http.StatusInternalServerError,
		CodeUnknown:       http.StatusInternalServerError,
	}
	for code, want := range cases {
		require.Equal(t, want, HTTPStatus(code), "code %s", code)
	}
}

func TestWrapNilKeepsMessage(t *testing.T) {
	err := Wrap(nil, CodeInternal, "boom")
	require.Nil(t, err.Err)
	require.Equal(t, "internal: boom", err.Error())
}
