package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidacion:   http.StatusBadRequest,
		KindAuth:         http.StatusUnauthorized,
		KindProhibido:    http.StatusForbidden,
		KindNoEncontrado: http.StatusNotFound,
		KindConflicto:    http.StatusConflict,
		KindInterno:      http.StatusInternalServerError,
	}
	for k, want := range cases {
		assert.Equal(t, want, k.Status())
	}
}

func TestAs_WrappedError(t *testing.T) {
	err := fmt.Errorf("crear trabajo: %w", Conflicto("duplicado"))
	e := As(err)
	assert.Equal(t, KindConflicto, e.Kind)
	assert.Equal(t, "duplicado", e.Message)
}

func TestAs_UnclassifiedBecomesInterno(t *testing.T) {
	cause := errors.New("connection reset")
	e := As(cause)
	assert.Equal(t, KindInterno, e.Kind)
	assert.Equal(t, "Error interno del servidor", e.Message)
	assert.ErrorIs(t, e, cause)
}
