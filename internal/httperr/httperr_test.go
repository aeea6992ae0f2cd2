package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", ErrBusiness("invalid_date"), http.StatusBadRequest, "invalid_date"},
		{"not found", ErrNotFound("barber_not_found"), http.StatusNotFound, "barber_not_found"},
		{"slot conflict", ErrConflict(CodeSlotConflict), http.StatusConflict, CodeSlotConflict},
		{"wrapped conflict", fmt.Errorf("create: %w", ErrConflict(CodeSlotConflict)), http.StatusConflict, CodeSlotConflict},
		{"unavailable", ErrUnavailable(CodeServiceUnavailable), http.StatusServiceUnavailable, CodeServiceUnavailable},
		{"forbidden", ErrForbidden("forbidden"), http.StatusForbidden, "forbidden"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestIsSlotConflict(t *testing.T) {
	assert.True(t, IsSlotConflict(fmt.Errorf("wrapped: %w", ErrConflict(CodeSlotConflict))))
	assert.False(t, IsSlotConflict(ErrConflict(CodeInvalidTransition)))
	assert.False(t, IsSlotConflict(errors.New("slot_conflict")))
	assert.True(t, IsKind(ErrNotFound("x"), KindNotFound))
}
