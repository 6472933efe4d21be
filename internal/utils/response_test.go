package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-booking-server/internal/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", apperror.NotFound("Account not found"), http.StatusNotFound, "Account not found"},
		{"duplicate", apperror.Duplicate("Duplicate phone!"), http.StatusConflict, "Duplicate phone!"},
		{"invalid argument", apperror.InvalidArgument("Not Valid Gender!"), http.StatusBadRequest, "Not Valid Gender!"},
		{"illegal state", apperror.IllegalState("Account is not deleted"), http.StatusConflict, "Account is not deleted"},
		{"unauthenticated", apperror.Unauthenticated("Username or password invalid!"), http.StatusUnauthorized, "Username or password invalid!"},
		{"foreign", errors.New("dial tcp: refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body ResponseData
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.message, body.Error)
		})
	}
}
