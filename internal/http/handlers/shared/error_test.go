package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	StatusCode int                    `json:"status_code"`
	Msg        string                 `json:"msg"`
	Data       map[string]interface{} `json:"data"`
}

func serveServiceError(t *testing.T, err error) (int, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Locale", "en-US")

	RespondServiceError(c, err)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespondServiceErrorMapsKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", service.ErrOrderCancelNotAllowed, response.CodeBadRequest},
		{"not found", service.ErrCartNotFound, response.CodeNotFound},
		{"forbidden", service.ErrStaffRequired, response.CodeForbidden},
		{"unauthenticated", service.ErrNotAuthenticated, response.CodeUnauthorized},
		{"conflict", service.ErrCategoryInUse, response.CodeConflict},
		{"unknown", errors.New("db down"), response.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			httpStatus, body := serveServiceError(t, tc.err)
			require.Equal(t, http.StatusOK, httpStatus)
			require.Equal(t, tc.code, body.StatusCode)
		})
	}
}

func TestRespondServiceErrorCarriesFieldAndMessage(t *testing.T) {
	_, body := serveServiceError(t, service.ErrOrderCancelNotAllowed)
	require.Equal(t, "Order cannot be cancelled in its current state.", body.Msg)
	require.Equal(t, "status", body.Data["field"])

	_, body = serveServiceError(t, service.ErrCategoryInUse)
	require.Equal(t, "Category still has products", body.Msg)
}
