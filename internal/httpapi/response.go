package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"insightgraph/internal/store"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondStoreError maps store failures onto HTTP statuses.
func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotReady) {
		RespondError(c, http.StatusServiceUnavailable, "not_ready", err)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal", err)
}
