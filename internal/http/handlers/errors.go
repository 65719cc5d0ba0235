package handlers

import (
	"errors"
	"net/http"

	"taskly/internal/domain"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON envelope of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// badRequest answers a client fault with its reason.
func badRequest(c *gin.Context, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Details = verr.Error()
	} else if err != nil {
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}

// serverError answers a storage failure. Details carry the driver message
// only when withDetails is set.
func serverError(c *gin.Context, msg string, err error, withDetails bool) {
	_ = c.Error(err)
	resp := ErrorResponse{Error: msg}
	if withDetails {
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
}
