package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Upstream reports a failure of an external dependency (the payment
// processor), distinct from validation failures and from our own faults.
func Upstream(c *gin.Context, code, message string) {
	Write(c, http.StatusBadGateway, code, message)
}

// ServiceUnavailable reports that the data store is unreachable. Callers can
// retry shortly; their input was not the problem.
func ServiceUnavailable(c *gin.Context) {
	Write(c, http.StatusServiceUnavailable, "service_unavailable", "Datastore unreachable, please try again shortly.")
}
