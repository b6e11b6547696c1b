package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the error envelope every endpoint returns on failure.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
}

// Abort writes the public envelope and, when the underlying error is known,
// records it on the gin context for the error handler middleware and the
// request log.
func Abort(c *gin.Context, status int, err error, msg string) {
	resp := Response{Status: status, Error: msg}

	if err != nil {
		_ = c.Error(gin.Error{
			Err:  err,
			Type: gin.ErrorTypePublic,
			Meta: resp,
		})
	}
	c.AbortWithStatusJSON(status, resp)
}

func BadRequest(c *gin.Context, err error, msg string) {
	Abort(c, http.StatusBadRequest, err, msg)
}

func Internal(c *gin.Context, err error) {
	Abort(c, http.StatusInternalServerError, err, "Internal server error")
}
