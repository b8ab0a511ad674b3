package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reoring/modelcheck"
	"github.com/reoring/modelcheck/middleware"
)

// ValidateJSON validates the request body with c, stores the result in the
// request context and aborts with 400 and the issue payload on failure.
func ValidateJSON(c *modelcheck.Compiled) gin.HandlerFunc {
	return func(gc *gin.Context) {
		out, err := middleware.ValidateBody(gc.Request.Context(), c, gc.Request.Body)
		if err != nil {
			gc.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			return
		}
		gc.Request = gc.Request.WithContext(middleware.ContextWithResult(gc.Request.Context(), out))
		gc.Next()
	}
}

// GetResult fetches the validated object from gin.Context.
func GetResult(gc *gin.Context) (map[string]any, bool) {
	return middleware.ResultFromContext(gc.Request.Context())
}
