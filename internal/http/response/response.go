package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/fundocs-backend/internal/platform/apierr"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

// ErrorBody is the wire shape of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// RespondError renders err as {"error": msg}. Errors that are not an
// *apierr.Error become a 500 under fallbackCode.
func RespondError(c *gin.Context, log *logger.Logger, err error, fallbackCode string) {
	ae := apierr.As(err, fallbackCode)
	if ae == nil {
		ae = apierr.New(http.StatusInternalServerError, fallbackCode, nil)
	}
	status := ae.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if log != nil {
		fields := []interface{}{"status", status, "code", ae.Code, "path", c.FullPath()}
		if status >= 500 {
			log.Error("Request failed", append(fields, "error", ae.Error())...)
		} else {
			log.Debug("Request rejected", append(fields, "error", ae.Error())...)
		}
	}
	c.JSON(status, ErrorBody{Error: ae.Message()})
}

// RespondBadRequest is used for bodies that do not bind.
func RespondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: msg})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
