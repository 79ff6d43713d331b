package response

import (
	"net/http"

	"busline/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a domain error to the HTTP status it deserves.
// Internal errors are never leaked to the caller verbatim.
func RespondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case apperrors.IsNotFound(err):
		RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case apperrors.IsForbidden(err):
		RespondJSON(c, "error", http.StatusForbidden, err.Error(), nil, nil)
	case apperrors.IsConflict(err):
		RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	default:
		RespondJSON(c, "error", http.StatusInternalServerError, "Something went wrong.", nil, nil)
	}
}
