package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/vitalsync/healthmon-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError maps error kinds to HTTP statuses. Storage fault detail is
// logged where it occurs; clients only see a generic message for those.
func RespondError(c *gin.Context, err error) {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrNotFound:
		c.JSON(http.StatusNotFound, NewErrorResponse(err.Error()))
	case apperrors.ErrValidation:
		c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
	case apperrors.ErrConflict:
		c.JSON(http.StatusConflict, NewErrorResponse(err.Error()))
	case apperrors.ErrRoleMismatch:
		c.JSON(http.StatusForbidden, NewErrorResponse(err.Error()))
	case apperrors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized"))
	default:
		c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
	}
}
