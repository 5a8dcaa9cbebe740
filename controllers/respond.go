package controllers

import (
	"errors"
	"net/http"

	"backend/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps an AppError to its HTTP status and translated message.
// The client shows the message verbatim in its alert.
func respondError(c *gin.Context, err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		c.JSON(utils.HTTPStatus(appErr.Code), gin.H{
			"code":  appErr.Code,
			"error": appErr.Message(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":  utils.ErrUnknown,
		"error": utils.ErrorMessage(utils.ErrUnknown),
	})
}
