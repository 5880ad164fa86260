package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/usecase"
)

// ok writes the success envelope shared by every endpoint.
func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// fail writes the structured error envelope.
func fail(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{"success": false, "error": gin.H{"code": code, "message": msg}})
}

// failInternal hides store failures behind a generic message; details stay in
// the server log.
func failInternal(c *gin.Context) {
	fail(c, http.StatusInternalServerError, "INTERNAL", "something went wrong")
}

// failFromUseCase maps a use case error to the default validation/persistence
// split used by endpoints without a more specific mapping.
func failFromUseCase(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrPersistence) {
		failInternal(c)
		return
	}
	fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}
