package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

// Controller handles registration, login and profile endpoints.
type Controller struct {
	Service *Service
	Users   repository.UserRepository
}

func NewController(service *Service, users repository.UserRepository) *Controller {
	return &Controller{Service: service, Users: users}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
	Avatar *string `json:"avatar"`
}

func (h *Controller) Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, token, err := h.Service.Register(ctx, req.Name, req.Email, req.Password)
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   gin.H{"code": "EMAIL_TAKEN", "message": "email already registered"},
			})
			return
		}
		if err != nil {
			internalError(c)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    gin.H{"user": user, "accessToken": token},
		})
	}
}

func (h *Controller) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, token, err := h.Service.Login(ctx, req.Email, req.Password)
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_CREDENTIALS", "message": "invalid email or password"},
			})
			return
		}
		if err != nil {
			internalError(c)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"user": user, "accessToken": token},
		})
	}
}

// Refresh issues a new access token for the already-authenticated caller,
// letting clients extend a session before the current token expires.
func (h *Controller) Refresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := h.Service.Tokens.Issue(UserID(c), Email(c))
		if err != nil {
			internalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"accessToken": token},
		})
	}
}

func (h *Controller) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		user, err := h.Users.FindByID(ctx, UserID(c))
		if errors.Is(err, chat.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   gin.H{"code": "NOT_FOUND", "message": "user not found"},
			})
			return
		}
		if err != nil {
			internalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	}
}

func (h *Controller) UpdateMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		user, err := h.Users.UpdateProfile(ctx, UserID(c), req.Name, req.Status, req.Avatar)
		if errors.Is(err, chat.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   gin.H{"code": "NOT_FOUND", "message": "user not found"},
			})
			return
		}
		if err != nil {
			internalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   gin.H{"code": "VALIDATION_ERROR", "message": msg},
	})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   gin.H{"code": "INTERNAL", "message": "something went wrong"},
	})
}
