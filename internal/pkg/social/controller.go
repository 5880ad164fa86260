package social

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bhavin-bhuva/vibesync/internal/pkg/auth"
	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
)

// Controller exposes the friend-graph endpoints.
type Controller struct {
	Service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{Service: service}
}

type sendRequestBody struct {
	FriendCode string `json:"friendCode" binding:"required"`
}

func (h *Controller) SendRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body sendRequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		req, err := h.Service.SendRequest(ctx, auth.UserID(c), body.FriendCode)
		switch {
		case errors.Is(err, chat.ErrUserNotFound):
			fail(c, http.StatusNotFound, "NOT_FOUND", "no user with that friend code")
		case errors.Is(err, ErrSelfRequest):
			fail(c, http.StatusBadRequest, "INVALID_OPERATION", "cannot add yourself")
		case errors.Is(err, ErrAlreadyFriends):
			fail(c, http.StatusConflict, "ALREADY_FRIENDS", "already friends")
		case errors.Is(err, ErrRequestPending):
			fail(c, http.StatusConflict, "REQUEST_PENDING", "a request is already pending")
		case err != nil:
			fail(c, http.StatusInternalServerError, "INTERNAL", "something went wrong")
		default:
			c.JSON(http.StatusCreated, gin.H{"success": true, "data": req})
		}
	}
}

func (h *Controller) Accept() gin.HandlerFunc {
	return h.settle(func(ctx context.Context, requestID, userID string) error {
		return h.Service.Accept(ctx, requestID, userID)
	})
}

func (h *Controller) Decline() gin.HandlerFunc {
	return h.settle(func(ctx context.Context, requestID, userID string) error {
		return h.Service.Decline(ctx, requestID, userID)
	})
}

func (h *Controller) settle(action func(ctx context.Context, requestID, userID string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("id")
		if requestID == "" {
			fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "request id is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := action(ctx, requestID, auth.UserID(c))
		switch {
		case errors.Is(err, ErrRequestNotFound):
			fail(c, http.StatusNotFound, "NOT_FOUND", "friend request not found")
		case errors.Is(err, ErrNotReceiver):
			fail(c, http.StatusForbidden, "FORBIDDEN", "request is not addressed to you")
		case err != nil:
			fail(c, http.StatusInternalServerError, "INTERNAL", "something went wrong")
		default:
			c.JSON(http.StatusOK, gin.H{"success": true})
		}
	}
}

func (h *Controller) RemoveFriend() gin.HandlerFunc {
	return func(c *gin.Context) {
		friendID := c.Param("id")
		if friendID == "" {
			fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "friend id is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := h.Service.RemoveFriend(ctx, auth.UserID(c), friendID)
		switch {
		case errors.Is(err, chat.ErrNotFriends):
			fail(c, http.StatusNotFound, "NOT_FOUND", "not friends with this user")
		case err != nil:
			fail(c, http.StatusInternalServerError, "INTERNAL", "something went wrong")
		default:
			c.JSON(http.StatusOK, gin.H{"success": true})
		}
	}
}

func (h *Controller) ListFriends() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		friends, err := h.Service.ListFriends(ctx, auth.UserID(c))
		if err != nil {
			fail(c, http.StatusInternalServerError, "INTERNAL", "something went wrong")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": friends})
	}
}

func (h *Controller) ListRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		reqs, err := h.Service.ListIncomingRequests(ctx, auth.UserID(c))
		if err != nil {
			fail(c, http.StatusInternalServerError, "INTERNAL", "something went wrong")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": reqs})
	}
}

func fail(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{"success": false, "error": gin.H{"code": code, "message": msg}})
}
