package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/awalczyk/libris/internal/application"
	"github.com/awalczyk/libris/pkg/response"
	"github.com/awalczyk/libris/pkg/validation"
)

type SubscriberHandler struct {
	Svc    *application.SubscriberService
	Logger *logrus.Logger
}

func NewSubscriberHandler(svc *application.SubscriberService, logger *logrus.Logger) *SubscriberHandler {
	return &SubscriberHandler{Svc: svc, Logger: logger}
}

type registerSubscriberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

func (h *SubscriberHandler) Register(c *gin.Context) {
	var req registerSubscriberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	sub, err := h.Svc.Register(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		h.Logger.WithError(err).WithField("email", req.Email).Error("failed to register subscriber")
		response.Error[any](c, http.StatusInternalServerError, "failed to register", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":       sub.ID,
		"email":    sub.Email,
		"name":     sub.Name,
		"verified": sub.Verified,
	}, "subscriber registered, verification email queued", nil)
}

func (h *SubscriberHandler) Verify(c *gin.Context) {
	token := c.Query("token")
	if err := h.Svc.Verify(c.Request.Context(), token); err != nil {
		if errors.Is(err, application.ErrTokenInvalid) {
			response.Error[any](c, http.StatusBadRequest, "verification token invalid or expired", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "verification failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"verified": true}, "email verified", nil)
}
