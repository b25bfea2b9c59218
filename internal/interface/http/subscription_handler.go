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

type SubscriptionHandler struct {
	Svc    *application.SubscriptionService
	Logger *logrus.Logger
}

func NewSubscriptionHandler(svc *application.SubscriptionService, logger *logrus.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{Svc: svc, Logger: logger}
}

type createSubscriptionRequest struct {
	SubscriberID string `json:"subscriber_id" binding:"required,uuid"`
	Type         string `json:"type" binding:"required"`
	Value        string `json:"value" binding:"required"`
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	sub, err := h.Svc.Create(c.Request.Context(), req.SubscriberID, req.Type, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrSubscriberNotFound):
			response.Error[any](c, http.StatusNotFound, "subscriber not found", nil)
		case errors.Is(err, application.ErrNotVerified):
			response.Error[any](c, http.StatusForbidden, "email must be verified before creating subscription", nil)
		default:
			// covers the closed-enum kind rejection
			response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":            sub.ID,
		"subscriber_id": sub.SubscriberID,
		"type":          string(sub.Type),
		"value":         sub.Value,
	}, "subscription created", nil)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	if err := h.Svc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		response.Error[any](c, http.StatusNotFound, "subscription not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"cancelled": true}, "subscription cancelled", nil)
}
