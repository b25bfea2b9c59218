package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/awalczyk/libris/internal/container"
	handlers "github.com/awalczyk/libris/internal/interface/http"
	"github.com/awalczyk/libris/internal/interface/middleware"
)

type SubscriptionModule struct {
	Handler *handlers.SubscriptionHandler
}

func NewSubscriptionModule(h *handlers.SubscriptionHandler) *SubscriptionModule {
	return &SubscriptionModule{Handler: h}
}

func (m *SubscriptionModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP())

	rg.POST("/subscriptions", limiter, m.Handler.Create)
	rg.DELETE("/subscriptions/:id", limiter, m.Handler.Cancel)
}
