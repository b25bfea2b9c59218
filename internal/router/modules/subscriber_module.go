package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/awalczyk/libris/internal/container"
	handlers "github.com/awalczyk/libris/internal/interface/http"
	"github.com/awalczyk/libris/internal/interface/middleware"
)

type SubscriberModule struct {
	Handler *handlers.SubscriberHandler
}

func NewSubscriberModule(h *handlers.SubscriberHandler) *SubscriberModule {
	return &SubscriberModule{Handler: h}
}

func (m *SubscriberModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/subscribers", registerLimiter, m.Handler.Register)
	rg.GET("/subscribers/verify", verifyLimiter, m.Handler.Verify)
}
