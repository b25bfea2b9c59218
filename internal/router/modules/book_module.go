package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/awalczyk/libris/internal/container"
	handlers "github.com/awalczyk/libris/internal/interface/http"
	"github.com/awalczyk/libris/internal/interface/middleware"
)

type BookModule struct {
	Handler *handlers.BookHandler
}

func NewBookModule(h *handlers.BookHandler) *BookModule {
	return &BookModule{Handler: h}
}

func (m *BookModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP())
	searchLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/books", createLimiter, m.Handler.Create)
	rg.GET("/books/search", searchLimiter, m.Handler.Search)
	rg.GET("/books/:id", m.Handler.Get)
}
