package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/awalczyk/libris/internal/application"
	"github.com/awalczyk/libris/pkg/response"
	"github.com/awalczyk/libris/pkg/validation"
)

type BookHandler struct {
	Svc    *application.BookService
	Logger *logrus.Logger
}

func NewBookHandler(svc *application.BookService, logger *logrus.Logger) *BookHandler {
	return &BookHandler{Svc: svc, Logger: logger}
}

type createBookRequest struct {
	Title     string `json:"title" binding:"required"`
	Author    string `json:"author" binding:"required"`
	Category  string `json:"category" binding:"required"`
	PageCount int    `json:"page_count" binding:"omitempty,gt=0"`
	AddedDate string `json:"added_date" binding:"omitempty,datetime=2006-01-02"`
}

func (h *BookHandler) Create(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.CreateBookInput{
		Title:     req.Title,
		Author:    req.Author,
		Category:  req.Category,
		PageCount: req.PageCount,
	}
	if req.AddedDate != "" {
		d, err := time.Parse("2006-01-02", req.AddedDate)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid added_date", nil)
			return
		}
		in.AddedDate = d
	}

	b, err := h.Svc.CreateBook(c.Request.Context(), in)
	if err != nil {
		h.Logger.WithError(err).Error("failed to create book")
		response.Error[any](c, http.StatusInternalServerError, "failed to create book", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":         b.ID,
		"title":      b.Title,
		"author":     b.Author,
		"category":   b.Category,
		"page_count": b.PageCount,
		"added_date": b.AddedDate.Format("2006-01-02"),
	}, "book created", nil)
}

func (h *BookHandler) Get(c *gin.Context) {
	b, err := h.Svc.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "book not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":         b.ID,
		"title":      b.Title,
		"author":     b.Author,
		"category":   b.Category,
		"page_count": b.PageCount,
		"added_date": b.AddedDate.Format("2006-01-02"),
	}, "book", nil)
}

func (h *BookHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchBooks(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Warn("book search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
