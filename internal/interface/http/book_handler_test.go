package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awalczyk/libris/internal/application"
	"github.com/awalczyk/libris/internal/domain/entity"
	"github.com/awalczyk/libris/internal/domain/repository"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type stubBookRepo struct{}

func (stubBookRepo) Create(ctx context.Context, b *entity.Book) error {
	b.ID = "b-1"
	return nil
}

func (stubBookRepo) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	return nil, application.ErrBookNotFound
}

type stubSubscriptionRepo struct{}

func (stubSubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error { return nil }
func (stubSubscriptionRepo) Delete(ctx context.Context, id string) error              { return nil }
func (stubSubscriptionRepo) FindVerifiedEmails(ctx context.Context, kind entity.SubscriptionType, value string) ([]string, error) {
	return nil, nil
}
func (stubSubscriptionRepo) FindDailyDigest(ctx context.Context, date time.Time, page, size int) ([]repository.DigestRow, error) {
	return nil, nil
}

type stubBookProducer struct{}

func (stubBookProducer) SendNewBookNotification(ctx context.Context, email string, b *entity.Book) error {
	return nil
}

func postCreateBook(t *testing.T, h *BookHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	return w
}

func newStubBookHandler() *BookHandler {
	svc := application.NewBookService(stubBookRepo{}, stubSubscriptionRepo{}, stubBookProducer{}, testLogger(), nil, "")
	return NewBookHandler(svc, testLogger())
}

func TestBookHandler_CreateRejectsMalformedDate(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{"wrong layout", "31-08-2026"},
		{"impossible date", "2026-13-40"},
		{"garbage", "yesterday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"title":"Solaris","author":"Stanislaw Lem","category":"Science Fiction","added_date":"` + tt.date + `"}`
			w := postCreateBook(t, newStubBookHandler(), body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestBookHandler_CreateAcceptsValidDate(t *testing.T) {
	body := `{"title":"Solaris","author":"Stanislaw Lem","category":"Science Fiction","added_date":"2026-08-30"}`
	w := postCreateBook(t, newStubBookHandler(), body)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Data struct {
			AddedDate string `json:"added_date"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-08-30", resp.Data.AddedDate)
}
