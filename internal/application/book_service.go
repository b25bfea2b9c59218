package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/awalczyk/libris/internal/domain/entity"
	"github.com/awalczyk/libris/internal/domain/repository"
)

var ErrBookNotFound = errors.New("book not found")

// BookProducer is the slice of the messaging producer the book fan-out needs.
type BookProducer interface {
	SendNewBookNotification(ctx context.Context, email string, b *entity.Book) error
}

// BookService creates catalog items and fans out single-event notifications
// to the matching verified subscribers.
type BookService struct {
	Books        repository.BookRepository
	Subs         repository.SubscriptionRepository
	Producer     BookProducer
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESBooksIndex string
	Now          func() time.Time
}

func NewBookService(books repository.BookRepository, subs repository.SubscriptionRepository, producer BookProducer, logger *logrus.Logger, es *elasticsearch.Client, esBooksIndex string) *BookService {
	return &BookService{
		Books:        books,
		Subs:         subs,
		Producer:     producer,
		Logger:       logger,
		ES:           es,
		ESBooksIndex: esBooksIndex,
		Now:          time.Now,
	}
}

type CreateBookInput struct {
	Title     string
	Author    string
	Category  string
	PageCount int
	AddedDate time.Time // zero value means "today"
}

// CreateBook persists a new catalog item and triggers the subscriber
// fan-out. Notification problems never fail the creation; they are logged
// and the queue's retry machinery takes over from the enqueue point.
func (s *BookService) CreateBook(ctx context.Context, in CreateBookInput) (*entity.Book, error) {
	b := &entity.Book{
		Title:     in.Title,
		Author:    in.Author,
		Category:  in.Category,
		PageCount: in.PageCount,
		AddedDate: in.AddedDate,
	}
	if b.AddedDate.IsZero() {
		// Calendar date in the local zone, not Truncate: truncation rounds
		// on absolute time and lands on the wrong day east of UTC.
		now := s.Now()
		y, m, d := now.Date()
		b.AddedDate = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}
	if err := s.Books.Create(ctx, b); err != nil {
		return nil, err
	}

	_ = s.indexBook(ctx, b)
	s.NotifySubscribers(ctx, b)
	return b, nil
}

func (s *BookService) GetBook(ctx context.Context, id string) (*entity.Book, error) {
	b, err := s.Books.GetByID(ctx, id)
	if err != nil || b == nil {
		return nil, ErrBookNotFound
	}
	return b, nil
}

// NotifySubscribers computes the distinct set of verified addresses
// subscribed to the book's category or author and enqueues one notification
// per address. An empty match set is informational, not an error.
func (s *BookService) NotifySubscribers(ctx context.Context, b *entity.Book) {
	categoryEmails, err := s.Subs.FindVerifiedEmails(ctx, entity.SubscriptionCategory, b.Category)
	if err != nil {
		s.Logger.WithError(err).WithField("book", b.Title).Error("category subscriber lookup failed")
		return
	}
	authorEmails, err := s.Subs.FindVerifiedEmails(ctx, entity.SubscriptionAuthor, b.Author)
	if err != nil {
		s.Logger.WithError(err).WithField("book", b.Title).Error("author subscriber lookup failed")
		return
	}

	// A subscriber matching both dimensions gets exactly one notification.
	all := make(map[string]struct{}, len(categoryEmails)+len(authorEmails))
	for _, e := range categoryEmails {
		all[e] = struct{}{}
	}
	for _, e := range authorEmails {
		all[e] = struct{}{}
	}

	if len(all) == 0 {
		s.Logger.WithField("book", b.Title).Info("no subscribers found for book")
		return
	}

	queued := 0
	for email := range all {
		if err := s.Producer.SendNewBookNotification(ctx, email, b); err != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{"email": email, "book": b.Title}).Error("failed to enqueue book notification")
			continue
		}
		queued++
	}
	s.Logger.WithFields(logrus.Fields{"book": b.Title, "queued": queued}).Info("queued notifications for new book")
}

func (s *BookService) indexBook(ctx context.Context, b *entity.Book) error {
	if s.ES == nil || s.ESBooksIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         b.ID,
		"title":      b.Title,
		"author":     b.Author,
		"category":   b.Category,
		"page_count": b.PageCount,
		"added_date": b.AddedDate.Format("2006-01-02"),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESBooksIndex, DocumentID: b.ID, Body: strings.NewReader(string(body)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("book_id", b.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("book_id", b.ID).Warn("es index response error")
	}
	return nil
}

// SearchBooks performs a multi_match search on title, author and category.
func (s *BookService) SearchBooks(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESBooksIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "author", "category"},
			},
		},
		"size": size,
	}
	body, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESBooksIndex),
		s.ES.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
