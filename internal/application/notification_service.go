package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/awalczyk/libris/internal/domain/repository"
)

// DigestProducer is the slice of the messaging producer the driver needs.
type DigestProducer interface {
	SendDailyDigest(ctx context.Context, email, subject, body string) error
}

// DigestPage is one bounded slice of the paginated daily scan. HasMore is
// advisory; the driver terminates on the short-page signal instead, which
// stays correct even under concurrent inserts.
type DigestPage struct {
	Rows    []repository.DigestRow
	HasMore bool
}

// NotificationService drives the daily digest dispatch: it walks the
// paginated scan of matching subscribers for a date and enqueues one
// aggregated email per recipient.
type NotificationService struct {
	Subs      repository.SubscriptionRepository
	Producer  DigestProducer
	Logger    *logrus.Logger
	BatchSize int
	PageDelay time.Duration
	Sleep     func(time.Duration)
}

func NewNotificationService(subs repository.SubscriptionRepository, producer DigestProducer, logger *logrus.Logger, batchSize int, pageDelay time.Duration) *NotificationService {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &NotificationService{
		Subs:      subs,
		Producer:  producer,
		Logger:    logger,
		BatchSize: batchSize,
		PageDelay: pageDelay,
		Sleep:     time.Sleep,
	}
}

// Page fetches one zero-indexed page of the scan for date.
func (s *NotificationService) Page(ctx context.Context, date time.Time, page int) (DigestPage, error) {
	rows, err := s.Subs.FindDailyDigest(ctx, date, page, s.BatchSize)
	if err != nil {
		return DigestPage{}, err
	}
	return DigestPage{Rows: rows, HasMore: len(rows) == s.BatchSize}, nil
}

// RunForDate processes every page for date and returns the number of
// successfully enqueued recipients. Each page's dispatch work runs on its
// own worker and its count is folded back into the total before the next
// page is fetched; a fetch error aborts the run with the partial total. The
// run never retries anything itself: durability is the queue's job.
func (s *NotificationService) RunForDate(ctx context.Context, date time.Time) (int, error) {
	total := 0
	for page := 0; ; page++ {
		p, err := s.Page(ctx, date, page)
		if err != nil {
			s.Logger.WithFields(logrus.Fields{
				"date":  date.Format("2006-01-02"),
				"page":  page,
				"error": err.Error(),
			}).Error("digest page fetch failed, aborting run")
			return total, err
		}

		done := make(chan int, 1)
		go func(rows []repository.DigestRow, page int) {
			done <- s.dispatchPage(ctx, date, rows, page)
		}(p.Rows, page)

		// Short page means the scan is exhausted; trust the row count over
		// the HasMore flag.
		short := len(p.Rows) < s.BatchSize
		total += <-done

		if short {
			break
		}
		s.Sleep(s.PageDelay)
	}

	s.Logger.WithFields(logrus.Fields{
		"date":  date.Format("2006-01-02"),
		"total": total,
	}).Info("daily notification processing completed")
	return total, nil
}

// dispatchPage enqueues one digest per row and returns how many enqueues
// succeeded. A failed row is logged and skipped, never aborting the page.
func (s *NotificationService) dispatchPage(ctx context.Context, date time.Time, rows []repository.DigestRow, page int) int {
	count := 0
	for _, row := range rows {
		subject := "New books in the library - " + date.Format("2006-01-02")
		body := "Here are the new books added to the library today, matching your subscriptions:\n\n" + row.Books
		if err := s.Producer.SendDailyDigest(ctx, row.Email, subject, body); err != nil {
			s.Logger.WithFields(logrus.Fields{
				"email": row.Email,
				"page":  page,
				"error": err.Error(),
			}).Error("failed to enqueue digest notification")
			continue
		}
		count++
	}
	s.Logger.WithFields(logrus.Fields{"page": page, "count": count}).Debug("processed digest page")
	return count
}
