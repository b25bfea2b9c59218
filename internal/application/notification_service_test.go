package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awalczyk/libris/internal/domain/entity"
	"github.com/awalczyk/libris/internal/domain/repository"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeSubscriptionRepo serves digest pages from a fixed row set and counts
// page fetches.
type fakeSubscriptionRepo struct {
	rows       []repository.DigestRow
	fetchCount int
	failPage   int // page index that returns an error; -1 disables
}

func newFakeSubscriptionRepo(n int) *fakeSubscriptionRepo {
	rows := make([]repository.DigestRow, n)
	for i := range rows {
		rows[i] = repository.DigestRow{
			Email: fmt.Sprintf("reader%02d@example.com", i),
			Books: fmt.Sprintf("Book %d - Author %d (Fiction)", i, i),
		}
	}
	return &fakeSubscriptionRepo{rows: rows, failPage: -1}
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	return errors.New("not implemented")
}

func (f *fakeSubscriptionRepo) Delete(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func (f *fakeSubscriptionRepo) FindVerifiedEmails(ctx context.Context, kind entity.SubscriptionType, value string) ([]string, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSubscriptionRepo) FindDailyDigest(ctx context.Context, date time.Time, page, size int) ([]repository.DigestRow, error) {
	f.fetchCount++
	if page == f.failPage {
		return nil, errors.New("store unavailable")
	}
	start := page * size
	if start >= len(f.rows) {
		return nil, nil
	}
	end := start + size
	if end > len(f.rows) {
		end = len(f.rows)
	}
	return f.rows[start:end], nil
}

// fakeDigestProducer records enqueued digests and can fail specific
// recipients.
type fakeDigestProducer struct {
	mu       sync.Mutex
	sent     []string
	subjects []string
	failFor  map[string]bool
}

func (f *fakeDigestProducer) SendDailyDigest(ctx context.Context, email, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[email] {
		return errors.New("publish failed")
	}
	f.sent = append(f.sent, email)
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakeDigestProducer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func TestRunForDate_TwoPages(t *testing.T) {
	repo := newFakeSubscriptionRepo(15)
	producer := &fakeDigestProducer{}
	svc := NewNotificationService(repo, producer, testLogger(), 10, 0)

	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	total, err := svc.RunForDate(context.Background(), date)

	require.NoError(t, err)
	assert.Equal(t, 15, total)
	assert.Equal(t, 2, repo.fetchCount, "a short second page terminates the scan")
	assert.Equal(t, 15, producer.sentCount())
	assert.Contains(t, producer.subjects[0], "2026-08-31", "subject embeds the date")
}

func TestRunForDate_ExactPageBoundary(t *testing.T) {
	// 20 rows at size 10: the second page is full, so a third (empty) fetch
	// is needed to observe the short-page signal.
	repo := newFakeSubscriptionRepo(20)
	producer := &fakeDigestProducer{}
	svc := NewNotificationService(repo, producer, testLogger(), 10, 0)

	total, err := svc.RunForDate(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, 20, total)
	assert.Equal(t, 3, repo.fetchCount)
}

func TestRunForDate_PausesBetweenPagesOnly(t *testing.T) {
	// 15 rows at size 10: one full page, one short page, exactly one pause
	// in between. No pause after the short page ends the run.
	repo := newFakeSubscriptionRepo(15)
	producer := &fakeDigestProducer{}
	svc := NewNotificationService(repo, producer, testLogger(), 10, 100*time.Millisecond)

	var pauses []time.Duration
	var fetchesAtPause []int
	svc.Sleep = func(d time.Duration) {
		pauses = append(pauses, d)
		fetchesAtPause = append(fetchesAtPause, repo.fetchCount)
	}

	total, err := svc.RunForDate(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, 15, total)
	require.Len(t, pauses, 1)
	assert.Equal(t, 100*time.Millisecond, pauses[0])
	assert.Equal(t, []int{1}, fetchesAtPause, "pause falls after the first fetch, before the second")
}

func TestRunForDate_PauseCountAtExactBoundary(t *testing.T) {
	// 20 rows at size 10: two full pages then an empty one, so two pauses.
	repo := newFakeSubscriptionRepo(20)
	svc := NewNotificationService(repo, &fakeDigestProducer{}, testLogger(), 10, time.Millisecond)

	pauses := 0
	svc.Sleep = func(time.Duration) { pauses++ }

	_, err := svc.RunForDate(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, 2, pauses)
}

func TestRunForDate_NoPauseOnSinglePage(t *testing.T) {
	repo := newFakeSubscriptionRepo(4)
	svc := NewNotificationService(repo, &fakeDigestProducer{}, testLogger(), 10, time.Millisecond)

	pauses := 0
	svc.Sleep = func(time.Duration) { pauses++ }

	_, err := svc.RunForDate(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0, pauses)
}

func TestRunForDate_EmptyDataset(t *testing.T) {
	repo := newFakeSubscriptionRepo(0)
	producer := &fakeDigestProducer{}
	svc := NewNotificationService(repo, producer, testLogger(), 10, 0)

	total, err := svc.RunForDate(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Equal(t, 1, repo.fetchCount)
}

func TestRunForDate_RowFailureDoesNotAbort(t *testing.T) {
	repo := newFakeSubscriptionRepo(15)
	producer := &fakeDigestProducer{failFor: map[string]bool{"reader03@example.com": true}}
	svc := NewNotificationService(repo, producer, testLogger(), 10, 0)

	total, err := svc.RunForDate(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, 14, total, "a failed row reduces the count, nothing more")
	assert.Equal(t, 2, repo.fetchCount)
}

func TestRunForDate_PageFetchErrorAbortsWithPartialCount(t *testing.T) {
	repo := newFakeSubscriptionRepo(25)
	repo.failPage = 1
	producer := &fakeDigestProducer{}
	svc := NewNotificationService(repo, producer, testLogger(), 10, 0)

	total, err := svc.RunForDate(context.Background(), time.Now())

	require.Error(t, err)
	assert.Equal(t, 10, total, "only page 0 was dispatched before the abort")
}

func TestRunForDate_RerunProducesIndependentSet(t *testing.T) {
	repo := newFakeSubscriptionRepo(5)
	producer := &fakeDigestProducer{}
	svc := NewNotificationService(repo, producer, testLogger(), 10, 0)

	for i := 0; i < 2; i++ {
		total, err := svc.RunForDate(context.Background(), time.Now())
		require.NoError(t, err)
		assert.Equal(t, 5, total)
	}
	// No dedup across runs: every recipient is notified again.
	assert.Equal(t, 10, producer.sentCount())
}

func TestPage_HasMore(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		page    int
		hasMore bool
		want    int
	}{
		{"full page", 15, 0, true, 10},
		{"short page", 15, 1, false, 5},
		{"empty page", 15, 2, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSubscriptionRepo(tt.rows)
			svc := NewNotificationService(repo, &fakeDigestProducer{}, testLogger(), 10, 0)

			p, err := svc.Page(context.Background(), time.Now(), tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, len(p.Rows))
			assert.Equal(t, tt.hasMore, p.HasMore)
		})
	}
}

func TestPage_VisitsEveryRowExactlyOnce(t *testing.T) {
	repo := newFakeSubscriptionRepo(37)
	producer := &fakeDigestProducer{}
	svc := NewNotificationService(repo, producer, testLogger(), 5, 0)

	total, err := svc.RunForDate(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 37, total)

	seen := make(map[string]int)
	producer.mu.Lock()
	for _, e := range producer.sent {
		seen[e]++
	}
	producer.mu.Unlock()
	assert.Len(t, seen, 37, "no gaps")
	for email, n := range seen {
		assert.Equal(t, 1, n, "duplicate notification for %s", email)
	}
}
