package repository

import (
	"context"
	"time"

	"github.com/awalczyk/libris/internal/domain/entity"
)

// DigestRow pairs one verified subscriber address with the aggregated text
// block listing every book added on the scanned date that matches at least
// one of their subscriptions.
type DigestRow struct {
	Email string
	Books string
}

// SubscriptionRepository defines subscription persistence and the two query
// contracts the notification pipeline consumes.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *entity.Subscription) error
	Delete(ctx context.Context, id string) error

	// FindVerifiedEmails returns the addresses of verified subscribers with a
	// subscription matching (kind, value) exactly.
	FindVerifiedEmails(ctx context.Context, kind entity.SubscriptionType, value string) ([]string, error)

	// FindDailyDigest returns one zero-indexed page of (email, books) rows for
	// books added on date. Rows are ordered by email so pagination is
	// well-defined across page boundaries.
	FindDailyDigest(ctx context.Context, date time.Time, page, size int) ([]DigestRow, error)
}
