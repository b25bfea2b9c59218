package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/awalczyk/libris/internal/domain/entity"
	"github.com/awalczyk/libris/internal/domain/repository"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *entity.Subscription) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO subscriptions (subscriber_id, type, value)
		VALUES ($1, $2, $3)
		RETURNING id
	`, s.SubscriberID, string(s.Type), s.Value)

	return row.Scan(&s.ID)
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *SubscriptionRepository) FindVerifiedEmails(ctx context.Context, kind entity.SubscriptionType, value string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT c.email
		FROM subscriptions s
		JOIN subscribers c ON s.subscriber_id = c.id AND c.verified = true
		WHERE s.type = $1 AND s.value = $2
	`, string(kind), value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

// FindDailyDigest aggregates, per verified subscriber, every book added on
// date that matches one of their subscriptions. The ORDER BY email makes the
// LIMIT/OFFSET pagination deterministic; without it pages could skip or
// duplicate rows under concurrent writes.
func (r *SubscriptionRepository) FindDailyDigest(ctx context.Context, date time.Time, page, size int) ([]repository.DigestRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.email,
		       STRING_AGG(b.title || ' - ' || b.author || ' (' || b.category || ')', E'\n' ORDER BY b.title) AS books
		FROM subscriptions s
		JOIN subscribers c ON s.subscriber_id = c.id AND c.verified = true
		JOIN books b ON b.added_date = $1
		WHERE (s.type = 'AUTHOR' AND s.value = b.author)
		   OR (s.type = 'CATEGORY' AND s.value = b.category)
		GROUP BY c.email
		ORDER BY c.email
		LIMIT $2 OFFSET $3
	`, date, size, page*size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.DigestRow
	for rows.Next() {
		var row repository.DigestRow
		if err := rows.Scan(&row.Email, &row.Books); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)
