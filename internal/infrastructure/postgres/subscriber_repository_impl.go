package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/awalczyk/libris/internal/domain/entity"
	"github.com/awalczyk/libris/internal/domain/repository"
)

type SubscriberRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriberRepository(pool *pgxpool.Pool) *SubscriberRepository {
	return &SubscriberRepository{pool: pool}
}

func (r *SubscriberRepository) Create(ctx context.Context, s *entity.Subscriber) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO subscribers (email, name)
		VALUES ($1, $2)
		RETURNING id, verified, created_at, updated_at
	`, s.Email, s.Name)

	return row.Scan(&s.ID, &s.Verified, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SubscriberRepository) GetByID(ctx context.Context, id string) (*entity.Subscriber, error) {
	return r.getOne(ctx, `
		SELECT id, email, name, verified, created_at, updated_at
		FROM subscribers
		WHERE id = $1
	`, id)
}

func (r *SubscriberRepository) GetByEmail(ctx context.Context, email string) (*entity.Subscriber, error) {
	return r.getOne(ctx, `
		SELECT id, email, name, verified, created_at, updated_at
		FROM subscribers
		WHERE email = $1
	`, email)
}

func (r *SubscriberRepository) getOne(ctx context.Context, query string, arg any) (*entity.Subscriber, error) {
	s := &entity.Subscriber{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&s.ID, &s.Email, &s.Name, &s.Verified,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *SubscriberRepository) MarkVerified(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE subscribers
		SET verified = true, updated_at = $1
		WHERE id = $2
	`, time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

var _ repository.SubscriberRepository = (*SubscriberRepository)(nil)
