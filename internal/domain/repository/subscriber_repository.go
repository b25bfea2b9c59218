package repository

import (
	"context"

	"github.com/awalczyk/libris/internal/domain/entity"
)

// SubscriberRepository defines the interface for subscriber persistence.
// Verification state is only ever flipped through MarkVerified; the
// notification pipeline reads it, never writes it.
type SubscriberRepository interface {
	Create(ctx context.Context, s *entity.Subscriber) error
	GetByID(ctx context.Context, id string) (*entity.Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*entity.Subscriber, error)
	MarkVerified(ctx context.Context, id string) error
}
