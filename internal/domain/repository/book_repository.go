package repository

import (
	"context"

	"github.com/awalczyk/libris/internal/domain/entity"
)

// BookRepository defines the interface for catalog persistence.
type BookRepository interface {
	Create(ctx context.Context, b *entity.Book) error
	GetByID(ctx context.Context, id string) (*entity.Book, error)
}
