package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/awalczyk/libris/internal/domain/entity"
	"github.com/awalczyk/libris/internal/domain/repository"
)

var errNotFound = errors.New("not found")

// ErrNotFound reports whether err is the repository-level not-found error.
func ErrNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

func (r *BookRepository) Create(ctx context.Context, b *entity.Book) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO books (title, author, category, page_count, added_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, b.Title, b.Author, b.Category, b.PageCount, b.AddedDate)

	return row.Scan(&b.ID, &b.CreatedAt)
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	b := &entity.Book{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, author, category, page_count, added_date, created_at
		FROM books
		WHERE id = $1
	`, id)

	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.PageCount,
		&b.AddedDate, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}

	return b, nil
}

var _ repository.BookRepository = (*BookRepository)(nil)
