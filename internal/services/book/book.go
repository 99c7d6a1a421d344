package book

import (
	"bookstore/internal/domain/models"
	"context"
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// ErrInvalidBookId is returned when an identifier is not a well-formed
// ObjectID. The store is never queried in that case.
var ErrInvalidBookId = errors.New("invalid book id")

const resultsPerPage = 10

type Service struct {
	log          *slog.Logger
	bookProvider Provider
}

type Provider interface {
	GetBook(ctx context.Context, id string) (models.Book, error)
	ListBooks(ctx context.Context, keyword string, limit int64, skip int64) ([]models.Book, error)
	SaveBook(ctx context.Context, book models.Book) (models.Book, error)
	UpdateBook(ctx context.Context, id string, update models.BookUpdate) (models.Book, error)
	RemoveBook(ctx context.Context, id string) (models.Book, error)
}

// ListQuery narrows a listing: optional title keyword and 1-based page.
type ListQuery struct {
	Keyword string
	Page    int64
}

type CreateInput struct {
	Title       string
	Author      string
	Description string
	Price       float64
	Category    string
}

func New(
	log *slog.Logger,
	bookProvider Provider,
) *Service {
	return &Service{
		log:          log,
		bookProvider: bookProvider,
	}
}

func (s *Service) Book(ctx context.Context, id string) (models.Book, error) {
	const op = "services.book.Book"

	if !primitive.IsValidObjectID(id) {
		return models.Book{}, fmt.Errorf("%s: %w", op, ErrInvalidBookId)
	}

	book, err := s.bookProvider.GetBook(ctx, id)
	if err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	return book, nil
}

func (s *Service) Books(ctx context.Context, query ListQuery) ([]models.Book, error) {
	const op = "services.book.Books"

	page := query.Page
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * resultsPerPage

	books, err := s.bookProvider.ListBooks(ctx, query.Keyword, resultsPerPage, skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return books, nil
}

func (s *Service) CreateBook(
	ctx context.Context,
	input CreateInput,
	user models.User,
) (models.Book, error) {
	const op = "services.book.CreateBook"

	book := models.Book{
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Owner: models.Owner{
			Id:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
		},
	}

	created, err := s.bookProvider.SaveBook(ctx, book)
	if err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("book created",
		slog.String("id", created.ID.Hex()),
		slog.String("owner", created.Owner.Id),
	)

	return created, nil
}

func (s *Service) UpdateBook(
	ctx context.Context,
	id string,
	update models.BookUpdate,
) (models.Book, error) {
	const op = "services.book.UpdateBook"

	if !primitive.IsValidObjectID(id) {
		return models.Book{}, fmt.Errorf("%s: %w", op, ErrInvalidBookId)
	}

	book, err := s.bookProvider.UpdateBook(ctx, id, update)
	if err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	return book, nil
}

func (s *Service) DeleteBook(ctx context.Context, id string) (models.Book, error) {
	const op = "services.book.DeleteBook"

	if !primitive.IsValidObjectID(id) {
		return models.Book{}, fmt.Errorf("%s: %w", op, ErrInvalidBookId)
	}

	book, err := s.bookProvider.RemoveBook(ctx, id)
	if err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	return book, nil
}
