package book

import (
	"bookstore/internal/domain/models"
	"bookstore/internal/storage"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// providerRecorder records every provider call so tests can assert both the
// arguments the service passed down and whether a call happened at all.
type providerRecorder struct {
	getCalls    int
	listCalls   int
	saveCalls   int
	updateCalls int
	removeCalls int

	lastId      string
	lastKeyword string
	lastLimit   int64
	lastSkip    int64
	lastSaved   models.Book
	lastUpdate  models.BookUpdate

	book  models.Book
	books []models.Book
	err   error
}

func (p *providerRecorder) GetBook(_ context.Context, id string) (models.Book, error) {
	p.getCalls++
	p.lastId = id
	return p.book, p.err
}

func (p *providerRecorder) ListBooks(_ context.Context, keyword string, limit int64, skip int64) ([]models.Book, error) {
	p.listCalls++
	p.lastKeyword = keyword
	p.lastLimit = limit
	p.lastSkip = skip
	return p.books, p.err
}

func (p *providerRecorder) SaveBook(_ context.Context, book models.Book) (models.Book, error) {
	p.saveCalls++
	p.lastSaved = book
	if p.err != nil {
		return models.Book{}, p.err
	}
	book.ID = primitive.NewObjectID()
	return book, nil
}

func (p *providerRecorder) UpdateBook(_ context.Context, id string, update models.BookUpdate) (models.Book, error) {
	p.updateCalls++
	p.lastId = id
	p.lastUpdate = update
	return p.book, p.err
}

func (p *providerRecorder) RemoveBook(_ context.Context, id string) (models.Book, error) {
	p.removeCalls++
	p.lastId = id
	return p.book, p.err
}

func newTestService(provider *providerRecorder) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, provider)
}

func TestBook(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id is rejected before any store call", func(t *testing.T) {
		for _, id := range []string{"", "abc", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", "65d4f0c2a1b2c3d4e5f6a7"} {
			provider := &providerRecorder{}
			svc := newTestService(provider)

			_, err := svc.Book(ctx, id)

			assert.ErrorIs(t, err, ErrInvalidBookId, "id %q", id)
			assert.Zero(t, provider.getCalls, "id %q", id)
		}
	})

	t.Run("missing record", func(t *testing.T) {
		provider := &providerRecorder{err: storage.ErrorBookNotFound}
		svc := newTestService(provider)

		_, err := svc.Book(ctx, primitive.NewObjectID().Hex())

		assert.ErrorIs(t, err, storage.ErrorBookNotFound)
		assert.Equal(t, 1, provider.getCalls)
	})

	t.Run("existing record is returned as stored", func(t *testing.T) {
		want := models.Book{
			ID:     primitive.NewObjectID(),
			Title:  "The Go Programming Language",
			Author: "Alan Donovan",
		}
		provider := &providerRecorder{book: want}
		svc := newTestService(provider)

		got, err := svc.Book(ctx, want.ID.Hex())

		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, want.ID.Hex(), provider.lastId)
	})
}

func TestBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("keyword is passed through", func(t *testing.T) {
		provider := &providerRecorder{}
		svc := newTestService(provider)

		_, err := svc.Books(ctx, ListQuery{Keyword: "test"})

		require.NoError(t, err)
		assert.Equal(t, "test", provider.lastKeyword)
	})

	t.Run("page defaults to the first one", func(t *testing.T) {
		for _, page := range []int64{0, -3, 1} {
			provider := &providerRecorder{}
			svc := newTestService(provider)

			_, err := svc.Books(ctx, ListQuery{Page: page})

			require.NoError(t, err)
			assert.Equal(t, int64(resultsPerPage), provider.lastLimit)
			assert.Zero(t, provider.lastSkip)
		}
	})

	t.Run("second page skips one page worth of records", func(t *testing.T) {
		provider := &providerRecorder{}
		svc := newTestService(provider)

		_, err := svc.Books(ctx, ListQuery{Page: 2})

		require.NoError(t, err)
		assert.Equal(t, int64(resultsPerPage), provider.lastLimit)
		assert.Equal(t, int64(resultsPerPage), provider.lastSkip)
	})

	t.Run("provider results are returned in order", func(t *testing.T) {
		books := []models.Book{
			{ID: primitive.NewObjectID(), Title: "first"},
			{ID: primitive.NewObjectID(), Title: "second"},
		}
		provider := &providerRecorder{books: books}
		svc := newTestService(provider)

		got, err := svc.Books(ctx, ListQuery{})

		require.NoError(t, err)
		assert.Equal(t, books, got)
	})
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	user := models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Ghulam",
		Email: "ghulam@gmail.com",
	}

	t.Run("owner is attached from the requesting user", func(t *testing.T) {
		provider := &providerRecorder{}
		svc := newTestService(provider)

		created, err := svc.CreateBook(ctx, CreateInput{Title: "New Book 1", Author: "Author 1"}, user)

		require.NoError(t, err)
		assert.Equal(t, user.ID.Hex(), created.Owner.Id)
		assert.Equal(t, user.ID.Hex(), provider.lastSaved.Owner.Id)
		assert.Equal(t, user.Name, provider.lastSaved.Owner.Name)
		assert.Equal(t, "New Book 1", provider.lastSaved.Title)
	})

	t.Run("assigned id is part of the result", func(t *testing.T) {
		provider := &providerRecorder{}
		svc := newTestService(provider)

		created, err := svc.CreateBook(ctx, CreateInput{Title: "New Book 1"}, user)

		require.NoError(t, err)
		assert.False(t, created.ID.IsZero())
	})

	t.Run("store errors propagate", func(t *testing.T) {
		provider := &providerRecorder{err: context.DeadlineExceeded}
		svc := newTestService(provider)

		_, err := svc.CreateBook(ctx, CreateInput{Title: "New Book 1"}, user)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id is rejected before any store call", func(t *testing.T) {
		provider := &providerRecorder{}
		svc := newTestService(provider)

		_, err := svc.UpdateBook(ctx, "not-an-id", models.BookUpdate{})

		assert.ErrorIs(t, err, ErrInvalidBookId)
		assert.Zero(t, provider.updateCalls)
	})

	t.Run("updated record is returned", func(t *testing.T) {
		updated := models.Book{ID: primitive.NewObjectID(), Title: "Updated name"}
		provider := &providerRecorder{book: updated}
		svc := newTestService(provider)

		title := "Updated name"
		got, err := svc.UpdateBook(ctx, updated.ID.Hex(), models.BookUpdate{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, "Updated name", got.Title)
		require.NotNil(t, provider.lastUpdate.Title)
		assert.Equal(t, "Updated name", *provider.lastUpdate.Title)
	})

	t.Run("missing record", func(t *testing.T) {
		provider := &providerRecorder{err: storage.ErrorBookNotFound}
		svc := newTestService(provider)

		_, err := svc.UpdateBook(ctx, primitive.NewObjectID().Hex(), models.BookUpdate{})

		assert.ErrorIs(t, err, storage.ErrorBookNotFound)
	})
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id is rejected before any store call", func(t *testing.T) {
		provider := &providerRecorder{}
		svc := newTestService(provider)

		_, err := svc.DeleteBook(ctx, "not-an-id")

		assert.ErrorIs(t, err, ErrInvalidBookId)
		assert.Zero(t, provider.removeCalls)
	})

	t.Run("prior record contents are returned", func(t *testing.T) {
		prior := models.Book{ID: primitive.NewObjectID(), Title: "doomed"}
		provider := &providerRecorder{book: prior}
		svc := newTestService(provider)

		got, err := svc.DeleteBook(ctx, prior.ID.Hex())

		require.NoError(t, err)
		assert.Equal(t, prior, got)
	})

	t.Run("missing record", func(t *testing.T) {
		provider := &providerRecorder{err: storage.ErrorBookNotFound}
		svc := newTestService(provider)

		_, err := svc.DeleteBook(ctx, primitive.NewObjectID().Hex())

		assert.ErrorIs(t, err, storage.ErrorBookNotFound)
	})
}
