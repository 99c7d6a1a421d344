package books

import (
	"bookstore/internal/domain/models"
	"bookstore/internal/http/middleware"
	bookservice "bookstore/internal/services/book"
	"bookstore/internal/storage"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

type serverAPI struct {
	log  *slog.Logger
	book Book
}

type Book interface {
	Book(ctx context.Context, id string) (models.Book, error)
	Books(ctx context.Context, query bookservice.ListQuery) ([]models.Book, error)
	CreateBook(ctx context.Context, input bookservice.CreateInput, user models.User) (models.Book, error)
	UpdateBook(ctx context.Context, id string, update models.BookUpdate) (models.Book, error)
	DeleteBook(ctx context.Context, id string) (models.Book, error)
}

func Register(
	router *gin.Engine,
	log *slog.Logger,
	book Book,
	auth gin.HandlerFunc,
) {
	s := &serverAPI{
		log:  log,
		book: book,
	}

	router.GET("/books", s.list)
	router.GET("/books/:id", s.get)

	protected := router.Group("/")
	protected.Use(auth)
	{
		protected.POST("/books", s.create)
		protected.PUT("/books/:id", s.update)
		protected.DELETE("/books/:id", s.delete)
	}
}

type createRequest struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type updateRequest struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
}

func (s *serverAPI) list(c *gin.Context) {
	page, _ := strconv.ParseInt(c.Query("page"), 10, 64)

	books, err := s.book.Books(c.Request.Context(), bookservice.ListQuery{
		Keyword: c.Query("keyword"),
		Page:    page,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, books)
}

func (s *serverAPI) get(c *gin.Context) {
	book, err := s.book.Book(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

func (s *serverAPI) create(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	var request createRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	book, err := s.book.CreateBook(c.Request.Context(), bookservice.CreateInput{
		Title:       request.Title,
		Author:      request.Author,
		Description: request.Description,
		Price:       request.Price,
		Category:    request.Category,
	}, user)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, book)
}

func (s *serverAPI) update(c *gin.Context) {
	var request updateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	book, err := s.book.UpdateBook(c.Request.Context(), c.Param("id"), models.BookUpdate{
		Title:       request.Title,
		Author:      request.Author,
		Description: request.Description,
		Price:       request.Price,
		Category:    request.Category,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

func (s *serverAPI) delete(c *gin.Context) {
	book, err := s.book.DeleteBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

func (s *serverAPI) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bookservice.ErrInvalidBookId):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid book id"})
	case errors.Is(err, storage.ErrorBookNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "book not found"})
	default:
		s.log.Error("book request failed", slog.Any("error", err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
