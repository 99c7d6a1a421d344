package auth

import (
	"bookstore/internal/domain/models"
	authservice "bookstore/internal/services/auth"
	"bookstore/internal/storage"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

type serverAPI struct {
	log  *slog.Logger
	auth Auth
}

type Auth interface {
	SignUp(ctx context.Context, name string, email string, password string) (models.User, error)
	Login(ctx context.Context, email string, password string) (string, error)
}

func Register(
	router *gin.Engine,
	log *slog.Logger,
	auth Auth,
) {
	s := &serverAPI{
		log:  log,
		auth: auth,
	}

	router.POST("/auth/signup", s.signUp)
	router.POST("/auth/login", s.login)
}

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *serverAPI) signUp(c *gin.Context) {
	var request signUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := s.auth.SignUp(c.Request.Context(), request.Name, request.Email, request.Password)
	if err != nil {
		if errors.Is(err, storage.ErrorUserExists) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": "email already taken"})
			return
		}
		s.log.Error("signup failed", slog.Any("error", err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (s *serverAPI) login(c *gin.Context) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	token, err := s.auth.Login(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
			return
		}
		s.log.Error("login failed", slog.Any("error", err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
