package auth

import (
	"bookstore/internal/domain/models"
	"bookstore/internal/lib/jwt"
	"bookstore/internal/storage"
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	log          *slog.Logger
	userProvider Provider
	tokenSecret  string
	tokenTTL     time.Duration
}

type Provider interface {
	SaveUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

func New(
	log *slog.Logger,
	userProvider Provider,
	tokenSecret string,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		log:          log,
		userProvider: userProvider,
		tokenSecret:  tokenSecret,
		tokenTTL:     tokenTTL,
	}
}

func (s *Service) SignUp(
	ctx context.Context,
	name string,
	email string,
	password string,
) (models.User, error) {
	const op = "services.auth.SignUp"

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.userProvider.SaveUser(ctx, models.User{
		Name:     name,
		Email:    email,
		PassHash: passHash,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", slog.String("id", user.ID.Hex()))

	return user, nil
}

// Login checks the credentials and returns a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(
	ctx context.Context,
	email string,
	password string,
) (string, error) {
	const op = "services.auth.Login"

	user, err := s.userProvider.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrorUserNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := jwt.NewToken(user, s.tokenSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user logged in", slog.String("id", user.ID.Hex()))

	return token, nil
}
