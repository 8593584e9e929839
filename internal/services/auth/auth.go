// Package auth содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package auth

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/gym-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-manager/internal/lib/password"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user".
func (s *Service) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         "user", // дефолтная роль при регистрации
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", errors.New("invalid credentials")
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UUID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе.
func (s *Service) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username: claims.Username,
		Role:     claims.Role,
		UUID:     claims.UserUID,
	}, nil
}
