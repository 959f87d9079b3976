package walking

import (
	"context"
	"errors"
	"fmt"

	"dog_walking/internal/domain"
	"dog_walking/internal/dto"
	"dog_walking/internal/model"
	"dog_walking/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users domain.UserRepo
	cost  int
}

func NewAuthService(users domain.UserRepo) (*AuthService, error) {
	if users == nil {
		return nil, missingArg("user repository")
	}
	return &AuthService{users: users, cost: bcrypt.DefaultCost}, nil
}

// Login проверяет, совпадают ли учетные данные с пользователем.
// Логин сравнивается точно; пароль - с bcrypt-хешем.
func (s *AuthService) Login(ctx context.Context, in *dto.Login) (bool, error) {
	if err := validator.Login(in); err != nil {
		return false, err
	}

	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password hash for %q: %w", in.Username, err)
	}
}

// Register сохраняет нового пользователя с bcrypt-хешем пароля.
func (s *AuthService) Register(ctx context.Context, in *dto.Login) (uint, error) {
	if err := validator.Login(in); err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     in.Username,
		PasswordHash: string(hash),
	}
	if err := s.users.Add(ctx, user); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// EnsureUser создает пользователя, если такого логина еще нет.
// Возвращает true, если пользователь создан.
func (s *AuthService) EnsureUser(ctx context.Context, username, password string) (bool, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := s.Register(ctx, &dto.Login{Username: username, Password: password}); err != nil {
		return false, err
	}
	return true, nil
}
