// Package auth handles password hashing, credential checks and bearer-token
// issuance. It deliberately reports the same error for an unknown username
// and a wrong password so usernames cannot be enumerated.
package auth

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"

	"upitrack/internal/models"
	"upitrack/internal/repositories"
	"upitrack/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUsernameTaken      = errors.New("username already taken")
)

type Service interface {
	Register(input *models.CreateUserInput) (*models.User, error)
	Login(username, password string) (*models.User, string, error)
	VerifyToken(token string) (*models.UserClaims, error)
	GetUserByID(id uint) (*models.User, error)
}

type service struct {
	repo repositories.Repository
}

func NewService(repo repositories.Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(input *models.CreateUserInput) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: input.Username,
		Password: string(hashed),
		UpiID:    input.UpiID,
		Email:    input.Email,
		FullName: input.FullName,
	}
	created, err := s.repo.CreateUser(user)
	if err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return created, nil
}

func (s *service) Login(username, password string) (*models.User, string, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		log.Printf("login failed: unknown username %q", username)
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("login failed: bad password for user %d", user.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		log.Printf("token generation failed for user %d: %v", user.ID, err)
		return nil, "", errors.New("error generating token")
	}
	return user, token, nil
}

func (s *service) VerifyToken(token string) (*models.UserClaims, error) {
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) GetUserByID(id uint) (*models.User, error) {
	return s.repo.GetUser(id)
}
