package service

import (
	"errors"

	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"github.com/keylounge/keylounge-backend/internal/repository"
	"github.com/keylounge/keylounge-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies credentials and issues tokens. Session handling
// beyond the token itself lives outside this service.
type AuthService struct {
	memberRepo repository.MemberRepository
	jwtManager *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(memberRepo repository.MemberRepository, jwtManager *jwt.Manager) *AuthService {
	return &AuthService{memberRepo: memberRepo, jwtManager: jwtManager}
}

// Login verifies the password and returns a signed token
func (s *AuthService) Login(username, password string) (*domain.LoginResponse, error) {
	member, err := s.memberRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(member.ID, member.Nickname, member.Level)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token:    token,
		UserID:   member.ID,
		Nickname: member.Nickname,
		Level:    member.Level,
	}, nil
}

// HashPassword hashes a plaintext password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
