package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"anoa.com/swetter/internal/entity"
	"anoa.com/swetter/internal/modules/user/dto"
	"anoa.com/swetter/internal/modules/user/repository"
	"anoa.com/swetter/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = apperror.Wrap(apperror.ErrBadRequest, "User with this name already exists")
	ErrInvalidCredentials = apperror.Wrap(apperror.ErrUnauthorized, "Incorrect username or password")
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) error
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
}

type authService struct {
	repo       repository.UserRepository
	secret     string
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(repo repository.UserRepository, secret string, ttl time.Duration) AuthService {
	if secret == "" {
		secret = "change-me"
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &authService{
		repo:       repo,
		secret:     secret,
		tokenTTL:   ttl,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) error {
	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return err
	}

	user := &entity.User{
		Username:     input.Username,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return err
	}

	return nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareDummy burns the same bcrypt time as a real check so unknown
// usernames are indistinguishable from wrong passwords.
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			compareDummy(input.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}

func (s *authService) generateToken(user *entity.User) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
