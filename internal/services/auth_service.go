package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rajput-vishal01/videovault/internal/models"
	"github.com/rajput-vishal01/videovault/internal/repository"
	"github.com/rajput-vishal01/videovault/internal/utils"
)

const minPasswordLen = 6

type AuthService struct {
	users  repository.UserRepository
	tokens *utils.TokenManager
	logger *zap.SugaredLogger
}

func NewAuthService(users repository.UserRepository, tokens *utils.TokenManager, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email required", utils.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", utils.ErrValidation, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.ErrInternal
	}
	u := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.ErrEmailTaken
		}
		s.logger.Errorw("user create failed", "email", email, "error", err)
		return nil, utils.ErrInternal
	}
	return u, nil
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err == repository.ErrUserNotFound {
		return "", nil, utils.ErrUnauthorized
	}
	if err != nil {
		s.logger.Errorw("user lookup failed", "email", email, "error", err)
		return "", nil, utils.ErrInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, utils.ErrUnauthorized
	}
	token, err := s.tokens.Sign(u.ID.Hex(), u.Email)
	if err != nil {
		s.logger.Errorw("token sign failed", "error", err)
		return "", nil, utils.ErrInternal
	}
	return token, u, nil
}
