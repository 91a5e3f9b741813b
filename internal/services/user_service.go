package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"vidtube/internal/config"
	"vidtube/internal/models"
	"vidtube/internal/repositories"
	"vidtube/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	users    repositories.UserRepository
	storage  utils.FileStorage
	auth     config.AuthConfig
	validate *validator.Validate
	logger   *zap.Logger
}

// NewUserService creates the account service.
func NewUserService(
	users repositories.UserRepository,
	storage utils.FileStorage,
	auth config.AuthConfig,
	validate *validator.Validate,
	logger *zap.Logger,
) UserService {
	return &userService{
		users:    users,
		storage:  storage,
		auth:     auth,
		validate: validate,
		logger:   logger,
	}
}

// Register creates an account. The avatar is mandatory; a cover image is
// optional. Blobs uploaded before a later failure are deleted best-effort
// so the store holds no orphans.
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.users.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, NewInternalError("failed to check existing users")
	}
	if existing != nil {
		return nil, EntityAlreadyExistsError("user", "USERNAME_OR_EMAIL")
	}

	if err := s.storage.ValidateFile(req.Avatar, utils.AssetImage); err != nil {
		return nil, NewValidationError("invalid avatar file", err)
	}
	if req.CoverImage != nil {
		if err := s.storage.ValidateFile(req.CoverImage, utils.AssetImage); err != nil {
			return nil, NewValidationError("invalid cover image file", err)
		}
	}

	avatar, err := s.storage.UploadFile(ctx, req.Avatar, "avatars")
	if err != nil {
		return nil, NewUpstreamError("failed to upload avatar", err)
	}

	var cover *utils.UploadResult
	if req.CoverImage != nil {
		cover, err = s.storage.UploadFile(ctx, req.CoverImage, "covers")
		if err != nil {
			s.cleanupBlob(avatar.PublicID)
			return nil, NewUpstreamError("failed to upload cover image", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.cleanupBlob(avatar.PublicID)
		if cover != nil {
			s.cleanupBlob(cover.PublicID)
		}
		return nil, NewInternalError("failed to hash password")
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		DisplayName:    strings.TrimSpace(req.DisplayName),
		PasswordHash:   string(hash),
		AvatarURL:      &avatar.URL,
		AvatarPublicID: &avatar.PublicID,
		Role:           "user",
	}
	if cover != nil {
		user.CoverImageURL = &cover.URL
		user.CoverImagePublicID = &cover.PublicID
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.cleanupBlob(avatar.PublicID)
		if cover != nil {
			s.cleanupBlob(cover.PublicID)
		}
		if repositories.IsUniqueViolation(err) {
			return nil, EntityAlreadyExistsError("user", "USERNAME_OR_EMAIL")
		}
		return nil, NewInternalError("failed to create user")
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	return s.issueToken(user)
}

// Login verifies credentials by username or email.
func (s *userService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByLogin(ctx, req.Login)
	if err != nil {
		return nil, NewInternalError("failed to look up user")
	}
	if user == nil {
		return nil, NewAuthenticationError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewAuthenticationError("invalid credentials")
	}

	return s.issueToken(user)
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to load user")
	}
	if user == nil {
		return nil, EntityNotFoundError("user")
	}
	return user, nil
}

func (s *userService) issueToken(user *models.User) (*AuthResult, error) {
	expiresAt := time.Now().Add(s.auth.TokenLifetime)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		Issuer:    s.auth.Issuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.auth.JWTSecret))
	if err != nil {
		return nil, NewInternalError("failed to sign token")
	}

	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// cleanupBlob deletes an orphaned upload outside the request deadline.
func (s *userService) cleanupBlob(publicID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.storage.DeleteFile(ctx, publicID); err != nil {
		s.logger.Warn("failed to clean up blob",
			zap.String("public_id", publicID), zap.Error(err))
	}
}
