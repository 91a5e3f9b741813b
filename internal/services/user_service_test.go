package services

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"vidtube/internal/config"
	"vidtube/internal/models"
	"vidtube/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserServiceForTest(users *mockUserRepo, storage *mockStorage) UserService {
	auth := config.AuthConfig{
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		TokenLifetime: time.Hour,
		Issuer:        "vidtube",
	}
	return NewUserService(users, storage, auth, validator.New(), zap.NewNop())
}

func TestRegisterNormalizesIdentifiers(t *testing.T) {
	users := new(mockUserRepo)
	storage := new(mockStorage)
	svc := newUserServiceForTest(users, storage)

	users.On("GetByUsernameOrEmail", mock.Anything, "newuser", "new.user@example.com").
		Return(nil, nil)
	storage.On("ValidateFile", mock.Anything, utils.AssetImage).Return(nil)
	storage.On("UploadFile", mock.Anything, mock.Anything, "avatars").
		Return(&utils.UploadResult{URL: "https://cdn/avatar.png", PublicID: "avatars/1"}, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "newuser" && u.Email == "new.user@example.com"
	})).Return(nil)

	result, err := svc.Register(context.Background(), RegisterRequest{
		Username:    "NewUser",
		Email:       "New.User@Example.COM",
		DisplayName: "New User",
		Password:    "correct horse",
		Avatar:      &multipart.FileHeader{Filename: "avatar.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "newuser", result.User.Username)
	assert.Equal(t, "new.user@example.com", result.User.Email)
	assert.NotEmpty(t, result.Token)
	users.AssertExpectations(t)
}

func TestRegisterDuplicateUser(t *testing.T) {
	users := new(mockUserRepo)
	storage := new(mockStorage)
	svc := newUserServiceForTest(users, storage)

	users.On("GetByUsernameOrEmail", mock.Anything, "taken", "taken@example.com").
		Return(&models.User{ID: 1, Username: "taken"}, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username:    "Taken",
		Email:       "Taken@example.com",
		DisplayName: "Taken",
		Password:    "correct horse",
		Avatar:      &multipart.FileHeader{Filename: "avatar.png"},
	})
	assert.True(t, IsConflictError(err))
	storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
}
