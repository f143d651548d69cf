package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/password"
	"hotel/shared/timezone"
)

// hashed "password"
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func staff() userModel.User {
	return userModel.User{
		ID:       "user-id-123",
		Email:    "frontdesk@hotel.test",
		Password: passwordHash,
		Level:    constant.RoleAdmin,
		FullName: stringPtr("Front Desk"),
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  constant.ContextSystem,
			ModifiedBy: constant.ContextSystem,
		},
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)
	validUser := staff()

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		category  failure.Category
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(validUser.ID, validUser.Email, validUser.Level).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login failure does not block",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(validUser.ID, validUser.Email, validUser.Level).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@hotel.test", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			category: failure.CategoryUnauthorized,
			wantErr:  true,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "wrongpassword"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			category: failure.CategoryUnauthorized,
			wantErr:  true,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func() {
				inactiveUser := validUser
				inactiveUser.Active = false

				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactiveUser, nil)
			},
			category: failure.CategoryForbidden,
			wantErr:  true,
		},
		{
			name: "store failure",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			category: failure.CategoryInternal,
			wantErr:  true,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(validUser.ID, validUser.Email, validUser.Level).
					Return(nil, errors.New("token generation failed"))
			},
			category: failure.CategoryInternal,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.category, failure.GetCategory(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", result.AccessToken)
			assert.Equal(t, "refresh-token", result.RefreshToken)
			assert.Equal(t, validUser.ID, result.User.ID)
		})
	}
}

func TestAuthService_Login_UpgradesOutdatedHash(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	cheap, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := staff()
	user.Password = string(cheap)

	mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
	mockJWT.EXPECT().GenerateTokenPair(user.ID, user.Email, user.Level).
		Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
	mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			rehashed, ok := fields[userModel.FieldPassword].(string)
			require.True(t, ok, "password should be rewritten")
			assert.False(t, password.NeedsRehash(rehashed))
			assert.NoError(t, password.Verify("password", rehashed))
			assert.Contains(t, fields, userModel.FieldLastLogin)

			return nil
		})

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "password"})
	require.NoError(t, err)
}

func TestAuthService_Register(t *testing.T) {
	superadmin := context.WithValue(
		context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleSuperAdmin),
		constant.ContextKeyUserID, "root-id",
	)
	admin := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleAdmin)

	req := dto.RegisterRequest{CreateUserRequest: userDto.CreateUserRequest{
		Email:    "night@hotel.test",
		Password: "supersecret",
	}}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(repo *userMocks.MockUser)
		category  failure.Category
		wantErr   bool
	}{
		{
			name: "superadmin creates admin",
			ctx:  superadmin,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, constant.RoleAdmin, user.Level)
						assert.Equal(t, "root-id", user.CreatedBy)
						assert.NotEqual(t, "supersecret", user.Password)

						return nil
					})
			},
		},
		{
			name:      "admin is refused",
			ctx:       admin,
			setupMock: func(*userMocks.MockUser) {},
			category:  failure.CategoryForbidden,
			wantErr:   true,
		},
		{
			name: "email taken",
			ctx:  superadmin,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			category: failure.CategoryConflict,
			wantErr:  true,
		},
		{
			name: "insert failure",
			ctx:  superadmin,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			category: failure.CategoryInternal,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := userMocks.NewMockUser(ctrl)
			tt.setupMock(repo)

			svc := service.New(repo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

			res, err := svc.Register(tt.ctx, req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.category, failure.GetCategory(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "night@hotel.test", res.Email)
			assert.True(t, res.Active)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(userMocks.NewMockUser(ctrl), &config.Config{}, mocks.NewOtel(), mockJWT)

	tests := []struct {
		name      string
		req       dto.RefreshTokenRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful token refresh",
			req:  dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"},
			setupMock: func() {
				mockJWT.EXPECT().
					RefreshTokens("valid-refresh-token").
					Return(&jwt.TokenPair{AccessToken: "new-access-token", RefreshToken: "new-refresh-token"}, nil)
			},
		},
		{
			name: "invalid refresh token",
			req:  dto.RefreshTokenRequest{RefreshToken: "invalid-refresh-token"},
			setupMock: func() {
				mockJWT.EXPECT().
					RefreshTokens("invalid-refresh-token").
					Return(nil, jwt.ErrInvalidToken)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.RefreshToken(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, failure.CategoryUnauthorized, failure.GetCategory(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "new-access-token", result.AccessToken)
			assert.Equal(t, "new-refresh-token", result.RefreshToken)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	validUser := staff()
	authenticated := context.WithValue(context.Background(), constant.ContextKeyUserID, validUser.ID)

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.ChangePasswordRequest
		setupMock func(repo *userMocks.MockUser)
		category  failure.Category
		wantErr   bool
	}{
		{
			name: "successful password change",
			ctx:  authenticated,
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.NotEqual(t, "newpassword123", fields[userModel.FieldPassword])
						assert.Equal(t, validUser.ID, fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name:      "anonymous caller",
			ctx:       context.Background(),
			req:       dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(*userMocks.MockUser) {},
			category:  failure.CategoryUnauthorized,
			wantErr:   true,
		},
		{
			name: "account removed",
			ctx:  authenticated,
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			category: failure.CategoryNotFound,
			wantErr:  true,
		},
		{
			name: "wrong current password",
			ctx:  authenticated,
			req:  dto.ChangePasswordRequest{CurrentPassword: "wrongpassword", NewPassword: "newpassword123"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			category: failure.CategoryValidation,
			wantErr:  true,
		},
		{
			name: "update password error",
			ctx:  authenticated,
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			category: failure.CategoryInternal,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := userMocks.NewMockUser(ctrl)
			tt.setupMock(repo)

			svc := service.New(repo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

			err := svc.ChangePassword(tt.ctx, tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.category, failure.GetCategory(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func stringPtr(s string) *string {
	return &s
}
