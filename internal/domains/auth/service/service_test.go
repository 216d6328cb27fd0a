package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mehfil/config"
	"mehfil/infras/jwt"
	jwtMocks "mehfil/infras/jwt/mocks"
	"mehfil/infras/otel/mocks"
	"mehfil/internal/domains/auth/model/dto"
	"mehfil/internal/domains/auth/service"
	"mehfil/shared/constant"
	"mehfil/shared/failure"
	"mehfil/shared/password"
)

const adminEmail = "admin@mehfil.events"

func newAuthService(t *testing.T, mockJWT *jwtMocks.MockJWT) service.Auth {
	t.Helper()

	hash, err := password.Hash("correct-password")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Admin.Email = adminEmail
	cfg.Admin.PasswordHash = hash

	return service.New(cfg, mocks.NewOtel(), mockJWT)
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := newAuthService(t, mockJWT)

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful login",
			req: dto.LoginRequest{
				Email:    adminEmail,
				Password: "correct-password",
			},
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateTokenPair(adminEmail, adminEmail, constant.RoleAdmin).
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
					}, nil)
			},
			wantErr: false,
		},
		{
			name: "unknown email",
			req: dto.LoginRequest{
				Email:    "someone@example.com",
				Password: "correct-password",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  401,
		},
		{
			name: "wrong password",
			req: dto.LoginRequest{
				Email:    adminEmail,
				Password: "wrong-password",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  401,
		},
		{
			name: "token generation error",
			req: dto.LoginRequest{
				Email:    adminEmail,
				Password: "correct-password",
			},
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateTokenPair(adminEmail, adminEmail, constant.RoleAdmin).
					Return(nil, errors.New("signing error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, adminEmail, result.Email)
				assert.Equal(t, constant.RoleAdmin, result.Role)
				assert.Equal(t, "access-token", result.Tokens.AccessToken)
				assert.Equal(t, "refresh-token", result.Tokens.RefreshToken)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := newAuthService(t, mockJWT)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful refresh",
			setupMock: func() {
				mockJWT.EXPECT().
					RefreshTokens("old-refresh-token").
					Return(&jwt.TokenPair{
						AccessToken:  "new-access-token",
						RefreshToken: "new-refresh-token",
					}, nil)
			},
			wantErr: false,
		},
		{
			name: "invalid refresh token",
			setupMock: func() {
				mockJWT.EXPECT().
					RefreshTokens("old-refresh-token").
					Return(nil, errors.New("token expired"))
			},
			wantErr:  true,
			wantCode: 401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "old-refresh-token"})

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "new-access-token", result.Tokens.AccessToken)
			}
		})
	}
}
