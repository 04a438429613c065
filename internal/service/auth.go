package service

import (
	"context"
	"fmt"

	"TidyElephant/internal/cache"
	"TidyElephant/internal/model/dto"
	"TidyElephant/pkg/errors"
	"TidyElephant/pkg/token"
)

// AuthService token 刷新，登录发号在 VerificationService 里
type AuthService struct{}

func NewAuthService() *AuthService {
	return &AuthService{}
}

// RefreshToken 校验 refresh token 并轮换出新的一对
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error) {
	userID, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Unauthorized
	}

	// Redis 里必须还留着这一个，防止轮换后的旧 token 复用
	if !cache.ValidateRefreshTokenExists(ctx, userID, refreshToken) {
		return nil, errors.Unauthorized
	}

	accessToken, newRefreshToken, expiresIn, err := token.GenerateTokenPair(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := cache.SetRefreshToken(ctx, userID, newRefreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}
