package jwt

import (
	"errors"
	"time"

	"testing"

	"github.com/lijianqiao/backend/config"
)

func newTestManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-at-least-16-chars",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	mgr := newTestManager(time.Hour)

	token, err := mgr.GenerateAccessToken("user-001", "admin", "dept-001")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.UserID != "user-001" {
		t.Errorf("期望 user_id=user-001，实际: %s", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("期望 role=admin，实际: %s", claims.Role)
	}
	if claims.DepartmentID != "dept-001" {
		t.Errorf("期望 department_id=dept-001，实际: %s", claims.DepartmentID)
	}
	if claims.TokenType != "access" {
		t.Errorf("期望 token_type=access，实际: %s", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("期望分配 jti")
	}
}

func TestRefreshTokenType(t *testing.T) {
	mgr := newTestManager(time.Hour)

	token, err := mgr.GenerateRefreshToken("user-001", "member", "")
	if err != nil {
		t.Fatalf("生成 Refresh Token 失败: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("期望 token_type=refresh，实际: %s", claims.TokenType)
	}
}

func TestExpiredToken(t *testing.T) {
	mgr := newTestManager(-time.Minute)

	token, err := mgr.GenerateAccessToken("user-001", "admin", "")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	if _, err := mgr.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	mgr := newTestManager(time.Hour)
	other := NewManager(&config.AuthConfig{
		JWTSecret:       "another-secret-16-chars-xx",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})

	token, err := mgr.GenerateAccessToken("user-001", "admin", "")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	mgr := newTestManager(time.Hour)

	if _, err := mgr.ParseToken("not-a-jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
