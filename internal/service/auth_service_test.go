package service

import (
	"context"
	"errors"
	"time"

	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lijianqiao/backend/config"
	"github.com/lijianqiao/backend/internal/dto"
	"github.com/lijianqiao/backend/internal/model"
	"github.com/lijianqiao/backend/internal/repository"
	"github.com/lijianqiao/backend/pkg/jwt"
)

func setupAuthService(t *testing.T) (AuthService, *mockUserRepo, *jwt.Manager) {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-at-least-16-chars",
			AccessTokenTTL:  30 * time.Minute,
			RefreshTokenTTL: 168 * time.Hour,
		},
	}
	userRepo := newMockUserRepo()
	repo := &repository.Repository{
		User:       userRepo,
		Department: newMockDeptRepo(),
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// Redis 置 nil，走降级路径
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, userRepo, jwtMgr
}

func seedUser(t *testing.T, repo *mockUserRepo, username, password string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	u := &model.User{
		UserID:       "user-" + username,
		Username:     username,
		Name:         username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         "member",
		IsActive:     active,
	}
	repo.users[u.UserID] = u
	return u
}

func TestLogin_Success(t *testing.T) {
	svc, userRepo, jwtMgr := setupAuthService(t)
	seedUser(t, userRepo, "alice", "secret123", true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("期望登录成功，实际: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("期望签发 Token 对")
	}
	if resp.ExpiresIn != int((30 * time.Minute).Seconds()) {
		t.Errorf("期望 expires_in=1800，实际: %d", resp.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("AccessToken 解析失败: %v", err)
	}
	if claims.UserID != "user-alice" || claims.TokenType != "access" {
		t.Errorf("AccessToken 声明错误: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, userRepo, _ := setupAuthService(t)
	seedUser(t, userRepo, "alice", "secret123", true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	// 未知用户与密码错误返回同一错误，不泄露用户是否存在
	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "whatever"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_DisabledUser(t *testing.T) {
	svc, userRepo, _ := setupAuthService(t)
	seedUser(t, userRepo, "alice", "secret123", false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "secret123"})
	if !errors.Is(err, ErrUserDisabled) {
		t.Errorf("期望 ErrUserDisabled，实际: %v", err)
	}
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	svc, userRepo, _ := setupAuthService(t)
	seedUser(t, userRepo, "alice", "secret123", true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("期望续签成功，实际: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("期望签发新的 AccessToken")
	}
}

func TestRefreshToken_AccessTokenRejected(t *testing.T) {
	svc, userRepo, _ := setupAuthService(t)
	seedUser(t, userRepo, "alice", "secret123", true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	// AccessToken 不能用于续签
	if _, err := svc.RefreshToken(context.Background(), login.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("期望 ErrInvalidToken，实际: %v", err)
	}
}

func TestRefreshToken_DisabledUserRejected(t *testing.T) {
	svc, userRepo, _ := setupAuthService(t)
	u := seedUser(t, userRepo, "alice", "secret123", true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	// 登录后账号被禁用，refresh token 立即失效
	u.IsActive = false
	if _, err := svc.RefreshToken(context.Background(), login.RefreshToken); !errors.Is(err, ErrUserDisabled) {
		t.Errorf("期望 ErrUserDisabled，实际: %v", err)
	}
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	if _, err := svc.GetCurrentUser(context.Background(), "user-missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestLogout_NilRedisDegrades(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("Redis 不可用时登出应降级为无操作，实际: %v", err)
	}
}
