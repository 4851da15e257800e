package service

import (
	"go.uber.org/zap"

	"github.com/lijianqiao/backend/config"
	"github.com/lijianqiao/backend/internal/repository"
	"github.com/lijianqiao/backend/pkg/jwt"
	"github.com/lijianqiao/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	User       UserService
	Department DepartmentService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, logger),
		Department: NewDepartmentService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
