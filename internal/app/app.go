package app

import (
	"context"
	"database/sql"
	"errors"

	"go-hrm/internal/shared/config"
	"go-hrm/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the connections shared by every binary.
type Infra struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}

// Connect opens Postgres and, when REDIS_ADDR is set, Redis.
func Connect(cfg config.Config) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.MaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	infra := &Infra{GormDB: gormDB, SQLDB: sqlDB}
	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.MaxRetries)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.Redis = rdb
	} else {
		zap.L().Warn("REDIS_ADDR not set, caching and idempotency are disabled")
	}
	return infra, nil
}

// BuildApp connects the infrastructure, migrates when asked and mounts every
// module on router. The returned Infra must be closed by the caller.
func BuildApp(ctx context.Context, router *gin.Engine, cfg config.Config) (*Infra, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	infra, err := Connect(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err := Migrate(infra.GormDB); err != nil {
			infra.Close()
			return nil, err
		}
	}

	if err := registerModules(ctx, router, cfg, infra); err != nil {
		infra.Close()
		return nil, err
	}
	return infra, nil
}
