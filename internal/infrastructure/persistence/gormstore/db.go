package gormstore

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/locallibrary/internal/infrastructure/config"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/document"
)

// NewDB 创建关系库连接
// 设计说明：
// 1. 同一套GORM模型支持mysql/postgres/sqlite三种驱动
// 2. 配置连接池参数（sqlite只用单连接，避免写锁冲突）
// 3. 开发环境开启SQL日志
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 选择驱动
	var dialector gorm.Dialector
	switch cfg.Store.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Store.Database.MySQLDSN())
	case "postgres":
		dialector = postgres.Open(cfg.Store.Database.PostgresDSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.Store.SQLite.Path)
	default:
		return nil, fmt.Errorf("不支持的关系库驱动: %s", cfg.Store.Driver)
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	if cfg.Store.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Store.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Store.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Store.Database.ConnMaxLifetime)
	}

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info().Str("driver", cfg.Store.Driver).Msg("✓ 数据库连接成功")

	// 6. 自动迁移表结构
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// AutoMigrate 自动迁移全部文档表
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(document.All()...)
}
