package database

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ==================== 数据库初始化 ====================

// InitDB 建立 Postgres 连接并迁移本地表
// 本服务只落三类小表：目录镜像、操作员账号、提交审计，
// 向导会话全程在内存里，不经过这里
func InitDB(dsn string, models ...interface{}) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("[Database] 连接失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("[Database] 获取底层连接池失败: %v", err)
	}

	// 镜像表读多写少，连接池不用太激进
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			log.Fatalf("[Database] 自动迁移失败: %v", err)
		}
	}

	log.Println("[Database] 连接就绪")
	return db
}
