/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、迁移及各业务服务的装配
 * @architecture 分层架构 - 服务层
 * @documentReference ai_docs/esg_service_config.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 确保所有依赖服务正常启动后才提供API服务；可选组件（Blob、调度器、分布式锁）按配置启用
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres, gorm.io/driver/sqlite
 * @refs main.go, api/routes.go
 */

package service

import (
	"esg-reporting-service/service/carbon"
	"esg-reporting-service/service/config"
	"esg-reporting-service/service/data_quality"
	"esg-reporting-service/service/dataset"
	"esg-reporting-service/service/distributed_lock"
	"esg-reporting-service/service/models"
	"esg-reporting-service/service/scheduler"
	"esg-reporting-service/service/storage"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	DB                  *gorm.DB
	GlobalConfig        *config.Config
	GlobalQualityEngine *data_quality.Engine
	GlobalLoader        *dataset.Loader
	GlobalWriter        *dataset.Writer
	GlobalCarbonClient  *carbon.Client
	GlobalBlobClient    *storage.BlobClient
	GlobalScheduler     *scheduler.ProcessingScheduler
)

func init() {
	GlobalConfig = config.Load()
	initDatabase()
	runMigrations()
	initServices()
}

// initDatabase 初始化数据库连接
// 配置了DATABASE_URL或DB_HOST时使用PostgreSQL，否则退回本地sqlite文件（开发/演示场景）
func initDatabase() {
	var err error

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		DB, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	} else if os.Getenv("DB_HOST") != "" {
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "postgres")
		dbname := getEnvWithDefault("DB_NAME", "postgres")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")

		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		dbPath := getEnvWithDefault("SQLITE_PATH", "esg_reporting.db")
		DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("数据库连接成功")
}

// runMigrations 执行数据库迁移
func runMigrations() {
	err := DB.AutoMigrate(
		&models.QualityReport{},
		&models.ProcessedFileRecord{},
	)
	if err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
}

// initServices 装配业务服务
func initServices() {
	GlobalQualityEngine = data_quality.NewEngine(DB, GlobalConfig)
	GlobalLoader = dataset.NewLoader(GlobalConfig)
	GlobalWriter = dataset.NewWriter()

	// Carbon客户端初始化失败不阻塞启动，相关API返回服务不可用
	if client, err := carbon.NewClient(nil); err != nil {
		log.Printf("Carbon Optimization客户端初始化失败: %v", err)
	} else {
		GlobalCarbonClient = client
	}

	// Blob存储按配置启用
	if GlobalConfig.StorageAccountName != "" {
		if client, err := storage.NewBlobClient(GlobalConfig, nil); err != nil {
			log.Printf("Blob存储客户端初始化失败: %v", err)
		} else {
			GlobalBlobClient = client
		}
	}

	// 自动处理流水线按配置启用
	if GlobalConfig.ProcessSchedule != "" {
		GlobalScheduler = scheduler.NewProcessingScheduler(
			DB, GlobalQualityEngine, GlobalLoader, GlobalWriter, GlobalBlobClient, GlobalConfig)

		// 多实例环境下通过Redis分布式锁防止重复调度
		if os.Getenv("REDIS_HOST") != "" {
			if lock, err := distributed_lock.NewRedisLock(); err != nil {
				log.Printf("Redis分布式锁初始化失败，调度器将在无锁模式下运行: %v", err)
			} else {
				GlobalScheduler.SetDistributedLock(lock)
			}
		}

		if err := GlobalScheduler.Start(); err != nil {
			log.Printf("自动处理流水线启动失败: %v", err)
		}
	}
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
