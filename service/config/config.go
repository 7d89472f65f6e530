/*
 * @module service/config
 * @description 运行时配置加载，从环境变量读取批处理、文件、存储与调度配置
 * @architecture 分层架构 - 配置层
 * @documentReference ai_docs/esg_service_config.md
 * @stateFlow 进程启动 -> 环境变量读取 -> 配置结构体注入各服务构造函数
 * @rules 配置为显式传入的不可变结构体，不使用进程级可变全局状态
 * @dependencies github.com/spf13/cast, os
 * @refs service/init.go
 */

package config

import (
	"os"

	"github.com/spf13/cast"
)

// 默认配置值
const (
	DefaultBatchSize     = 1000
	DefaultMaxFileSizeMB = 100
	DefaultContainerName = "esg-data"
)

// Config 服务运行时配置
type Config struct {
	// 处理配置
	BatchSize     int
	MaxFileSizeMB int

	// Azure存储配置
	StorageAccountName string
	ContainerName      string

	// 自动处理流水线配置，ProcessSchedule为空时不启动调度器
	ProcessSchedule string
	WatchDir        string
	OutputDir       string

	// 日志
	LogLevel string
}

// Load 从环境变量加载配置
func Load() *Config {
	return &Config{
		BatchSize:          cast.ToInt(getEnvWithDefault("BATCH_SIZE", cast.ToString(DefaultBatchSize))),
		MaxFileSizeMB:      cast.ToInt(getEnvWithDefault("MAX_FILE_SIZE_MB", cast.ToString(DefaultMaxFileSizeMB))),
		StorageAccountName: os.Getenv("AZURE_STORAGE_ACCOUNT_NAME"),
		ContainerName:      getEnvWithDefault("AZURE_CONTAINER_NAME", DefaultContainerName),
		ProcessSchedule:    os.Getenv("PROCESS_SCHEDULE"),
		WatchDir:           getEnvWithDefault("WATCH_DIR", "./data/incoming"),
		OutputDir:          getEnvWithDefault("OUTPUT_DIR", "./data/processed"),
		LogLevel:           getEnvWithDefault("LOG_LEVEL", "info"),
	}
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
