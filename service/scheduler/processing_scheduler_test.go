/*
 * @module service/scheduler/processing_scheduler_test
 * @description 自动处理流水线测试，覆盖目录扫描、文件处理、防重与实体类型推断
 * @architecture 测试层
 * @documentReference ai_docs/esg_pipeline_design.md
 * @stateFlow 测试目录准备 -> 流水线执行 -> 输出与记录验证
 * @rules 同一文件（路径+修改时间）只处理一次；失败文件记录后不再重试
 * @dependencies testing, github.com/stretchr/testify
 * @refs processing_scheduler.go
 */

package scheduler

import (
	"context"
	"esg-reporting-service/service/config"
	"esg-reporting-service/service/data_quality"
	"esg-reporting-service/service/dataset"
	"esg-reporting-service/service/models"
	"esg-reporting-service/testutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) (*ProcessingScheduler, *testutil.TestDB, *config.Config) {
	t.Helper()
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	cfg := &config.Config{
		BatchSize:     config.DefaultBatchSize,
		MaxFileSizeMB: config.DefaultMaxFileSizeMB,
		WatchDir:      filepath.Join(t.TempDir(), "incoming"),
		OutputDir:     filepath.Join(t.TempDir(), "processed"),
	}
	require.NoError(t, os.MkdirAll(cfg.WatchDir, 0o755))

	engine := data_quality.NewEngine(tdb.DB, cfg)
	s := NewProcessingScheduler(tdb.DB, engine, dataset.NewLoader(cfg), dataset.NewWriter(), nil, cfg)
	return s, tdb, cfg
}

func writeWatchFile(t *testing.T, cfg *config.Config, name, content string) string {
	t.Helper()
	path := filepath.Join(cfg.WatchDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// 完整流水线：加载、校验、清洗、输出与记录持久化
func TestRunOnce_ProcessesFile(t *testing.T) {
	s, tdb, cfg := newTestScheduler(t)
	writeWatchFile(t, cfg, "emissions_jan.csv",
		"date,scope,co2_value\n2025-01-01,Scope1,1.5\n2025-01-01,Scope1,1.5\n")

	require.NoError(t, s.RunOnce(context.Background()))

	// 清洗结果写出到输出目录
	outputPath := filepath.Join(cfg.OutputDir, "cleaned_emissions_jan.csv")
	_, err := os.Stat(outputPath)
	assert.NoError(t, err)

	// 处理记录与质量报告持久化
	var records []models.ProcessedFileRecord
	require.NoError(t, tdb.DB.Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "emissions_jan.csv", records[0].FileName)
	assert.Equal(t, models.EntityTypeEmissions, records[0].EntityType)
	assert.Equal(t, "success", records[0].Status)
	assert.Equal(t, outputPath, records[0].OutputPath)

	var reports []models.QualityReport
	require.NoError(t, tdb.DB.Find(&reports).Error)
	require.Len(t, reports, 1)
	assert.Equal(t, "emissions_jan.csv", reports[0].SourceName)
}

// 已处理的文件不重复处理
func TestRunOnce_SkipsAlreadyProcessed(t *testing.T) {
	s, tdb, cfg := newTestScheduler(t)
	writeWatchFile(t, cfg, "activities_q1.csv", "date,activity type,value\n2025-01-01,travel,3.2\n")

	require.NoError(t, s.RunOnce(context.Background()))
	require.NoError(t, s.RunOnce(context.Background()))

	var count int64
	tdb.DB.Model(&models.ProcessedFileRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// 不支持的文件与子目录被忽略
func TestRunOnce_IgnoresUnsupportedEntries(t *testing.T) {
	s, tdb, cfg := newTestScheduler(t)
	writeWatchFile(t, cfg, "readme.txt", "not a dataset")
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.WatchDir, "archive"), 0o755))

	require.NoError(t, s.RunOnce(context.Background()))

	var count int64
	tdb.DB.Model(&models.ProcessedFileRecord{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

// 监控目录不存在时本轮静默跳过
func TestRunOnce_MissingWatchDir(t *testing.T) {
	s, _, cfg := newTestScheduler(t)
	require.NoError(t, os.RemoveAll(cfg.WatchDir))

	assert.NoError(t, s.RunOnce(context.Background()))
}

// 解析失败的文件记录为失败状态且不再重试
func TestRunOnce_RecordsFailure(t *testing.T) {
	s, tdb, cfg := newTestScheduler(t)
	// 非法的xlsx内容触发解析错误
	writeWatchFile(t, cfg, "broken.xlsx", "not an excel file")

	require.NoError(t, s.RunOnce(context.Background()))

	var records []models.ProcessedFileRecord
	require.NoError(t, tdb.DB.Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "failed", records[0].Status)
	assert.NotEmpty(t, records[0].ErrorMessage)

	// 第二轮不再重复记录
	require.NoError(t, s.RunOnce(context.Background()))
	var count int64
	tdb.DB.Model(&models.ProcessedFileRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// 未配置调度表达式时启动失败
func TestStart_RequiresSchedule(t *testing.T) {
	s, _, _ := newTestScheduler(t)

	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROCESS_SCHEDULE")
}

// 配置调度表达式后可正常启动与停止
func TestStartStop(t *testing.T) {
	s, _, cfg := newTestScheduler(t)
	cfg.ProcessSchedule = "0 2 * * *"

	require.NoError(t, s.Start())
	assert.Error(t, s.Start())
	s.Stop()
}

// 按文件名推断实体类型
func TestInferEntityType(t *testing.T) {
	tests := []struct {
		fileName string
		expected string
	}{
		{"emissions_2025.csv", models.EntityTypeEmissions},
		{"Carbon_Report.xlsx", models.EntityTypeEmissions},
		{"activities_q1.csv", models.EntityTypeActivities},
		{"supplier_list.csv", models.EntityTypeSuppliers},
		{"VENDOR_data.xlsx", models.EntityTypeSuppliers},
		{"misc.csv", models.EntityTypeGeneral},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, inferEntityType(tt.fileName), tt.fileName)
	}
}
