/*
 * @module service/scheduler/processing_scheduler
 * @description 自动处理流水线调度器，定时扫描监控目录，对新数据文件执行校验、清洗、输出与上传
 * @architecture 分层架构 - 调度层
 * @documentReference ai_docs/esg_pipeline_design.md
 * @stateFlow 启动调度器 -> 定时扫描 -> 文件处理 -> 报告持久化 -> 可选Blob上传
 * @rules 已处理文件（按路径+修改时间）不重复处理；多实例环境通过分布式锁防重
 * @dependencies github.com/robfig/cron/v3, service/distributed_lock
 * @refs service/data_quality/, service/dataset/, service/storage/
 */

package scheduler

import (
	"context"
	"esg-reporting-service/service/config"
	"esg-reporting-service/service/data_quality"
	"esg-reporting-service/service/dataset"
	"esg-reporting-service/service/distributed_lock"
	"esg-reporting-service/service/models"
	"esg-reporting-service/service/monitoring"
	"esg-reporting-service/service/storage"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// lockKey 流水线调度锁的键
const lockKey = "auto_process"

// lockTTL 单次流水线执行的锁有效期
const lockTTL = 10 * time.Minute

// ProcessingScheduler 自动处理流水线调度器
type ProcessingScheduler struct {
	db     *gorm.DB
	engine *data_quality.Engine
	loader *dataset.Loader
	writer *dataset.Writer
	blob   *storage.BlobClient // 可为nil，未配置存储账户时不上传
	cfg    *config.Config

	cron            *cron.Cron
	ctx             context.Context
	cancel          context.CancelFunc
	started         bool
	distributedLock distributed_lock.DistributedLock
}

// NewProcessingScheduler 创建自动处理流水线调度器
func NewProcessingScheduler(db *gorm.DB, engine *data_quality.Engine, loader *dataset.Loader, writer *dataset.Writer, blob *storage.BlobClient, cfg *config.Config) *ProcessingScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &ProcessingScheduler{
		db:     db,
		engine: engine,
		loader: loader,
		writer: writer,
		blob:   blob,
		cfg:    cfg,
		cron:   cron.New(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetDistributedLock 设置分布式锁
func (s *ProcessingScheduler) SetDistributedLock(lock distributed_lock.DistributedLock) {
	s.distributedLock = lock
	if lock != nil {
		slog.Info("自动处理流水线已启用分布式锁")
	}
}

// Start 启动调度器，按配置的cron表达式定时执行
func (s *ProcessingScheduler) Start() error {
	if s.started {
		return fmt.Errorf("调度器已经启动")
	}
	if s.cfg.ProcessSchedule == "" {
		return fmt.Errorf("未配置处理调度表达式（PROCESS_SCHEDULE）")
	}

	if _, err := s.cron.AddFunc(s.cfg.ProcessSchedule, s.runWithLock); err != nil {
		return fmt.Errorf("注册调度任务失败: %w", err)
	}

	s.cron.Start()
	s.started = true

	slog.Info("自动处理流水线调度器启动完成",
		"schedule", s.cfg.ProcessSchedule,
		"watch_dir", s.cfg.WatchDir)
	return nil
}

// Stop 停止调度器
func (s *ProcessingScheduler) Stop() {
	if !s.started {
		return
	}
	s.cancel()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.started = false
	slog.Info("自动处理流水线调度器已停止")
}

// runWithLock 在分布式锁保护下执行一轮扫描处理
func (s *ProcessingScheduler) runWithLock() {
	if s.distributedLock != nil {
		locked, err := s.distributedLock.TryLock(s.ctx, lockKey, lockTTL)
		if err != nil {
			slog.Error("获取流水线调度锁失败", "error", err)
			monitoring.SchedulerRunsTotal.WithLabelValues("lock_error").Inc()
			return
		}
		if !locked {
			slog.Debug("流水线已在其他实例执行，本轮跳过")
			monitoring.SchedulerRunsTotal.WithLabelValues("skipped").Inc()
			return
		}
		defer func() {
			if err := s.distributedLock.Unlock(s.ctx, lockKey); err != nil {
				slog.Warn("释放流水线调度锁失败", "error", err)
			}
		}()
	}

	if err := s.RunOnce(s.ctx); err != nil {
		slog.Error("流水线执行失败", "error", err)
		monitoring.SchedulerRunsTotal.WithLabelValues("error").Inc()
		return
	}
	monitoring.SchedulerRunsTotal.WithLabelValues("success").Inc()
}

// RunOnce 扫描监控目录并处理所有未处理的数据文件
func (s *ProcessingScheduler) RunOnce(ctx context.Context) error {
	entries, err := os.ReadDir(s.cfg.WatchDir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("监控目录不存在，本轮跳过", "dir", s.cfg.WatchDir)
			return nil
		}
		return fmt.Errorf("扫描监控目录失败: %w", err)
	}

	processed := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || !isSupportedFile(entry.Name()) {
			continue
		}

		path := filepath.Join(s.cfg.WatchDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}

		if s.alreadyProcessed(path, info.ModTime()) {
			continue
		}

		if err := s.ProcessFile(ctx, path, info.ModTime()); err != nil {
			slog.Error("文件处理失败", "file", entry.Name(), "error", err)
			monitoring.FilesProcessedTotal.WithLabelValues("failed").Inc()
			s.recordFailure(path, info.ModTime(), err)
			continue
		}
		monitoring.FilesProcessedTotal.WithLabelValues("success").Inc()
		processed++
	}

	if processed > 0 {
		slog.Info("流水线本轮处理完成", "files", processed)
	}
	return nil
}

// ProcessFile 对单个数据文件执行完整的校验-清洗-输出流程
func (s *ProcessingScheduler) ProcessFile(ctx context.Context, path string, modTime time.Time) error {
	ds, metadata, err := s.loader.Load(path)
	if err != nil {
		return err
	}

	entityType := inferEntityType(metadata.FileName)
	report := s.engine.Validate(ds, entityType)
	cleaned, cleaningReport := s.engine.Clean(ds, report)

	outputPath := filepath.Join(s.cfg.OutputDir, "cleaned_"+strings.TrimSuffix(metadata.FileName, metadata.FileExtension)+".csv")
	if _, err := s.writer.Save(cleaned, outputPath, models.FormatCSV); err != nil {
		return err
	}

	if _, err := s.engine.SaveValidationReport(report, metadata.FileName, cleaningReport); err != nil {
		return err
	}

	record := &models.ProcessedFileRecord{
		FileName:     metadata.FileName,
		FilePath:     path,
		FileModTime:  modTime,
		EntityType:   entityType,
		QualityScore: report.QualityScore,
		OutputPath:   outputPath,
		Status:       "success",
		ProcessedAt:  time.Now().UTC(),
	}

	// 可选：上传清洗结果到Blob存储
	if s.blob != nil {
		result, err := s.blob.UploadFile(ctx, outputPath, entityType, map[string]string{
			"quality_score": fmt.Sprintf("%.1f", report.QualityScore),
		})
		if err != nil {
			slog.Warn("清洗结果上传失败", "file", metadata.FileName, "error", err)
		} else {
			record.BlobPath = result.BlobPath
		}
	}

	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("保存处理记录失败: %w", err)
	}

	slog.Info("文件处理完成",
		"file", metadata.FileName,
		"entity_type", entityType,
		"quality_score", report.QualityScore,
		"output", outputPath)
	return nil
}

// alreadyProcessed 判断文件是否已被处理过（按路径与修改时间匹配，失败记录同样命中，文件更新后会重新处理）
func (s *ProcessingScheduler) alreadyProcessed(path string, modTime time.Time) bool {
	var count int64
	s.db.Model(&models.ProcessedFileRecord{}).
		Where("file_path = ? AND file_mod_time = ?", path, modTime).
		Count(&count)
	return count > 0
}

// recordFailure 记录处理失败的文件，避免每轮重复报错
func (s *ProcessingScheduler) recordFailure(path string, modTime time.Time, processErr error) {
	record := &models.ProcessedFileRecord{
		FileName:     filepath.Base(path),
		FilePath:     path,
		FileModTime:  modTime,
		Status:       "failed",
		ErrorMessage: processErr.Error(),
		ProcessedAt:  time.Now().UTC(),
	}
	if err := s.db.Create(record).Error; err != nil {
		slog.Error("保存失败记录失败", "error", err)
	}
}

// isSupportedFile 判断文件是否为支持的数据文件类型
func isSupportedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}

// inferEntityType 按文件名推断实体类型，无法识别时按general处理
func inferEntityType(fileName string) string {
	lower := strings.ToLower(fileName)
	switch {
	case strings.Contains(lower, "emission") || strings.Contains(lower, "carbon"):
		return models.EntityTypeEmissions
	case strings.Contains(lower, "activit"):
		return models.EntityTypeActivities
	case strings.Contains(lower, "supplier") || strings.Contains(lower, "vendor"):
		return models.EntityTypeSuppliers
	}
	return models.EntityTypeGeneral
}
