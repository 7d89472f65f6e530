/*
 * @module service/data_quality/engine
 * @description 数据质量引擎，提供ESG数据集的质量校验、评分计算与报告持久化
 * @architecture 分层架构 - 数据质量服务层
 * @documentReference ai_docs/esg_quality_req.md
 * @stateFlow 数据集输入 -> 规则顺序执行 -> 评分计算 -> 报告生成 -> 结果持久化
 * @rules 校验为纯函数，相同输入产生相同报告；评分范围[0,100]，空数据集直接判0分
 * @dependencies esg-reporting-service/service/models, gorm.io/gorm
 * @refs service/data_quality/rules.go, service/data_quality/cleanser.go
 */

package data_quality

import (
	"esg-reporting-service/service/config"
	"esg-reporting-service/service/models"
	"esg-reporting-service/service/monitoring"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// Engine 数据质量引擎
type Engine struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewEngine 创建数据质量引擎实例
func NewEngine(db *gorm.DB, cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = &config.Config{BatchSize: config.DefaultBatchSize}
	}
	return &Engine{
		db:  db,
		cfg: cfg,
	}
}

// Validate 执行数据集质量校验，返回校验报告
// 未知的实体类型按general处理，不报错；校验不修改输入数据集
func (e *Engine) Validate(ds *models.Dataset, entityType string) *models.ValidationReport {
	if _, ok := entityRules[entityType]; !ok {
		entityType = models.EntityTypeGeneral
	}

	report := &models.ValidationReport{
		Timestamp:    nowISO(),
		EntityType:   entityType,
		TotalRows:    ds.RowCount(),
		Issues:       []string{},
		Warnings:     []string{},
		QualityScore: 100.0,
	}

	// 空数据集直接判0分，不再执行后续检查
	if ds.IsEmpty() {
		report.Issues = append(report.Issues, "DataFrame is empty")
		report.QualityScore = 0.0
		monitoring.ValidationTotal.WithLabelValues(entityType).Inc()
		monitoring.QualityScoreObserved.Observe(0)
		return report
	}

	// 通用规则与实体专属规则按固定顺序执行，各规则相互独立，扣分可叠加
	rules := make([]ValidationRule, 0, len(generalRules)+len(entityRules[entityType]))
	rules = append(rules, generalRules...)
	rules = append(rules, entityRules[entityType]...)

	for _, rule := range rules {
		result := rule(ds)
		report.Warnings = append(report.Warnings, result.Warnings...)
		report.QualityScore -= result.Penalty
	}

	// 评分下限为0
	if report.QualityScore < 0 {
		report.QualityScore = 0.0
	}

	slog.Info("数据校验完成",
		"entity_type", entityType,
		"total_rows", report.TotalRows,
		"warnings", len(report.Warnings),
		"quality_score", report.QualityScore)

	monitoring.ValidationTotal.WithLabelValues(entityType).Inc()
	monitoring.QualityScoreObserved.Observe(report.QualityScore)

	return report
}

// SaveValidationReport 持久化校验报告，cleaning可为nil
func (e *Engine) SaveValidationReport(report *models.ValidationReport, sourceName string, cleaning *models.CleaningReport) (*models.QualityReport, error) {
	if e.db == nil {
		return nil, fmt.Errorf("数据库未初始化，无法保存质量报告")
	}

	record := &models.QualityReport{
		SourceName:   sourceName,
		EntityType:   report.EntityType,
		TotalRows:    report.TotalRows,
		QualityScore: report.QualityScore,
		Issues:       models.JSONBStringArray(report.Issues),
		Warnings:     models.JSONBStringArray(report.Warnings),
		GeneratedBy:  "system",
	}

	if cleaning != nil {
		record.CleaningInfo = models.JSONB{
			"original_row_count":       cleaning.OriginalRowCount,
			"final_row_count":          cleaning.FinalRowCount,
			"actions_performed":        cleaning.ActionsPerformed,
			"data_quality_improvement": cleaning.QualityImprovement,
		}
	}

	if err := e.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("保存质量报告失败: %w", err)
	}

	return record, nil
}

// GetQualityReports 分页查询历史质量报告
func (e *Engine) GetQualityReports(page, size int, entityType string) ([]models.QualityReport, int64, error) {
	if e.db == nil {
		return nil, 0, fmt.Errorf("数据库未初始化")
	}

	var reports []models.QualityReport
	var total int64

	query := e.db.Model(&models.QualityReport{})
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size
	if err := query.Order("created_at DESC").Offset(offset).Limit(size).Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// GetQualityReport 按ID查询质量报告
func (e *Engine) GetQualityReport(id string) (*models.QualityReport, error) {
	if e.db == nil {
		return nil, fmt.Errorf("数据库未初始化")
	}

	var report models.QualityReport
	if err := e.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// nowISO 当前UTC时间的ISO-8601表示
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
