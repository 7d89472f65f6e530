/*
 * @module service/models/quality_models
 * @description 数据质量模型，包含校验报告、清洗报告、分批处理结果及质量报告持久化模型
 * @architecture 数据模型层
 * @documentReference ai_docs/esg_quality_req.md
 * @stateFlow 数据校验 -> 报告生成 -> 数据清洗 -> 报告持久化
 * @rules 报告为固定字段的强类型结构，创建后不再修改，JSON字段名与对外契约保持一致
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/data_quality/
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 实体类型，决定启用哪组实体专属校验规则
const (
	EntityTypeEmissions  = "emissions"
	EntityTypeActivities = "activities"
	EntityTypeSuppliers  = "suppliers"
	EntityTypeGeneral    = "general"
)

// ValidationReport 数据校验报告，单次校验调用生成，返回后不再修改
type ValidationReport struct {
	Timestamp    string   `json:"timestamp"`
	EntityType   string   `json:"entity_type"`
	TotalRows    int      `json:"total_rows"`
	Issues       []string `json:"issues"`
	Warnings     []string `json:"warnings"`
	QualityScore float64  `json:"data_quality_score"`
}

// CleaningReport 数据清洗报告，记录各项清洗动作及粗略的质量提升估计
type CleaningReport struct {
	Timestamp          string   `json:"timestamp"`
	OriginalRowCount   int      `json:"original_row_count"`
	ActionsPerformed   []string `json:"actions_performed"`
	FinalRowCount      int      `json:"final_row_count"`
	QualityImprovement float64  `json:"data_quality_improvement"`
}

// BatchResult 分批处理单批结果，Error非空表示该批次处理失败（失败隔离，不影响其他批次）
type BatchResult struct {
	BatchNum int    `json:"batch_num"`
	Result   any    `json:"result,omitempty"`
	Error    string `json:"error,omitempty"`
}

// QualityReport 质量报告持久化模型
type QualityReport struct {
	ID           string           `gorm:"type:varchar(50);primaryKey" json:"id"`
	SourceName   string           `gorm:"type:varchar(255);not null;index" json:"source_name"`
	EntityType   string           `gorm:"type:varchar(30);not null;index" json:"entity_type"`
	TotalRows    int              `json:"total_rows"`
	QualityScore float64          `json:"data_quality_score"`
	Issues       JSONBStringArray `gorm:"type:jsonb" json:"issues"`
	Warnings     JSONBStringArray `gorm:"type:jsonb" json:"warnings"`
	CleaningInfo JSONB            `gorm:"type:jsonb" json:"cleaning_info,omitempty"`
	GeneratedBy  string           `gorm:"type:varchar(50);default:'system'" json:"generated_by"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// TableName 指定表名
func (QualityReport) TableName() string {
	return "quality_reports"
}

// BeforeCreate 创建前钩子
func (q *QualityReport) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return nil
}

// ProcessedFileRecord 自动处理流水线的文件处理记录，用于防止重复处理
type ProcessedFileRecord struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	FileName     string    `gorm:"type:varchar(255);not null;index" json:"file_name"`
	FilePath     string    `gorm:"type:varchar(500);not null" json:"file_path"`
	FileModTime  time.Time `gorm:"index" json:"file_mod_time"`
	EntityType   string    `gorm:"type:varchar(30)" json:"entity_type"`
	QualityScore float64   `json:"data_quality_score"`
	OutputPath   string    `gorm:"type:varchar(500)" json:"output_path"`
	BlobPath     string    `gorm:"type:varchar(500)" json:"blob_path,omitempty"`
	Status       string    `gorm:"type:varchar(20);not null" json:"status"` // success, failed
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	ProcessedAt  time.Time `json:"processed_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 指定表名
func (ProcessedFileRecord) TableName() string {
	return "processed_file_records"
}

// BeforeCreate 创建前钩子
func (p *ProcessedFileRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
