/*
 * @module service/models/file_models
 * @description 文件读写与Blob存储操作的元数据模型
 * @architecture 数据模型层
 * @documentReference ai_docs/esg_data_model.md
 * @stateFlow 文件读取 -> 元数据采集 -> 处理 -> 输出/上传
 * @rules 文件读写失败通过报告中的success/error字段显式暴露，不静默丢弃
 * @dependencies time
 * @refs service/dataset/, service/storage/
 */

package models

import "time"

// 输出格式
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
)

// FileMetadata 数据文件读取元数据
type FileMetadata struct {
	FilePath      string  `json:"file_path"`
	FileName      string  `json:"file_name"`
	FileSizeMB    float64 `json:"file_size_mb"`
	ReadTimestamp string  `json:"read_timestamp"`
	FileExtension string  `json:"file_extension"`
	FileType      string  `json:"file_type"`
	RowCount      int     `json:"row_count"`
	ColumnCount   int     `json:"column_count"`
}

// SaveReport 数据保存操作报告
type SaveReport struct {
	Timestamp   string  `json:"timestamp"`
	OutputPath  string  `json:"output_path"`
	Format      string  `json:"format"`
	RowCount    int     `json:"row_count"`
	ColumnCount int     `json:"column_count"`
	Success     bool    `json:"success"`
	FileSizeMB  float64 `json:"file_size_mb,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// UploadResult Blob上传结果
type UploadResult struct {
	BlobPath   string            `json:"blob_path"`
	BlobURL    string            `json:"blob_url"`
	FileSizeMB float64           `json:"file_size_mb"`
	Metadata   map[string]string `json:"metadata"`
	UploadedAt time.Time         `json:"uploaded_at"`
}

// BlobInfo Blob列表条目
type BlobInfo struct {
	Name         string    `json:"name"`
	SizeBytes    int64     `json:"size_bytes"`
	LastModified time.Time `json:"last_modified"`
	ContentType  string    `json:"content_type,omitempty"`
}
