/*
 * @module service/dataset/loader
 * @description 数据文件加载器，支持CSV（含BOM）与Excel文件解析为内存数据集
 * @architecture 分层架构 - 数据接入层
 * @documentReference ai_docs/esg_data_model.md
 * @stateFlow 文件校验 -> 格式识别 -> 解析 -> 单元格类型转换 -> 元数据采集
 * @rules 文件不存在、超大、格式不支持均为显式错误，在数据进入质量引擎之前暴露
 * @dependencies github.com/xuri/excelize/v2, golang.org/x/text, github.com/spf13/cast
 * @refs service/data_quality/, service/config/
 */

package dataset

import (
	"encoding/csv"
	"esg-reporting-service/service/config"
	"esg-reporting-service/service/models"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Loader 数据文件加载器
type Loader struct {
	maxFileSizeMB int
}

// NewLoader 创建数据文件加载器实例
func NewLoader(cfg *config.Config) *Loader {
	maxSize := config.DefaultMaxFileSizeMB
	if cfg != nil && cfg.MaxFileSizeMB > 0 {
		maxSize = cfg.MaxFileSizeMB
	}
	return &Loader{maxFileSizeMB: maxSize}
}

// Load 按扩展名加载CSV或Excel文件，返回数据集与文件元数据
func (l *Loader) Load(filePath string) (*models.Dataset, *models.FileMetadata, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("文件不存在: %s", filePath)
		}
		return nil, nil, fmt.Errorf("读取文件信息失败: %w", err)
	}

	sizeMB := float64(info.Size()) / (1024 * 1024)
	if sizeMB > float64(l.maxFileSizeMB) {
		return nil, nil, fmt.Errorf("文件大小%.2fMB超过限制%dMB: %s", sizeMB, l.maxFileSizeMB, filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	metadata := &models.FileMetadata{
		FilePath:      filePath,
		FileName:      filepath.Base(filePath),
		FileSizeMB:    roundMB(sizeMB),
		ReadTimestamp: time.Now().UTC().Format(time.RFC3339),
		FileExtension: ext,
	}

	var ds *models.Dataset
	switch ext {
	case ".csv":
		f, err := os.Open(filePath)
		if err != nil {
			return nil, nil, fmt.Errorf("打开CSV文件失败: %w", err)
		}
		defer f.Close()
		ds, err = l.LoadCSV(f)
		if err != nil {
			return nil, nil, fmt.Errorf("解析CSV文件 %s 失败: %w", filePath, err)
		}
		metadata.FileType = "csv"
	case ".xlsx", ".xls":
		ds, err = l.LoadExcel(filePath)
		if err != nil {
			return nil, nil, fmt.Errorf("解析Excel文件 %s 失败: %w", filePath, err)
		}
		metadata.FileType = "excel"
	default:
		return nil, nil, fmt.Errorf("不支持的文件类型: %s", ext)
	}

	metadata.RowCount = ds.RowCount()
	metadata.ColumnCount = ds.ColumnCount()

	slog.Info("文件读取成功",
		"file", metadata.FileName,
		"rows", metadata.RowCount,
		"columns", metadata.ColumnCount)

	return ds, metadata, nil
}

// LoadCSV 从Reader解析CSV数据，自动处理UTF-8 BOM，首行作为列名
func (l *Loader) LoadCSV(r io.Reader) (*models.Dataset, error) {
	// utf-8-sig兼容：带BOM的文件在解码时剥离BOM
	decoded := transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return models.NewDataset(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取CSV表头失败: %w", err)
	}

	ds := models.NewDataset(header)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取CSV数据行失败: %w", err)
		}
		ds.AppendRow(convertCells(record, len(header)))
	}
	return ds, nil
}

// LoadExcel 解析Excel文件的第一个工作表，首行作为列名
func (l *Loader) LoadExcel(filePath string) (*models.Dataset, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("打开Excel文件失败: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.NewDataset(nil), nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %s 失败: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return models.NewDataset(nil), nil
	}

	ds := models.NewDataset(rows[0])
	for _, row := range rows[1:] {
		ds.AppendRow(convertCells(row, len(rows[0])))
	}
	return ds, nil
}

// convertCells 单元格类型转换：空白为缺失，可解析数字转为float64，其余保持字符串
// excelize会裁剪行尾的空单元格，这里按列数补齐
func convertCells(record []string, columnCount int) []any {
	cells := make([]any, columnCount)
	for i := 0; i < columnCount; i++ {
		if i >= len(record) {
			cells[i] = nil
			continue
		}
		cells[i] = convertCell(record[i])
	}
	return cells
}

func convertCell(s string) any {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if f, err := cast.ToFloat64E(trimmed); err == nil {
		return f
	}
	return s
}

func roundMB(mb float64) float64 {
	return float64(int(mb*100+0.5)) / 100
}
