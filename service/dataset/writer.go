/*
 * @module service/dataset/writer
 * @description 数据集输出，支持写出为CSV（带BOM）或Excel文件并生成保存报告
 * @architecture 分层架构 - 数据输出层
 * @documentReference ai_docs/esg_data_model.md
 * @stateFlow 目录准备 -> 格式化写出 -> 文件大小统计 -> 保存报告
 * @rules 写出失败通过SaveReport的success/error字段显式暴露
 * @dependencies github.com/xuri/excelize/v2, encoding/csv
 * @refs service/scheduler/, api/controllers/
 */

package dataset

import (
	"encoding/csv"
	"esg-reporting-service/service/models"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// utf8BOM CSV输出带BOM前缀，保证Excel直接打开时正确识别UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer 数据集输出器
type Writer struct{}

// NewWriter 创建数据集输出器实例
func NewWriter() *Writer {
	return &Writer{}
}

// Save 将数据集写出到指定路径，format取csv或excel
func (w *Writer) Save(ds *models.Dataset, outputPath, format string) (*models.SaveReport, error) {
	report := &models.SaveReport{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		OutputPath:  outputPath,
		Format:      format,
		RowCount:    ds.RowCount(),
		ColumnCount: ds.ColumnCount(),
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		report.Error = err.Error()
		return report, fmt.Errorf("创建输出目录失败: %w", err)
	}

	var err error
	switch strings.ToLower(format) {
	case models.FormatCSV:
		err = w.saveCSV(ds, outputPath)
	case models.FormatExcel:
		err = w.saveExcel(ds, outputPath)
	default:
		err = fmt.Errorf("不支持的输出格式: %s", format)
	}

	if err != nil {
		report.Error = err.Error()
		slog.Error("数据保存失败", "path", outputPath, "error", err)
		return report, err
	}

	if info, statErr := os.Stat(outputPath); statErr == nil {
		report.FileSizeMB = roundMB(float64(info.Size()) / (1024 * 1024))
	}
	report.Success = true

	slog.Info("数据保存成功", "path", outputPath, "format", format, "size_mb", report.FileSizeMB)
	return report, nil
}

func (w *Writer) saveCSV(ds *models.Dataset, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("创建CSV文件失败: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("写入BOM失败: %w", err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(ds.Columns); err != nil {
		return fmt.Errorf("写入CSV表头失败: %w", err)
	}
	for _, row := range ds.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("写入CSV数据行失败: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (w *Writer) saveExcel(ds *models.Dataset, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]any, len(ds.Columns))
	for i, col := range ds.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("写入Excel表头失败: %w", err)
	}

	for i, row := range ds.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("写入Excel数据行失败: %w", err)
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("保存Excel文件失败: %w", err)
	}
	return nil
}

// formatCell 单元格转字符串：缺失输出空串，数值按最短精确表示输出
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
