/*
 * @module service/data_quality/cleanser
 * @description 数据清洗器，负责重复行去除、列名标准化、缺失值填充与处理元数据标记
 * @architecture 分层架构 - 数据清洗层
 * @documentReference ai_docs/esg_quality_req.md
 * @stateFlow 数据集复制 -> 去重 -> 列名标准化 -> 缺失填充 -> 元数据列追加 -> 清洗报告输出
 * @rules 清洗基于副本进行不修改原数据；各步骤仅在实际发生变更时记录动作
 * @dependencies esg-reporting-service/service/models
 * @refs service/data_quality/engine.go
 */

package data_quality

import (
	"esg-reporting-service/service/models"
	"esg-reporting-service/service/monitoring"
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// 清洗时追加的处理元数据列
const (
	ProcessedTimestampColumn = "_processed_timestamp"
	QualityScoreColumn       = "_data_quality_score"
)

// Clean 清洗数据集并返回清洗副本与清洗报告
// validationReport仅用于读取质量评分并作为元数据列写入，清洗逻辑不依赖其告警内容
func (e *Engine) Clean(ds *models.Dataset, validationReport *models.ValidationReport) (*models.Dataset, *models.CleaningReport) {
	report := &models.CleaningReport{
		Timestamp:        nowISO(),
		OriginalRowCount: ds.RowCount(),
		ActionsPerformed: []string{},
	}

	cleaned := ds.Clone()

	// 去重：保留首次出现的行，幸存行保持原相对顺序
	duplicatesRemoved := removeDuplicateRows(cleaned)
	if duplicatesRemoved > 0 {
		report.ActionsPerformed = append(report.ActionsPerformed,
			fmt.Sprintf("Removed %d duplicate rows", duplicatesRemoved))
	}

	// 列名标准化：小写化，空格与连字符替换为下划线；已标准化的列名不产生动作记录
	if normalizeColumnNames(cleaned) {
		report.ActionsPerformed = append(report.ActionsPerformed, "Standardized column names")
	}

	// 缺失值填充：字符串列填'Unknown'，数值列填0，逐列记录动作
	for i, col := range cleaned.Columns {
		count := cleaned.MissingCount(i)
		if count == 0 {
			continue
		}
		if cleaned.InferColumnType(i) == models.ColumnTypeNumeric {
			fillColumn(cleaned, i, float64(0))
			report.ActionsPerformed = append(report.ActionsPerformed,
				fmt.Sprintf("Filled %d missing values in '%s' with 0", count, col))
		} else {
			fillColumn(cleaned, i, "Unknown")
			report.ActionsPerformed = append(report.ActionsPerformed,
				fmt.Sprintf("Filled %d missing values in '%s' with 'Unknown'", count, col))
		}
	}

	// 追加处理元数据列：处理时间戳（本次调用内所有行相同）与清洗时刻的质量评分
	qualityScore := 0.0
	if validationReport != nil {
		qualityScore = validationReport.QualityScore
	}
	cleaned.AppendColumn(ProcessedTimestampColumn, nowISO())
	cleaned.AppendColumn(QualityScoreColumn, qualityScore)

	report.FinalRowCount = cleaned.RowCount()

	// 粗略的质量提升估计，空数据集不计算
	if validationReport != nil && validationReport.QualityScore < 100 && report.OriginalRowCount > 0 {
		report.QualityImprovement = math.Min(10.0,
			float64(duplicatesRemoved)/float64(report.OriginalRowCount)*100)
	}

	slog.Info("数据清洗完成",
		"original_rows", report.OriginalRowCount,
		"final_rows", report.FinalRowCount,
		"actions", len(report.ActionsPerformed))

	monitoring.CleaningTotal.Inc()

	return cleaned, report
}

// removeDuplicateRows 原地去除完全重复行，返回移除数量
func removeDuplicateRows(ds *models.Dataset) int {
	seen := make(map[string]struct{}, len(ds.Rows))
	survivors := ds.Rows[:0]
	removed := 0

	for _, row := range ds.Rows {
		key := models.RowKey(row)
		if _, ok := seen[key]; ok {
			removed++
			continue
		}
		seen[key] = struct{}{}
		survivors = append(survivors, row)
	}

	ds.Rows = survivors
	return removed
}

// normalizeColumnNames 标准化列名，返回是否发生了变更
func normalizeColumnNames(ds *models.Dataset) bool {
	changed := false
	for i, col := range ds.Columns {
		normalized := NormalizeColumnName(col)
		if normalized != col {
			ds.Columns[i] = normalized
			changed = true
		}
	}
	return changed
}

// NormalizeColumnName 列名标准化：小写、空格和连字符替换为下划线
func NormalizeColumnName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}

// fillColumn 将某列的所有缺失单元格填充为指定值
func fillColumn(ds *models.Dataset, colIndex int, value any) {
	for _, row := range ds.Rows {
		if colIndex < len(row) && models.IsMissing(row[colIndex]) {
			row[colIndex] = value
		}
	}
}
