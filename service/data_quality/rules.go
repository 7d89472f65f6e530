/*
 * @module service/data_quality/rules
 * @description 质量校验规则集，每条规则独立返回告警与扣分，由引擎按固定顺序组合执行
 * @architecture 分层架构 - 数据质量服务层
 * @documentReference ai_docs/esg_quality_req.md
 * @stateFlow 规则输入数据集 -> 检查执行 -> 告警与扣分输出
 * @rules 规则之间无共享状态，扣分可叠加不去重；告警文案为对外契约不可改动
 * @dependencies esg-reporting-service/service/models
 * @refs service/data_quality/engine.go
 */

package data_quality

import (
	"esg-reporting-service/service/models"
	"fmt"
	"strings"
)

// RuleResult 单条规则的执行结果
type RuleResult struct {
	Warnings []string
	Penalty  float64
}

// ValidationRule 校验规则，只读访问数据集
type ValidationRule func(ds *models.Dataset) RuleResult

// 通用规则，按固定顺序执行
var generalRules = []ValidationRule{
	checkMissingData,
	checkDuplicateRows,
	checkESGColumns,
	checkNumericColumns,
}

// 实体专属规则，按实体类型选择一组执行；general无额外规则
var entityRules = map[string][]ValidationRule{
	models.EntityTypeEmissions:  {checkScopeColumns, checkCarbonColumns},
	models.EntityTypeActivities: {checkActivityColumns},
	models.EntityTypeSuppliers:  {checkSupplierColumns},
	models.EntityTypeGeneral:    {},
}

// ESG常见列名词表
var commonESGColumns = []string{"date", "timestamp", "value", "unit", "category", "scope", "activity"}

// checkMissingData 逐列统计缺失值，按缺失比例分档扣分，多列扣分叠加
func checkMissingData(ds *models.Dataset) RuleResult {
	var result RuleResult
	var parts []string
	total := ds.RowCount()

	for i, col := range ds.Columns {
		count := ds.MissingCount(i)
		if count == 0 {
			continue
		}
		percentage := float64(count) / float64(total) * 100
		parts = append(parts, fmt.Sprintf("%s: %d missing (%.1f%%)", col, count, percentage))

		switch {
		case percentage > 50:
			result.Penalty += 20
		case percentage > 25:
			result.Penalty += 10
		case percentage > 10:
			result.Penalty += 5
		}
	}

	if len(parts) > 0 {
		result.Warnings = append(result.Warnings, "Missing data found: "+strings.Join(parts, ", "))
	}
	return result
}

// checkDuplicateRows 统计完全重复行，扣分按重复比例计算，上限15分
func checkDuplicateRows(ds *models.Dataset) RuleResult {
	var result RuleResult

	seen := make(map[string]struct{}, ds.RowCount())
	duplicates := 0
	for _, row := range ds.Rows {
		key := models.RowKey(row)
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
	}

	if duplicates > 0 {
		percentage := float64(duplicates) / float64(ds.RowCount()) * 100
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d duplicate rows (%.1f%%)", duplicates, percentage))
		penalty := percentage
		if penalty > 15 {
			penalty = 15
		}
		result.Penalty = penalty
	}
	return result
}

// checkESGColumns 检查是否存在常见ESG数据列（列名大小写不敏感的子串匹配）
func checkESGColumns(ds *models.Dataset) RuleResult {
	var result RuleResult
	if !hasColumnContaining(ds, commonESGColumns...) {
		result.Warnings = append(result.Warnings, "No common ESG data columns detected")
		result.Penalty = 10
	}
	return result
}

// checkNumericColumns 检查是否存在数值列
func checkNumericColumns(ds *models.Dataset) RuleResult {
	var result RuleResult
	for i := range ds.Columns {
		if ds.InferColumnType(i) == models.ColumnTypeNumeric {
			return result
		}
	}
	result.Warnings = append(result.Warnings, "No numeric columns found")
	result.Penalty = 5
	return result
}

// checkScopeColumns 排放数据应包含scope列
func checkScopeColumns(ds *models.Dataset) RuleResult {
	var result RuleResult
	if !hasColumnContaining(ds, "scope") {
		result.Warnings = append(result.Warnings, "No scope columns found for emissions data")
		result.Penalty = 5
	}
	return result
}

// checkCarbonColumns 排放数据应包含CO2/碳排放相关列
func checkCarbonColumns(ds *models.Dataset) RuleResult {
	var result RuleResult
	if !hasColumnContaining(ds, "co2", "carbon", "emission") {
		result.Warnings = append(result.Warnings, "No CO2/carbon/emission columns found")
		result.Penalty = 10
	}
	return result
}

// checkActivityColumns 活动数据应包含活动类型/分类列
func checkActivityColumns(ds *models.Dataset) RuleResult {
	var result RuleResult
	if !hasColumnContaining(ds, "activity", "type", "category") {
		result.Warnings = append(result.Warnings, "No activity type/category columns found")
		result.Penalty = 5
	}
	return result
}

// checkSupplierColumns 供应商数据应包含供应商标识列
func checkSupplierColumns(ds *models.Dataset) RuleResult {
	var result RuleResult
	if !hasColumnContaining(ds, "supplier", "vendor", "company", "name") {
		result.Warnings = append(result.Warnings, "No supplier identification columns found")
		result.Penalty = 10
	}
	return result
}

// hasColumnContaining 判断是否存在列名包含任一关键词（大小写不敏感）
func hasColumnContaining(ds *models.Dataset, terms ...string) bool {
	for _, col := range ds.Columns {
		lower := strings.ToLower(col)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}
