/*
 * @module service/models/dataset
 * @description 内存表格数据集模型，提供行列访问、复制、切片和类型推断能力
 * @architecture 数据模型层
 * @documentReference ai_docs/esg_data_model.md
 * @stateFlow 数据加载 -> 质量校验 -> 数据清洗 -> 数据输出
 * @rules 单元格取值为 nil（缺失）、string、float64 三种之一，行列保持插入顺序
 * @dependencies fmt, strings
 * @refs service/data_quality, service/dataset
 */

package models

import (
	"fmt"
	"strings"
)

// 列类型推断结果
const (
	ColumnTypeString  = "string"
	ColumnTypeNumeric = "numeric"
)

// Dataset 表格数据集，列有序，行保持插入顺序
type Dataset struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NewDataset 创建空数据集
func NewDataset(columns []string) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{
		Columns: cols,
		Rows:    make([][]any, 0),
	}
}

// RowCount 行数
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// ColumnCount 列数
func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

// IsEmpty 是否为空数据集（零行）
func (d *Dataset) IsEmpty() bool {
	return len(d.Rows) == 0
}

// ColumnIndex 按列名查找列下标，不存在返回-1
func (d *Dataset) ColumnIndex(name string) int {
	for i, col := range d.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// AppendRow 追加一行，长度不足时用nil补齐
func (d *Dataset) AppendRow(row []any) {
	r := make([]any, len(d.Columns))
	copy(r, row)
	d.Rows = append(d.Rows, r)
}

// AppendColumn 追加一列，所有行填入同一个值
func (d *Dataset) AppendColumn(name string, value any) {
	d.Columns = append(d.Columns, name)
	for i := range d.Rows {
		d.Rows[i] = append(d.Rows[i], value)
	}
}

// Clone 深拷贝数据集，清洗操作基于副本进行，不会修改调用方的原始数据
func (d *Dataset) Clone() *Dataset {
	clone := &Dataset{
		Columns: make([]string, len(d.Columns)),
		Rows:    make([][]any, len(d.Rows)),
	}
	copy(clone.Columns, d.Columns)
	for i, row := range d.Rows {
		r := make([]any, len(row))
		copy(r, row)
		clone.Rows[i] = r
	}
	return clone
}

// Slice 返回[start,end)行区间的副本，越界自动收敛
func (d *Dataset) Slice(start, end int) *Dataset {
	if start < 0 {
		start = 0
	}
	if end > len(d.Rows) {
		end = len(d.Rows)
	}
	if start > end {
		start = end
	}
	s := NewDataset(d.Columns)
	for _, row := range d.Rows[start:end] {
		s.AppendRow(row)
	}
	return s
}

// MissingCount 统计某列的缺失单元格数量
func (d *Dataset) MissingCount(colIndex int) int {
	count := 0
	for _, row := range d.Rows {
		if colIndex < len(row) && IsMissing(row[colIndex]) {
			count++
		}
	}
	return count
}

// InferColumnType 推断列类型：所有非缺失值均为数值时判定为numeric，否则为string
// 全部缺失的列按string处理
func (d *Dataset) InferColumnType(colIndex int) string {
	numeric := false
	for _, row := range d.Rows {
		if colIndex >= len(row) || IsMissing(row[colIndex]) {
			continue
		}
		if !IsNumeric(row[colIndex]) {
			return ColumnTypeString
		}
		numeric = true
	}
	if numeric {
		return ColumnTypeNumeric
	}
	return ColumnTypeString
}

// IsMissing 判断单元格是否缺失：nil或空白字符串
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// IsNumeric 判断单元格是否为数值
func IsNumeric(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64, int32:
		return true
	}
	return false
}

// RowKey 生成整行的唯一标识，用于重复行检测（带类型前缀避免 "1" 与 1 混淆）
func RowKey(row []any) string {
	var b strings.Builder
	for _, v := range row {
		switch val := v.(type) {
		case nil:
			b.WriteString("n|;")
		case string:
			fmt.Fprintf(&b, "s|%s;", val)
		case float64:
			fmt.Fprintf(&b, "f|%v;", val)
		default:
			fmt.Fprintf(&b, "o|%v;", val)
		}
	}
	return b.String()
}
