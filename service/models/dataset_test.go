/*
 * @module service/models/dataset_test
 * @description 内存数据集模型测试，覆盖行列操作、缺失判定、类型推断与行键
 * @architecture 测试层
 * @documentReference ai_docs/esg_data_model.md
 * @stateFlow 数据集构建 -> 操作执行 -> 结果验证
 * @rules 缺失定义为nil或纯空白字符串；数值列要求至少一个非缺失值且全部可为数值
 * @dependencies testing, github.com/stretchr/testify
 * @refs dataset.go
 */

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 行追加时按列数补齐或截断
func TestAppendRow_PadsToColumnCount(t *testing.T) {
	ds := NewDataset([]string{"a", "b", "c"})
	ds.AppendRow([]any{"x"})
	ds.AppendRow([]any{"x", "y", "z", "extra"})

	require.Equal(t, 2, ds.RowCount())
	assert.Equal(t, []any{"x", nil, nil}, ds.Rows[0])
	assert.Equal(t, []any{"x", "y", "z"}, ds.Rows[1])
}

// 列追加时所有行填入同一个值
func TestAppendColumn(t *testing.T) {
	ds := NewDataset([]string{"a"})
	ds.AppendRow([]any{"1"})
	ds.AppendRow([]any{"2"})

	ds.AppendColumn("score", 85.0)

	assert.Equal(t, []string{"a", "score"}, ds.Columns)
	assert.Equal(t, 85.0, ds.Rows[0][1])
	assert.Equal(t, 85.0, ds.Rows[1][1])
}

// 深拷贝后修改副本不影响原数据集
func TestClone_Independent(t *testing.T) {
	ds := NewDataset([]string{"a", "b"})
	ds.AppendRow([]any{"x", float64(1)})

	clone := ds.Clone()
	clone.Columns[0] = "changed"
	clone.Rows[0][0] = "changed"

	assert.Equal(t, "a", ds.Columns[0])
	assert.Equal(t, "x", ds.Rows[0][0])
}

// 行区间切片越界自动收敛
func TestSlice_Bounds(t *testing.T) {
	ds := NewDataset([]string{"a"})
	for i := 0; i < 5; i++ {
		ds.AppendRow([]any{float64(i)})
	}

	assert.Equal(t, 2, ds.Slice(0, 2).RowCount())
	assert.Equal(t, 1, ds.Slice(4, 100).RowCount())
	assert.Equal(t, 0, ds.Slice(10, 20).RowCount())
	assert.Equal(t, 5, ds.Slice(-3, 100).RowCount())
}

// 缺失判定：nil与纯空白字符串为缺失，0与"0"不是
func TestIsMissing(t *testing.T) {
	assert.True(t, IsMissing(nil))
	assert.True(t, IsMissing(""))
	assert.True(t, IsMissing("   "))
	assert.False(t, IsMissing("0"))
	assert.False(t, IsMissing(float64(0)))
	assert.False(t, IsMissing("Unknown"))
}

// 列类型推断：至少一个非缺失值且全部为数值时判定为数值列
func TestInferColumnType(t *testing.T) {
	ds := NewDataset([]string{"numeric", "mixed", "all_missing", "text"})
	ds.AppendRow([]any{float64(1), float64(1), nil, "a"})
	ds.AppendRow([]any{nil, "x", "", "b"})

	assert.Equal(t, ColumnTypeNumeric, ds.InferColumnType(0))
	assert.Equal(t, ColumnTypeString, ds.InferColumnType(1))
	assert.Equal(t, ColumnTypeString, ds.InferColumnType(2))
	assert.Equal(t, ColumnTypeString, ds.InferColumnType(3))
}

// 行键带类型前缀，字符串"1"与数值1不同键
func TestRowKey_TypeAware(t *testing.T) {
	assert.NotEqual(t, RowKey([]any{"1"}), RowKey([]any{float64(1)}))
	assert.Equal(t, RowKey([]any{"a", float64(2), nil}), RowKey([]any{"a", float64(2), nil}))
	assert.NotEqual(t, RowKey([]any{nil}), RowKey([]any{""}))
}
