/*
 * @module service/data_quality/batch_test
 * @description 分批处理测试，覆盖批次切分、顺序、失败隔离与panic恢复
 * @architecture 测试层
 * @documentReference ai_docs/esg_quality_req.md
 * @stateFlow 测试数据输入 -> 分批执行 -> 批次结果验证
 * @rules 批次编号从1开始且结果顺序与输入一致
 * @dependencies testing, esg-reporting-service/service/models, github.com/stretchr/testify
 * @refs batch.go
 */

package data_quality

import (
	"esg-reporting-service/service/config"
	"esg-reporting-service/service/models"
	"esg-reporting-service/testutil"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBatchEngine(batchSize int) *Engine {
	return NewEngine(nil, &config.Config{BatchSize: batchSize})
}

// 6行数据按批大小2切分为3批，批次编号从1开始
func TestProcessInBatches_SplitsAndNumbers(t *testing.T) {
	engine := newBatchEngine(2)
	ds := testutil.NewGeneralDataset(6)

	var batchRows []int
	results := engine.ProcessInBatches(ds, func(batch *models.Dataset) (any, error) {
		batchRows = append(batchRows, batch.RowCount())
		return batch.RowCount(), nil
	})

	require.Len(t, results, 3)
	assert.Equal(t, []int{2, 2, 2}, batchRows)
	for i, result := range results {
		assert.Equal(t, i+1, result.BatchNum)
		assert.Empty(t, result.Error)
		assert.Equal(t, 2, result.Result)
	}
}

// 行数不能整除批大小时最后一批为剩余行
func TestProcessInBatches_UnevenSplit(t *testing.T) {
	engine := newBatchEngine(4)
	ds := testutil.NewGeneralDataset(6)

	var batchRows []int
	results := engine.ProcessInBatches(ds, func(batch *models.Dataset) (any, error) {
		batchRows = append(batchRows, batch.RowCount())
		return nil, nil
	})

	require.Len(t, results, 2)
	assert.Equal(t, []int{4, 2}, batchRows)
}

// 单批失败转换为错误标记，其他批次继续执行
func TestProcessInBatches_FailureIsolation(t *testing.T) {
	engine := newBatchEngine(2)
	ds := testutil.NewGeneralDataset(6)

	call := 0
	results := engine.ProcessInBatches(ds, func(batch *models.Dataset) (any, error) {
		call++
		if call == 2 {
			return nil, fmt.Errorf("数据库连接失败")
		}
		return "ok", nil
	})

	require.Len(t, results, 3)
	assert.Empty(t, results[0].Error)
	assert.Equal(t, "数据库连接失败", results[1].Error)
	assert.Equal(t, 2, results[1].BatchNum)
	assert.Empty(t, results[2].Error)
	assert.Equal(t, "ok", results[2].Result)
}

// 批处理函数panic被恢复为该批次的错误标记
func TestProcessInBatches_PanicRecovery(t *testing.T) {
	engine := newBatchEngine(2)
	ds := testutil.NewGeneralDataset(4)

	results := engine.ProcessInBatches(ds, func(batch *models.Dataset) (any, error) {
		if batch.Rows[0][1] == float64(0) {
			panic("index out of range")
		}
		return "ok", nil
	})

	require.Len(t, results, 2)
	assert.Contains(t, results[0].Error, "panic")
	assert.Contains(t, results[0].Error, "index out of range")
	assert.Empty(t, results[1].Error)
}

// 空数据集不产生任何批次
func TestProcessInBatches_EmptyDataset(t *testing.T) {
	engine := newBatchEngine(2)
	ds := models.NewDataset([]string{"date", "value"})

	results := engine.ProcessInBatches(ds, func(batch *models.Dataset) (any, error) {
		return nil, nil
	})

	assert.Empty(t, results)
}

// 非法批大小回退到默认值
func TestProcessInBatches_InvalidBatchSizeFallsBack(t *testing.T) {
	engine := newBatchEngine(0)
	ds := testutil.NewGeneralDataset(5)

	results := engine.ProcessInBatches(ds, func(batch *models.Dataset) (any, error) {
		return batch.RowCount(), nil
	})

	require.Len(t, results, 1)
	assert.Equal(t, 5, results[0].Result)
}

// 每批是独立副本，修改批数据不影响原数据集
func TestProcessInBatches_BatchesAreCopies(t *testing.T) {
	engine := newBatchEngine(2)
	ds := testutil.NewGeneralDataset(4)
	original := ds.Clone()

	engine.ProcessInBatches(ds, func(batch *models.Dataset) (any, error) {
		for _, row := range batch.Rows {
			row[0] = "modified"
		}
		return nil, nil
	})

	assert.Equal(t, original.Rows, ds.Rows)
}
