/*
 * @module service/data_quality/batch
 * @description 分批处理辅助，将大数据集按批次顺序处理，单批失败不影响其他批次
 * @architecture 分层架构 - 数据质量服务层
 * @documentReference ai_docs/esg_quality_req.md
 * @stateFlow 数据集切分 -> 逐批执行 -> 结果按批次顺序收集
 * @rules 批次结果顺序与输入顺序一致；单批失败转换为错误标记，不中断整体处理
 * @dependencies esg-reporting-service/service/models
 * @refs service/data_quality/engine.go
 */

package data_quality

import (
	"esg-reporting-service/service/config"
	"esg-reporting-service/service/models"
	"fmt"
	"log/slog"
)

// BatchFunc 单批处理函数，batch为独立副本，批次之间无共享可变状态
type BatchFunc func(batch *models.Dataset) (any, error)

// ProcessInBatches 将数据集按配置的批大小切分并顺序处理，收集各批结果
// 单批的error或panic会被转换为该批次的错误标记，后续批次继续执行
func (e *Engine) ProcessInBatches(ds *models.Dataset, fn BatchFunc) []models.BatchResult {
	batchSize := e.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}

	total := ds.RowCount()
	totalBatches := 0
	if total > 0 {
		totalBatches = (total-1)/batchSize + 1
	}

	slog.Info("开始分批处理", "total_rows", total, "batch_size", batchSize, "total_batches", totalBatches)

	results := make([]models.BatchResult, 0, totalBatches)
	for i := 0; i < total; i += batchSize {
		batchNum := i/batchSize + 1
		batch := ds.Slice(i, i+batchSize)

		slog.Debug("处理批次", "batch_num", batchNum, "total_batches", totalBatches, "rows", batch.RowCount())

		result, err := runBatch(fn, batch)
		if err != nil {
			slog.Error("批次处理失败", "batch_num", batchNum, "error", err)
			results = append(results, models.BatchResult{BatchNum: batchNum, Error: err.Error()})
			continue
		}
		results = append(results, models.BatchResult{BatchNum: batchNum, Result: result})
	}

	slog.Info("分批处理完成", "batches", len(results))
	return results
}

// runBatch 执行单批处理，将panic转换为error以保证失败隔离
func runBatch(fn BatchFunc, batch *models.Dataset) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("批次处理发生panic: %v", r)
		}
	}()
	return fn(batch)
}
