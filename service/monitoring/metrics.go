/*
 * @module service/monitoring/metrics
 * @description Prometheus指标定义，统计校验、清洗与自动处理流水线的执行情况
 * @architecture 分层架构 - 监控层
 * @documentReference ai_docs/esg_service_monitoring.md
 * @stateFlow 业务操作执行 -> 指标打点 -> /metrics端点暴露
 * @rules 指标注册使用promauto在包加载时完成，业务代码只做打点
 * @dependencies github.com/prometheus/client_golang
 * @refs main.go, service/data_quality/, service/scheduler/
 */

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ValidationTotal 数据校验次数，按实体类型区分
	ValidationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "esg_validations_total",
		Help: "Total number of dataset validations by entity type",
	}, []string{"entity_type"})

	// CleaningTotal 数据清洗次数
	CleaningTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "esg_cleanings_total",
		Help: "Total number of dataset cleaning runs",
	})

	// QualityScoreObserved 校验产生的质量评分分布
	QualityScoreObserved = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "esg_quality_score",
		Help:    "Distribution of data quality scores produced by validation",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})

	// SchedulerRunsTotal 自动处理流水线执行次数，按结果区分
	SchedulerRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "esg_scheduler_runs_total",
		Help: "Total number of automatic processing pipeline runs by result",
	}, []string{"result"})

	// FilesProcessedTotal 流水线处理文件数，按状态区分
	FilesProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "esg_files_processed_total",
		Help: "Total number of files processed by the pipeline by status",
	}, []string{"status"})
)
