/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference ai_docs/esg_service_api.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs api/controllers
 */

package api

import (
	"esg-reporting-service/api/controllers"
	"esg-reporting-service/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController()
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 数据质量管理
	r.Route("/quality", func(r chi.Router) {
		qualityController := controllers.NewQualityController(service.GlobalQualityEngine, service.GlobalLoader)

		// 数据集校验
		r.Post("/validate", qualityController.ValidateData)

		// 数据集校验并清洗
		r.Post("/clean", qualityController.CleanData)

		// 质量报告查询
		r.Get("/reports", qualityController.GetQualityReports)
		r.Get("/reports/{id}", qualityController.GetQualityReport)
	})

	// 数据集管理
	r.Route("/datasets", func(r chi.Router) {
		datasetController := controllers.NewDatasetController(service.GlobalQualityEngine, service.GlobalLoader, service.GlobalWriter)

		// 数据集预览
		r.Post("/preview", datasetController.PreviewDataset)

		// 分批校验处理
		r.Post("/process-batches", datasetController.ProcessBatches)

		// 数据集导出
		r.Post("/export", datasetController.ExportDataset)
	})

	// 碳排放数据查询
	r.Route("/carbon", func(r chi.Router) {
		carbonController := controllers.NewCarbonController(service.GlobalCarbonClient)

		r.Post("/emissions", carbonController.GetEmissions)
		r.Post("/monthly-summary", carbonController.GetMonthlySummary)
	})

	// Blob存储管理
	r.Route("/storage", func(r chi.Router) {
		storageController := controllers.NewStorageController(service.GlobalBlobClient)

		r.Post("/upload", storageController.UploadBlob)
		r.Get("/blobs", storageController.ListBlobs)
		r.Get("/download", storageController.DownloadBlob)
	})
}
