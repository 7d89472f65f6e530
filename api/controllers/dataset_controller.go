/*
 * @module api/controllers/dataset_controller
 * @description 数据集控制器，提供数据文件预览、分批处理与导出接口
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/esg_service_api.md
 * @stateFlow HTTP请求处理流程
 * @rules 预览仅返回前若干行；导出文件在响应后清理
 * @dependencies esg-reporting-service/service/dataset, github.com/go-chi/render
 * @refs service/dataset/
 */

package controllers

import (
	"esg-reporting-service/service/data_quality"
	"esg-reporting-service/service/dataset"
	"esg-reporting-service/service/models"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// previewRows 预览返回的最大行数
const previewRows = 10

// DatasetController 数据集控制器
type DatasetController struct {
	engine *data_quality.Engine
	loader *dataset.Loader
	writer *dataset.Writer
}

// NewDatasetController 创建数据集控制器实例
func NewDatasetController(engine *data_quality.Engine, loader *dataset.Loader, writer *dataset.Writer) *DatasetController {
	return &DatasetController{
		engine: engine,
		loader: loader,
		writer: writer,
	}
}

// PreviewResponse 数据预览响应
type PreviewResponse struct {
	Metadata *models.FileMetadata `json:"metadata,omitempty"`
	Columns  []string             `json:"columns"`
	Rows     [][]any              `json:"rows"`
	Total    int                  `json:"total"`
}

// ExportRequest 数据导出请求体
type ExportRequest struct {
	Columns  []string `json:"columns"`
	Rows     [][]any  `json:"rows"`
	Format   string   `json:"format"`
	FileName string   `json:"file_name,omitempty"`
}

// PreviewDataset 预览数据文件
// @Summary 预览数据文件
// @Description 上传数据文件，返回文件元数据与前10行数据
// @Tags 数据集
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "数据文件（CSV或Excel）"
// @Success 200 {object} APIResponse{data=PreviewResponse} "预览成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Router /datasets/preview [post]
func (c *DatasetController) PreviewDataset(w http.ResponseWriter, r *http.Request) {
	ds, metadata, _, cleanup, err := parseDatasetRequest(r, c.loader)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("请求数据解析失败", err))
		return
	}
	defer cleanup()

	preview := ds.Slice(0, previewRows)
	render.JSON(w, r, SuccessResponse("预览成功", &PreviewResponse{
		Metadata: metadata,
		Columns:  preview.Columns,
		Rows:     preview.Rows,
		Total:    ds.RowCount(),
	}))
}

// ProcessBatches 分批处理数据集
// @Summary 分批校验数据集
// @Description 将上传的数据集按批大小切分，逐批执行质量校验并返回各批结果
// @Tags 数据集
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "数据文件（CSV或Excel）"
// @Param entity_type formData string false "实体类型" Enums(emissions,activities,suppliers,general)
// @Success 200 {object} APIResponse{data=[]models.BatchResult} "处理完成"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Router /datasets/process-batches [post]
func (c *DatasetController) ProcessBatches(w http.ResponseWriter, r *http.Request) {
	ds, _, entityType, cleanup, err := parseDatasetRequest(r, c.loader)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("请求数据解析失败", err))
		return
	}
	defer cleanup()

	results := c.engine.ProcessInBatches(ds, func(batch *models.Dataset) (any, error) {
		return c.engine.Validate(batch, entityType), nil
	})

	render.JSON(w, r, SuccessResponse("分批处理完成", results))
}

// ExportDataset 导出数据集为文件
// @Summary 导出数据集
// @Description 将JSON内联数据集导出为CSV或Excel文件并下载
// @Tags 数据集
// @Accept json
// @Produce application/octet-stream
// @Param request body ExportRequest true "导出请求"
// @Success 200 {file} file "导出文件"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /datasets/export [post]
func (c *DatasetController) ExportDataset(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	format := strings.ToLower(req.Format)
	if format == "" {
		format = models.FormatCSV
	}

	fileName := req.FileName
	if fileName == "" {
		ext := ".csv"
		if format == models.FormatExcel {
			ext = ".xlsx"
		}
		fileName = "export_" + uuid.New().String()[:8] + ext
	}

	ds := models.NewDataset(req.Columns)
	for _, row := range req.Rows {
		ds.AppendRow(row)
	}

	outputPath := filepath.Join(os.TempDir(), fileName)
	defer os.Remove(outputPath)

	if _, err := c.writer.Save(ds, outputPath, format); err != nil {
		render.JSON(w, r, InternalErrorResponse("数据导出失败", err))
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, outputPath)
}
