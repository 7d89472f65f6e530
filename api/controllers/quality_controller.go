/*
 * @module api/controllers/quality_controller
 * @description 数据质量控制器，提供数据校验、清洗与历史质量报告查询接口
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/esg_service_api.md
 * @stateFlow HTTP请求处理流程
 * @rules 统一的错误处理和响应格式，校验与清洗结果均持久化为质量报告
 * @dependencies esg-reporting-service/service/data_quality, github.com/go-chi/chi/v5
 * @refs service/data_quality/, service/models/quality_models.go
 */

package controllers

import (
	"esg-reporting-service/service/data_quality"
	"esg-reporting-service/service/dataset"
	"esg-reporting-service/service/models"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// QualityController 数据质量控制器
type QualityController struct {
	engine *data_quality.Engine
	loader *dataset.Loader
}

// NewQualityController 创建数据质量控制器实例
func NewQualityController(engine *data_quality.Engine, loader *dataset.Loader) *QualityController {
	return &QualityController{
		engine: engine,
		loader: loader,
	}
}

// ValidationResponse 校验接口响应
type ValidationResponse struct {
	Report   *models.ValidationReport `json:"report"`
	Metadata *models.FileMetadata     `json:"metadata,omitempty"`
	ReportID string                   `json:"report_id,omitempty"`
}

// CleaningResponse 清洗接口响应
type CleaningResponse struct {
	ValidationReport *models.ValidationReport `json:"validation_report"`
	CleaningReport   *models.CleaningReport   `json:"cleaning_report"`
	Dataset          *models.Dataset          `json:"dataset"`
	ReportID         string                   `json:"report_id,omitempty"`
}

// ValidateData 校验数据集质量
// @Summary 校验数据集质量
// @Description 上传CSV/Excel文件或提交JSON内联数据，执行质量校验并返回校验报告
// @Tags 数据质量
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "数据文件（CSV或Excel）"
// @Param entity_type formData string false "实体类型" Enums(emissions,activities,suppliers,general)
// @Success 200 {object} APIResponse{data=ValidationResponse} "校验成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /quality/validate [post]
func (c *QualityController) ValidateData(w http.ResponseWriter, r *http.Request) {
	ds, metadata, entityType, cleanup, err := parseDatasetRequest(r, c.loader)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("请求数据解析失败", err))
		return
	}
	defer cleanup()

	report := c.engine.Validate(ds, entityType)

	response := &ValidationResponse{Report: report, Metadata: metadata}
	if record, err := c.engine.SaveValidationReport(report, sourceName(metadata), nil); err == nil {
		response.ReportID = record.ID
	}

	render.JSON(w, r, SuccessResponse("数据校验完成", response))
}

// CleanData 校验并清洗数据集
// @Summary 校验并清洗数据集
// @Description 对上传的数据执行校验与清洗，返回清洗后的数据集及校验、清洗报告
// @Tags 数据质量
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "数据文件（CSV或Excel）"
// @Param entity_type formData string false "实体类型" Enums(emissions,activities,suppliers,general)
// @Success 200 {object} APIResponse{data=CleaningResponse} "清洗成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /quality/clean [post]
func (c *QualityController) CleanData(w http.ResponseWriter, r *http.Request) {
	ds, metadata, entityType, cleanup, err := parseDatasetRequest(r, c.loader)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("请求数据解析失败", err))
		return
	}
	defer cleanup()

	report := c.engine.Validate(ds, entityType)
	cleaned, cleaningReport := c.engine.Clean(ds, report)

	response := &CleaningResponse{
		ValidationReport: report,
		CleaningReport:   cleaningReport,
		Dataset:          cleaned,
	}
	if record, err := c.engine.SaveValidationReport(report, sourceName(metadata), cleaningReport); err == nil {
		response.ReportID = record.ID
	}

	render.JSON(w, r, SuccessResponse("数据清洗完成", response))
}

// GetQualityReports 获取历史质量报告列表
// @Summary 获取历史质量报告列表
// @Description 分页查询历史质量报告，支持按实体类型过滤
// @Tags 数据质量
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Param entity_type query string false "实体类型" Enums(emissions,activities,suppliers,general)
// @Success 200 {object} PaginatedResponse{data=[]models.QualityReport} "获取成功"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /quality/reports [get]
func (c *QualityController) GetQualityReports(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 {
		size = 10
	}
	entityType := r.URL.Query().Get("entity_type")

	reports, total, err := c.engine.GetQualityReports(page, size, entityType)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("查询质量报告失败", err))
		return
	}

	render.JSON(w, r, PaginatedResponse{
		Status: 0,
		Msg:    "查询成功",
		Data:   reports,
		Total:  total,
		Page:   page,
		Size:   size,
	})
}

// GetQualityReport 获取单个质量报告
// @Summary 获取单个质量报告
// @Description 按ID查询质量报告详情
// @Tags 数据质量
// @Produce json
// @Param id path string true "报告ID"
// @Success 200 {object} APIResponse{data=models.QualityReport} "获取成功"
// @Failure 404 {object} APIResponse "报告不存在"
// @Router /quality/reports/{id} [get]
func (c *QualityController) GetQualityReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := c.engine.GetQualityReport(id)
	if err != nil {
		render.JSON(w, r, NotFoundResponse("质量报告不存在", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", report))
}

// sourceName 数据来源名称，内联数据无文件元数据时使用固定值
func sourceName(metadata *models.FileMetadata) string {
	if metadata != nil {
		return metadata.FileName
	}
	return "inline"
}
