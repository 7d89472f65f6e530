/*
 * @module api/controllers/carbon_controller
 * @description 碳排放数据控制器，封装Azure Carbon Optimization报表查询接口
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/esg_service_api.md
 * @stateFlow HTTP请求处理流程
 * @rules Carbon客户端未初始化时返回服务不可用；查询错误原样透传到响应消息
 * @dependencies esg-reporting-service/service/carbon, github.com/go-chi/render
 * @refs service/carbon/client.go
 */

package controllers

import (
	"esg-reporting-service/service/carbon"
	"esg-reporting-service/service/models"
	"net/http"

	"github.com/go-chi/render"
)

// CarbonController 碳排放数据控制器
type CarbonController struct {
	client *carbon.Client
}

// NewCarbonController 创建碳排放数据控制器实例
func NewCarbonController(client *carbon.Client) *CarbonController {
	return &CarbonController{client: client}
}

// MonthlySummaryRequest 月度汇总查询请求体
type MonthlySummaryRequest struct {
	SubscriptionIDs []string               `json:"subscription_ids"`
	StartDate       string                 `json:"start_date"`
	EndDate         string                 `json:"end_date"`
	Scopes          []models.EmissionScope `json:"scopes,omitempty"`
}

// EmissionsResponse 碳排放查询响应
type EmissionsResponse struct {
	Dataset *models.Dataset `json:"dataset"`
	Records int             `json:"records"`
}

// GetEmissions 查询碳排放数据
// @Summary 查询碳排放数据
// @Description 按查询条件调用Azure Carbon Optimization API获取碳排放报表数据
// @Tags 碳排放
// @Accept json
// @Produce json
// @Param query body models.EmissionsQuery true "查询条件"
// @Success 200 {object} APIResponse{data=EmissionsResponse} "查询成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 503 {object} APIResponse "Carbon客户端不可用"
// @Router /carbon/emissions [post]
func (c *CarbonController) GetEmissions(w http.ResponseWriter, r *http.Request) {
	if c.client == nil {
		render.JSON(w, r, ServiceUnavailableResponse("Carbon Optimization客户端未初始化"))
		return
	}

	var query models.EmissionsQuery
	if err := render.DecodeJSON(r.Body, &query); err != nil {
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}
	if len(query.SubscriptionList) == 0 {
		render.JSON(w, r, BadRequestResponse("订阅ID列表不能为空", nil))
		return
	}

	ds, err := c.client.GetEmissionsData(r.Context(), &query)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("碳排放数据查询失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", &EmissionsResponse{
		Dataset: ds,
		Records: ds.RowCount(),
	}))
}

// GetMonthlySummary 查询月度汇总报表
// @Summary 查询月度碳排放汇总
// @Description 查询指定订阅与时间范围的月度碳排放汇总数据
// @Tags 碳排放
// @Accept json
// @Produce json
// @Param request body MonthlySummaryRequest true "查询请求"
// @Success 200 {object} APIResponse{data=EmissionsResponse} "查询成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 503 {object} APIResponse "Carbon客户端不可用"
// @Router /carbon/monthly-summary [post]
func (c *CarbonController) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	if c.client == nil {
		render.JSON(w, r, ServiceUnavailableResponse("Carbon Optimization客户端未初始化"))
		return
	}

	var req MonthlySummaryRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}
	if len(req.SubscriptionIDs) == 0 {
		render.JSON(w, r, BadRequestResponse("订阅ID列表不能为空", nil))
		return
	}

	ds, err := c.client.GetMonthlySummary(r.Context(), req.SubscriptionIDs, req.StartDate, req.EndDate, req.Scopes)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("月度汇总查询失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", &EmissionsResponse{
		Dataset: ds,
		Records: ds.RowCount(),
	}))
}
