/*
 * @module service/models/carbon_models
 * @description Azure Carbon Optimization API 数据模型，包含报表类型、排放范围及查询条件定义
 * @architecture 数据模型层
 * @documentReference https://learn.microsoft.com/en-us/rest/api/carbon/carbon-service/list-carbon-emission-reports
 * @stateFlow 查询构建 -> API请求 -> 响应解析 -> 数据集转换
 * @rules 枚举值与官方API字符串严格一致，查询参数序列化遵循API字段命名
 * @dependencies 无
 * @refs service/carbon/
 */

package models

// ReportType 碳排放报表类型，取值与官方API一致
type ReportType string

const (
	OverallSummaryReport         ReportType = "OverallSummaryReport"
	MonthlySummaryReport         ReportType = "MonthlySummaryReport"
	TopItemsSummaryReport        ReportType = "TopItemsSummaryReport"
	TopItemsMonthlySummaryReport ReportType = "TopItemsMonthlySummaryReport"
	ItemDetailsReport            ReportType = "ItemDetailsReport"
)

// EmissionScope 碳排放范围
type EmissionScope string

const (
	Scope1 EmissionScope = "Scope1"
	Scope2 EmissionScope = "Scope2"
	Scope3 EmissionScope = "Scope3"
)

// CategoryType 明细报表的分类维度
type CategoryType string

const (
	CategoryResource      CategoryType = "Resource"
	CategoryResourceGroup CategoryType = "ResourceGroup"
	CategoryResourceType  CategoryType = "ResourceType"
	CategoryLocation      CategoryType = "Location"
	CategorySubscription  CategoryType = "Subscription"
)

// OrderByColumn 排序列
type OrderByColumn string

const (
	OrderByLatestMonthEmissions   OrderByColumn = "LatestMonthEmissions"
	OrderByPreviousMonthEmissions OrderByColumn = "PreviousMonthEmissions"
	OrderByMonthOverMonthChange   OrderByColumn = "MonthOverMonthEmissionsChangeRatio"
)

// SortDirection 排序方向
type SortDirection string

const (
	SortAsc  SortDirection = "Asc"
	SortDesc SortDirection = "Desc"
)

// DateRange 查询日期区间，格式 YYYY-MM-DD
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// EmissionsQuery 碳排放数据查询条件
type EmissionsQuery struct {
	ReportType       ReportType      `json:"report_type"`
	SubscriptionList []string        `json:"subscription_list"`
	CarbonScopeList  []EmissionScope `json:"carbon_scope_list"`
	DateRange        DateRange       `json:"date_range"`

	// 可选过滤条件
	LocationList         []string `json:"location_list,omitempty"`
	ResourceGroupURLList []string `json:"resource_group_url_list,omitempty"`
	ResourceTypeList     []string `json:"resource_type_list,omitempty"`

	// ItemDetailsReport 专用参数
	CategoryType  CategoryType  `json:"category_type,omitempty"`
	OrderBy       OrderByColumn `json:"order_by,omitempty"`
	SortDirection SortDirection `json:"sort_direction,omitempty"`
	PageSize      int           `json:"page_size,omitempty"`
	SkipToken     string        `json:"skip_token,omitempty"`

	// TopItems 报表专用参数
	TopItems int `json:"top_items,omitempty"`
}
