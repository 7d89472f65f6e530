/*
 * @module service/carbon/client
 * @description Azure Carbon Optimization REST客户端，提供Token管理与碳排放报表查询
 * @architecture 适配器模式 - 封装Azure管理面认证和HTTP请求
 * @documentReference https://learn.microsoft.com/en-us/rest/api/carbon/carbon-service/list-carbon-emission-reports
 * @stateFlow Token获取 -> Token缓存复用 -> 到期前刷新 -> 请求重建
 * @rules Token提前5分钟刷新；订阅ID等标识符统一小写后提交；分页与TopN参数按API上限收敛
 * @dependencies github.com/Azure/azure-sdk-for-go/sdk/azcore, github.com/Azure/azure-sdk-for-go/sdk/azidentity
 * @refs api/controllers/carbon_controller.go
 */

package carbon

import (
	"bytes"
	"context"
	"encoding/json"
	"esg-reporting-service/service/models"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

const (
	defaultBaseURL = "https://management.azure.com"
	apiVersion     = "2025-04-01"
	reportEndpoint = "/providers/Microsoft.Carbon/carbonEmissionReports"
	tokenScope     = "https://management.azure.com/.default"

	// API限制
	maxPageSize = 5000
	maxTopItems = 10
)

// Client Carbon Optimization API客户端
type Client struct {
	baseURL    string
	credential azcore.TokenCredential
	httpClient *http.Client

	// Token缓存
	accessToken string
	tokenExpiry time.Time
	tokenMutex  sync.RWMutex
}

// NewClient 创建Carbon Optimization客户端，credential为nil时使用DefaultAzureCredential
func NewClient(credential azcore.TokenCredential) (*Client, error) {
	if credential == nil {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("初始化Azure凭据失败: %w", err)
		}
		credential = cred
	}

	slog.Info("Carbon Optimization客户端初始化完成")

	return &Client{
		baseURL:    defaultBaseURL,
		credential: credential,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// getAccessToken 获取或刷新访问Token，到期前5分钟主动刷新
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.tokenMutex.RLock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-5*time.Minute)) {
		token := c.accessToken
		c.tokenMutex.RUnlock()
		return token, nil
	}
	c.tokenMutex.RUnlock()

	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()

	// 双重检查，避免并发重复刷新
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-5*time.Minute)) {
		return c.accessToken, nil
	}

	slog.Debug("刷新Azure访问Token")
	token, err := c.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{tokenScope},
	})
	if err != nil {
		return "", fmt.Errorf("获取访问Token失败: %w", err)
	}

	c.accessToken = token.Token
	c.tokenExpiry = token.ExpiresOn
	slog.Debug("Token刷新完成", "expires_at", c.tokenExpiry)

	return c.accessToken, nil
}

// buildRequestPayload 按API规范构建请求体
func buildRequestPayload(query *models.EmissionsQuery) map[string]any {
	// API要求订阅ID小写
	subs := make([]string, len(query.SubscriptionList))
	for i, sub := range query.SubscriptionList {
		subs[i] = strings.ToLower(sub)
	}

	scopes := make([]string, len(query.CarbonScopeList))
	for i, scope := range query.CarbonScopeList {
		scopes[i] = string(scope)
	}

	payload := map[string]any{
		"reportType":       string(query.ReportType),
		"subscriptionList": subs,
		"carbonScopeList":  scopes,
		"dateRange": map[string]string{
			"start": query.DateRange.Start,
			"end":   query.DateRange.End,
		},
	}

	if len(query.LocationList) > 0 {
		payload["locationList"] = lowercaseAll(query.LocationList)
	}
	if len(query.ResourceGroupURLList) > 0 {
		payload["resourceGroupUrlList"] = lowercaseAll(query.ResourceGroupURLList)
	}
	if len(query.ResourceTypeList) > 0 {
		payload["resourceTypeList"] = lowercaseAll(query.ResourceTypeList)
	}

	if query.ReportType == models.ItemDetailsReport {
		if query.CategoryType != "" {
			payload["categoryType"] = string(query.CategoryType)
		}
		if query.OrderBy != "" {
			payload["orderBy"] = string(query.OrderBy)
		}
		if query.SortDirection != "" {
			payload["sortDirection"] = string(query.SortDirection)
		}
		if query.PageSize > 0 {
			pageSize := query.PageSize
			if pageSize > maxPageSize {
				pageSize = maxPageSize
			}
			payload["pageSize"] = pageSize
		}
		if query.SkipToken != "" {
			payload["skipToken"] = query.SkipToken
		}
	}

	if query.ReportType == models.TopItemsSummaryReport || query.ReportType == models.TopItemsMonthlySummaryReport {
		if query.CategoryType != "" {
			payload["categoryType"] = string(query.CategoryType)
		}
		if query.TopItems > 0 {
			topItems := query.TopItems
			if topItems > maxTopItems {
				topItems = maxTopItems
			}
			payload["topItems"] = topItems
		}
	}

	return payload
}

// emissionsResponse API响应结构
type emissionsResponse struct {
	Value []map[string]any `json:"value"`
}

// GetEmissionsData 查询碳排放数据并转换为数据集
func (c *Client) GetEmissionsData(ctx context.Context, query *models.EmissionsQuery) (*models.Dataset, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := buildRequestPayload(query)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化请求体失败: %w", err)
	}

	url := fmt.Sprintf("%s%s?api-version=%s", c.baseURL, reportEndpoint, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("构建请求失败: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("请求Carbon Optimization API", "report_type", query.ReportType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Carbon Optimization API请求失败: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取API响应失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Carbon Optimization API返回错误状态 %d: %s", resp.StatusCode, string(respBody))
	}

	var result emissionsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("解析API响应失败: %w", err)
	}

	slog.Info("碳排放数据查询成功", "records", len(result.Value))

	return datasetFromRecords(result.Value), nil
}

// GetMonthlySummary 查询月度汇总报表，scopes为空时默认查询全部三个范围
func (c *Client) GetMonthlySummary(ctx context.Context, subscriptionIDs []string, startDate, endDate string, scopes []models.EmissionScope) (*models.Dataset, error) {
	return c.GetEmissionsData(ctx, &models.EmissionsQuery{
		ReportType:       models.MonthlySummaryReport,
		SubscriptionList: subscriptionIDs,
		CarbonScopeList:  defaultScopes(scopes),
		DateRange:        models.DateRange{Start: startDate, End: endDate},
	})
}

// GetOverallSummary 查询总体汇总报表
func (c *Client) GetOverallSummary(ctx context.Context, subscriptionIDs []string, startDate, endDate string, scopes []models.EmissionScope) (*models.Dataset, error) {
	return c.GetEmissionsData(ctx, &models.EmissionsQuery{
		ReportType:       models.OverallSummaryReport,
		SubscriptionList: subscriptionIDs,
		CarbonScopeList:  defaultScopes(scopes),
		DateRange:        models.DateRange{Start: startDate, End: endDate},
	})
}

// GetResourceDetails 查询资源级明细报表，date为单月（start与end相同）
func (c *Client) GetResourceDetails(ctx context.Context, subscriptionIDs []string, date string, pageSize int, scopes []models.EmissionScope) (*models.Dataset, error) {
	return c.GetEmissionsData(ctx, &models.EmissionsQuery{
		ReportType:       models.ItemDetailsReport,
		SubscriptionList: subscriptionIDs,
		CarbonScopeList:  defaultScopes(scopes),
		DateRange:        models.DateRange{Start: date, End: date},
		CategoryType:     models.CategoryResource,
		OrderBy:          models.OrderByLatestMonthEmissions,
		SortDirection:    models.SortDesc,
		PageSize:         pageSize,
	})
}

// GetTopEmitters 查询排放量TopN报表
func (c *Client) GetTopEmitters(ctx context.Context, subscriptionIDs []string, date string, topItems int, scopes []models.EmissionScope) (*models.Dataset, error) {
	return c.GetEmissionsData(ctx, &models.EmissionsQuery{
		ReportType:       models.TopItemsSummaryReport,
		SubscriptionList: subscriptionIDs,
		CarbonScopeList:  defaultScopes(scopes),
		DateRange:        models.DateRange{Start: date, End: date},
		CategoryType:     models.CategoryResource,
		TopItems:         topItems,
	})
}

// datasetFromRecords 将API返回的记录列表转换为数据集
// 列集合取所有记录键的并集，按字典序排序以保证确定性
func datasetFromRecords(records []map[string]any) *models.Dataset {
	columnSet := make(map[string]struct{})
	for _, record := range records {
		for key := range record {
			columnSet[key] = struct{}{}
		}
	}

	columns := make([]string, 0, len(columnSet))
	for key := range columnSet {
		columns = append(columns, key)
	}
	sort.Strings(columns)

	ds := models.NewDataset(columns)
	for _, record := range records {
		row := make([]any, len(columns))
		for i, col := range columns {
			row[i] = normalizeValue(record[col])
		}
		ds.AppendRow(row)
	}
	return ds
}

// normalizeValue 将JSON反序列化值收敛为数据集支持的类型
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil, string, float64:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func lowercaseAll(values []string) []string {
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = strings.ToLower(v)
	}
	return result
}

func defaultScopes(scopes []models.EmissionScope) []models.EmissionScope {
	if len(scopes) > 0 {
		return scopes
	}
	return []models.EmissionScope{models.Scope1, models.Scope2, models.Scope3}
}
